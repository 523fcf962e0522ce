package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// InvoiceStatus represents the lifecycle state of an invoice document.
// Allowed moves: draft -> sent -> paid, sent -> overdue once the due date
// passes unpaid. paid and overdue are terminal for aggregation purposes.
type InvoiceStatus int

const (
	InvoiceStatusDraft   InvoiceStatus = 0
	InvoiceStatusSent    InvoiceStatus = 1
	InvoiceStatusPaid    InvoiceStatus = 2
	InvoiceStatusOverdue InvoiceStatus = 3
)

var invoiceStatusNames = [...]string{"draft", "sent", "paid", "overdue"}

func (s InvoiceStatus) String() string {
	if int(s) < 0 || int(s) >= len(invoiceStatusNames) {
		return "draft"
	}
	return invoiceStatusNames[s]
}

// IsTerminal reports whether the status accepts no further transitions
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusOverdue
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InvoiceStatus(i)
		return nil
	}
	for i, name := range invoiceStatusNames {
		if name == str {
			*s = InvoiceStatus(i)
			return nil
		}
	}
	return nil
}

func (s InvoiceStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = InvoiceStatus(v)
	case int:
		*s = InvoiceStatus(v)
	}
	return nil
}
