package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TransactionStatus represents the settlement state of a sales transaction
type TransactionStatus int

const (
	TransactionStatusPending   TransactionStatus = 0
	TransactionStatusCompleted TransactionStatus = 1
	TransactionStatusCancelled TransactionStatus = 2
	TransactionStatusRefunded  TransactionStatus = 3
)

var transactionStatusNames = [...]string{"pending", "completed", "cancelled", "refunded"}

func (s TransactionStatus) String() string {
	if int(s) < 0 || int(s) >= len(transactionStatusNames) {
		return "pending"
	}
	return transactionStatusNames[s]
}

func (s TransactionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TransactionStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = TransactionStatus(i)
		return nil
	}
	for i, name := range transactionStatusNames {
		if name == str {
			*s = TransactionStatus(i)
			return nil
		}
	}
	return nil
}

func (s TransactionStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *TransactionStatus) Scan(value interface{}) error {
	if value == nil {
		*s = TransactionStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = TransactionStatus(v)
	case int:
		*s = TransactionStatus(v)
	}
	return nil
}
