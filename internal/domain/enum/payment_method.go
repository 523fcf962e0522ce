package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod represents how a payment entry was settled
type PaymentMethod int

const (
	PaymentMethodCash     PaymentMethod = 0
	PaymentMethodCard     PaymentMethod = 1
	PaymentMethodTransfer PaymentMethod = 2
	PaymentMethodQRIS     PaymentMethod = 3
)

var paymentMethodNames = [...]string{"cash", "card", "transfer", "qris"}

func (m PaymentMethod) String() string {
	if int(m) < 0 || int(m) >= len(paymentMethodNames) {
		return "unknown"
	}
	return paymentMethodNames[m]
}

// IsValid reports whether the method is part of the recognized set
func (m PaymentMethod) IsValid() bool {
	return int(m) >= 0 && int(m) < len(paymentMethodNames)
}

// ParsePaymentMethod maps a wire string onto a PaymentMethod.
// The second return value is false for unrecognized methods.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	for i, name := range paymentMethodNames {
		if name == s {
			return PaymentMethod(i), true
		}
	}
	return PaymentMethod(-1), false
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	parsed, ok := ParsePaymentMethod(str)
	if !ok {
		// Keep the out-of-range value so reconciliation can reject it
		// with a field-level error instead of a decode failure.
		*m = PaymentMethod(-1)
		return nil
	}
	*m = parsed
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
