package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SourceType distinguishes how a sales transaction originated
type SourceType int

const (
	// SourceTypeOnTheSpot is an ad-hoc cart settled at the counter
	SourceTypeOnTheSpot SourceType = 0
	// SourceTypeFromBooking settles a prior booking at its fixed price
	SourceTypeFromBooking SourceType = 1
)

var sourceTypeNames = [...]string{"on_the_spot", "from_booking"}

func (t SourceType) String() string {
	if int(t) < 0 || int(t) >= len(sourceTypeNames) {
		return "on_the_spot"
	}
	return sourceTypeNames[t]
}

// ParseSourceType maps a wire string onto a SourceType
func ParseSourceType(s string) (SourceType, bool) {
	for i, name := range sourceTypeNames {
		if name == s {
			return SourceType(i), true
		}
	}
	return SourceTypeOnTheSpot, false
}

func (t SourceType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *SourceType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = SourceType(i)
		return nil
	}
	if parsed, ok := ParseSourceType(str); ok {
		*t = parsed
	}
	return nil
}

func (t SourceType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *SourceType) Scan(value interface{}) error {
	if value == nil {
		*t = SourceTypeOnTheSpot
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = SourceType(v)
	case int:
		*t = SourceType(v)
	}
	return nil
}
