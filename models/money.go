package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

// Money is a fixed-point amount kept in minor units (kobo) and persisted as
// numeric(10,2) in major units. API inputs arrive as integer minor units and
// are divided by 100 on the way in; keeping the value as int64 means that
// conversion is exact (150000 in -> 1500.00 stored), with no float drift.
type Money int64

// MoneyFromMinor converts an API amount in minor units.
func MoneyFromMinor(v int64) Money { return Money(v) }

func (m Money) Minor() int64 { return int64(m) }

// String renders the major-unit decimal form, e.g. 1500.00.
func (m Money) String() string {
	v := int64(m)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

func (m *Money) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = 0
		return nil
	case int64:
		*m = Money(v * 100)
		return nil
	case float64:
		// some drivers hand numeric back as float; the column is scale 2 so
		// this stays exact within the declared precision
		*m = Money(int64(v*100 + 0.5*signOf(v)))
		return nil
	case []byte:
		return m.parse(string(v))
	case string:
		return m.parse(v)
	default:
		return fmt.Errorf("money: cannot scan %T", src)
	}
}

func (m *Money) parse(s string) error {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	whole, frac := s, "00"
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if len(frac) > 2 {
		frac = frac[:2]
	}
	for len(frac) < 2 {
		frac += "0"
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return fmt.Errorf("money: bad value %q", s)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return fmt.Errorf("money: bad value %q", s)
	}
	v := w*100 + f
	if neg {
		v = -v
	}
	*m = Money(v)
	return nil
}

// MarshalJSON emits a plain JSON number with two decimals so clients see
// 1500.00 rather than the internal minor-unit integer.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	return m.parse(strings.Trim(string(b), `"`))
}

// GormDataType keeps every monetary column at the same fixed precision.
func (Money) GormDataType() string { return "numeric(10,2)" }

func signOf(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
