package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Money is an amount in paise (INR minor units). All pricing arithmetic is
// integral; conversion to rupees happens only at the display edge.
type Money int64

// Rupees converts whole rupees to Money.
func Rupees(r int64) Money {
	return Money(r * 100)
}

// String formats the amount as rupees with two decimal places, e.g. "1500.00".
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON encodes Money as a decimal rupee string to avoid float drift
// on the wire.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON parses the quoted decimal rupee form produced by MarshalJSON.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	rupees, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return fmt.Errorf("money: invalid amount %q", string(b))
	}
	var paise int64
	if frac != "" {
		if len(frac) != 2 {
			return fmt.Errorf("money: invalid amount %q", string(b))
		}
		paise, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return fmt.Errorf("money: invalid amount %q", string(b))
		}
	}
	v := rupees*100 + paise
	if neg {
		v = -v
	}
	*m = Money(v)
	return nil
}
