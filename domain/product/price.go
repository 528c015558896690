package product

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// Cents is a fixed-point price in hundredths of the currency unit.
type Cents int64

// pricePattern accepts only the canonical two-decimal form, e.g. "12.50".
var pricePattern = regexp.MustCompile(`^\d{1,10}\.\d{2}$`)

// ParsePrice converts a canonical decimal string into Cents.
func ParsePrice(raw string) (Cents, error) {
	if !pricePattern.MatchString(raw) {
		return 0, ErrPriceFormat
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, ErrPriceFormat
	}
	c := d.Shift(2).IntPart()
	if c < 1 {
		return 0, ErrPriceTooLow
	}
	return Cents(c), nil
}

// Decimal returns c as a decimal amount.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// MarshalJSON renders c as a two-decimal string.
func (c Cents) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts the string form produced by MarshalJSON.
func (c *Cents) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("price must be a string: %w", err)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", s, err)
	}
	*c = Cents(d.Shift(2).IntPart())
	return nil
}

// PriceInput holds the literal text of a submitted price.
// Clients may send it as a JSON string or a JSON number; either way the
// literal must be canonical, so 12.5 is rejected while 12.50 and "12.50" pass.
type PriceInput string

// UnmarshalJSON keeps the literal text of a string or number.
func (p *PriceInput) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = PriceInput(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("price must be a string or number: %w", err)
	}
	*p = PriceInput(n.String())
	return nil
}
