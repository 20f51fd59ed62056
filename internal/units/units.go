// Package units normalizes free-form purchase unit labels into a
// kilograms-equivalent weight. Labels come from years of hand-typed data, so
// lookup is deliberately forgiving: unknown or blank labels weigh zero
// instead of failing, keeping aggregate totals defined over dirty rows.
package units

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

var (
	one     = decimal.NewFromInt(1)
	half    = decimal.RequireFromString("0.5")
	quarter = decimal.RequireFromString("0.25")
	pack50  = decimal.RequireFromString("0.05")
	pack70  = decimal.RequireFromString("0.07")
	pack100 = decimal.RequireFromString("0.1")
	pack200 = decimal.RequireFromString("0.2")
	bulk5   = decimal.NewFromInt(5)
	bulk10  = decimal.NewFromInt(10)
	bulk20  = decimal.NewFromInt(20)
)

// multipliers maps a canonical unit name to its weight in kilograms.
var multipliers = map[string]decimal.Decimal{
	"kilo":       one,
	"medio":      half,
	"cuarto":     quarter,
	"50 gr":      pack50,
	"70 gr":      pack70,
	"100 gr":     pack100,
	"200 gr":     pack200,
	"bulto 5kg":  bulk5,
	"bulto 10kg": bulk10,
	"bulto 20kg": bulk20,
}

// aliases collapses the label variants seen in stored data onto canonical
// names. Keys are already trimmed/lowered/space-collapsed.
var aliases = map[string]string{
	"kg":     "kilo",
	"kilos":  "kilo",
	"50g":    "50 gr",
	"50gr":   "50 gr",
	"70g":    "70 gr",
	"70gr":   "70 gr",
	"100g":   "100 gr",
	"100gr":  "100 gr",
	"200g":   "200 gr",
	"200gr":  "200 gr",
	"bulto5": "bulto 5kg",
}

// Canonical folds a raw label to its canonical unit name. Labels that match
// nothing come back folded but unchanged, so Known can reject them.
func Canonical(label string) string {
	c := strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(label))), " ")
	if alias, ok := aliases[c]; ok {
		return alias
	}
	if _, ok := multipliers[c]; ok {
		return c
	}
	// Bulk sacks show up as "bulto 10kg", "Bulto de 10 kg", "10kg bulto"...
	// match on the bulk word plus a whole size token, so "bulto 15kg" stays
	// unknown instead of reading as a 5kg sack.
	if strings.Contains(c, "bulto") {
		for _, f := range strings.Fields(c) {
			switch strings.TrimSuffix(f, "kg") {
			case "20":
				return "bulto 20kg"
			case "10":
				return "bulto 10kg"
			case "5":
				return "bulto 5kg"
			}
		}
	}
	return c
}

// Known reports whether the label maps to a multiplier. Callers use it to
// log soft data-quality anomalies; conversion itself never errors.
func Known(label string) bool {
	_, ok := multipliers[Canonical(label)]
	return ok
}

// KilogramsFor converts a quantity in the given unit to kilograms. It is
// total: unknown labels contribute zero weight.
func KilogramsFor(qty decimal.Decimal, label string) decimal.Decimal {
	m, ok := multipliers[Canonical(label)]
	if !ok {
		return decimal.Zero
	}
	return qty.Mul(m)
}

// Quantity coerces an arbitrary scalar (string, float, int, nil...) to a
// decimal quantity. Non-numeric and missing values become zero.
func Quantity(v interface{}) decimal.Decimal {
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}
