package integrity

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Format is the shape a field value must parse as.
type Format int

const (
	FormatText Format = iota
	FormatInteger
	FormatPrice
	FormatPhone
	FormatEAN
	FormatDate
	FormatEmail
)

// DateLayout is the only accepted date representation.
const DateLayout = "2006-01-02"

const (
	maxPriceDigits   = 10
	maxPriceDecimals = 2
)

var (
	pricePattern = regexp.MustCompile(`^([+-]?)(\d*)(?:\.(\d+))?$`)
	phonePattern = regexp.MustCompile(`^\+?\d+$`)

	validate = validator.New()
)

// checkFormat returns the user-facing problem with value, or "".
func checkFormat(format Format, label, value string) string {
	switch format {
	case FormatInteger:
		if _, ok := parseDigits(value); !ok {
			return label + " must be integer."
		}
	case FormatPrice:
		if _, msg := parsePrice(label, value); msg != "" {
			return msg
		}
	case FormatPhone:
		if !phonePattern.MatchString(value) {
			return label + " must contain only digits, optionally prefixed by +."
		}
	case FormatEAN:
		if err := validate.Var(value, "number"); err != nil {
			return label + " must contain only digits."
		}
	case FormatDate:
		if err := validate.Var(value, "datetime="+DateLayout); err != nil {
			return label + " must be a date in YYYY-MM-DD format."
		}
	case FormatEmail:
		if err := validate.Var(value, "email"); err != nil {
			return label + " must be a valid email address."
		}
	}
	return ""
}

// parseDigits accepts unsigned decimal integers that fit in an int64.
// Signs are rejected: identifiers and quantities are plain digit strings.
func parseDigits(value string) (int64, bool) {
	if err := validate.Var(value, "number"); err != nil {
		return 0, false
	}
	n, err := strconv.ParseInt(value, 10, 64)
	return n, err == nil
}

// parsePrice accepts a positive fixed-point decimal with at most ten digits,
// two of which may follow the decimal point.
func parsePrice(label, value string) (decimal.Decimal, string) {
	m := pricePattern.FindStringSubmatch(value)
	if m == nil || m[2]+m[3] == "" {
		return decimal.Zero, label + " must be a number."
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, label + " must be a number."
	}
	if !d.IsPositive() {
		return decimal.Zero, label + " must be greater than zero."
	}
	if len(m[3]) > maxPriceDecimals {
		return decimal.Zero, label + " must have at most 2 decimal places."
	}
	if len(strings.TrimLeft(m[2], "0"))+len(m[3]) > maxPriceDigits {
		return decimal.Zero, label + " must have at most 10 digits."
	}
	return d, ""
}

// convert turns an already validated value into the typed SQL argument.
func convert(format Format, value string) any {
	switch format {
	case FormatInteger:
		n, _ := parseDigits(value)
		return n
	case FormatPrice:
		d, _ := parsePrice("", value)
		return d
	case FormatDate:
		t, _ := time.Parse(DateLayout, value)
		return t
	default:
		return value
	}
}

// canonical is the textual form used to compare a value against a snapshot.
func canonical(format Format, value string) string {
	if format == FormatInteger {
		if n, ok := parseDigits(value); ok {
			return strconv.FormatInt(n, 10)
		}
	}
	return value
}
