package checkout

import (
	"regexp"

	"storefront/internal/domain"
)

var (
	// Whitespace here is the browser's: ASCII spaces plus Unicode space separators.
	nameRe  = regexp.MustCompile(`^[A-Za-z\s\p{Zs}\x{2028}\x{2029}\x{FEFF}]{2,}$`)
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@(gmail\.com|hotmail\.com|yahoo\.com)$`)
	phoneRe = regexp.MustCompile(`^\+92\d{10}$`)
)

// ValidationError names the first form field that failed a rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return domain.ErrInvalidInput
}

type rule struct {
	field   string
	re      *regexp.Regexp
	value   func(Form) string
	message string
}

// Order matters: the first failing rule is the one reported.
var rules = []rule{
	{"firstName", nameRe, func(f Form) string { return f.FirstName }, "First name should only contain letters and spaces."},
	{"lastName", nameRe, func(f Form) string { return f.LastName }, "Last name should only contain letters and spaces."},
	{"email", emailRe, func(f Form) string { return f.Email }, "Only Gmail, Hotmail or Yahoo emails are allowed."},
	{"phone", phoneRe, func(f Form) string { return f.Phone }, "Phone number must start with +92 and contain 13 digits in total."},
}

// Validate applies the checkout rules and returns a *ValidationError for the
// first one that fails.
func Validate(f Form) error {
	for _, r := range rules {
		if !r.re.MatchString(r.value(f)) {
			return &ValidationError{Field: r.field, Message: r.message}
		}
	}
	if f.PaymentMethod != "" && !f.PaymentMethod.Valid() {
		return &ValidationError{Field: "paymentMethod", Message: "Payment method must be cod or online."}
	}
	return nil
}
