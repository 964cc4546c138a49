package intake

import (
	"errors"
	"regexp"
	"strings"
)

// Validation errors. Messages are surfaced verbatim to the submitting form.
var (
	ErrMissingFirstName = errors.New("First name is required")
	ErrMissingContact   = errors.New("Provide an email address or phone number")
	ErrInvalidEmail     = errors.New("Invalid email address")
	ErrInvalidPhone     = errors.New("Invalid phone number")
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitRe = regexp.MustCompile(`[0-9]`)
)

// NormalizePhone coerces a free-text phone value to E.164: a leading + and
// 10-15 digits. Bare 10-digit numbers are assumed North American and gain a
// +1 prefix. Empty input is not an error; a supplied value that cannot be
// normalized is.
func NormalizePhone(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	digits := strings.Join(digitRe.FindAllString(value, -1), "")
	switch {
	case len(digits) == 10:
		return "+1" + digits, nil
	case len(digits) >= 11 && len(digits) <= 15:
		return "+" + digits, nil
	}
	return "", ErrInvalidPhone
}

// Validate applies the strict intake policy: first name required, at least
// one contact method required, email and phone well-formed when supplied.
// The returned Lead carries the E.164-normalized phone.
func (l Lead) Validate() (Lead, error) {
	if l.FirstName == "" {
		return l, ErrMissingFirstName
	}
	if l.Email != "" && !emailRe.MatchString(l.Email) {
		return l, ErrInvalidEmail
	}
	phone, err := NormalizePhone(l.Phone)
	if err != nil {
		return l, err
	}
	l.Phone = phone
	if l.Email == "" && l.Phone == "" {
		return l, ErrMissingContact
	}
	return l, nil
}
