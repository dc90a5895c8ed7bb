// Package validate holds the pure input checks for a registration request.
// Normalization (trimming, lowercasing) is the service's job and happens only
// after these checks pass.
package validate

import (
	"errors"
	"regexp"
	"strings"

	"hackreg/internal/models"
)

// Messages are returned verbatim to API clients.
var (
	ErrFieldsRequired = errors.New("All fields are required (name, email, phone, department, year, rollNumber)")
	ErrInvalidEmail   = errors.New("Invalid email format")
	ErrInvalidPhone   = errors.New("Phone number must be 10 digits")
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[0-9]{10}$`)
)

// Student checks the request against the rules in precedence order: required
// fields first, then email format, then phone format. The first failing rule
// wins.
func Student(req models.RegisterRequest) error {
	for _, f := range []string{req.Name, req.Email, req.Phone, req.Department, req.Year, req.RollNumber} {
		if strings.TrimSpace(f) == "" {
			return ErrFieldsRequired
		}
	}
	if !emailRe.MatchString(req.Email) {
		return ErrInvalidEmail
	}
	if !phoneRe.MatchString(req.Phone) {
		return ErrInvalidPhone
	}
	return nil
}
