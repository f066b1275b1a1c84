package helper

import (
	"errors"
	"regexp"
	"strings"
)

var (
	reLetter = regexp.MustCompile(`[A-Za-z]`)
	reNumber = regexp.MustCompile(`[0-9]`)
	reEmail  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

func isAlphaNumeric(s string) bool {
	return reLetter.MatchString(s) && reNumber.MatchString(s)
}

// Validasi Email (regex simple)
func IsValidEmail(email string) bool {
	return reEmail.MatchString(email)
}

func ValidateRegisterInput(name, email, password string) error {
	switch {
	case len(strings.TrimSpace(name)) < 2:
		return errors.New("name must be at least 2 characters")
	case !IsValidEmail(email):
		return errors.New("invalid email format")
	case len(password) < 8:
		return errors.New("password must be at least 8 characters")
	case len(password) > 72:
		return errors.New("password must be at most 72 characters")
	case !isAlphaNumeric(password):
		return errors.New("password must contain letters and numbers")
	}
	return nil
}
