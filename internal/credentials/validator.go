// Package credentials holds the username and password format rules shared by
// the server (authoritative) and the CLI (pre-submission check).
package credentials

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/quizauth/internal/common"
)

// Username constraints, measured after trimming.
const (
	MinUsernameLength = 4
	MaxUsernameLength = 20
)

// Password constraints. MaxPasswordBytes is the bcrypt input limit.
const (
	MinPasswordLength = 6
	MaxPasswordBytes  = 72
)

// PasswordSpecialChars is the set a password must draw at least one character from.
const PasswordSpecialChars = "@#$%^&+=!"

const (
	msgUsernameLength  = "Username must be between 4 and 20 characters."
	msgUsernameCharset = "Username can only contain letters, numbers, underscores (_) and @ symbol."
	msgPasswordLength  = "Password must be at least 6 characters long."
	msgPasswordTooLong = "Password must be at most 72 bytes long."
	msgPasswordClasses = "Password must include uppercase, lowercase, number, and special character."
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_@]+$`)

// NormalizeUsername trims surrounding whitespace and lowercases. Every read
// and write path of the identity store goes through it.
func NormalizeUsername(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ValidateUsername checks raw (after trimming) against the length and
// character-class rules. It returns nil or a RejectedError of kind
// common.ErrValidation whose message lists every failed rule.
func ValidateUsername(raw string) error {
	username := strings.TrimSpace(raw)

	var failed []string
	n := utf8.RuneCountInString(username)
	if n < MinUsernameLength || n > MaxUsernameLength {
		failed = append(failed, msgUsernameLength)
	}
	if !usernameRegex.MatchString(username) {
		failed = append(failed, msgUsernameCharset)
	}
	return rejection(failed)
}

// ValidatePassword checks length and the four required character classes.
func ValidatePassword(raw string) error {
	return ValidatePasswordBytes([]byte(raw))
}

// ValidatePasswordBytes is ValidatePassword for a caller that keeps the
// password in a slice it will wipe. raw is only read.
func ValidatePasswordBytes(raw []byte) error {
	var failed []string
	if utf8.RuneCount(raw) < MinPasswordLength {
		failed = append(failed, msgPasswordLength)
	}
	if len(raw) > MaxPasswordBytes {
		failed = append(failed, msgPasswordTooLong)
	}
	if !hasAllClasses(raw) {
		failed = append(failed, msgPasswordClasses)
	}
	return rejection(failed)
}

// ValidateSignup runs both validators and merges their messages.
func ValidateSignup(username, password string) error {
	return ValidateSignupBytes(username, []byte(password))
}

func ValidateSignupBytes(username string, password []byte) error {
	var failed []string
	for _, err := range []error{ValidateUsername(username), ValidatePasswordBytes(password)} {
		if err != nil {
			failed = append(failed, err.Error())
		}
	}
	return rejection(failed)
}

func hasAllClasses(b []byte) bool {
	var lower, upper, digit, special bool
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		b = b[size:]
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(PasswordSpecialChars, r):
			special = true
		}
	}
	return lower && upper && digit && special
}

func rejection(failed []string) error {
	if len(failed) == 0 {
		return nil
	}
	return common.Reject(common.ErrValidation, strings.Join(failed, " "))
}
