package validation

import (
	"fmt"
	"net/mail"
	"strings"
)

// MaxEmailLen ограничение из RFC 5321
const MaxEmailLen = 254

// NormalizeEmail приводит email к виду, в котором он хранится в БД
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail проверяет форму email: одиночный адрес без display name,
// с непустой локальной частью и доменом, содержащим точку.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	if len(email) > MaxEmailLen {
		return fmt.Errorf("email must not exceed %d characters", MaxEmailLen)
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return fmt.Errorf("email is not a valid address")
	}

	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return fmt.Errorf("email is not a valid address")
	}

	domain := email[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return fmt.Errorf("email domain is not valid")
	}

	return nil
}
