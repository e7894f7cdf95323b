// Package validators holds the format predicates the HTTP layer runs before
// calling the ledger services, and their registration as gin binding tags.
package validators

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	accountNumberPattern = regexp.MustCompile(`^\d{5}-\d$`)
	emailValidator       = validator.New()
)

// Digits strips every non-digit rune from s.
func Digits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// IsValidCPF checks length and both check digits. Formatting characters are ignored.
func IsValidCPF(cpf string) bool {
	d := Digits(cpf)
	if len(d) != 11 {
		return false
	}
	if strings.Count(d, d[:1]) == 11 {
		return false
	}
	return d[9]-'0' == cpfCheckDigit(d[:9]) && d[10]-'0' == cpfCheckDigit(d[:10])
}

func cpfCheckDigit(prefix string) byte {
	sum := 0
	weight := len(prefix) + 1
	for i := 0; i < len(prefix); i++ {
		sum += int(prefix[i]-'0') * (weight - i)
	}
	digit := (sum * 10) % 11
	if digit == 10 {
		digit = 0
	}
	return byte(digit)
}

// IsValidEmail uses the same rules as the `email` binding tag.
func IsValidEmail(email string) bool {
	return emailValidator.Var(email, "required,email") == nil
}

// IsValidPhone accepts Brazilian landlines (10 digits) and mobiles (11 digits)
// with a non-zero area code.
func IsValidPhone(phone string) bool {
	d := Digits(phone)
	if len(d) != 10 && len(d) != 11 {
		return false
	}
	return d[0] != '0'
}

// IsValidAccountNumber checks the NNNNN-D shape.
func IsValidAccountNumber(number string) bool {
	return accountNumberPattern.MatchString(number)
}

// Register adds the cpf, br_phone and account_number tags to v.
func Register(v *validator.Validate) error {
	tags := map[string]func(string) bool{
		"cpf":            IsValidCPF,
		"br_phone":       IsValidPhone,
		"account_number": IsValidAccountNumber,
	}
	for tag, fn := range tags {
		fn := fn
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return fn(fl.Field().String())
		}); err != nil {
			return err
		}
	}
	return nil
}
