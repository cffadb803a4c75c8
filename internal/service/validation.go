package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"webapp/internal/domain"
)

const (
	passwordTag = "password"
	// Postgres rechaza 0x00 en columnas TEXT.
	noNULTag = "nonul"
)

const (
	minPasswordLen = 8
	// bcrypt ignora todo lo que pasa de 72 bytes.
	maxPasswordLen = 72
)

var ErrWeakPassword = errors.New("password must be 8-72 bytes and contain upper-case, lower-case, digit and symbol characters")

// CheckPasswordPolicy valida longitud y clases de caracteres.
func CheckPasswordPolicy(password string) error {
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return ErrWeakPassword
	}
	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsSpace(r):
			// los espacios no cuentan como simbolo
		default:
			symbol = true
		}
	}
	if !upper || !lower || !digit || !symbol {
		return ErrWeakPassword
	}
	return nil
}

// registerValidators agrega las reglas propias a v.
func registerValidators(v *validator.Validate) error {
	if err := v.RegisterValidation(passwordTag, func(fl validator.FieldLevel) bool {
		return CheckPasswordPolicy(fl.Field().String()) == nil
	}); err != nil {
		return err
	}
	return v.RegisterValidation(noNULTag, func(fl validator.FieldLevel) bool {
		return !strings.ContainsRune(fl.Field().String(), 0)
	})
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// los mensajes usan el nombre del campo JSON
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	if err := registerValidators(v); err != nil {
		panic(err)
	}
	return v
}

// invalidInput traduce errores del validator a ErrInvalidInput con un
// mensaje seguro para el cliente.
func invalidInput(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "min":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case passwordTag:
		return ErrWeakPassword.Error()
	case noNULTag:
		return field + " must not contain NUL characters"
	default:
		return field + " is invalid"
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
