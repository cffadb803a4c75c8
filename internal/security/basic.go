package security

import (
	"encoding/base64"
	"errors"
	"strings"
)

const basicScheme = "basic "

// ErrMalformedCredentials indica un header Authorization ausente o invalido.
var ErrMalformedCredentials = errors.New("malformed basic credentials")

// ParseBasicAuth decodifica "Basic base64(email:password)". El split se hace
// en el primer ':' para permitir ':' dentro de la contraseña.
func ParseBasicAuth(header string) (email, password string, err error) {
	header = strings.TrimSpace(header)
	if len(header) < len(basicScheme) || !strings.EqualFold(header[:len(basicScheme)], basicScheme) {
		return "", "", ErrMalformedCredentials
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(header[len(basicScheme):]))
	if err != nil {
		return "", "", ErrMalformedCredentials
	}

	email, password, ok := strings.Cut(string(decoded), ":")
	if !ok || strings.TrimSpace(email) == "" {
		return "", "", ErrMalformedCredentials
	}
	return email, password, nil
}
