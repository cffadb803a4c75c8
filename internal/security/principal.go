package security

import (
	"context"

	"webapp/internal/domain"
)

type principalKey struct{}

// WithPrincipal guarda el usuario autenticado en ctx.
func WithPrincipal(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, principalKey{}, user)
}

// PrincipalFrom obtiene el usuario autenticado, si existe.
func PrincipalFrom(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(principalKey{}).(domain.User)
	return user, ok
}
