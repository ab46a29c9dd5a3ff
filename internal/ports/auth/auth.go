// Package auth define quién es el usuario de un request. Los adapters (odin) lo implementan.
package auth

import "context"

// Claims del token verificado. UserID identifica la sesión de seguimiento.
type Claims struct {
	UserID   string
	Email    string
	TenantID string
}

type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// VerifierFunc adapta una función a AuthVerifier.
type VerifierFunc func(ctx context.Context, token string) (Claims, error)

func (f VerifierFunc) Verify(ctx context.Context, token string) (Claims, error) {
	return f(ctx, token)
}
