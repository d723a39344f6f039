package statictoken

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"animal-shelter/internal/ports/auth"
)

var (
	ErrTokenEmpty    = errors.New("token is empty")
	ErrTokenMismatch = errors.New("token mismatch")
	ErrNotConfigured = errors.New("static token not configured")
)

const defaultOperatorID = "operator"

// Verifier implementa auth.AuthVerifier contra un único token de operador (API_TOKEN).
type Verifier struct {
	token      string
	operatorID string
}

// New devuelve nil si token está vacío: el router lo interpreta como modo dev.
func New(token, operatorID string) *Verifier {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	operatorID = strings.TrimSpace(operatorID)
	if operatorID == "" {
		operatorID = defaultOperatorID
	}
	return &Verifier{token: token, operatorID: operatorID}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.token == "" {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(v.token)) != 1 {
		return auth.Claims{}, ErrTokenMismatch
	}
	return auth.Claims{UserID: v.operatorID, Source: "token"}, nil
}
