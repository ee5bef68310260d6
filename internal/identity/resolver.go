// Package identity превращает необязательный заголовок Authorization в id пользователя.
//
// Результат размечен: отсутствие токена (NoCredential) ведёт на гостевой
// счёт, а битый токен (InvalidCredential) должен быть отклонён.
package identity

import (
	"errors"
	"fmt"
	"strings"

	"alfatrade/pkg/jwt"
)

// GuestUserID - счёт, на котором торгует запрос без токена.
const GuestUserID = "demo"

type Kind int

const (
	NoCredential Kind = iota
	ValidCredential
	InvalidCredential
)

func (k Kind) String() string {
	switch k {
	case NoCredential:
		return "none"
	case ValidCredential:
		return "valid"
	case InvalidCredential:
		return "invalid"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

var (
	ErrMalformedHeader = errors.New("authorization header must be 'Bearer <token>'")
	ErrMissingUserID   = errors.New("token carries no user id")
)

type Resolution struct {
	Kind   Kind
	UserID string
	Reason error
}

// EffectiveUserID возвращает id, от имени которого выполняется запрос:
// пользователя из токена или гостя. Для битого токена возвращает причину.
func (r Resolution) EffectiveUserID() (string, error) {
	switch r.Kind {
	case ValidCredential:
		return r.UserID, nil
	case NoCredential:
		return GuestUserID, nil
	default:
		return "", r.Reason
	}
}

type Resolver struct {
	secret string
}

func NewResolver(secret string) *Resolver {
	return &Resolver{secret: secret}
}

func (r *Resolver) Resolve(header string) Resolution {
	header = strings.TrimSpace(header)
	if header == "" {
		return Resolution{Kind: NoCredential}
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return Resolution{Kind: InvalidCredential, Reason: ErrMalformedHeader}
	}

	claims, err := jwt.ParseToken(r.secret, strings.TrimSpace(parts[1]))
	if err != nil {
		return Resolution{Kind: InvalidCredential, Reason: err}
	}

	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return Resolution{Kind: InvalidCredential, Reason: ErrMissingUserID}
	}

	return Resolution{Kind: ValidCredential, UserID: userID}
}
