package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/viralspark/gateway/internal/errors"
	identityDomain "github.com/viralspark/gateway/internal/identity/domain"
)

// tokenClaims is the JWT payload. The subject ID rides in the registered
// subject claim; role is custom.
type tokenClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// tokenService implements TokenService with HMAC-SHA256 signed JWTs.
type tokenService struct {
	secret     []byte
	expiration time.Duration
	nowFn      func() time.Time
}

// IssueToken creates a signed token for the subject.
func (t *tokenService) IssueToken(subjectID string, role string) (string, time.Time, error) {
	now := t.nowFn()
	expiresAt := now.Add(t.expiration)

	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Role: role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(err, "failed to sign token")
	}

	return signed, expiresAt, nil
}

// VerifyToken validates a token's signature and expiry.
func (t *tokenService) VerifyToken(token string) (*TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, identityDomain.ErrInvalidToken
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.nowFn))
	if err != nil {
		return nil, identityDomain.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, identityDomain.ErrInvalidToken
	}

	return &TokenClaims{
		SubjectID: claims.Subject,
		Role:      claims.Role,
	}, nil
}

// NewTokenService creates a new TokenService signing with the given secret.
func NewTokenService(secret string, expiration time.Duration) TokenService {
	return &tokenService{
		secret:     []byte(secret),
		expiration: expiration,
		nowFn:      time.Now,
	}
}
