package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ConfirmationPurpose tags email confirmation tokens so they cannot be
// replayed against a different token-consuming endpoint.
const ConfirmationPurpose = "email-confirm"

var (
	// ErrTokenExpired indicates the token's max age has elapsed.
	ErrTokenExpired = errors.New("confirmation token expired")
	// ErrTokenInvalid indicates a bad signature, malformed payload, or wrong purpose.
	ErrTokenInvalid = errors.New("confirmation token invalid")
)

// ConfirmationTokenCodec issues and verifies stateless, signed,
// time-limited tokens embedding an email address. Nothing is persisted
// server-side; possession of an unexpired token with a valid signature
// proves the holder received mail at the embedded address.
type ConfirmationTokenCodec struct {
	secret []byte
	maxAge time.Duration
	now    func() time.Time
}

type confirmationClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// NewConfirmationTokenCodec constructs a codec with the dedicated
// token-signing secret. The secret must differ from the session secret
// so a compromise of one does not expose the other.
func NewConfirmationTokenCodec(secret string, maxAge time.Duration) *ConfirmationTokenCodec {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &ConfirmationTokenCodec{
		secret: []byte(secret),
		maxAge: maxAge,
		now:    time.Now,
	}
}

// WithClock allows injection of a custom clock (primarily for testing).
func (c *ConfirmationTokenCodec) WithClock(now func() time.Time) *ConfirmationTokenCodec {
	if now != nil {
		c.now = now
	}
	return c
}

// Issue produces a signed token embedding the email address and issuance time.
func (c *ConfirmationTokenCodec) Issue(email string) (string, error) {
	if email == "" {
		return "", fmt.Errorf("email is required")
	}

	issuedAt := c.now().UTC()
	claims := confirmationClaims{
		Purpose: ConfirmationPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(c.maxAge)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign confirmation token: %w", err)
	}

	return signed, nil
}

// Verify validates the token and returns the embedded email unchanged.
// Expired tokens fail with ErrTokenExpired; anything else that does not
// verify fails with ErrTokenInvalid.
func (c *ConfirmationTokenCodec) Verify(token string) (string, error) {
	if token == "" {
		return "", ErrTokenInvalid
	}

	var claims confirmationClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	if !parsed.Valid || claims.Purpose != ConfirmationPurpose || claims.Subject == "" {
		return "", ErrTokenInvalid
	}

	return claims.Subject, nil
}
