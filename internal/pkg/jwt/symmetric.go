package jwt

import (
	"errors"
	"strconv"
	"time"

	libJWT "github.com/golang-jwt/jwt/v5"
)

type Config struct {
	Secret     []byte
	Issuer     string
	Audiences  []string
	DefaultTTL time.Duration
	Clock      clocker
	UUID       generator
}

// Symmetric signs with HS512.
type Symmetric struct {
	cfg Config
}

func NewHS512(cfg Config) (*Symmetric, error) {
	if len(cfg.Secret) < 64 {
		return nil, ErrSigningKeyTooShort
	}
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = time.Hour
	}
	return &Symmetric{cfg: cfg}, nil
}

func (s *Symmetric) Issue(sub Subject) (Token, error) {
	if !sub.Stage.Valid() {
		return Token{}, ErrUnknownStage
	}

	ttl := sub.TTL
	if ttl <= 0 {
		ttl = s.cfg.DefaultTTL
	}

	now := s.cfg.Clock.Now()
	exp := now.Add(ttl)
	id := s.cfg.UUID.Generate()

	signed, err := libJWT.NewWithClaims(libJWT.SigningMethodHS512, Claims{
		RegisteredClaims: libJWT.RegisteredClaims{
			ID:        id,
			Subject:   strconv.FormatInt(sub.AdminID, 10),
			Issuer:    s.cfg.Issuer,
			Audience:  s.cfg.Audiences,
			IssuedAt:  libJWT.NewNumericDate(now),
			NotBefore: libJWT.NewNumericDate(now),
			ExpiresAt: libJWT.NewNumericDate(exp),
		},
		AdminID: sub.AdminID,
		Email:   sub.Email,
		Stage:   sub.Stage,
	}).SignedString(s.cfg.Secret)
	if err != nil {
		return Token{}, err
	}

	return Token{Value: signed, ID: id, ExpiresAt: exp.Truncate(time.Second)}, nil
}

func (s *Symmetric) Verify(token string) (Claims, error) {
	opts := []libJWT.ParserOption{
		libJWT.WithIssuer(s.cfg.Issuer),
		libJWT.WithValidMethods([]string{libJWT.SigningMethodHS512.Alg()}),
		libJWT.WithIssuedAt(),
		libJWT.WithExpirationRequired(),
		libJWT.WithTimeFunc(s.cfg.Clock.Now),
	}
	if len(s.cfg.Audiences) > 0 {
		opts = append(opts, libJWT.WithAudience(s.cfg.Audiences...))
	}

	var claims Claims
	parsed, err := libJWT.ParseWithClaims(token, &claims, func(t *libJWT.Token) (any, error) {
		if t.Method != libJWT.SigningMethodHS512 {
			return nil, ErrInvalidSigningMethod
		}
		return s.cfg.Secret, nil
	}, opts...)
	switch {
	case errors.Is(err, libJWT.ErrTokenExpired):
		return Claims{}, ErrTokenExpired
	case err != nil:
		return Claims{}, errors.Join(ErrInvalidToken, err)
	case !parsed.Valid, !claims.Stage.Valid(), claims.AdminID == 0:
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}
