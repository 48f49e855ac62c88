package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/calebmcg/deadeye/internal/dependencies/clock"
	"github.com/calebmcg/deadeye/internal/dependencies/idgen"
	"github.com/calebmcg/deadeye/internal/model"
	"github.com/calebmcg/deadeye/internal/storage"
)

// Errors
var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Caller is the authenticated identity attached to a request
type Caller struct {
	UserID model.UserID
	Email  string
}

// Config holds configuration for the auth service
type Config struct {
	Secret   []byte
	TokenTTL time.Duration
}

// DefaultConfig returns default auth configuration (without a secret)
func DefaultConfig() Config {
	return Config{
		TokenTTL: 24 * time.Hour,
	}
}

// claims is the JWT payload: standard claims plus the user's email
type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Service mints and validates access tokens. Sign-in is passwordless: a
// token request for an unknown email creates the user.
type Service struct {
	users  storage.UserRepository
	clock  clock.Clock
	idgen  idgen.Generator
	cfg    Config
	logger *slog.Logger
}

// New creates a new AuthService
func New(users storage.UserRepository, clk clock.Clock, idGen idgen.Generator, cfg Config, logger *slog.Logger) *Service {
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = DefaultConfig().TokenTTL
	}
	return &Service{
		users:  users,
		clock:  clk,
		idgen:  idGen,
		cfg:    cfg,
		logger: logger,
	}
}

// MintToken returns a signed token for the user with the given email,
// creating the user first if none exists
func (s *Service) MintToken(ctx context.Context, email string) (string, *model.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, model.ErrUserNotFound) {
		user = &model.User{
			ID:        model.UserID(s.idgen.NewID("user_")),
			Email:     email,
			CreatedAt: s.clock.Now(),
		}
		if err := s.users.SaveUser(ctx, user); err != nil {
			return "", nil, err
		}
		s.logger.Info("user created",
			slog.String("user_id", string(user.ID)),
			slog.String("email", email),
		)
	} else if err != nil {
		return "", nil, err
	}

	now := s.clock.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   string(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
	})

	signed, err := token.SignedString(s.cfg.Secret)
	if err != nil {
		return "", nil, err
	}
	return signed, user, nil
}

// ValidateToken parses and verifies a token and returns the caller identity
func (s *Service) ValidateToken(tokenString string) (*Caller, error) {
	var parsed claims
	_, err := jwt.ParseWithClaims(tokenString, &parsed,
		func(t *jwt.Token) (any, error) { return s.cfg.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if parsed.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Caller{
		UserID: model.UserID(parsed.Subject),
		Email:  parsed.Email,
	}, nil
}
