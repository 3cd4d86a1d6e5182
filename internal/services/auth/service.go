package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/activities-client/internal/dependencies/clock"
	"github.com/mcoot/activities-client/internal/model"
)

// Staff is a username/password pair allowed to log in
type Staff struct {
	Username string
	Password string
}

// ParseStaff parses "user:pass,user2:pass2"
func ParseStaff(raw string) ([]Staff, error) {
	var staff []Staff
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		username, password, ok := strings.Cut(entry, ":")
		if !ok || username == "" || password == "" {
			return nil, fmt.Errorf("invalid staff entry %q: want user:pass", entry)
		}
		staff = append(staff, Staff{Username: username, Password: password})
	}
	return staff, nil
}

// Session is a validated token
type Session struct {
	Token     string
	ID        string
	Username  string
	ExpiresAt time.Time
}

// Service authenticates staff and issues signed session tokens. Tokens are
// HS256 JWTs; logout adds the token id to a denylist until it would have
// expired anyway.
type Service struct {
	clock clock.Clock

	secret   []byte
	tokenTTL time.Duration

	mu      sync.RWMutex
	staff   map[string][]byte
	revoked map[string]time.Time
}

// Config holds configuration for the auth service
type Config struct {
	Secret   string
	TokenTTL time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		Secret:   "dev-secret",
		TokenTTL: 24 * time.Hour,
	}
}

// New creates a new auth service with no staff accounts
func New(clock clock.Clock, cfg Config) *Service {
	defaults := DefaultConfig()
	if cfg.Secret == "" {
		cfg.Secret = defaults.Secret
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaults.TokenTTL
	}
	return &Service{
		clock:    clock,
		secret:   []byte(cfg.Secret),
		tokenTTL: cfg.TokenTTL,
		staff:    make(map[string][]byte),
		revoked:  make(map[string]time.Time),
	}
}

// AddStaff registers an account, replacing any existing one of that name
func (s *Service) AddStaff(username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password for %s: %w", username, err)
	}

	s.mu.Lock()
	s.staff[username] = hash
	s.mu.Unlock()
	return nil
}

// Login checks a username and password and issues a token
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	s.mu.RLock()
	hash, ok := s.staff[username]
	s.mu.RUnlock()

	if !ok {
		return nil, model.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return s.issue(username)
}

// ValidateToken parses a token and checks it has not expired or been revoked
func (s *Service) ValidateToken(token string) (*Session, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, model.ErrInvalidSession
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, model.ErrInvalidSession
	}

	s.mu.RLock()
	_, revoked := s.revoked[claims.ID]
	s.mu.RUnlock()
	if revoked {
		return nil, model.ErrInvalidSession
	}

	return &Session{
		Token:     token,
		ID:        claims.ID,
		Username:  claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Revoke invalidates a session's token
func (s *Service) Revoke(session *Session) {
	s.mu.Lock()
	s.revoked[session.ID] = session.ExpiresAt
	s.mu.Unlock()
}

// CleanRevoked forgets revocations of tokens that have expired (call periodically)
func (s *Service) CleanRevoked() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, expiresAt := range s.revoked {
		if now.After(expiresAt) {
			delete(s.revoked, id)
		}
	}
}

func (s *Service) issue(username string) (*Session, error) {
	now := s.clock.Now()
	session := &Session{
		ID:        uuid.NewString(),
		Username:  username,
		ExpiresAt: now.Add(s.tokenTTL),
	}

	claims := jwt.RegisteredClaims{
		Subject:   username,
		ID:        session.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	session.Token = token
	return session, nil
}

// IsAuthError reports whether err is a credential or token failure
func IsAuthError(err error) bool {
	return errors.Is(err, model.ErrInvalidCredentials) || errors.Is(err, model.ErrInvalidSession)
}
