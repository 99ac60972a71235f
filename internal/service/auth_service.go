package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hda-data/internal/domain"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

const (
	SecretPolicyPresence = "presence"
	SecretPolicyBcrypt   = "bcrypt"
)

// AuthService is the allow-list identity gate.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	// Authenticate resolves a session token without consulting the allow-list.
	Authenticate(ctx context.Context, token string) (*Session, error)
}

// AuthOptions configures the gate.
type AuthOptions struct {
	AllowedIdentities []string
	AdminIdentity     string
	SecretPolicy      string
	PasswordHashes    map[string]string // identity -> bcrypt hash
	SigningSecret     []byte
	TTL               time.Duration
	Now               func() time.Time
}

type LoginRequest struct {
	Identity  string
	Secret    string
	IPAddress string
	UserAgent string
}

type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	UserID      string    `json:"userId"`
	Role        string    `json:"role"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Session is what a valid token resolves to. UserID doubles as the owner id.
type Session struct {
	UserID    string
	Role      string
	ExpiresAt time.Time
}

type sessionClaims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	allowed map[string]bool
	admin   string
	policy  string
	hashes  map[string]string
	secret  []byte
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

// NewAuthService creates the gate. An empty signing secret or an unknown
// policy is a configuration error.
func NewAuthService(opts AuthOptions, logger *zap.Logger) (AuthService, error) {
	if len(opts.SigningSecret) == 0 {
		return nil, errors.New("session signing secret is required")
	}
	policy := strings.ToLower(strings.TrimSpace(opts.SecretPolicy))
	if policy == "" {
		policy = SecretPolicyPresence
	}
	if policy != SecretPolicyPresence && policy != SecretPolicyBcrypt {
		return nil, fmt.Errorf("unknown secret policy %q", opts.SecretPolicy)
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	allowed := make(map[string]bool, len(opts.AllowedIdentities))
	for _, id := range opts.AllowedIdentities {
		if id = normalizeIdentity(id); id != "" {
			allowed[id] = true
		}
	}
	hashes := make(map[string]string, len(opts.PasswordHashes))
	for id, hash := range opts.PasswordHashes {
		hashes[normalizeIdentity(id)] = hash
	}

	return &authService{
		allowed: allowed,
		admin:   normalizeIdentity(opts.AdminIdentity),
		policy:  policy,
		hashes:  hashes,
		secret:  opts.SigningSecret,
		ttl:     opts.TTL,
		now:     opts.Now,
		logger:  logger,
	}, nil
}

// Login checks the identity against the allow-list and mints a token.
// Every failure reaches the caller as ErrLoginRejected; the cause is logged.
func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	identity := normalizeIdentity(req.Identity)
	fields := []zap.Field{
		zap.String("identity", identity),
		zap.String("ip_address", req.IPAddress),
		zap.String("user_agent", req.UserAgent),
	}

	if identity == "" {
		return nil, s.reject(&domain.ValidationError{Field: "identity", Reason: "is required"}, fields)
	}
	if strings.TrimSpace(req.Secret) == "" {
		return nil, s.reject(&domain.ValidationError{Field: "secret", Reason: "is required"}, fields)
	}
	if !s.allowed[identity] {
		return nil, s.reject(&domain.AuthError{Identity: identity, Reason: "identity not allowed"}, fields)
	}
	if s.policy == SecretPolicyBcrypt {
		hash, ok := s.hashes[identity]
		if !ok {
			return nil, s.reject(&domain.AuthError{Identity: identity, Reason: "no credential configured"}, fields)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Secret)); err != nil {
			return nil, s.reject(&domain.AuthError{Identity: identity, Reason: "secret mismatch"}, fields)
		}
	}

	role := RoleUser
	if identity == s.admin {
		role = RoleAdmin
	}

	issued := s.now()
	expires := issued.Add(s.ttl)
	claims := sessionClaims{
		UserID: identity,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	s.logger.Info("User login successful", append(fields, zap.String("role", role))...)

	return &LoginResponse{
		AccessToken: token,
		UserID:      identity,
		Role:        role,
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}

func (s *authService) Authenticate(_ context.Context, token string) (*Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, &domain.AuthError{Reason: "missing session token"}
	}

	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, &domain.AuthError{Reason: "session expired"}
		}
		return nil, &domain.AuthError{Reason: "invalid session token"}
	}
	if claims.UserID == "" || claims.ExpiresAt == nil {
		return nil, &domain.AuthError{Reason: "invalid session token"}
	}
	if claims.Role != RoleAdmin && claims.Role != RoleUser {
		return nil, &domain.AuthError{Identity: claims.UserID, Reason: "invalid session role"}
	}

	return &Session{
		UserID:    claims.UserID,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *authService) reject(reason error, fields []zap.Field) error {
	s.logger.Warn("User login failed", append(fields, zap.Error(reason))...)
	return domain.ErrLoginRejected
}

func normalizeIdentity(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
