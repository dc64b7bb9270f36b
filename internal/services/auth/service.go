package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hyunw/bboard/internal/dependencies/clock"
	"github.com/hyunw/bboard/internal/model"
	"github.com/hyunw/bboard/internal/storage"
)

// hashCost is the bcrypt work factor. Fixed at a conservative default
// balancing login latency against brute-force resistance.
const hashCost = 10

// Service handles registration, login, and token issuance
type Service struct {
	storage   storage.Storage
	issuer    *TokenIssuer
	clock     clock.Clock
	limitByIP bool
	logger    *slog.Logger
}

// Config holds configuration for the auth service
type Config struct {
	// TokenTTL is the validity window for issued tokens
	TokenTTL time.Duration
	// LimitByIP restricts registration to one account per observed client
	// address. Best-effort admission control only: trivially bypassed by
	// rotating addresses, and it penalises users behind shared NAT.
	LimitByIP bool
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		TokenTTL:  24 * time.Hour,
		LimitByIP: false,
	}
}

// New creates a new auth Service
func New(store storage.Storage, issuer *TokenIssuer, clk clock.Clock, cfg Config, logger *slog.Logger) *Service {
	return &Service{
		storage:   store,
		issuer:    issuer,
		clock:     clk,
		limitByIP: cfg.LimitByIP,
		logger:    logger,
	}
}

// Issuer returns the service's token issuer, for the auth middleware
func (s *Service) Issuer() *TokenIssuer {
	return s.issuer
}

// Register creates a new account. The ip argument is the caller's observed
// network address; it is recorded and enforced only when IP limiting is
// enabled. Uniqueness conflicts surface as model.ErrUsernameTaken or
// model.ErrIPLimitReached.
func (s *Service) Register(ctx context.Context, username, password, displayName, ip string) (*model.Account, error) {
	if username == "" || password == "" || displayName == "" {
		return nil, ErrMissingFields
	}

	if !s.limitByIP {
		ip = ""
	} else if ip != "" {
		// Early exit only. The storage layer's conditional insert is the
		// enforcement; this avoids a wasted hash on the common case.
		_, err := s.storage.GetAccountByIP(ctx, ip)
		if err == nil {
			return nil, model.ErrIPLimitReached
		}
		if !errors.Is(err, model.ErrAccountNotFound) {
			return nil, fmt.Errorf("checking registration ip: %w", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	account := &model.Account{
		ID:             model.AccountID(uuid.NewString()),
		Username:       username,
		PasswordHash:   string(hash),
		DisplayName:    displayName,
		RegistrationIP: ip,
		CreatedAt:      s.clock.Now(),
	}

	if err := s.storage.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, model.ErrUsernameTaken) || errors.Is(err, model.ErrIPLimitReached) {
			return nil, err
		}
		return nil, fmt.Errorf("creating account: %w", err)
	}

	s.logger.Info("account registered",
		slog.String("account_id", string(account.ID)),
		slog.String("username", account.Username),
	)
	return account, nil
}

// Login verifies credentials and issues a bearer token. An unknown username
// and a wrong password both fail with ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (string, *model.Account, error) {
	if username == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	account, err := s.storage.GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("looking up account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(account)
	if err != nil {
		return "", nil, fmt.Errorf("issuing token: %w", err)
	}
	return token, account, nil
}
