package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/LarozaLighting/laroza_api/internal/config"
	"github.com/LarozaLighting/laroza_api/internal/models"
	"github.com/LarozaLighting/laroza_api/internal/repository"
	"github.com/LarozaLighting/laroza_api/internal/utils"
)

// AuthService implements login and customer self-registration. Credentials
// are compared in plaintext against the static configured values and the
// registered accounts list; there is intentionally no hashing or credential
// security here.
type AuthService struct {
	accounts *repository.AccountRepository
	cfg      *config.AuthConfig
}

// NewAuthService constructs an AuthService.
func NewAuthService(accounts *repository.AccountRepository, cfg *config.AuthConfig) *AuthService {
	return &AuthService{accounts: accounts, cfg: cfg}
}

// Login checks the credentials and issues a role-carrying token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.Session, error) {
	session, err := s.authenticate(ctx, username, password)
	if err != nil {
		log.Warn().Str("username", username).Msg("login rejected")
		return "", nil, err
	}

	token, err := utils.GenerateJWT(session.Username, string(session.Role))
	if err != nil {
		return "", nil, err
	}
	log.Info().Str("username", session.Username).Str("role", string(session.Role)).Msg("login successful")
	return token, session, nil
}

func (s *AuthService) authenticate(ctx context.Context, username, password string) (*models.Session, error) {
	if username == s.cfg.AdminUsername && password == s.cfg.AdminPassword {
		return &models.Session{Username: username, Role: models.RoleAdmin}, nil
	}
	if username == s.cfg.CustomerUsername && password == s.cfg.CustomerPassword {
		return &models.Session{Username: username, Role: models.RoleCustomer}, nil
	}

	accounts, err := s.accounts.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, acc := range accounts {
		if acc.Username == username && acc.Password == password {
			return &models.Session{Username: username, Role: models.RoleCustomer}, nil
		}
	}
	return nil, utils.ErrInvalidCredentials
}

// Register creates a customer account. Usernames are unique
// case-insensitively and may not shadow the static logins; passwords must be
// at least 6 characters.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return utils.ErrInvalidCredentials
	}
	if len(password) < 6 {
		return utils.ErrPasswordTooShort
	}
	if strings.EqualFold(username, s.cfg.AdminUsername) || strings.EqualFold(username, s.cfg.CustomerUsername) {
		return utils.ErrUsernameTaken
	}

	accounts, err := s.accounts.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, acc := range accounts {
		if strings.EqualFold(acc.Username, username) {
			return utils.ErrUsernameTaken
		}
	}

	accounts = append(accounts, models.Account{Username: username, Password: password})
	if err := s.accounts.SaveAll(ctx, accounts); err != nil {
		return err
	}
	log.Info().Str("username", username).Msg("customer account registered")
	return nil
}
