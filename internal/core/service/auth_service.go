package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gamevault/catalog-api/internal/core/domain"
	"github.com/gamevault/catalog-api/internal/core/ports"
)

// AuthService implements account management and credential verification.
type AuthService struct {
	repo     ports.UserRepository
	tokens   ports.TokenService
	throttle ports.LoginThrottle
	logger   zerolog.Logger

	// hash is swappable in tests to observe whether hashing ran.
	hash func(password []byte, cost int) ([]byte, error)
}

// NewAuthService wires the account service. throttle may be nil; logins are
// then unthrottled.
func NewAuthService(repo ports.UserRepository, tokens ports.TokenService, throttle ports.LoginThrottle, logger zerolog.Logger) *AuthService {
	return &AuthService{
		repo:     repo,
		tokens:   tokens,
		throttle: throttle,
		logger:   logger,
		hash:     bcrypt.GenerateFromPassword,
	}
}

// Register creates a new USER account. The uniqueness check runs before any
// hash is computed: a rejected registration never pays for bcrypt.
func (s *AuthService) Register(ctx context.Context, username, password, email string) (*domain.User, error) {
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hash([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.repo.Create(ctx, user)
}

// Login verifies the credentials and issues a token carrying the account's
// role. Unknown usernames and wrong passwords are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if ok := s.allowAttempt(ctx, username); !ok {
		return "", nil, domain.ErrTooManyAttempts
	}

	user, err := s.authenticate(ctx, username, password)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(user.Username, []string{user.Role}, time.Now().UTC())
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// authenticate resolves the account and runs the constant-time hash compare.
func (s *AuthService) authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, username)
			return nil, domain.ErrBadCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, username)
		return nil, domain.ErrBadCredentials
	}

	s.resetFailures(ctx, username)
	return user, nil
}

// Edit updates an existing account. An empty password means "keep the current
// hash"; email and role are overwritten with whatever was supplied, zero
// values included.
func (s *AuthService) Edit(ctx context.Context, input ports.EditUserInput) (*domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}

	if input.Password != "" {
		hash, err := s.hash([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.Email = input.Email
	user.Role = input.Role
	user.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, user)
}

// Delete removes the account selected by input. The ID selector wins when
// both are given. An identity may never delete its own account through this
// path, whatever its role.
func (s *AuthService) Delete(ctx context.Context, identity domain.Identity, input ports.DeleteUserInput) error {
	var user *domain.User
	var err error
	switch {
	case input.ID != "":
		user, err = s.repo.FindByID(ctx, input.ID)
	case input.Username != "":
		user, err = s.repo.FindByUsername(ctx, input.Username)
	default:
		return domain.ErrInvalidArgument
	}
	if err != nil {
		return err
	}

	if user.Is(identity.Username) {
		return domain.ErrSelfDelete
	}

	return s.repo.Delete(ctx, user.Username)
}

// Seed creates a bootstrap account with the given role if the username is
// still free. Used at startup; a blank password skips seeding.
func (s *AuthService) Seed(ctx context.Context, username, password, email, role string) error {
	if password == "" {
		return nil
	}
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := s.hash([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = s.repo.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return err
	}
	s.logger.Info().Str("username", username).Str("role", role).Msg("seeded bootstrap account")
	return nil
}

// Throttle helpers are best-effort: a broken throttle backend must never lock
// every caller out, so failures log and fall open.

func (s *AuthService) allowAttempt(ctx context.Context, username string) bool {
	if s.throttle == nil {
		return true
	}
	ok, err := s.throttle.Allow(ctx, strings.ToLower(username))
	if err != nil {
		s.logger.Warn().Err(err).Msg("login throttle check failed")
		return true
	}
	return ok
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, strings.ToLower(username)); err != nil {
		s.logger.Warn().Err(err).Msg("login throttle record failed")
	}
}

func (s *AuthService) resetFailures(ctx context.Context, username string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.Reset(ctx, strings.ToLower(username)); err != nil {
		s.logger.Warn().Err(err).Msg("login throttle reset failed")
	}
}
