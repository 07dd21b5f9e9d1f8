package service

import (
	"context"
	"errors"

	"github.com/postboard-app/postboard/backend/internal/common/clock"
	commoncrypto "github.com/postboard-app/postboard/backend/internal/common/crypto"
	commonerrors "github.com/postboard-app/postboard/backend/internal/common/errors"
	"github.com/postboard-app/postboard/backend/internal/common/logger"
	userdomain "github.com/postboard-app/postboard/backend/internal/user/domain"
	userrepo "github.com/postboard-app/postboard/backend/internal/user/repository"
)

type AuthService struct {
	repo   userrepo.Repository
	tokens *TokenService
	hasher commoncrypto.PasswordHasher
	idGen  commoncrypto.IDGenerator
	clock  clock.Clock
	log    *logger.Logger
}

func NewAuthService(
	repo userrepo.Repository,
	tokens *TokenService,
	hasher commoncrypto.PasswordHasher,
	idGen commoncrypto.IDGenerator,
	clock clock.Clock,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		repo:   repo,
		tokens: tokens,
		hasher: hasher,
		idGen:  idGen,
		clock:  clock,
		log:    log,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token string
	User  userdomain.User
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "register_attempt",
	}).Info("register attempt")

	// Uniqueness is checked email first, then username; the first
	// violation wins. The unique constraints are the backstop against
	// concurrent registrations.
	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_email_exists",
		}).Warn("register failed: email already registered")
		return AuthResult{}, ErrEmailTaken
	} else if !errors.Is(err, userrepo.ErrUserNotFound) {
		return AuthResult{}, s.dbError(ctx, "register_email_lookup_failed", "failed to check email", err)
	}

	if _, err := s.repo.FindByUsername(ctx, input.Username); err == nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_username_exists",
		}).Warn("register failed: username already taken")
		return AuthResult{}, ErrUsernameTaken
	} else if !errors.Is(err, userrepo.ErrUserNotFound) {
		return AuthResult{}, s.dbError(ctx, "register_username_lookup_failed", "failed to check username", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return AuthResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_id_generation_failed",
		}).Errorf("register failed: id generation error: %v", err)
		return AuthResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	user := userdomain.User{
		ID:           userdomain.ID(id),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, userrepo.ErrEmailAlreadyExists):
			return AuthResult{}, ErrEmailTaken
		case errors.Is(err, userrepo.ErrUsernameAlreadyExists):
			return AuthResult{}, ErrUsernameTaken
		}
		return AuthResult{}, s.dbError(ctx, "register_create_failed", "failed to create user", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"user_id":  string(user.ID),
			"action":   "register_token_issue_failed",
		}).Errorf("register failed: token issue error: %v", err)
		return AuthResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	incrementUsersRegistered()
	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  string(user.ID),
		"action":   "register_success",
	}).Info("register success")

	return AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"action": "login_attempt",
	}).Info("login attempt")

	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"action": "login_user_not_found",
			}).Warn("login failed: not found")
			incrementLoginsFailed()
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, s.dbError(ctx, "login_fetch_failed", "failed to fetch user", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "login_invalid_password",
		}).Warn("login failed: invalid password")
		incrementLoginsFailed()
		return AuthResult{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		return AuthResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	incrementLoginsSucceeded()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(user.ID),
		"action":  "login_success",
	}).Info("login success")

	return AuthResult{Token: token, User: user}, nil
}

// Reissue mints a fresh token for an already-authenticated user. The
// previous token stays valid until its own expiry.
func (s *AuthService) Reissue(ctx context.Context, user userdomain.User) (string, error) {
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "reissue_token_failed",
		}).Errorf("token reissue failed: %v", err)
		return "", commonerrors.ErrInternalError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(user.ID),
		"action":  "token_reissued",
	}).Info("token reissued")

	return token, nil
}

func (s *AuthService) dbError(ctx context.Context, action, message string, err error) error {
	s.log.WithFields(ctx, logger.Fields{
		"action": action,
	}).Errorf("%s: %v", message, err)
	return commonerrors.ErrDatabaseError.WithCause(err)
}
