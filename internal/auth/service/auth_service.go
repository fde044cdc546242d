package service

import (
	"context"
	"errors"

	"github.com/AlibekovAA/seraas-authentication/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/seraas-authentication/internal/common/crypto"
	"github.com/AlibekovAA/seraas-authentication/internal/common/logger"
	"github.com/AlibekovAA/seraas-authentication/internal/common/validation"
	"github.com/AlibekovAA/seraas-authentication/internal/observability/metrics"
	userdomain "github.com/AlibekovAA/seraas-authentication/internal/user/domain"
	userrepo "github.com/AlibekovAA/seraas-authentication/internal/user/repository"
)

type AuthServiceDeps struct {
	Repo   userrepo.Repository
	Hasher commoncrypto.PasswordHasher
	Clock  clock.Clock
	Log    *logger.Logger
}

type AuthService struct {
	repo   userrepo.Repository
	hasher commoncrypto.PasswordHasher
	clock  clock.Clock
	log    *logger.Logger
}

func NewAuthService(deps AuthServiceDeps) *AuthService {
	c := deps.Clock
	if c == nil {
		c = clock.NewRealClock()
	}
	return &AuthService{
		repo:   deps.Repo,
		hasher: deps.Hasher,
		clock:  c,
		log:    deps.Log,
	}
}

type RegisterInput struct {
	Username string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (userdomain.Summary, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "register_attempt",
	}).Info("register attempt")

	if err := validateCredentials(input.Username, input.Password); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_validation_failed",
		}).Warnf("register validation failed: %v", err)
		return userdomain.Summary{}, err
	}

	_, err := s.repo.FindByName(ctx, input.Username)
	switch {
	case err == nil:
		metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_username_exists",
		}).Warn("register failed: already exists")
		return userdomain.Summary{}, ErrUsernameTaken
	case !errors.Is(err, userrepo.ErrUserNotFound):
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_lookup_failed",
		}).Errorf("register failed: %v", err)
		return userdomain.Summary{}, newInternalError("DB_ERROR", "failed to look up user", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return userdomain.Summary{}, newInternalError("HASH_ERROR", "failed to hash password", err)
	}

	now := s.clock.Now()
	created, err := s.repo.Create(ctx, userdomain.User{
		Name:         input.Username,
		PasswordHash: hash,
		DateCreated:  now,
		LastUsed:     now,
	})
	if err != nil {
		if errors.Is(err, userrepo.ErrUsernameAlreadyExists) {
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "register_username_race_lost",
			}).Warn("register failed: name taken concurrently")
			return userdomain.Summary{}, ErrUsernameTaken
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_create_failed",
		}).Errorf("register failed: %v", err)
		return userdomain.Summary{}, newInternalError("DB_ERROR", "failed to create user", err)
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	s.log.WithFields(ctx, logger.Fields{
		"username": created.Name,
		"user_id":  string(created.ID),
		"action":   "register_success",
	}).Info("register success")

	return created.Summary(), nil
}

// Login checks the credentials and refreshes lastUsed only when they match.
// Every rejection, malformed input included, is ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (userdomain.Summary, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "login_attempt",
	}).Info("login attempt")

	if err := validateCredentials(input.Username, input.Password); err != nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_validation_failed",
		}).Warnf("login validation failed: %v", err)
		return userdomain.Summary{}, ErrInvalidCredentials
	}

	user, err := s.repo.FindByName(ctx, input.Username)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "login_user_not_found",
			}).Warn("login failed: not found")
			return userdomain.Summary{}, ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return userdomain.Summary{}, newInternalError("DB_ERROR", "failed to fetch user", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_invalid_password",
		}).Warn("login failed: invalid password")
		return userdomain.Summary{}, ErrInvalidCredentials
	}

	touched, err := s.repo.Touch(ctx, user.ID, s.clock.Now())
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"user_id":  string(user.ID),
				"action":   "login_user_vanished",
			}).Warn("login failed: user removed during login")
			return userdomain.Summary{}, ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"user_id":  string(user.ID),
			"action":   "login_touch_failed",
		}).Errorf("login failed: %v", err)
		return userdomain.Summary{}, newInternalError("DB_ERROR", "failed to update user", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.WithFields(ctx, logger.Fields{
		"username": touched.Name,
		"user_id":  string(touched.ID),
		"action":   "login_success",
	}).Info("login success")

	return touched.Summary(), nil
}

// ValidateUserID reports whether a user with the given id exists. It has no
// side effects on the user.
func (s *AuthService) ValidateUserID(ctx context.Context, rawID string) (bool, error) {
	id, err := validation.ParseUUID(rawID)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": rawID,
			"action":  "validate_user_invalid_id",
		}).Warnf("validate user failed: %v", err)
		return false, ErrInvalidUserID.WithCause(err)
	}

	exists, err := s.repo.Exists(ctx, userdomain.ID(id))
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": id,
			"action":  "validate_user_failed",
		}).Errorf("validate user failed: %v", err)
		return false, newInternalError("DB_ERROR", "failed to check user", err)
	}

	metrics.UserValidationsTotal.WithLabelValues(boolLabel(exists)).Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": id,
		"exists":  exists,
		"action":  "validate_user",
	}).Debug("validate user")

	return exists, nil
}

func boolLabel(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
