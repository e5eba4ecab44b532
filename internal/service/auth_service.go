package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/shiftmatch/jobmatch-service/internal/auth"
	"github.com/shiftmatch/jobmatch-service/internal/domain"
	"github.com/shiftmatch/jobmatch-service/internal/events"
	"github.com/shiftmatch/jobmatch-service/internal/repository"
	apperrors "github.com/shiftmatch/jobmatch-service/pkg/util"
	"github.com/shiftmatch/jobmatch-service/pkg/validation"
)

// AuthService coordinates registration, login and password recovery.
type AuthService struct {
	store  repository.Store
	tokens *auth.TokenManager
	hasher *auth.PasswordHasher
	otp    *auth.OTPGenerator
	logger *zap.Logger
	now    func() time.Time
	events publisher
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	Store      repository.Store
	Tokens     *auth.TokenManager
	Hasher     *auth.PasswordHasher
	OTP        *auth.OTPGenerator
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Clock      func() time.Time
}

// RegisterInput describes a new account.
type RegisterInput struct {
	Email    string
	Password string
	Role     domain.Role
}

// Session is returned by registration and login.
type Session struct {
	User  *domain.User
	Token *domain.Token
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := deps.Clock
	if now == nil {
		now = time.Now
	}
	otp := deps.OTP
	if otp == nil {
		otp = auth.NewOTPGenerator(auth.DefaultOTPWindow)
	}
	return &AuthService{
		store:  deps.Store,
		tokens: deps.Tokens,
		hasher: deps.Hasher,
		otp:    otp,
		logger: logger,
		now:    now,
		events: newPublisher(deps.Dispatcher, logger, now),
	}
}

// Register creates an account and signs the caller in.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	if !input.Role.Valid() {
		return nil, validation.Field("unknown role", "role", "oneof")
	}

	hash, err := s.hashPassword("password", input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        normalizeEmail(input.Email),
		PasswordHash: hash,
		Role:         input.Role,
		Active:       true,
	}
	if err := s.store.Repositories().Users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewEmailTaken()
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
	return s.issueSession(user)
}

// Login verifies credentials. Unknown email and wrong password are reported identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.store.Repositories().Users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewInvalidCredentials()
		}
		return nil, apperrors.NewInternalError(err)
	}

	if err := s.checkPassword(user, password); err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, apperrors.NewAccountInactive()
	}
	return s.issueSession(user)
}

// Logout revokes the presented token when a denylist is configured.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if err := s.tokens.Revoke(ctx, claims); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// ChangePassword replaces the caller's password after re-checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	users := s.store.Repositories().Users
	user, err := users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewUnauthenticated("account no longer exists")
		}
		return apperrors.NewInternalError(err)
	}
	if err := s.checkPassword(user, current); err != nil {
		return err
	}

	hash, err := s.hashPassword("new_password", next)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := users.Update(ctx, user); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// Deactivate disables the caller's account and revokes the presented token.
func (s *AuthService) Deactivate(ctx context.Context, claims *auth.Claims) error {
	users := s.store.Repositories().Users
	user, err := users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewUnauthenticated("account no longer exists")
		}
		return apperrors.NewInternalError(err)
	}

	user.Active = false
	if err := users.Update(ctx, user); err != nil {
		return apperrors.NewInternalError(err)
	}
	s.logger.Info("user deactivated", zap.Int64("user_id", user.ID))
	return s.Logout(ctx, claims)
}

// RequestPasswordReset issues a recovery code. Unknown emails succeed silently.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	repos := s.store.Repositories()
	user, err := repos.Users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Debug("password reset requested for unknown email")
			return nil
		}
		return apperrors.NewInternalError(err)
	}

	code, err := s.otp.Generate()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	reset := &domain.PasswordReset{
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: s.otp.ExpiryFrom(s.now()),
	}
	if err := repos.PasswordResets.Create(ctx, reset); err != nil {
		return apperrors.NewInternalError(err)
	}

	s.events.publish(ctx, events.EventPasswordResetRequested,
		domain.Identity{UserID: user.ID, Email: user.Email, Role: user.Role},
		events.PasswordResetRequestedPayload{Email: user.Email, Code: code, ExpiresAt: reset.ExpiresAt})
	return nil
}

// ResetPassword consumes a recovery code and sets a new password. Marking the
// code used and writing the password happen in one transaction.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	hash, err := s.hashPassword("new_password", newPassword)
	if err != nil {
		return err
	}
	now := s.now()

	err = s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		user, err := repos.Users.GetByEmail(ctx, normalizeEmail(email))
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.NewInvalidOrExpiredOTP()
			}
			return err
		}

		reset, err := repos.PasswordResets.FindActive(ctx, user.ID, code, now)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.NewInvalidOrExpiredOTP()
			}
			return err
		}
		if err := repos.PasswordResets.MarkUsed(ctx, reset.ID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.NewInvalidOrExpiredOTP()
			}
			return err
		}

		user.PasswordHash = hash
		return repos.Users.Update(ctx, user)
	})
	if err != nil {
		return internalUnlessDomain(err)
	}
	s.logger.Info("password reset completed")
	return nil
}

// hashPassword reports an over-long plaintext against field.
func (s *AuthService) hashPassword(field, plain string) (string, error) {
	hash, err := s.hasher.Hash(plain)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return "", validation.Field("password too long", field, "bcryptlen")
	}
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return hash, nil
}

func (s *AuthService) checkPassword(user *domain.User, password string) error {
	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.logger.Error("stored password digest unreadable", zap.Int64("user_id", user.ID), zap.Error(err))
		return apperrors.NewCorruptDigest(err)
	}
	if !ok {
		return apperrors.NewInvalidCredentials()
	}
	return nil
}

func (s *AuthService) issueSession(user *domain.User) (*Session, error) {
	token, err := s.tokens.Issue(domain.Identity{UserID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &Session{User: user, Token: token}, nil
}
