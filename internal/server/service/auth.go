package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/promptpal/internal/crypto"
	"github.com/iudanet/promptpal/internal/models"
	"github.com/iudanet/promptpal/internal/server/jwt"
	"github.com/iudanet/promptpal/internal/server/storage"
	"github.com/iudanet/promptpal/internal/validation"
)

// TokenService выпускает и проверяет токены сессии
type TokenService interface {
	GenerateToken(userID, username string) (string, time.Time, error)
	ValidateToken(token string) (*jwt.Claims, error)
}

// AuthResult результат успешной регистрации или входа
type AuthResult struct {
	ExpiresAt time.Time
	User      *models.User
	Token     string
}

// AuthService реализует регистрацию, вход и проверку сессии
type AuthService struct {
	logger *slog.Logger
	users  storage.UserStorage
	tokens TokenService
	now    func() time.Time
	// verifyMissing выравнивает время ответа для неизвестного email
	verifyMissing func(password string) error
}

// NewAuthService создает новый AuthService
func NewAuthService(logger *slog.Logger, users storage.UserStorage, tokens TokenService) *AuthService {
	return &AuthService{
		logger: logger,
		users:  users,
		tokens: tokens,
		now:    time.Now,

		verifyMissing: crypto.VerifyDummy,
	}
}

// Register создает пользователя и сразу выдает ему токен.
// Email приводится к нижнему регистру перед сохранением.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = validation.NormalizeEmail(email)

	if err := validation.ValidateUsername(username); err != nil {
		return nil, validationError(err)
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, validationError(err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, validationError(err)
	}

	// Предварительные проверки дают понятное сообщение; гонку закрывает UNIQUE в БД
	if _, err := s.users.GetUserByUsername(ctx, username); err == nil {
		return nil, conflict("username already taken", nil)
	} else if !errors.Is(err, storage.ErrUserNotFound) {
		return nil, s.internal(ctx, "failed to check username", err)
	}
	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, conflict("email already registered", nil)
	} else if !errors.Is(err, storage.ErrUserNotFound) {
		return nil, s.internal(ctx, "failed to check email", err)
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, s.internal(ctx, "failed to hash password", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			return nil, conflict("username or email already exists", err)
		}
		return nil, s.internal(ctx, "failed to create user", err)
	}

	s.logger.InfoContext(ctx, "User registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username))

	return s.issue(ctx, user)
}

// Login проверяет email и пароль и выдает новый токен.
// Неизвестный email и неверный пароль неразличимы для клиента.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = validation.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, validationError(fmt.Errorf("email and password are required"))
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			_ = s.verifyMissing(password)
			s.logger.WarnContext(ctx, "Login attempt for unknown email")
			return nil, unauthorized(msgInvalidCredentials, err)
		}
		return nil, s.internal(ctx, "failed to get user", err)
	}

	if err := crypto.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, crypto.ErrPasswordMismatch) {
			s.logger.WarnContext(ctx, "Invalid password",
				slog.String("user_id", user.ID))
			return nil, unauthorized(msgInvalidCredentials, err)
		}
		return nil, s.internal(ctx, "failed to verify password", err)
	}

	s.logger.InfoContext(ctx, "User logged in",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username))

	return s.issue(ctx, user)
}

// Authenticate проверяет токен и возвращает его claims без обращения к хранилищу
func (s *AuthService) Authenticate(token string) (*jwt.Claims, error) {
	if token == "" {
		return nil, unauthorized("missing token", nil)
	}
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, unauthorized("invalid or expired token", err)
	}
	return claims, nil
}

// CurrentUser возвращает пользователя, которому принадлежит токен.
// Токен удаленного пользователя считается невалидным.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.Authenticate(token)
	if err != nil {
		return nil, err
	}
	return s.UserByID(ctx, claims.UserID())
}

// UserByID возвращает пользователя уже аутентифицированного запроса
func (s *AuthService) UserByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, unauthorized(msgUnauthorized, err)
		}
		return nil, s.internal(ctx, "failed to get user", err)
	}
	return user, nil
}

func (s *AuthService) issue(ctx context.Context, user *models.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, s.internal(ctx, "failed to generate token", err)
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *AuthService) internal(ctx context.Context, msg string, err error) *Error {
	s.logger.ErrorContext(ctx, msg, slog.Any("error", err))
	return internal(fmt.Errorf("%s: %w", msg, err))
}
