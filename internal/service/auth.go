package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/RajatSinghRajawat/maanvibackend/internal/apperr"
	"github.com/RajatSinghRajawat/maanvibackend/internal/auth"
	"github.com/RajatSinghRajawat/maanvibackend/internal/metrics"
	"github.com/RajatSinghRajawat/maanvibackend/internal/models"
	"github.com/RajatSinghRajawat/maanvibackend/internal/repository"
	"github.com/RajatSinghRajawat/maanvibackend/internal/validation"
	"github.com/google/uuid"
)

// SeedAdminRole is the role of the admin created from configuration at startup.
const SeedAdminRole = "Super Admin"

const (
	msgMissingCredentials = "Please provide email and password"
	msgInvalidCredentials = "Invalid credentials"
	msgLoginDeactivated   = "Account is deactivated. Please contact administrator"
	msgNotAuthorized      = "Not authorized to access this route"
	msgAdminNotFound      = "Admin not found"
	msgAdminDeactivated   = "Account is deactivated"
	msgAdminExists        = "Admin with this email already exists"
	msgWrongPassword      = "Current password is incorrect"
)

// AuthService authenticates admins and manages their accounts.
type AuthService struct {
	log       *slog.Logger
	admins    repository.AdminManager
	tokens    *auth.Tokens
	passwords *auth.Passwords
	metrics   *metrics.Metrics
	settings
}

// NewAuthService creates an AuthService.
func NewAuthService(
	log *slog.Logger,
	admins repository.AdminManager,
	tokens *auth.Tokens,
	passwords *auth.Passwords,
	m *metrics.Metrics,
	opts ...Option,
) *AuthService {
	return &AuthService{
		log:       log,
		admins:    admins,
		tokens:    tokens,
		passwords: passwords,
		metrics:   m,
		settings:  newSettings(opts),
	}
}

// Login checks the credentials and returns a bearer token with the admin summary.
// The password is verified before the active flag, so a deactivated account is
// only revealed to someone who knows its password.
func (s *AuthService) Login(ctx context.Context, in models.LoginInput) (models.LoginResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return models.LoginResult{}, apperr.Validation(msgMissingCredentials)
	}

	admin, err := s.admins.GetAdminByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		s.metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		return models.LoginResult{}, apperr.Auth(msgInvalidCredentials)
	}
	if err != nil {
		return models.LoginResult{}, apperr.Internal(err)
	}

	ok, err := s.passwords.Matches(admin.PasswordHash, in.Password)
	if err != nil {
		return models.LoginResult{}, apperr.Internal(err)
	}
	if !ok {
		s.metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		return models.LoginResult{}, apperr.Auth(msgInvalidCredentials)
	}

	if !admin.IsActive {
		s.metrics.LoginAttempts.WithLabelValues("deactivated").Inc()
		return models.LoginResult{}, apperr.Auth(msgLoginDeactivated)
	}

	if err = s.admins.UpdateLastLogin(ctx, admin.ID, s.now()); err != nil {
		return models.LoginResult{}, apperr.Internal(err)
	}

	token, err := s.tokens.Issue(admin.ID)
	if err != nil {
		return models.LoginResult{}, apperr.Internal(err)
	}

	s.metrics.LoginAttempts.WithLabelValues("success").Inc()
	s.log.InfoContext(ctx, "Admin logged in", "admin_id", admin.ID)

	return models.LoginResult{Token: token, Admin: admin.Summary()}, nil
}

// Register creates a new admin account. The store's unique email constraint is
// authoritative, so concurrent registrations of one email yield a single account.
func (s *AuthService) Register(ctx context.Context, in models.RegisterInput) (models.AdminSummary, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Role = strings.TrimSpace(in.Role)
	if err := validation.Struct(in); err != nil {
		return models.AdminSummary{}, err
	}
	if in.Role == "" {
		in.Role = models.DefaultAdminRole
	}

	admin, err := s.createAdmin(ctx, in.Name, in.Email, in.Password, in.Role)
	if errors.Is(err, repository.ErrDuplicate) {
		return models.AdminSummary{}, apperr.Conflict(msgAdminExists)
	}
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return models.AdminSummary{}, passwordTooLong("password")
	}
	if err != nil {
		return models.AdminSummary{}, apperr.Internal(err)
	}

	s.log.InfoContext(ctx, "Admin registered", "admin_id", admin.ID, "role", admin.Role)

	return admin.Summary(), nil
}

func (s *AuthService) createAdmin(ctx context.Context, name, email, password, role string) (models.Admin, error) {
	hash, err := s.passwords.Hash(password)
	if err != nil {
		return models.Admin{}, err
	}

	admin := models.Admin{Name: name, Email: email, PasswordHash: hash, Role: role}
	if err = s.admins.CreateAdmin(ctx, &admin); err != nil {
		return models.Admin{}, err
	}
	return admin, nil
}

// Authenticate resolves a bearer token into the active admin it was issued for.
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.Admin, error) {
	if token == "" {
		return models.Admin{}, apperr.Auth(msgNotAuthorized)
	}

	adminID, err := s.tokens.Parse(token)
	if err != nil {
		s.log.DebugContext(ctx, "Rejected bearer token", "error", err)
		return models.Admin{}, apperr.Auth(msgNotAuthorized)
	}

	admin, err := s.admins.GetAdminByID(ctx, adminID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Admin{}, apperr.Auth(msgAdminNotFound)
	}
	if err != nil {
		return models.Admin{}, apperr.Internal(err)
	}

	if !admin.IsActive {
		return models.Admin{}, apperr.Auth(msgAdminDeactivated)
	}

	return admin, nil
}

// Me returns the full record of the admin.
func (s *AuthService) Me(ctx context.Context, id uuid.UUID) (models.Admin, error) {
	admin, err := s.admins.GetAdminByID(ctx, id)
	if err != nil {
		return models.Admin{}, storeError(err, msgAdminNotFound)
	}
	return admin, nil
}

// ChangePassword replaces the password of the admin after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, id uuid.UUID, in models.PasswordChangeInput) error {
	if err := validation.Struct(in); err != nil {
		return err
	}

	admin, err := s.admins.GetAdminByID(ctx, id)
	if err != nil {
		return storeError(err, msgAdminNotFound)
	}

	ok, err := s.passwords.Matches(admin.PasswordHash, in.CurrentPassword)
	if err != nil {
		return apperr.Internal(err)
	}
	if !ok {
		return apperr.Auth(msgWrongPassword)
	}

	hash, err := s.passwords.Hash(in.NewPassword)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return passwordTooLong("newPassword")
	}
	if err != nil {
		return apperr.Internal(err)
	}

	if err = s.admins.UpdatePasswordHash(ctx, id, hash); err != nil {
		return storeError(err, msgAdminNotFound)
	}

	s.log.InfoContext(ctx, "Admin changed password", "admin_id", id)

	return nil
}

// EnsureSeedAdmin creates the configured admin unless an account with its email
// already exists. It reports whether an account was created.
func (s *AuthService) EnsureSeedAdmin(ctx context.Context, seed models.RegisterInput) (bool, error) {
	email := normalizeEmail(seed.Email)
	if email == "" || seed.Password == "" {
		return false, nil
	}

	_, err := s.admins.GetAdminByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, fmt.Errorf("failed to look up seed admin: %w", err)
	}

	name := strings.TrimSpace(seed.Name)
	if name == "" {
		name = SeedAdminRole
	}

	admin, err := s.createAdmin(ctx, name, email, seed.Password, SeedAdminRole)
	if errors.Is(err, repository.ErrDuplicate) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to create seed admin: %w", err)
	}

	s.log.InfoContext(ctx, "Seed admin created", "admin_id", admin.ID, "email", admin.Email)

	return true, nil
}

// passwordTooLong covers multi-byte passwords within the character limit but over bcrypt's byte limit.
func passwordTooLong(field string) error {
	message := fmt.Sprintf("Password must be at most %d bytes", auth.MaxPasswordBytes)
	return apperr.Validation("Validation failed", apperr.FieldError{Field: field, Message: message})
}
