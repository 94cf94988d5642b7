package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/RajatSinghRajawat/maanvibackend/internal/models"
	"github.com/google/uuid"
)

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAdmin(row rowScanner) (models.Admin, error) {
	var admin models.Admin
	err := row.Scan(
		&admin.ID, &admin.Name, &admin.Email, &admin.PasswordHash, &admin.Role,
		&admin.IsActive, &admin.LastLogin, &admin.CreatedAt, &admin.UpdatedAt,
	)
	return admin, err
}

// CreateAdmin inserts the admin and fills in the generated id, active flag and timestamps.
// A taken email is reported as ErrDuplicate.
func (r *Repository) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	err := r.db.QueryRow(ctx, InsertAdminSQL, admin.Name, admin.Email, admin.PasswordHash, admin.Role).
		Scan(&admin.ID, &admin.IsActive, &admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert admin: %w", classify(err))
	}

	return nil
}

// GetAdminByEmail returns the admin registered with email, including the password hash.
func (r *Repository) GetAdminByEmail(ctx context.Context, email string) (models.Admin, error) {
	admin, err := scanAdmin(r.db.QueryRow(ctx, SelectAdminByEmailSQL, email))
	if err != nil {
		return models.Admin{}, fmt.Errorf("failed to get admin by email: %w", classify(err))
	}

	return admin, nil
}

// GetAdminByID returns the admin with the given id.
func (r *Repository) GetAdminByID(ctx context.Context, id uuid.UUID) (models.Admin, error) {
	admin, err := scanAdmin(r.db.QueryRow(ctx, SelectAdminByIDSQL, id))
	if err != nil {
		return models.Admin{}, fmt.Errorf("failed to get admin %s: %w", id, classify(err))
	}

	return admin, nil
}

// UpdateLastLogin records a successful login. Only the last_login column is written.
func (r *Repository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	cmdTag, err := r.db.Exec(ctx, UpdateAdminLoginSQL, id, at)
	if err != nil {
		return fmt.Errorf("failed to update last login of admin %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update last login of admin %s: %w", id, ErrNotFound)
	}

	return nil
}

// UpdatePasswordHash replaces the stored password hash of the admin.
func (r *Repository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	cmdTag, err := r.db.Exec(ctx, UpdateAdminPassSQL, id, hash)
	if err != nil {
		return fmt.Errorf("failed to update password of admin %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update password of admin %s: %w", id, ErrNotFound)
	}

	return nil
}
