package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/campusdesk/internal/app/models"
	"github.com/yigit/campusdesk/internal/pkg/apperrors"
	"github.com/yigit/campusdesk/internal/pkg/dberrors"
)

// ProfileRepository handles profile persistence. The embedded table never
// reads or writes password hashes; credentials go through the dedicated methods.
type ProfileRepository struct {
	*Table[models.Profile, *models.Profile]
	credentials *Table[models.Profile, *models.Profile]
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db DBTX) *ProfileRepository {
	return &ProfileRepository{
		Table:       NewTable[models.Profile](db, profileSpec()),
		credentials: NewTable[models.Profile](db, profileCredentialSpec()),
	}
}

// GetByEmail loads a profile with its password hash.
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return r.credentials.FindOne(ctx, squirrel.Eq{"email": strings.ToLower(strings.TrimSpace(email))})
}

// GetWithCredentials loads a profile by id with its password hash.
func (r *ProfileRepository) GetWithCredentials(ctx context.Context, id int64) (*models.Profile, error) {
	return r.credentials.GetByID(ctx, id)
}

// CreateWithPassword inserts a profile including its password hash.
func (r *ProfileRepository) CreateWithPassword(ctx context.Context, profile *models.Profile) error {
	profile.Email = strings.ToLower(strings.TrimSpace(profile.Email))
	err := r.credentials.Create(ctx, profile)
	if err != nil && apperrors.Is(err, apperrors.ErrResourceAlreadyExists) {
		return apperrors.ErrEmailAlreadyExists
	}
	return err
}

// Update writes the editable profile columns. Credentials and login
// timestamps are left untouched.
func (r *ProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	sql, args, err := r.sb.Update("profiles").
		SetMap(map[string]any{
			"email":      strings.ToLower(strings.TrimSpace(profile.Email)),
			"full_name":  profile.FullName,
			"role":       profile.Role,
			"phone":      profile.Phone,
			"avatar_url": profile.AvatarURL,
			"is_active":  profile.IsActive,
			"updated_at": squirrel.Expr("now()"),
		}).
		Where(squirrel.Eq{"id": profile.ID}).
		Suffix("RETURNING email, created_at, updated_at, last_login_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update profile query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&profile.Email, &profile.CreatedAt, &profile.UpdatedAt, &profile.LastLoginAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return r.mapError(ctx, "update", err)
	}
	return nil
}

// UpdatePassword replaces the stored hash.
func (r *ProfileRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return r.exec(ctx, "update password", r.sb.Update("profiles").
		Set("password_hash", hash).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}))
}

// TouchLastLogin records a successful sign-in.
func (r *ProfileRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	return r.exec(ctx, "touch last login", r.sb.Update("profiles").
		Set("last_login_at", at).
		Where(squirrel.Eq{"id": id}))
}

func (r *ProfileRepository) exec(ctx context.Context, op string, q squirrel.UpdateBuilder) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build %s query: %w", op, err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return r.mapError(ctx, op, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("profile not found")
	}
	return nil
}
