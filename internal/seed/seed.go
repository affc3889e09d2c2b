package seed

import (
	"context"
	"errors"
	"strings"

	"github.com/Masterminds/squirrel"
	appModels "github.com/yigit/campusdesk/internal/app/models"
	"github.com/yigit/campusdesk/internal/pkg/apperrors"
	"github.com/yigit/campusdesk/internal/pkg/auth"
	"github.com/yigit/campusdesk/internal/pkg/logger"
)

// DefaultFacultyCode identifies the faculty created on first start.
const DefaultFacultyCode = "GEN"

// FacultyStore is the faculty persistence seed needs.
type FacultyStore interface {
	FindOne(ctx context.Context, pred squirrel.Sqlizer) (*appModels.Faculty, error)
	Create(ctx context.Context, item *appModels.Faculty) error
}

// ProfileStore is the profile persistence seed needs.
type ProfileStore interface {
	GetByEmail(ctx context.Context, email string) (*appModels.Profile, error)
	CreateWithPassword(ctx context.Context, profile *appModels.Profile) error
}

// Options controls the admin account created on first start. An empty
// AdminPassword skips admin creation.
type Options struct {
	AdminEmail    string
	AdminPassword string
}

// CreateDefaultData creates the default faculty and admin profile when they
// don't exist yet. Failures are collected so one missing record doesn't stop
// the other.
func CreateDefaultData(ctx context.Context, faculties FacultyStore, profiles ProfileStore, opts Options) error {
	log := logger.FromContext(ctx)
	log.Info().Msg("Checking/Creating default data (faculty, admin)...")

	var finalErr error

	if err := ensureFaculty(ctx, faculties); err != nil {
		log.Error().Err(err).Msg("Error creating default faculty")
		finalErr = errors.Join(finalErr, err)
	}

	if err := ensureAdmin(ctx, profiles, opts); err != nil {
		log.Error().Err(err).Msg("Error creating admin profile")
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

func ensureFaculty(ctx context.Context, faculties FacultyStore) error {
	_, err := faculties.FindOne(ctx, squirrel.Eq{"code": DefaultFacultyCode})
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return err
	}

	description := "Default faculty for courses not yet assigned elsewhere"
	err = faculties.Create(ctx, &appModels.Faculty{
		Name:        "General Studies",
		Code:        DefaultFacultyCode,
		Description: &description,
	})
	if err != nil && !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		return err
	}
	logger.FromContext(ctx).Info().Str("code", DefaultFacultyCode).Msg("Default faculty created")
	return nil
}

func ensureAdmin(ctx context.Context, profiles ProfileStore, opts Options) error {
	email := strings.ToLower(strings.TrimSpace(opts.AdminEmail))
	if email == "" || opts.AdminPassword == "" {
		logger.FromContext(ctx).Warn().Msg("Seed admin credentials not configured, skipping admin creation")
		return nil
	}

	_, err := profiles.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return err
	}

	hash, err := auth.HashPassword(opts.AdminPassword)
	if err != nil {
		return err
	}

	err = profiles.CreateWithPassword(ctx, &appModels.Profile{
		Email:        email,
		PasswordHash: hash,
		FullName:     "System Administrator",
		Role:         appModels.RoleAdmin,
		IsActive:     true,
	})
	if err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		return err
	}
	logger.FromContext(ctx).Info().Str("email", email).Msg("Admin profile created")
	return nil
}
