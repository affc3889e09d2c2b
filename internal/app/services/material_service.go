package services

import (
	"context"
	"mime/multipart"

	"github.com/yigit/campusdesk/internal/app/models"
	"github.com/yigit/campusdesk/internal/pkg/filestorage"
	"github.com/yigit/campusdesk/internal/pkg/logger"
)

const materialsDir = "materials"

// MaterialStore reads and writes materials.
type MaterialStore interface {
	GetByID(ctx context.Context, id int64) (*models.Material, error)
	Update(ctx context.Context, item *models.Material) error
}

// MaterialService attaches uploaded files to course materials.
type MaterialService struct {
	materials MaterialStore
	storage   filestorage.FileStorage
}

// NewMaterialService creates a new MaterialService
func NewMaterialService(materials MaterialStore, storage filestorage.FileStorage) *MaterialService {
	return &MaterialService{materials: materials, storage: storage}
}

// AttachFile stores file and points the material at it. A previously
// attached file is removed once the new one is saved.
func (s *MaterialService) AttachFile(ctx context.Context, id int64, file *multipart.FileHeader) (*models.Material, error) {
	material, err := s.materials.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.storage.SaveFileWithPath(file, materialsDir)
	if err != nil {
		return nil, err
	}

	previous := material.FileURL
	material.FileURL = &url
	if err := s.materials.Update(ctx, material); err != nil {
		if delErr := s.storage.DeleteFile(url); delErr != nil {
			logger.FromContext(ctx).Warn().Err(delErr).Str("url", url).Msg("Failed to remove orphaned upload")
		}
		return nil, err
	}

	if previous != nil && *previous != "" && *previous != url {
		if err := s.storage.DeleteFile(*previous); err != nil {
			logger.FromContext(ctx).Warn().Err(err).Str("url", *previous).Msg("Failed to remove replaced upload")
		}
	}
	return material, nil
}
