package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"reldesk/internal/domain/release"
	"reldesk/internal/infrastructure/persistence/mappers"
	"reldesk/internal/infrastructure/persistence/models"
	db "reldesk/internal/shared/db"
	apperrors "reldesk/internal/shared/errors"
)

// allowedReleaseOrderByFields defines the whitelist of allowed ORDER BY fields
// to prevent SQL injection attacks.
var allowedReleaseOrderByFields = map[string]bool{
	"id":         true,
	"version":    true,
	"status":     true,
	"service_id": true,
	"created_at": true,
	"updated_at": true,
}

type ReleaseRepository struct {
	db     *gorm.DB
	mapper mappers.ReleaseMapper
}

func NewReleaseRepository(db *gorm.DB) *ReleaseRepository {
	return &ReleaseRepository{
		db:     db,
		mapper: mappers.NewReleaseMapper(),
	}
}

func (r *ReleaseRepository) Create(ctx context.Context, rel *release.Release) error {
	model := r.mapper.ToModel(rel)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		// The unique index on version is the only real guard against two
		// concurrent creates passing the pre-check; the losing writer must
		// see a conflict, not a generic failure.
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("release version already exists", rel.Version())
		}
		return fmt.Errorf("failed to save release: %w", err)
	}

	if err := rel.SetID(model.ID); err != nil {
		return err
	}

	return nil
}

func (r *ReleaseRepository) Update(ctx context.Context, rel *release.Release) error {
	model := r.mapper.ToModel(rel)
	tx := db.GetTxFromContext(ctx, r.db)

	// Select("*") so cleared list columns and emptied strings are written too;
	// Updates with a bare struct would silently skip zero values.
	result := tx.
		Model(&models.ReleaseModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		// A rename can collide with a concurrent create on the target
		// version; the unique index reports it here.
		if apperrors.IsDuplicateError(result.Error) {
			return apperrors.NewConflictError("release version already exists", rel.Version())
		}
		return fmt.Errorf("failed to update release: %w", result.Error)
	}

	return nil
}

func (r *ReleaseRepository) Delete(ctx context.Context, version string) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Where("version = ?", version).Delete(&models.ReleaseModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete release: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("release not found", version)
	}
	return nil
}

func (r *ReleaseRepository) GetByVersion(ctx context.Context, version string) (*release.Release, error) {
	var model models.ReleaseModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("version = ?", version).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("release not found", version)
		}
		return nil, fmt.Errorf("failed to find release: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *ReleaseRepository) ExistsByVersion(ctx context.Context, version string) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Model(&models.ReleaseModel{}).
		Where("version = ?", version).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check release existence: %w", err)
	}

	return count > 0, nil
}

func (r *ReleaseRepository) List(
	ctx context.Context,
	filter release.ReleaseFilter,
) ([]*release.Release, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.ReleaseModel{})

	if filter.ServiceID != nil {
		query = query.Where("service_id = ?", *filter.ServiceID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count releases: %w", err)
	}

	// Apply sorting with whitelist validation to prevent SQL injection
	sortBy := strings.ToLower(filter.SortBy)
	if sortBy != "" && allowedReleaseOrderByFields[sortBy] {
		order := strings.ToUpper(filter.SortOrder)
		if order != "ASC" && order != "DESC" {
			order = "DESC"
		}
		query = query.Order(sortBy + " " + order)
	} else {
		query = query.Order("created_at DESC")
	}

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var releaseModels []models.ReleaseModel
	if err := query.Find(&releaseModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list releases: %w", err)
	}

	releases := make([]*release.Release, len(releaseModels))
	for i := range releaseModels {
		rel, err := r.mapper.ToDomain(&releaseModels[i])
		if err != nil {
			return nil, 0, err
		}
		releases[i] = rel
	}

	return releases, total, nil
}
