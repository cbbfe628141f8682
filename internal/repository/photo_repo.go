package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/despachos/equipcheck/internal/models"
)

type PhotoRepo struct {
	db *gorm.DB
}

func NewPhotoRepo(db *gorm.DB) *PhotoRepo {
	return &PhotoRepo{db: db}
}

// ReplaceForSubmission swaps the photo set of a submission in one
// transaction, mirroring the replace-by-submission semantics of items.
func (r *PhotoRepo) ReplaceForSubmission(ctx context.Context, submissionID string, photos []models.Photo) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("submission_id = ?", submissionID).Delete(&models.Photo{}).Error; err != nil {
			return err
		}
		if len(photos) > 0 {
			if err := tx.Create(&photos).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PhotoRepo) FindByID(ctx context.Context, id string) (*models.Photo, error) {
	var p models.Photo
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindBySubmission returns photo metadata without blob contents; the
// download endpoint fetches the full row by id.
func (r *PhotoRepo) FindBySubmission(ctx context.Context, submissionID string) ([]models.Photo, error) {
	var photos []models.Photo
	err := r.db.WithContext(ctx).
		Select("id", "submission_id", "item_index", "filename", "content_type", "created_at").
		Where("submission_id = ?", submissionID).
		Order("item_index").
		Find(&photos).Error
	return photos, err
}
