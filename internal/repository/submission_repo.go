package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/despachos/equipcheck/internal/models"
)

type SubmissionRepo struct {
	db *gorm.DB
}

func NewSubmissionRepo(db *gorm.DB) *SubmissionRepo {
	return &SubmissionRepo{db: db}
}

// CreateWithItems inserts the submission and its item rows atomically.
// Any prior item rows for the same submission id are replaced.
func (r *SubmissionRepo) CreateWithItems(ctx context.Context, sub *models.Submission, items []models.SubmissionItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sub).Error; err != nil {
			return err
		}
		if err := tx.Where("submission_id = ?", sub.ID).Delete(&models.SubmissionItem{}).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SubmissionRepo) FindByID(ctx context.Context, id string) (*models.Submission, error) {
	var sub models.Submission
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

type SubmissionFilter struct {
	Status    string
	Equipment string
	Operator  string
}

func (r *SubmissionRepo) Find(ctx context.Context, filter SubmissionFilter) ([]models.Submission, error) {
	q := r.db.WithContext(ctx).Model(&models.Submission{}).Order("created_at DESC")
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Equipment != "" {
		q = q.Where("equipment = ?", filter.Equipment)
	}
	if filter.Operator != "" {
		q = q.Where("operator_username = ?", filter.Operator)
	}
	var subs []models.Submission
	err := q.Find(&subs).Error
	return subs, err
}

// FindByDateRange returns submissions whose shift date is within
// [start, end], both inclusive.
func (r *SubmissionRepo) FindByDateRange(ctx context.Context, start, end time.Time) ([]models.Submission, error) {
	var subs []models.Submission
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("created_at DESC").
		Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepo) ItemsFor(ctx context.Context, submissionID string) ([]models.SubmissionItem, error) {
	var items []models.SubmissionItem
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("item_index").
		Find(&items).Error
	return items, err
}

// ItemsForAll loads the items of several submissions in one query.
func (r *SubmissionRepo) ItemsForAll(ctx context.Context, submissionIDs []string) ([]models.SubmissionItem, error) {
	if len(submissionIDs) == 0 {
		return nil, nil
	}
	var items []models.SubmissionItem
	err := r.db.WithContext(ctx).
		Where("submission_id IN ?", submissionIDs).
		Order("submission_id, item_index").
		Find(&items).Error
	return items, err
}

// SetStatus flips the workflow status and reports whether a row matched
// the expected previous status.
func (r *SubmissionRepo) SetStatus(ctx context.Context, id, from, to string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Submission{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{"status": to, "updated_at": time.Now()})
	return res.RowsAffected > 0, res.Error
}

type StatusCounts struct {
	Total    int64
	Approved int64
	Pending  int64
	Faulty   int64
}

// CountByStatus aggregates the dashboard KPIs.
func (r *SubmissionRepo) CountByStatus(ctx context.Context) (StatusCounts, error) {
	var c StatusCounts
	model := func() *gorm.DB { return r.db.WithContext(ctx).Model(&models.Submission{}) }
	if err := model().Count(&c.Total).Error; err != nil {
		return c, err
	}
	if err := model().Where("status = ?", models.StatusApproved).Count(&c.Approved).Error; err != nil {
		return c, err
	}
	if err := model().Where("status = ?", models.StatusPending).Count(&c.Pending).Error; err != nil {
		return c, err
	}
	err := model().Where("global_status = ?", models.ConditionFault).Count(&c.Faulty).Error
	return c, err
}
