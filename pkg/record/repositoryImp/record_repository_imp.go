package repositoryImp

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"agrismart/entities"
	"agrismart/pkg/record/repository"
)

const maxListLimit = 500

type recordRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.RecordStore { return &recordRepo{db: db} }

func (r *recordRepo) Save(ctx context.Context, rec *entities.SavedRecommendation) (string, error) {
	if rec.Kind == "" {
		return "", errors.New("record kind is required")
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return "", fmt.Errorf("save %s record: %w", rec.Kind, err)
	}
	return rec.ID, nil
}

func (r *recordRepo) Get(ctx context.Context, id string) (*entities.SavedRecommendation, error) {
	var out entities.SavedRecommendation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns the newest records first; kind "" means every kind.
func (r *recordRepo) List(ctx context.Context, kind string, limit int) ([]entities.SavedRecommendation, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	q := r.db.WithContext(ctx).Model(&entities.SavedRecommendation{})
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	var list []entities.SavedRecommendation
	return list, q.Order("created_at desc, id asc").Limit(limit).Find(&list).Error
}
