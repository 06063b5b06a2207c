package repository

import (
	"context"
	"errors"

	"agrismart/entities"
)

var ErrNotFound = errors.New("recommendation not found")

// RecordStore keeps computed recommendations so they can be listed and exported.
type RecordStore interface {
	Save(ctx context.Context, r *entities.SavedRecommendation) (string, error)
	Get(ctx context.Context, id string) (*entities.SavedRecommendation, error)
	List(ctx context.Context, kind string, limit int) ([]entities.SavedRecommendation, error)
}
