package repositoryImp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"agrismart/entities"
	"agrismart/pkg/contact/repository"
)

type contactRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ContactRepository { return &contactRepo{db: db} }

func (r *contactRepo) Create(ctx context.Context, m *entities.ContactMessage) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *contactRepo) Recent(ctx context.Context, limit int) ([]entities.ContactMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []entities.ContactMessage
	err := r.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&out).Error
	return out, err
}
