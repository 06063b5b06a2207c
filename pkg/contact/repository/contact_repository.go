package repository

import (
	"context"

	"agrismart/entities"
)

type ContactRepository interface {
	Create(ctx context.Context, m *entities.ContactMessage) error
	Recent(ctx context.Context, limit int) ([]entities.ContactMessage, error)
}
