package serviceImp

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"agrismart/entities"
	"agrismart/pkg/analytics"
	"agrismart/pkg/contact"
	"agrismart/pkg/contact/repository"
	"agrismart/pkg/contact/service"
	"agrismart/pkg/session"
)

type ContactSvc struct {
	repo repository.ContactRepository
	sink analytics.EventSink
	log  *zap.Logger
}

func New(repo repository.ContactRepository, sink analytics.EventSink, log *zap.Logger) *ContactSvc {
	return &ContactSvc{repo: repo, sink: sink, log: log}
}

var _ service.ContactService = (*ContactSvc)(nil)

func (s *ContactSvc) Submit(ctx context.Context, in contact.Form) (string, error) {
	f, err := in.Validate()
	if err != nil {
		return "", err
	}
	m := &entities.ContactMessage{
		Name:      f.Name,
		Email:     f.Email,
		Subject:   f.Subject,
		Message:   f.Message,
		SessionID: session.From(ctx),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return "", fmt.Errorf("store contact message: %w", err)
	}
	if err := s.sink.Track(ctx, analytics.EventContactSubmitted, map[string]any{"subject": f.Subject}); err != nil {
		s.log.Warn("track contact", zap.Error(err))
	}
	return m.ID, nil
}
