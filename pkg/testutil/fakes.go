// Package testutil holds in-memory stand-ins for the storage and analytics
// capabilities, shared by service and controller tests.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"agrismart/entities"
	"agrismart/pkg/ai"
	"agrismart/pkg/record/repository"
)

// MemStore is an in-memory RecordStore. Set Err to make Save fail.
type MemStore struct {
	mu   sync.Mutex
	Recs []entities.SavedRecommendation
	Err  error
}

func (m *MemStore) Save(_ context.Context, r *entities.SavedRecommendation) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	if r.ID == "" {
		r.ID = fmt.Sprintf("rec-%d", len(m.Recs)+1)
	}
	m.Recs = append(m.Recs, *r)
	return r.ID, nil
}

func (m *MemStore) Get(_ context.Context, id string) (*entities.SavedRecommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Recs {
		if m.Recs[i].ID == id {
			r := m.Recs[i]
			return &r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MemStore) List(_ context.Context, kind string, limit int) ([]entities.SavedRecommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entities.SavedRecommendation
	for _, r := range m.Recs {
		if kind == "" || r.Kind == kind {
			out = append(out, r)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type TrackedEvent struct {
	Name   string
	Params map[string]any
}

// RecordingSink captures tracked events. Set Err to make Track fail.
type RecordingSink struct {
	mu     sync.Mutex
	Events []TrackedEvent
	Err    error
}

func (s *RecordingSink) Track(_ context.Context, name string, params map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = append(s.Events, TrackedEvent{Name: name, Params: params})
	return s.Err
}

func (s *RecordingSink) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.Events))
	for _, e := range s.Events {
		out = append(out, e.Name)
	}
	return out
}

// FakeChat is a scripted ChatClient. It returns Reply, or Err when set, and
// keeps every request it receives.
type FakeChat struct {
	mu       sync.Mutex
	Reply    string
	Err      error
	Requests []ai.ChatRequest
}

func (f *FakeChat) Live() bool { return true }

func (f *FakeChat) Complete(ctx context.Context, req ai.ChatRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Requests = append(f.Requests, req)
	if f.Err != nil {
		return "", f.Err
	}
	return f.Reply, ctx.Err()
}

// LastPrompt returns the user message of the most recent request.
func (f *FakeChat) LastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Requests) == 0 {
		return ""
	}
	for _, m := range f.Requests[len(f.Requests)-1].Messages {
		if m.Role == "user" {
			return m.Content
		}
	}
	return ""
}
