package journal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	entries EntryRepository
}

func NewService(entries EntryRepository) *Service {
	return &Service{entries: entries}
}

func (s *Service) CreateEntry(ctx context.Context, e *Entry) error {
	if e.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if e.Type == "" {
		return fmt.Errorf("type is required")
	}
	if !ValidType(e.Type) {
		return fmt.Errorf("invalid type: %s", e.Type)
	}
	if e.Severity != nil && !ValidSeverity(*e.Severity) {
		return fmt.Errorf("invalid severity: %s", *e.Severity)
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	normalizeTags(e.Symptoms)
	normalizeTags(e.Triggers)
	return s.entries.Create(ctx, e)
}

func (s *Service) GetEntry(ctx context.Context, userID string, id uuid.UUID) (*Entry, error) {
	e, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.UserID != userID {
		return nil, fmt.Errorf("entry not found")
	}
	return e, nil
}

func (s *Service) UpdateEntry(ctx context.Context, e *Entry) error {
	existing, err := s.GetEntry(ctx, e.UserID, e.ID)
	if err != nil {
		return err
	}
	if e.Type == "" {
		e.Type = existing.Type
	}
	if !ValidType(e.Type) {
		return fmt.Errorf("invalid type: %s", e.Type)
	}
	if e.Severity != nil && !ValidSeverity(*e.Severity) {
		return fmt.Errorf("invalid severity: %s", *e.Severity)
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = existing.OccurredAt
	}
	normalizeTags(e.Symptoms)
	normalizeTags(e.Triggers)
	return s.entries.Update(ctx, e)
}

func (s *Service) DeleteEntry(ctx context.Context, userID string, id uuid.UUID) error {
	if _, err := s.GetEntry(ctx, userID, id); err != nil {
		return err
	}
	return s.entries.Delete(ctx, id)
}

func (s *Service) ListEntries(ctx context.Context, userID string, limit, offset int) ([]*Entry, int, error) {
	return s.entries.ListByUser(ctx, userID, limit, offset)
}

// normalizeTags lowercases and trims tag sets in place so pattern keys built
// from them compare case-insensitively.
func normalizeTags(tags []string) {
	for i, t := range tags {
		tags[i] = strings.ToLower(strings.TrimSpace(t))
	}
}
