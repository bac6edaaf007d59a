package journal

import (
	"context"

	"github.com/google/uuid"
)

type EntryRepository interface {
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*Entry, int, error)
	// History returns the user's complete entry history ordered ascending by
	// occurrence time. The pattern engine reads through this method.
	History(ctx context.Context, userID string) ([]*Entry, error)
}
