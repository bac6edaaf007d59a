package insights

import "context"

type CorrelationRepository interface {
	// Upsert inserts the correlation by its natural key
	// (user, antecedent, outcome), overwriting the evidence columns when a row
	// already exists. Re-running with identical input must leave identical
	// rows.
	Upsert(ctx context.Context, c *Correlation) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*Correlation, int, error)
}
