package insights

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type correlationRepoPG struct{ pool *pgxpool.Pool }

func NewCorrelationRepoPG(pool *pgxpool.Pool) CorrelationRepository {
	return &correlationRepoPG{pool: pool}
}

func (r *correlationRepoPG) conn(ctx context.Context) queryable {
	return r.pool
}

const correlationCols = `id, user_id, antecedent_type, antecedent_value, outcome_type, outcome_value,
	occurrence_count, confidence, avg_delay_minutes, last_occurred, computed_at, updated_at`

func (r *correlationRepoPG) scanCorrelation(row pgx.Row) (*Correlation, error) {
	var c Correlation
	err := row.Scan(&c.ID, &c.UserID, &c.AntecedentType, &c.AntecedentValue, &c.OutcomeType, &c.OutcomeValue,
		&c.OccurrenceCount, &c.Confidence, &c.AvgDelayMinutes, &c.LastOccurred, &c.ComputedAt, &c.UpdatedAt)
	return &c, err
}

func (r *correlationRepoPG) Upsert(ctx context.Context, c *Correlation) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO correlation (id, user_id, antecedent_type, antecedent_value, outcome_type, outcome_value,
			occurrence_count, confidence, avg_delay_minutes, last_occurred, computed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (user_id, antecedent_type, antecedent_value, outcome_type, outcome_value)
		DO UPDATE SET
			occurrence_count = EXCLUDED.occurrence_count,
			confidence = EXCLUDED.confidence,
			avg_delay_minutes = EXCLUDED.avg_delay_minutes,
			last_occurred = EXCLUDED.last_occurred,
			computed_at = EXCLUDED.computed_at,
			updated_at = NOW()`,
		c.ID, c.UserID, c.AntecedentType, c.AntecedentValue, c.OutcomeType, c.OutcomeValue,
		c.OccurrenceCount, c.Confidence, c.AvgDelayMinutes, c.LastOccurred, c.ComputedAt)
	return err
}

func (r *correlationRepoPG) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*Correlation, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM correlation WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+correlationCols+` FROM correlation WHERE user_id = $1 ORDER BY confidence DESC, antecedent_value ASC LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Correlation
	for rows.Next() {
		c, err := r.scanCorrelation(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, c)
	}
	return items, total, rows.Err()
}
