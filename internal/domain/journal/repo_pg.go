package journal

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

type entryRepoPG struct{ pool *pgxpool.Pool }

func NewEntryRepoPG(pool *pgxpool.Pool) EntryRepository {
	return &entryRepoPG{pool: pool}
}

func (r *entryRepoPG) conn(ctx context.Context) queryable {
	return r.pool
}

const entryCols = `id, user_id, occurred_at, entry_type, severity, symptoms, triggers, note,
	weather_condition, temperature_c, humidity_pct, sleep_hours, resting_heart_rate,
	created_at, updated_at`

// scanEntry reassembles the optional environmental/physiological snapshots
// from their flat nullable columns. A snapshot is attached only when at least
// one of its fields is present, so callers can rely on nil meaning "nothing
// recorded".
func (r *entryRepoPG) scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	var weather *string
	var tempC, humidity, sleep *float64
	var restingHR *int
	err := row.Scan(&e.ID, &e.UserID, &e.OccurredAt, &e.Type, &e.Severity,
		&e.Symptoms, &e.Triggers, &e.Note,
		&weather, &tempC, &humidity, &sleep, &restingHR,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if weather != nil || tempC != nil || humidity != nil {
		e.Environmental = &Environmental{
			WeatherCondition: weather,
			TemperatureC:     tempC,
			HumidityPct:      humidity,
		}
	}
	if sleep != nil || restingHR != nil {
		e.Physiological = &Physiological{
			SleepHours:       sleep,
			RestingHeartRate: restingHR,
		}
	}
	return &e, nil
}

// envFields flattens the optional snapshots for storage.
func envFields(e *Entry) (weather *string, tempC, humidity, sleep *float64, restingHR *int) {
	if e.Environmental != nil {
		weather = e.Environmental.WeatherCondition
		tempC = e.Environmental.TemperatureC
		humidity = e.Environmental.HumidityPct
	}
	if e.Physiological != nil {
		sleep = e.Physiological.SleepHours
		restingHR = e.Physiological.RestingHeartRate
	}
	return
}

func (r *entryRepoPG) Create(ctx context.Context, e *Entry) error {
	e.ID = uuid.New()
	weather, tempC, humidity, sleep, restingHR := envFields(e)
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO journal_entry (id, user_id, occurred_at, entry_type, severity, symptoms, triggers, note,
			weather_condition, temperature_c, humidity_pct, sleep_hours, resting_heart_rate)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		e.ID, e.UserID, e.OccurredAt, e.Type, e.Severity, e.Symptoms, e.Triggers, e.Note,
		weather, tempC, humidity, sleep, restingHR)
	return err
}

func (r *entryRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return r.scanEntry(r.conn(ctx).QueryRow(ctx, `SELECT `+entryCols+` FROM journal_entry WHERE id = $1`, id))
}

func (r *entryRepoPG) Update(ctx context.Context, e *Entry) error {
	weather, tempC, humidity, sleep, restingHR := envFields(e)
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE journal_entry SET occurred_at=$2, entry_type=$3, severity=$4, symptoms=$5, triggers=$6, note=$7,
			weather_condition=$8, temperature_c=$9, humidity_pct=$10, sleep_hours=$11, resting_heart_rate=$12,
			updated_at=NOW()
		WHERE id = $1`,
		e.ID, e.OccurredAt, e.Type, e.Severity, e.Symptoms, e.Triggers, e.Note,
		weather, tempC, humidity, sleep, restingHR)
	return err
}

func (r *entryRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM journal_entry WHERE id = $1`, id)
	return err
}

func (r *entryRepoPG) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*Entry, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM journal_entry WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+entryCols+` FROM journal_entry WHERE user_id = $1 ORDER BY occurred_at DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Entry
	for rows.Next() {
		e, err := r.scanEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, e)
	}
	return items, total, rows.Err()
}

func (r *entryRepoPG) History(ctx context.Context, userID string) ([]*Entry, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+entryCols+` FROM journal_entry WHERE user_id = $1 ORDER BY occurred_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Entry
	for rows.Next() {
		e, err := r.scanEntry(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}
