package schedule

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicore/clinicore/internal/platform/db"
)

type overrideRepoPG struct{ pool *pgxpool.Pool }

func NewOverrideRepoPG(pool *pgxpool.Pool) OverrideRepository { return &overrideRepoPG{pool: pool} }

func (r *overrideRepoPG) conn(ctx context.Context) db.Queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const overrideCols = `id, date, original_doctor_id, assigned_doctor_id, reason, created_at, updated_at`

func scanOverride(row pgx.Row) (*Override, error) {
	var o Override
	err := row.Scan(&o.ID, &o.Date, &o.OriginalDoctorID, &o.AssignedDoctorID, &o.Reason,
		&o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create relies on the unique index on date: a concurrent insert for the
// same date loses with a 23505 instead of producing a second record.
func (r *overrideRepoPG) Create(ctx context.Context, o *Override) error {
	o.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO schedule_override (id, date, original_doctor_id, assigned_doctor_id, reason)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at, updated_at`,
		o.ID, o.Date, o.OriginalDoctorID, o.AssignedDoctorID, o.Reason).
		Scan(&o.CreatedAt, &o.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateOverride
	}
	return err
}

// Update reads the row back so callers return the stored id and timestamps,
// not the caller-supplied zero values.
func (r *overrideRepoPG) Update(ctx context.Context, o *Override) error {
	err := r.conn(ctx).QueryRow(ctx, `
		UPDATE schedule_override
		SET assigned_doctor_id=$2, original_doctor_id=$3, reason=$4, updated_at=NOW()
		WHERE date = $1
		RETURNING id, created_at, updated_at`,
		o.Date, o.AssignedDoctorID, o.OriginalDoctorID, o.Reason).
		Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrOverrideNotFound
	}
	return err
}

func (r *overrideRepoPG) DeleteByDate(ctx context.Context, date string) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM schedule_override WHERE date = $1`, date)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrOverrideNotFound
	}
	return nil
}

func (r *overrideRepoPG) GetByDate(ctx context.Context, date string) (*Override, error) {
	return scanOverride(r.conn(ctx).QueryRow(ctx,
		`SELECT `+overrideCols+` FROM schedule_override WHERE date = $1`, date))
}

func (r *overrideRepoPG) ExistsByDate(ctx context.Context, date string) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM schedule_override WHERE date = $1)`, date).Scan(&exists)
	return exists, err
}

func (r *overrideRepoPG) GetByDateRange(ctx context.Context, start, end string) ([]*Override, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+overrideCols+` FROM schedule_override WHERE date >= $1 AND date <= $2 ORDER BY date`,
		start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOverrides(rows)
}

func (r *overrideRepoPG) GetByDates(ctx context.Context, dates []string) ([]*Override, error) {
	if len(dates) == 0 {
		return nil, nil
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+overrideCols+` FROM schedule_override WHERE date = ANY($1) ORDER BY date`, dates)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOverrides(rows)
}

func (r *overrideRepoPG) GetByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Override, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+overrideCols+` FROM schedule_override WHERE assigned_doctor_id = $1 ORDER BY date`,
		doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOverrides(rows)
}

func collectOverrides(rows pgx.Rows) ([]*Override, error) {
	var items []*Override
	for rows.Next() {
		o, err := scanOverride(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, o)
	}
	return items, rows.Err()
}
