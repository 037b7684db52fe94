package bookingrepo

import (
	"context"
	"time"

	"github.com/Wh1teW1nter/java-shareit/model"
	"github.com/Wh1teW1nter/java-shareit/util/database"
)

// Detail is a booking row joined with the booked item, enough for
// authorization checks and response bodies without a second lookup.
type Detail struct {
	model.Booking
	ItemName    string `json:"item_name"`
	ItemOwnerID int64  `json:"item_owner_id"`
}

type Repo interface {
	Insert(ctx context.Context, b *model.Booking) error
	DetailByID(ctx context.Context, id int64) (*Detail, error)

	// UpdateStatusIfWaiting flips the status in a single conditional
	// write; false means the row was no longer WAITING (or absent), so
	// of two concurrent approvals only one can succeed.
	UpdateStatusIfWaiting(ctx context.Context, id int64, status model.BookingStatus) (bool, error)

	// Listings, ordered by start descending.
	AllByBooker(ctx context.Context, bookerID int64, limit, offset int) ([]Detail, error)
	PastByBooker(ctx context.Context, bookerID int64, now time.Time, limit, offset int) ([]Detail, error)
	FutureByBooker(ctx context.Context, bookerID int64, now time.Time, limit, offset int) ([]Detail, error)
	CurrentByBooker(ctx context.Context, bookerID int64, now time.Time, limit, offset int) ([]Detail, error)
	StatusByBooker(ctx context.Context, bookerID int64, status model.BookingStatus, limit, offset int) ([]Detail, error)

	AllByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]Detail, error)
	PastByOwner(ctx context.Context, ownerID int64, now time.Time, limit, offset int) ([]Detail, error)
	FutureByOwner(ctx context.Context, ownerID int64, now time.Time, limit, offset int) ([]Detail, error)
	CurrentByOwner(ctx context.Context, ownerID int64, now time.Time, limit, offset int) ([]Detail, error)
	StatusByOwner(ctx context.Context, ownerID int64, status model.BookingStatus, limit, offset int) ([]Detail, error)

	// ApprovedByItemIDs batch-fetches approved bookings for a set of
	// items in one query, for last/next computation on item views.
	ApprovedByItemIDs(ctx context.Context, itemIDs []int64) ([]model.Booking, error)
	// EndedByBookerAndItem returns the booker's bookings on the item
	// whose end time lies before now, any status.
	EndedByBookerAndItem(ctx context.Context, bookerID, itemID int64, now time.Time) ([]model.Booking, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db: db} }

const detailSelect = `
	SELECT b.id, b.start_at, b.end_at, b.item_id, b.booker_id, b.status,
	       i.name, i.owner_id
	FROM bookings b
	JOIN items i ON i.id = b.item_id`

func (r *repo) Insert(ctx context.Context, b *model.Booking) error {
	const q = `
		INSERT INTO bookings (start_at, end_at, item_id, booker_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	return r.db.Pool.QueryRow(ctx, q,
		b.Start, b.End, b.ItemID, b.BookerID, b.Status,
	).Scan(&b.ID)
}

func (r *repo) DetailByID(ctx context.Context, id int64) (*Detail, error) {
	const q = detailSelect + `
	WHERE b.id = $1`
	d := &Detail{}
	err := r.db.Pool.QueryRow(ctx, q, id).Scan(
		&d.ID, &d.Start, &d.End, &d.ItemID, &d.BookerID, &d.Status,
		&d.ItemName, &d.ItemOwnerID,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *repo) UpdateStatusIfWaiting(ctx context.Context, id int64, status model.BookingStatus) (bool, error) {
	const q = `
		UPDATE bookings
		SET status = $2
		WHERE id = $1
		AND status = 'WAITING'`
	tag, err := r.db.Pool.Exec(ctx, q, id, status)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Booker-side listings.

func (r *repo) AllByBooker(ctx context.Context, bookerID int64, limit, offset int) ([]Detail, error) {
	const q = detailSelect + `
	WHERE b.booker_id = $1
	ORDER BY b.start_at DESC
	LIMIT $2 OFFSET $3`
	return r.list(ctx, q, bookerID, limit, offset)
}

func (r *repo) PastByBooker(ctx context.Context, bookerID int64, now time.Time, limit, offset int) ([]Detail, error) {
	const q = detailSelect + `
	WHERE b.booker_id = $1
	AND b.end_at < $2
	ORDER BY b.start_at DESC
	LIMIT $3 OFFSET $4`
	return r.list(ctx, q, bookerID, now, limit, offset)
}

func (r *repo) FutureByBooker(ctx context.Context, bookerID int64, now time.Time, limit, offset int) ([]Detail, error) {
	const q = detailSelect + `
	WHERE b.booker_id = $1
	AND b.start_at > $2
	ORDER BY b.start_at DESC
	LIMIT $3 OFFSET $4`
	return r.list(ctx, q, bookerID, now, limit, offset)
}

func (r *repo) CurrentByBooker(ctx context.Context, bookerID int64, now time.Time, limit, offset int) ([]Detail, error) {
	const q = detailSelect + `
	WHERE b.booker_id = $1
	AND b.start_at <= $2
	AND b.end_at >= $2
	ORDER BY b.start_at DESC
	LIMIT $3 OFFSET $4`
	return r.list(ctx, q, bookerID, now, limit, offset)
}

func (r *repo) StatusByBooker(ctx context.Context, bookerID int64, status model.BookingStatus, limit, offset int) ([]Detail, error) {
	const q = detailSelect + `
	WHERE b.booker_id = $1
	AND b.status = $2
	ORDER BY b.start_at DESC
	LIMIT $3 OFFSET $4`
	return r.list(ctx, q, bookerID, status, limit, offset)
}

// Owner-side listings.

func (r *repo) AllByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]Detail, error) {
	const q = detailSelect + `
	WHERE i.owner_id = $1
	ORDER BY b.start_at DESC
	LIMIT $2 OFFSET $3`
	return r.list(ctx, q, ownerID, limit, offset)
}

func (r *repo) PastByOwner(ctx context.Context, ownerID int64, now time.Time, limit, offset int) ([]Detail, error) {
	const q = detailSelect + `
	WHERE i.owner_id = $1
	AND b.end_at < $2
	ORDER BY b.start_at DESC
	LIMIT $3 OFFSET $4`
	return r.list(ctx, q, ownerID, now, limit, offset)
}

func (r *repo) FutureByOwner(ctx context.Context, ownerID int64, now time.Time, limit, offset int) ([]Detail, error) {
	const q = detailSelect + `
	WHERE i.owner_id = $1
	AND b.start_at > $2
	ORDER BY b.start_at DESC
	LIMIT $3 OFFSET $4`
	return r.list(ctx, q, ownerID, now, limit, offset)
}

func (r *repo) CurrentByOwner(ctx context.Context, ownerID int64, now time.Time, limit, offset int) ([]Detail, error) {
	const q = detailSelect + `
	WHERE i.owner_id = $1
	AND b.start_at <= $2
	AND b.end_at >= $2
	ORDER BY b.start_at DESC
	LIMIT $3 OFFSET $4`
	return r.list(ctx, q, ownerID, now, limit, offset)
}

func (r *repo) StatusByOwner(ctx context.Context, ownerID int64, status model.BookingStatus, limit, offset int) ([]Detail, error) {
	const q = detailSelect + `
	WHERE i.owner_id = $1
	AND b.status = $2
	ORDER BY b.start_at DESC
	LIMIT $3 OFFSET $4`
	return r.list(ctx, q, ownerID, status, limit, offset)
}

// Batch helpers for view assembly.

func (r *repo) ApprovedByItemIDs(ctx context.Context, itemIDs []int64) ([]model.Booking, error) {
	const q = `
		SELECT id, start_at, end_at, item_id, booker_id, status
		FROM bookings
		WHERE item_id = ANY($1)
		AND status = 'APPROVED'
		ORDER BY start_at`
	return r.listPlain(ctx, q, itemIDs)
}

func (r *repo) EndedByBookerAndItem(ctx context.Context, bookerID, itemID int64, now time.Time) ([]model.Booking, error) {
	const q = `
		SELECT id, start_at, end_at, item_id, booker_id, status
		FROM bookings
		WHERE booker_id = $1
		AND item_id = $2
		AND end_at < $3`
	return r.listPlain(ctx, q, bookerID, itemID, now)
}

func (r *repo) list(ctx context.Context, q string, args ...any) ([]Detail, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Detail
	for rows.Next() {
		var d Detail
		if err := rows.Scan(
			&d.ID, &d.Start, &d.End, &d.ItemID, &d.BookerID, &d.Status,
			&d.ItemName, &d.ItemOwnerID,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *repo) listPlain(ctx context.Context, q string, args ...any) ([]model.Booking, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.Start, &b.End, &b.ItemID, &b.BookerID, &b.Status); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
