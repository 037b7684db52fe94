package requestrepo

import (
	"context"

	"github.com/Wh1teW1nter/java-shareit/model"
	"github.com/Wh1teW1nter/java-shareit/util/database"
)

type Repo interface {
	Create(ctx context.Context, req *model.ItemRequest) error
	ByID(ctx context.Context, id int64) (*model.ItemRequest, error)
	ByRequester(ctx context.Context, requesterID int64) ([]model.ItemRequest, error)
	// ByOtherRequesters lists requests not posted by the given user,
	// newest first.
	ByOtherRequesters(ctx context.Context, requesterID int64, limit, offset int) ([]model.ItemRequest, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, req *model.ItemRequest) error {
	const q = `
		INSERT INTO requests (description, requester_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`
	return r.db.Pool.QueryRow(ctx, q, req.Description, req.RequesterID, req.Created).Scan(&req.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	const q = `
		SELECT id, description, requester_id, created_at
		FROM requests
		WHERE id = $1`
	req := &model.ItemRequest{}
	err := r.db.Pool.QueryRow(ctx, q, id).Scan(&req.ID, &req.Description, &req.RequesterID, &req.Created)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *repo) ByRequester(ctx context.Context, requesterID int64) ([]model.ItemRequest, error) {
	const q = `
		SELECT id, description, requester_id, created_at
		FROM requests
		WHERE requester_id = $1
		ORDER BY created_at DESC`
	return r.list(ctx, q, requesterID)
}

func (r *repo) ByOtherRequesters(ctx context.Context, requesterID int64, limit, offset int) ([]model.ItemRequest, error) {
	const q = `
		SELECT id, description, requester_id, created_at
		FROM requests
		WHERE requester_id <> $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	return r.list(ctx, q, requesterID, limit, offset)
}

func (r *repo) list(ctx context.Context, q string, args ...any) ([]model.ItemRequest, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ItemRequest
	for rows.Next() {
		var req model.ItemRequest
		if err := rows.Scan(&req.ID, &req.Description, &req.RequesterID, &req.Created); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}
