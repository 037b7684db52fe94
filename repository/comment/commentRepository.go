package commentrepo

import (
	"context"

	"github.com/Wh1teW1nter/java-shareit/model"
	"github.com/Wh1teW1nter/java-shareit/util/database"
)

type Repo interface {
	Insert(ctx context.Context, c *model.Comment) error
	ByItemID(ctx context.Context, itemID int64) ([]model.Comment, error)
	ByItemIDs(ctx context.Context, itemIDs []int64) ([]model.Comment, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db: db} }

const commentSelect = `
	SELECT c.id, c.text, c.item_id, c.author_id, u.name, c.created_at
	FROM comments c
	JOIN users u ON u.id = c.author_id`

func (r *repo) Insert(ctx context.Context, c *model.Comment) error {
	const q = `
		INSERT INTO comments (text, item_id, author_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	return r.db.Pool.QueryRow(ctx, q, c.Text, c.ItemID, c.AuthorID, c.Created).Scan(&c.ID)
}

func (r *repo) ByItemID(ctx context.Context, itemID int64) ([]model.Comment, error) {
	const q = commentSelect + `
	WHERE c.item_id = $1
	ORDER BY c.created_at`
	return r.list(ctx, q, itemID)
}

func (r *repo) ByItemIDs(ctx context.Context, itemIDs []int64) ([]model.Comment, error) {
	const q = commentSelect + `
	WHERE c.item_id = ANY($1)
	ORDER BY c.created_at`
	return r.list(ctx, q, itemIDs)
}

func (r *repo) list(ctx context.Context, q string, args ...any) ([]model.Comment, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.Created); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
