package commentsvc

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Wh1teW1nter/java-shareit/apperr"
	"github.com/Wh1teW1nter/java-shareit/model"
)

type Users interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type Items interface {
	ByID(ctx context.Context, id int64) (*model.Item, error)
}

type Bookings interface {
	EndedByBookerAndItem(ctx context.Context, bookerID, itemID int64, now time.Time) ([]model.Booking, error)
}

type Repo interface {
	Insert(ctx context.Context, c *model.Comment) error
}

type Service interface {
	// Add records post-rental feedback. The author must hold at least
	// one APPROVED booking on the item that has already ended.
	Add(ctx context.Context, text string, itemID, authorID int64) (*model.Comment, error)
}

type service struct {
	r        Repo
	users    Users
	items    Items
	bookings Bookings
}

func New(r Repo, users Users, items Items, bookings Bookings) Service {
	return &service{r: r, users: users, items: items, bookings: bookings}
}

func (s *service) Add(ctx context.Context, text string, itemID, authorID int64) (*model.Comment, error) {
	created := time.Now()

	item, err := s.items.ByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("item was not found")
		}
		return nil, err
	}
	author, err := s.users.ByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	ended, err := s.bookings.EndedByBookerAndItem(ctx, author.ID, item.ID, created)
	if err != nil {
		return nil, err
	}
	qualified := false
	for _, b := range ended {
		if b.Status == model.BookingApproved {
			qualified = true
			break
		}
	}
	if !qualified {
		return nil, apperr.Validation("user cannot add comment to an item without booking")
	}

	c := &model.Comment{
		Text:       text,
		ItemID:     item.ID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Created:    created,
	}
	if err := s.r.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
