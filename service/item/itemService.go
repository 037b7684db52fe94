package itemsvc

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Wh1teW1nter/java-shareit/apperr"
	"github.com/Wh1teW1nter/java-shareit/model"
	"github.com/Wh1teW1nter/java-shareit/util/paging"
)

type Repo interface {
	Create(ctx context.Context, it *model.Item) error
	Update(ctx context.Context, it *model.Item) error
	ByID(ctx context.Context, id int64) (*model.Item, error)
	ByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]model.Item, error)
	Search(ctx context.Context, text string, limit, offset int) ([]model.Item, error)
	Delete(ctx context.Context, id int64) error
}

type Users interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type Bookings interface {
	ApprovedByItemIDs(ctx context.Context, itemIDs []int64) ([]model.Booking, error)
}

type Comments interface {
	ByItemID(ctx context.Context, itemID int64) ([]model.Comment, error)
	ByItemIDs(ctx context.Context, itemIDs []int64) ([]model.Comment, error)
}

type Requests interface {
	ByID(ctx context.Context, id int64) (*model.ItemRequest, error)
}

type Draft struct {
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	Name        *string
	Description *string
	Available   *bool
}

type Service interface {
	Create(ctx context.Context, draft Draft, ownerID int64) (*model.Item, error)
	Update(ctx context.Context, patch Patch, itemID, userID int64) (*model.Item, error)

	// FindByID assembles the read view: the owner additionally sees the
	// last and next approved booking of the item.
	FindByID(ctx context.Context, itemID, userID int64) (*model.ItemView, error)

	// ListByOwner assembles views for all owned items on the page,
	// batch-fetching bookings and comments in one query each.
	ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]model.ItemView, error)

	Search(ctx context.Context, text string, from, size int) ([]model.Item, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	r        Repo
	users    Users
	bookings Bookings
	comments Comments
	requests Requests
}

func New(r Repo, users Users, bookings Bookings, comments Comments, requests Requests) Service {
	return &service{r: r, users: users, bookings: bookings, comments: comments, requests: requests}
}

func (s *service) Create(ctx context.Context, draft Draft, ownerID int64) (*model.Item, error) {
	owner, err := s.users.ByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if draft.RequestID != nil {
		if _, err := s.requests.ByID(ctx, *draft.RequestID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperr.NotFound("item request was not found")
			}
			return nil, err
		}
	}

	it := &model.Item{
		Name:        draft.Name,
		Description: draft.Description,
		Available:   draft.Available,
		OwnerID:     owner.ID,
		RequestID:   draft.RequestID,
	}
	if err := s.r.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Update(ctx context.Context, patch Patch, itemID, userID int64) (*model.Item, error) {
	if _, err := s.users.ByID(ctx, userID); err != nil {
		return nil, err
	}
	it, err := s.itemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != userID {
		return nil, apperr.AccessDenied("user is not the owner of an item")
	}

	changed := false
	if patch.Name != nil && *patch.Name != it.Name {
		it.Name = *patch.Name
		changed = true
	}
	if patch.Description != nil && *patch.Description != it.Description {
		it.Description = *patch.Description
		changed = true
	}
	if patch.Available != nil && *patch.Available != it.Available {
		it.Available = *patch.Available
		changed = true
	}
	if !changed {
		return nil, apperr.Validation("unable to update item: no field changed")
	}

	if err := s.r.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) FindByID(ctx context.Context, itemID, userID int64) (*model.ItemView, error) {
	it, err := s.itemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	view := &model.ItemView{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		Comments:    orEmpty(comments),
	}
	if it.OwnerID != userID {
		return view, nil
	}

	bookings, err := s.bookings.ApprovedByItemIDs(ctx, []int64{itemID})
	if err != nil {
		return nil, err
	}
	view.LastBooking, view.NextBooking = lastNext(bookings, time.Now())
	return view, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]model.ItemView, error) {
	if _, err := s.users.ByID(ctx, ownerID); err != nil {
		return nil, err
	}
	items, err := s.r.ByOwner(ctx, ownerID, size, paging.Offset(from, size))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []model.ItemView{}, nil
	}

	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}

	// one query for all bookings, one for all comments
	bookings, err := s.bookings.ApprovedByItemIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ByItemIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	bookingsByItem := make(map[int64][]model.Booking)
	for _, b := range bookings {
		bookingsByItem[b.ItemID] = append(bookingsByItem[b.ItemID], b)
	}
	commentsByItem := make(map[int64][]model.Comment)
	for _, c := range comments {
		commentsByItem[c.ItemID] = append(commentsByItem[c.ItemID], c)
	}

	now := time.Now()
	views := make([]model.ItemView, 0, len(items))
	for _, it := range items {
		v := model.ItemView{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Available:   it.Available,
			Comments:    orEmpty(commentsByItem[it.ID]),
		}
		v.LastBooking, v.NextBooking = lastNext(bookingsByItem[it.ID], now)
		views = append(views, v)
	}
	return views, nil
}

func (s *service) Search(ctx context.Context, text string, from, size int) ([]model.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []model.Item{}, nil
	}
	items, err := s.r.Search(ctx, text, size, paging.Offset(from, size))
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.r.Delete(ctx, id)
}

func (s *service) itemByID(ctx context.Context, id int64) (*model.Item, error) {
	it, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("item was not found")
		}
		return nil, err
	}
	return it, nil
}

// lastNext picks the most recent booking started before now and the
// earliest booking starting after now.
func lastNext(bookings []model.Booking, now time.Time) (last, next *model.BookingRef) {
	for i := range bookings {
		b := bookings[i]
		switch {
		case b.Start.Before(now):
			if last == nil || b.Start.After(last.Start) {
				last = toRef(b)
			}
		case b.Start.After(now):
			if next == nil || b.Start.Before(next.Start) {
				next = toRef(b)
			}
		}
	}
	return last, next
}

func toRef(b model.Booking) *model.BookingRef {
	return &model.BookingRef{ID: b.ID, BookerID: b.BookerID, Start: b.Start, End: b.End}
}

func orEmpty(comments []model.Comment) []model.Comment {
	if comments == nil {
		return []model.Comment{}
	}
	return comments
}
