package bookingsvc

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Wh1teW1nter/java-shareit/apperr"
	"github.com/Wh1teW1nter/java-shareit/model"
	bookingrepo "github.com/Wh1teW1nter/java-shareit/repository/booking"
	"github.com/Wh1teW1nter/java-shareit/util/paging"
)

// Detail = repository shape (booking joined with its item).
type Detail = bookingrepo.Detail

// State selects a time- or status-based subset of bookings, evaluated
// against "now" at call time. Tokens are exact and case-sensitive.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState rejects anything outside the enumerated set.
func ParseState(token string) (State, error) {
	switch s := State(token); s {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return s, nil
	}
	return "", apperr.UnsupportedState("Unknown state: UNSUPPORTED_STATUS")
}

type Users interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type Items interface {
	ByID(ctx context.Context, id int64) (*model.Item, error)
}

type Repo interface {
	Insert(ctx context.Context, b *model.Booking) error
	DetailByID(ctx context.Context, id int64) (*Detail, error)
	UpdateStatusIfWaiting(ctx context.Context, id int64, status model.BookingStatus) (bool, error)

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
}

type CreateReq struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

type Service interface {
	// Create places a WAITING booking for the acting user on an
	// available item the user does not own.
	Create(ctx context.Context, req CreateReq, userID int64) (*Detail, error)

	// SetApproval moves a WAITING booking to APPROVED or REJECTED.
	// Only the item owner may do this, and only once.
	SetApproval(ctx context.Context, bookingID int64, approved bool, userID int64) (*Detail, error)

	// FindByID returns the booking to its booker or the item owner.
	FindByID(ctx context.Context, bookingID, userID int64) (*Detail, error)

	FindForBooker(ctx context.Context, state State, userID int64, from, size int) ([]Detail, error)
	FindForOwner(ctx context.Context, state State, userID int64, from, size int) ([]Detail, error)
}

type service struct {
	r     Repo
	users Users
	items Items
}

func New(r Repo, users Users, items Items) Service {
	return &service{r: r, users: users, items: items}
}

func (s *service) Create(ctx context.Context, req CreateReq, userID int64) (*Detail, error) {
	booker, err := s.users.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	item, err := s.itemByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !item.Available {
		return nil, apperr.Validation("unable to create booking with an unavailable item")
	}
	if item.OwnerID == booker.ID {
		return nil, apperr.AccessDenied("owner of an item cannot rent it")
	}
	if err := checkTiming(req.Start, req.End, time.Now()); err != nil {
		return nil, err
	}

	b := &model.Booking{
		Start:    req.Start,
		End:      req.End,
		ItemID:   item.ID,
		BookerID: booker.ID,
		Status:   model.BookingWaiting,
	}
	if err := s.r.Insert(ctx, b); err != nil {
		return nil, err
	}
	return &Detail{Booking: *b, ItemName: item.Name, ItemOwnerID: item.OwnerID}, nil
}

// checkTiming validates the booking window; the first violation wins.
func checkTiming(start, end, now time.Time) error {
	switch {
	case end.Before(now):
		return apperr.Validation("unable to create booking with end time in the past")
	case end.Before(start):
		return apperr.Validation("unable to create booking with end time before start time")
	case start.Equal(end):
		return apperr.Validation("unable to create booking with end time equal to start time")
	case start.Before(now):
		return apperr.Validation("unable to create booking with start time in the past")
	}
	return nil
}

func (s *service) SetApproval(ctx context.Context, bookingID int64, approved bool, userID int64) (*Detail, error) {
	if _, err := s.users.ByID(ctx, userID); err != nil {
		return nil, err
	}
	d, err := s.detailByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if userID != d.ItemOwnerID {
		if userID == d.BookerID {
			return nil, apperr.AccessDenied("booker cannot set approval")
		}
		return nil, apperr.Validation("only the owner of an item is allowed to set the booking approval")
	}
	if d.Status != model.BookingWaiting {
		return nil, apperr.Validation("unable to set the approval to booking without status WAITING")
	}

	status := model.BookingRejected
	if approved {
		status = model.BookingApproved
	}
	ok, err := s.r.UpdateStatusIfWaiting(ctx, bookingID, status)
	if err != nil {
		return nil, err
	}
	if !ok {
		// lost the race: someone else already settled this booking
		return nil, apperr.Validation("unable to set the approval to booking without status WAITING")
	}
	d.Status = status
	return d, nil
}

func (s *service) FindByID(ctx context.Context, bookingID, userID int64) (*Detail, error) {
	if _, err := s.users.ByID(ctx, userID); err != nil {
		return nil, err
	}
	d, err := s.detailByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if userID != d.BookerID && userID != d.ItemOwnerID {
		return nil, apperr.AccessDenied("only the owner of an item or the booker are allowed to see booking information")
	}
	return d, nil
}

func (s *service) FindForBooker(ctx context.Context, state State, userID int64, from, size int) ([]Detail, error) {
	if _, err := s.users.ByID(ctx, userID); err != nil {
		return nil, err
	}
	now := time.Now()
	offset := paging.Offset(from, size)

	switch state {
	case StateAll:
		return s.r.AllByBooker(ctx, userID, size, offset)
	case StatePast:
		return s.r.PastByBooker(ctx, userID, now, size, offset)
	case StateFuture:
		return s.r.FutureByBooker(ctx, userID, now, size, offset)
	case StateCurrent:
		return s.r.CurrentByBooker(ctx, userID, now, size, offset)
	case StateWaiting:
		return s.r.StatusByBooker(ctx, userID, model.BookingWaiting, size, offset)
	case StateRejected:
		return s.r.StatusByBooker(ctx, userID, model.BookingRejected, size, offset)
	}
	return nil, apperr.UnsupportedState("Unknown state: UNSUPPORTED_STATUS")
}

func (s *service) FindForOwner(ctx context.Context, state State, userID int64, from, size int) ([]Detail, error) {
	if _, err := s.users.ByID(ctx, userID); err != nil {
		return nil, err
	}
	now := time.Now()
	offset := paging.Offset(from, size)

	switch state {
	case StateAll:
		return s.r.AllByOwner(ctx, userID, size, offset)
	case StatePast:
		return s.r.PastByOwner(ctx, userID, now, size, offset)
	case StateFuture:
		return s.r.FutureByOwner(ctx, userID, now, size, offset)
	case StateCurrent:
		return s.r.CurrentByOwner(ctx, userID, now, size, offset)
	case StateWaiting:
		return s.r.StatusByOwner(ctx, userID, model.BookingWaiting, size, offset)
	case StateRejected:
		return s.r.StatusByOwner(ctx, userID, model.BookingRejected, size, offset)
	}
	return nil, apperr.UnsupportedState("Unknown state: UNSUPPORTED_STATUS")
}

func (s *service) itemByID(ctx context.Context, id int64) (*model.Item, error) {
	item, err := s.items.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("item was not found")
		}
		return nil, err
	}
	return item, nil
}

func (s *service) detailByID(ctx context.Context, id int64) (*Detail, error) {
	d, err := s.r.DetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("booking was not found")
		}
		return nil, err
	}
	return d, nil
}
