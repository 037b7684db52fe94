package requestsvc

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Wh1teW1nter/java-shareit/apperr"
	"github.com/Wh1teW1nter/java-shareit/model"
	"github.com/Wh1teW1nter/java-shareit/util/paging"
)

type Repo interface {
	Create(ctx context.Context, req *model.ItemRequest) error
	ByID(ctx context.Context, id int64) (*model.ItemRequest, error)
	ByRequester(ctx context.Context, requesterID int64) ([]model.ItemRequest, error)
	ByOtherRequesters(ctx context.Context, requesterID int64, limit, offset int) ([]model.ItemRequest, error)
}

type Users interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type Items interface {
	ByRequestIDs(ctx context.Context, requestIDs []int64) ([]model.Item, error)
}

type Service interface {
	Create(ctx context.Context, description string, userID int64) (*model.ItemRequest, error)

	// Own lists the user's requests, each annotated with the items
	// created to answer it.
	Own(ctx context.Context, userID int64) ([]model.RequestWithAnswers, error)

	// Others lists requests posted by other users, newest first.
	Others(ctx context.Context, userID int64, from, size int) ([]model.RequestWithAnswers, error)

	ByID(ctx context.Context, requestID, userID int64) (*model.RequestWithAnswers, error)
}

type service struct {
	r     Repo
	users Users
	items Items
}

func New(r Repo, users Users, items Items) Service {
	return &service{r: r, users: users, items: items}
}

func (s *service) Create(ctx context.Context, description string, userID int64) (*model.ItemRequest, error) {
	user, err := s.users.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	req := &model.ItemRequest{
		Description: description,
		RequesterID: user.ID,
		Created:     time.Now(),
	}
	if err := s.r.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) Own(ctx context.Context, userID int64) ([]model.RequestWithAnswers, error) {
	if _, err := s.users.ByID(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.r.ByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withAnswers(ctx, requests)
}

func (s *service) Others(ctx context.Context, userID int64, from, size int) ([]model.RequestWithAnswers, error) {
	if _, err := s.users.ByID(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.r.ByOtherRequesters(ctx, userID, size, paging.Offset(from, size))
	if err != nil {
		return nil, err
	}
	return s.withAnswers(ctx, requests)
}

func (s *service) ByID(ctx context.Context, requestID, userID int64) (*model.RequestWithAnswers, error) {
	if _, err := s.users.ByID(ctx, userID); err != nil {
		return nil, err
	}
	req, err := s.r.ByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("item request was not found")
		}
		return nil, err
	}
	annotated, err := s.withAnswers(ctx, []model.ItemRequest{*req})
	if err != nil {
		return nil, err
	}
	return &annotated[0], nil
}

// withAnswers batch-fetches the answering items for the whole request
// set in one query and groups them by request id.
func (s *service) withAnswers(ctx context.Context, requests []model.ItemRequest) ([]model.RequestWithAnswers, error) {
	out := make([]model.RequestWithAnswers, 0, len(requests))
	if len(requests) == 0 {
		return out, nil
	}

	ids := make([]int64, 0, len(requests))
	for _, req := range requests {
		ids = append(ids, req.ID)
	}
	items, err := s.items.ByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byRequest := make(map[int64][]model.Item)
	for _, it := range items {
		if it.RequestID == nil {
			continue
		}
		byRequest[*it.RequestID] = append(byRequest[*it.RequestID], it)
	}

	for _, req := range requests {
		answers := byRequest[req.ID]
		if answers == nil {
			answers = []model.Item{}
		}
		out = append(out, model.RequestWithAnswers{ItemRequest: req, Items: answers})
	}
	return out, nil
}
