// service/request/request_service_test.go
package requestsvc

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Wh1teW1nter/java-shareit/apperr"
	"github.com/Wh1teW1nter/java-shareit/model"
)

type repoMock struct {
	createFn   func(ctx context.Context, req *model.ItemRequest) error
	byIDFn     func(ctx context.Context, id int64) (*model.ItemRequest, error)
	byReqFn    func(ctx context.Context, requesterID int64) ([]model.ItemRequest, error)
	byOthersFn func(ctx context.Context, requesterID int64, limit, offset int) ([]model.ItemRequest, error)
}

var _ Repo = (*repoMock)(nil)

func (m *repoMock) Create(ctx context.Context, req *model.ItemRequest) error {
	if m.createFn == nil {
		req.ID = 1
		return nil
	}
	return m.createFn(ctx, req)
}

func (m *repoMock) ByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	if m.byIDFn == nil {
		return &model.ItemRequest{ID: id, Description: "need a drill", RequesterID: 2, Created: time.Now()}, nil
	}
	return m.byIDFn(ctx, id)
}

func (m *repoMock) ByRequester(ctx context.Context, requesterID int64) ([]model.ItemRequest, error) {
	if m.byReqFn == nil {
		return nil, nil
	}
	return m.byReqFn(ctx, requesterID)
}

func (m *repoMock) ByOtherRequesters(ctx context.Context, requesterID int64, limit, offset int) ([]model.ItemRequest, error) {
	if m.byOthersFn == nil {
		return nil, nil
	}
	return m.byOthersFn(ctx, requesterID, limit, offset)
}

type usersMock struct{}

func (usersMock) ByID(ctx context.Context, id int64) (*model.User, error) {
	return &model.User{ID: id, Name: "user"}, nil
}

type itemsMock struct {
	byRequestIDsFn func(ctx context.Context, requestIDs []int64) ([]model.Item, error)
	calls          int
}

func (m *itemsMock) ByRequestIDs(ctx context.Context, requestIDs []int64) ([]model.Item, error) {
	m.calls++
	if m.byRequestIDsFn == nil {
		return nil, nil
	}
	return m.byRequestIDsFn(ctx, requestIDs)
}

func int64Ptr(i int64) *int64 { return &i }

func TestCreate_StampsRequester(t *testing.T) {
	svc := New(&repoMock{}, usersMock{}, &itemsMock{})

	req, err := svc.Create(context.Background(), "need a drill", 2)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if req.RequesterID != 2 {
		t.Fatalf("requester not stamped: %+v", req)
	}
	if req.Created.IsZero() {
		t.Fatal("created timestamp not set")
	}
}

func TestOwn_GroupsAnswers(t *testing.T) {
	r := &repoMock{
		byReqFn: func(ctx context.Context, requesterID int64) ([]model.ItemRequest, error) {
			return []model.ItemRequest{
				{ID: 1, Description: "need a drill", RequesterID: requesterID},
				{ID: 2, Description: "need a ladder", RequesterID: requesterID},
			}, nil
		},
	}
	items := &itemsMock{
		byRequestIDsFn: func(ctx context.Context, requestIDs []int64) ([]model.Item, error) {
			return []model.Item{
				{ID: 10, Name: "drill", RequestID: int64Ptr(1)},
				{ID: 11, Name: "power drill", RequestID: int64Ptr(1)},
			}, nil
		},
	}
	svc := New(r, usersMock{}, items)

	out, err := svc.Own(context.Background(), 2)
	if err != nil {
		t.Fatalf("own: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("want 2 requests, got %d", len(out))
	}
	if len(out[0].Items) != 2 {
		t.Fatalf("want 2 answers for request 1, got %+v", out[0].Items)
	}
	if out[1].Items == nil || len(out[1].Items) != 0 {
		t.Fatalf("unanswered request must carry an empty slice, got %+v", out[1].Items)
	}
	if items.calls != 1 {
		t.Fatalf("want one batch query, got %d", items.calls)
	}
}

func TestOwn_NoRequests(t *testing.T) {
	items := &itemsMock{}
	svc := New(&repoMock{}, usersMock{}, items)

	out, err := svc.Own(context.Background(), 2)
	if err != nil {
		t.Fatalf("own: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("want empty slice, got %v", out)
	}
	if items.calls != 0 {
		t.Fatal("items must not be queried for an empty request set")
	}
}

func TestOthers_Paging(t *testing.T) {
	var gotLimit, gotOffset int
	r := &repoMock{
		byOthersFn: func(ctx context.Context, requesterID int64, limit, offset int) ([]model.ItemRequest, error) {
			gotLimit, gotOffset = limit, offset
			return nil, nil
		},
	}
	svc := New(r, usersMock{}, &itemsMock{})

	if _, err := svc.Others(context.Background(), 2, 15, 10); err != nil {
		t.Fatalf("others: %v", err)
	}
	if gotLimit != 10 || gotOffset != 10 {
		t.Fatalf("want limit 10 offset 10, got %d %d", gotLimit, gotOffset)
	}
}

func TestByID_NotFound(t *testing.T) {
	r := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.ItemRequest, error) {
			return nil, pgx.ErrNoRows
		},
	}
	svc := New(r, usersMock{}, &itemsMock{})

	_, err := svc.ByID(context.Background(), 404, 2)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("want not found, got %v", err)
	}
}
