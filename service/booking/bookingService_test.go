// service/booking/booking_service_test.go
package bookingsvc

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/Wh1teW1nter/java-shareit/apperr"
	"github.com/Wh1teW1nter/java-shareit/model"
)

type usersMock struct {
	byIDFn func(ctx context.Context, id int64) (*model.User, error)
}

func (m *usersMock) ByID(ctx context.Context, id int64) (*model.User, error) {
	if m.byIDFn == nil {
		return &model.User{ID: id, Name: "user", Email: "user@example.com"}, nil
	}
	return m.byIDFn(ctx, id)
}

type itemsMock struct {
	byIDFn func(ctx context.Context, id int64) (*model.Item, error)
}

func (m *itemsMock) ByID(ctx context.Context, id int64) (*model.Item, error) {
	if m.byIDFn == nil {
		return &model.Item{ID: id, Name: "drill", Available: true, OwnerID: 1}, nil
	}
	return m.byIDFn(ctx, id)
}

type listCall struct {
	method string
	limit  int
	offset int
}

type repoMock struct {
	insertFn     func(ctx context.Context, b *model.Booking) error
	detailFn     func(ctx context.Context, id int64) (*Detail, error)
	updateFn     func(ctx context.Context, id int64, status model.BookingStatus) (bool, error)
	lastListCall *listCall
}

var _ Repo = (*repoMock)(nil)

func (m *repoMock) Insert(ctx context.Context, b *model.Booking) error {
	if m.insertFn == nil {
		b.ID = 1
		return nil
	}
	return m.insertFn(ctx, b)
}

func (m *repoMock) DetailByID(ctx context.Context, id int64) (*Detail, error) {
	if m.detailFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.detailFn(ctx, id)
}

func (m *repoMock) UpdateStatusIfWaiting(ctx context.Context, id int64, status model.BookingStatus) (bool, error) {
	if m.updateFn == nil {
		return true, nil
	}
	return m.updateFn(ctx, id, status)
}

func (m *repoMock) record(method string, limit, offset int) ([]Detail, error) {
	m.lastListCall = &listCall{method: method, limit: limit, offset: offset}
	return []Detail{}, nil
}

func (m *repoMock) AllByBooker(ctx context.Context, bookerID int64, limit, offset int) ([]Detail, error) {
	return m.record("AllByBooker", limit, offset)
}
func (m *repoMock) PastByBooker(ctx context.Context, bookerID int64, now time.Time, limit, offset int) ([]Detail, error) {
	return m.record("PastByBooker", limit, offset)
}
func (m *repoMock) FutureByBooker(ctx context.Context, bookerID int64, now time.Time, limit, offset int) ([]Detail, error) {
	return m.record("FutureByBooker", limit, offset)
}
func (m *repoMock) CurrentByBooker(ctx context.Context, bookerID int64, now time.Time, limit, offset int) ([]Detail, error) {
	return m.record("CurrentByBooker", limit, offset)
}
func (m *repoMock) StatusByBooker(ctx context.Context, bookerID int64, status model.BookingStatus, limit, offset int) ([]Detail, error) {
	return m.record("StatusByBooker:"+string(status), limit, offset)
}
func (m *repoMock) AllByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]Detail, error) {
	return m.record("AllByOwner", limit, offset)
}
func (m *repoMock) PastByOwner(ctx context.Context, ownerID int64, now time.Time, limit, offset int) ([]Detail, error) {
	return m.record("PastByOwner", limit, offset)
}
func (m *repoMock) FutureByOwner(ctx context.Context, ownerID int64, now time.Time, limit, offset int) ([]Detail, error) {
	return m.record("FutureByOwner", limit, offset)
}
func (m *repoMock) CurrentByOwner(ctx context.Context, ownerID int64, now time.Time, limit, offset int) ([]Detail, error) {
	return m.record("CurrentByOwner", limit, offset)
}
func (m *repoMock) StatusByOwner(ctx context.Context, ownerID int64, status model.BookingStatus, limit, offset int) ([]Detail, error) {
	return m.record("StatusByOwner:"+string(status), limit, offset)
}
func futureWindow() (time.Time, time.Time) {
	now := time.Now()
	return now.Add(time.Hour), now.Add(24 * time.Hour)
}

// --- create ---

func TestCreate_Waiting(t *testing.T) {
	ctx := context.Background()
	start, end := futureWindow()

	var inserted *model.Booking
	m := &repoMock{
		insertFn: func(ctx context.Context, b *model.Booking) error {
			b.ID = 7
			inserted = b
			return nil
		},
	}
	svc := New(m, &usersMock{}, &itemsMock{})

	d, err := svc.Create(ctx, CreateReq{ItemID: 5, Start: start, End: end}, 2)
	require.NoError(t, err)
	require.NotNil(t, inserted)
	require.Equal(t, model.BookingWaiting, d.Status)
	require.Equal(t, int64(7), d.ID)
	require.Equal(t, int64(2), d.BookerID)
	require.Equal(t, int64(5), d.ItemID)
	require.Equal(t, int64(1), d.ItemOwnerID)
	require.Equal(t, "drill", d.ItemName)
}

func TestCreate_UnknownUser(t *testing.T) {
	users := &usersMock{
		byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return nil, apperr.NotFound("user was not found")
		},
	}
	svc := New(&repoMock{}, users, &itemsMock{})

	start, end := futureWindow()
	_, err := svc.Create(context.Background(), CreateReq{ItemID: 5, Start: start, End: end}, 99)
	require.Error(t, err)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCreate_UnknownItem(t *testing.T) {
	items := &itemsMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Item, error) {
			return nil, pgx.ErrNoRows
		},
	}
	svc := New(&repoMock{}, &usersMock{}, items)

	start, end := futureWindow()
	_, err := svc.Create(context.Background(), CreateReq{ItemID: 5, Start: start, End: end}, 2)
	require.Error(t, err)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCreate_UnavailableItem(t *testing.T) {
	items := &itemsMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Item, error) {
			return &model.Item{ID: id, Available: false, OwnerID: 1}, nil
		},
	}
	svc := New(&repoMock{}, &usersMock{}, items)

	start, end := futureWindow()
	_, err := svc.Create(context.Background(), CreateReq{ItemID: 5, Start: start, End: end}, 2)
	require.Error(t, err)
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCreate_OwnItem(t *testing.T) {
	inserted := false
	m := &repoMock{
		insertFn: func(ctx context.Context, b *model.Booking) error {
			inserted = true
			return nil
		},
	}
	svc := New(m, &usersMock{}, &itemsMock{}) // item owned by user 1

	start, end := futureWindow()
	_, err := svc.Create(context.Background(), CreateReq{ItemID: 5, Start: start, End: end}, 1)
	require.Error(t, err)
	require.Equal(t, apperr.KindAccessDenied, apperr.KindOf(err))
	require.False(t, inserted, "booking must not be persisted")
}

func TestCheckTiming(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name       string
		start, end time.Time
		wantMsg    string
	}{
		{"end in the past", now.Add(-2 * time.Hour), now.Add(-time.Hour),
			"unable to create booking with end time in the past"},
		{"end before start", now.Add(2 * time.Hour), now.Add(time.Hour),
			"unable to create booking with end time before start time"},
		{"end equals start", now.Add(time.Hour), now.Add(time.Hour),
			"unable to create booking with end time equal to start time"},
		{"start in the past", now.Add(-time.Hour), now.Add(time.Hour),
			"unable to create booking with start time in the past"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := checkTiming(c.start, c.end, now)
			require.Error(t, err)
			require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			require.Equal(t, c.wantMsg, err.Error())
		})
	}

	require.NoError(t, checkTiming(now.Add(time.Hour), now.Add(2*time.Hour), now))
}

// --- approval ---

func waitingDetail(id int64) *Detail {
	return &Detail{
		Booking: model.Booking{
			ID: id, ItemID: 5, BookerID: 2, Status: model.BookingWaiting,
			Start: time.Now().Add(time.Hour), End: time.Now().Add(2 * time.Hour),
		},
		ItemName:    "drill",
		ItemOwnerID: 1,
	}
}

func TestSetApproval_Approve(t *testing.T) {
	m := &repoMock{
		detailFn: func(ctx context.Context, id int64) (*Detail, error) { return waitingDetail(id), nil },
	}
	svc := New(m, &usersMock{}, &itemsMock{})

	d, err := svc.SetApproval(context.Background(), 1, true, 1)
	require.NoError(t, err)
	require.Equal(t, model.BookingApproved, d.Status)
}

func TestSetApproval_Reject(t *testing.T) {
	var written model.BookingStatus
	m := &repoMock{
		detailFn: func(ctx context.Context, id int64) (*Detail, error) { return waitingDetail(id), nil },
		updateFn: func(ctx context.Context, id int64, status model.BookingStatus) (bool, error) {
			written = status
			return true, nil
		},
	}
	svc := New(m, &usersMock{}, &itemsMock{})

	d, err := svc.SetApproval(context.Background(), 1, false, 1)
	require.NoError(t, err)
	require.Equal(t, model.BookingRejected, d.Status)
	require.Equal(t, model.BookingRejected, written)
}

func TestSetApproval_ByBooker(t *testing.T) {
	m := &repoMock{
		detailFn: func(ctx context.Context, id int64) (*Detail, error) { return waitingDetail(id), nil },
	}
	svc := New(m, &usersMock{}, &itemsMock{})

	_, err := svc.SetApproval(context.Background(), 1, true, 2)
	require.Error(t, err)
	require.Equal(t, apperr.KindAccessDenied, apperr.KindOf(err))
}

func TestSetApproval_ByThirdParty(t *testing.T) {
	m := &repoMock{
		detailFn: func(ctx context.Context, id int64) (*Detail, error) { return waitingDetail(id), nil },
	}
	svc := New(m, &usersMock{}, &itemsMock{})

	_, err := svc.SetApproval(context.Background(), 1, true, 3)
	require.Error(t, err)
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestSetApproval_NotWaiting(t *testing.T) {
	m := &repoMock{
		detailFn: func(ctx context.Context, id int64) (*Detail, error) {
			d := waitingDetail(id)
			d.Status = model.BookingApproved
			return d, nil
		},
	}
	svc := New(m, &usersMock{}, &itemsMock{})

	_, err := svc.SetApproval(context.Background(), 1, true, 1)
	require.Error(t, err)
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestSetApproval_LostRace(t *testing.T) {
	// the read sees WAITING but the conditional write loses to a
	// concurrent approval
	m := &repoMock{
		detailFn: func(ctx context.Context, id int64) (*Detail, error) { return waitingDetail(id), nil },
		updateFn: func(ctx context.Context, id int64, status model.BookingStatus) (bool, error) {
			return false, nil
		},
	}
	svc := New(m, &usersMock{}, &itemsMock{})

	_, err := svc.SetApproval(context.Background(), 1, true, 1)
	require.Error(t, err)
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestSetApproval_BookingNotFound(t *testing.T) {
	svc := New(&repoMock{}, &usersMock{}, &itemsMock{})

	_, err := svc.SetApproval(context.Background(), 404, true, 1)
	require.Error(t, err)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

// --- find ---

func TestFindByID_Access(t *testing.T) {
	m := &repoMock{
		detailFn: func(ctx context.Context, id int64) (*Detail, error) { return waitingDetail(id), nil },
	}
	svc := New(m, &usersMock{}, &itemsMock{})
	ctx := context.Background()

	_, err := svc.FindByID(ctx, 1, 2) // booker
	require.NoError(t, err)

	_, err = svc.FindByID(ctx, 1, 1) // owner
	require.NoError(t, err)

	_, err = svc.FindByID(ctx, 1, 3) // bystander
	require.Error(t, err)
	require.Equal(t, apperr.KindAccessDenied, apperr.KindOf(err))
}

// --- listings ---

func TestParseState(t *testing.T) {
	for _, token := range []string{"ALL", "CURRENT", "PAST", "FUTURE", "WAITING", "REJECTED"} {
		s, err := ParseState(token)
		require.NoError(t, err)
		require.Equal(t, State(token), s)
	}
	for _, token := range []string{"all", "APPROVED", "SOMETHING", ""} {
		_, err := ParseState(token)
		require.Error(t, err, token)
		require.Equal(t, apperr.KindUnsupportedState, apperr.KindOf(err))
		require.Equal(t, "Unknown state: UNSUPPORTED_STATUS", err.Error())
	}
}

func TestFindForBooker_Dispatch(t *testing.T) {
	cases := []struct {
		state State
		want  string
	}{
		{StateAll, "AllByBooker"},
		{StatePast, "PastByBooker"},
		{StateFuture, "FutureByBooker"},
		{StateCurrent, "CurrentByBooker"},
		{StateWaiting, "StatusByBooker:WAITING"},
		{StateRejected, "StatusByBooker:REJECTED"},
	}
	for _, c := range cases {
		m := &repoMock{}
		svc := New(m, &usersMock{}, &itemsMock{})

		_, err := svc.FindForBooker(context.Background(), c.state, 2, 0, 10)
		require.NoError(t, err)
		require.NotNil(t, m.lastListCall)
		require.Equal(t, c.want, m.lastListCall.method)
		require.Equal(t, 10, m.lastListCall.limit)
		require.Equal(t, 0, m.lastListCall.offset)
	}
}

func TestFindForOwner_Dispatch(t *testing.T) {
	m := &repoMock{}
	svc := New(m, &usersMock{}, &itemsMock{})

	_, err := svc.FindForOwner(context.Background(), StateWaiting, 1, 0, 10)
	require.NoError(t, err)
	require.Equal(t, "StatusByOwner:WAITING", m.lastListCall.method)
}

func TestList_PageRounding(t *testing.T) {
	// from=25 size=10 lands on page 2, i.e. row offset 20
	m := &repoMock{}
	svc := New(m, &usersMock{}, &itemsMock{})

	_, err := svc.FindForBooker(context.Background(), StateAll, 2, 25, 10)
	require.NoError(t, err)
	require.Equal(t, 20, m.lastListCall.offset)

	_, err = svc.FindForBooker(context.Background(), StateAll, 2, 5, 10)
	require.NoError(t, err)
	require.Equal(t, 0, m.lastListCall.offset)
}

func TestList_UnknownUser(t *testing.T) {
	users := &usersMock{
		byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return nil, apperr.NotFound("user was not found")
		},
	}
	svc := New(&repoMock{}, users, &itemsMock{})

	_, err := svc.FindForBooker(context.Background(), StateAll, 99, 0, 10)
	require.Error(t, err)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
