package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/stockroom-service/internal/errs"
	"github.com/Astemirdum/stockroom-service/internal/model"
	"github.com/Astemirdum/stockroom-service/internal/service"
)

// fakeRepo mirrors the repository's transactional semantics in memory: every
// operation is atomic under one mutex, transitions are status-guarded, the
// reserve check and the status change apply together or not at all.
type fakeRepo struct {
	mu       sync.Mutex
	items    map[string]model.Item
	requests map[string]model.Request
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		items:    make(map[string]model.Item),
		requests: make(map[string]model.Request),
	}
}

func (f *fakeRepo) CreateItem(_ context.Context, req model.CreateItemRequest) (model.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item := model.Item{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Kind:          req.Kind,
		TotalQuantity: req.TotalQuantity,
		CreatedAt:     time.Now().UTC(),
	}
	f.items[item.ID] = item
	return item, nil
}

func (f *fakeRepo) GetItem(_ context.Context, itemID string) (model.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[itemID]
	if !ok {
		return model.Item{}, errs.ErrItemNotFound
	}
	return item, nil
}

func (f *fakeRepo) ListItems(_ context.Context) ([]model.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := make([]model.Item, 0, len(f.items))
	for _, item := range f.items {
		items = append(items, item)
	}
	return items, nil
}

func (f *fakeRepo) AdjustTotal(_ context.Context, itemID string, delta int, _ string) (model.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[itemID]
	if !ok {
		return model.Item{}, errs.ErrItemNotFound
	}
	next := item.TotalQuantity + delta
	if next < item.ReservedQuantity || next < 0 {
		return model.Item{}, &errs.WouldUnderflowError{
			ItemID:   itemID,
			Delta:    delta,
			Total:    item.TotalQuantity,
			Reserved: item.ReservedQuantity,
		}
	}
	item.TotalQuantity = next
	f.items[itemID] = item
	return item, nil
}

func (f *fakeRepo) CreateRequest(_ context.Context, req model.CreateRequestRequest) (model.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[req.ItemID]
	if !ok {
		return model.Request{}, errs.ErrItemNotFound
	}
	if req.Quantity > item.TotalQuantity {
		return model.Request{}, errs.ErrInvalidQuantity
	}
	r := model.Request{
		ID:          uuid.NewString(),
		ItemID:      req.ItemID,
		RequesterID: req.RequesterID,
		Quantity:    req.Quantity,
		Status:      model.StatusPending,
		DueAt:       req.DueAt,
		CreatedAt:   time.Now().UTC(),
	}
	f.requests[r.ID] = r
	return r, nil
}

func (f *fakeRepo) GetRequest(_ context.Context, requestID string) (model.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[requestID]
	if !ok {
		return model.Request{}, errs.ErrRequestNotFound
	}
	return r, nil
}

func (f *fakeRepo) ListRequests(_ context.Context, requesterID string) ([]model.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Request, 0, len(f.requests))
	for _, r := range f.requests {
		if requesterID == "" || r.RequesterID == requesterID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) ApproveRequest(_ context.Context, requestID, deciderID string) (model.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[requestID]
	if !ok {
		return model.Request{}, errs.ErrRequestNotFound
	}
	if r.Status != model.StatusPending {
		return model.Request{}, &errs.AlreadyDecidedError{RequestID: requestID, Status: r.Status}
	}
	item := f.items[r.ItemID]
	if item.ReservedQuantity+r.Quantity > item.TotalQuantity {
		return model.Request{}, &errs.InsufficientStockError{
			ItemID:    r.ItemID,
			Requested: r.Quantity,
			Total:     item.TotalQuantity,
			Reserved:  item.ReservedQuantity,
		}
	}
	item.ReservedQuantity += r.Quantity
	f.items[r.ItemID] = item

	now := time.Now().UTC()
	r.Status = model.StatusApproved
	r.DecidedAt = &now
	r.DeciderID = &deciderID
	f.requests[requestID] = r
	return r, nil
}

func (f *fakeRepo) RejectRequest(_ context.Context, requestID, deciderID, reason string) (model.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[requestID]
	if !ok {
		return model.Request{}, errs.ErrRequestNotFound
	}
	if r.Status != model.StatusPending {
		return model.Request{}, &errs.AlreadyDecidedError{RequestID: requestID, Status: r.Status}
	}
	now := time.Now().UTC()
	r.Status = model.StatusRejected
	r.DecidedAt = &now
	r.DeciderID = &deciderID
	r.DecisionReason = &reason
	f.requests[requestID] = r
	return r, nil
}

func (f *fakeRepo) CloseRequest(_ context.Context, requestID string) (model.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[requestID]
	if !ok {
		return model.Request{}, errs.ErrRequestNotFound
	}
	if r.Status != model.StatusApproved {
		return model.Request{}, &errs.NotApprovedError{RequestID: requestID, Status: r.Status}
	}
	item := f.items[r.ItemID]
	item.ReservedQuantity -= r.Quantity
	if item.ReservedQuantity < 0 {
		item.ReservedQuantity = 0
	}
	f.items[r.ItemID] = item

	now := time.Now().UTC()
	r.Status = item.Kind.CloseStatus()
	r.ClosedAt = &now
	f.requests[requestID] = r
	return r, nil
}

func newTestService(t *testing.T) (*service.Service, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	return service.NewService(repo, zap.NewNop()), repo
}

func mustItem(t *testing.T, svc *service.Service, total int, kind model.ItemKind) model.Item {
	t.Helper()
	item, err := svc.CreateItem(context.Background(), model.CreateItemRequest{
		Name:          "drill",
		Kind:          kind,
		TotalQuantity: total,
	})
	require.NoError(t, err)
	return item
}

func mustRequest(t *testing.T, svc *service.Service, itemID string, qty int) model.Request {
	t.Helper()
	req, err := svc.CreateRequest(context.Background(), model.CreateRequestRequest{
		ItemID:      itemID,
		Quantity:    qty,
		RequesterID: "alice",
	})
	require.NoError(t, err)
	require.Equal(t, model.StatusPending, req.Status)
	return req
}

func TestService_CreateRequestValidation(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()
	item := mustItem(t, svc, 5, model.KindAsset)

	_, err := svc.CreateRequest(ctx, model.CreateRequestRequest{ItemID: item.ID, Quantity: 0, RequesterID: "alice"})
	require.ErrorIs(t, err, errs.ErrInvalidQuantity)

	_, err = svc.CreateRequest(ctx, model.CreateRequestRequest{ItemID: item.ID, Quantity: -2, RequesterID: "alice"})
	require.ErrorIs(t, err, errs.ErrInvalidQuantity)

	_, err = svc.CreateRequest(ctx, model.CreateRequestRequest{ItemID: item.ID, Quantity: 6, RequesterID: "alice"})
	require.ErrorIs(t, err, errs.ErrInvalidQuantity)

	_, err = svc.CreateRequest(ctx, model.CreateRequestRequest{ItemID: uuid.NewString(), Quantity: 1, RequesterID: "alice"})
	require.ErrorIs(t, err, errs.ErrItemNotFound)
}

// Scenario: total=5, approve qty 3, then a second qty-3 approval must fail
// and leave the ledger untouched.
func TestService_ApproveReservesStock(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()
	item := mustItem(t, svc, 5, model.KindAsset)

	reqA := mustRequest(t, svc, item.ID, 3)
	res, err := svc.Decide(ctx, reqA.ID, "admin", model.DecisionApprove, "")
	require.NoError(t, err)
	require.Equal(t, model.StatusApproved, res.Status)

	av, err := svc.GetAvailability(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, 3, av.Reserved)
	require.Equal(t, 2, av.Available)

	reqB := mustRequest(t, svc, item.ID, 3)
	_, err = svc.Decide(ctx, reqB.ID, "admin", model.DecisionApprove, "")
	require.ErrorIs(t, err, errs.ErrInsufficientStock)

	var detail *errs.InsufficientStockError
	require.ErrorAs(t, err, &detail)
	require.Equal(t, 3, detail.Requested)
	require.Equal(t, 5, detail.Total)
	require.Equal(t, 3, detail.Reserved)

	// request B stays PENDING, ledger unchanged
	got, err := svc.GetRequest(ctx, reqB.ID)
	require.NoError(t, err)
	require.Equal(t, model.StatusPending, got.Status)

	av, err = svc.GetAvailability(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, 3, av.Reserved)
}

// Two simultaneous approvals over quantity 3 against total 5: exactly one
// commits, reserved ends at 3, never 6.
func TestService_ConcurrentApprovals(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()
	item := mustItem(t, svc, 5, model.KindAsset)

	reqA := mustRequest(t, svc, item.ID, 3)
	reqB := mustRequest(t, svc, item.ID, 3)

	var mu sync.Mutex
	var approved, insufficient int

	gg, gctx := errgroup.WithContext(ctx)
	for _, id := range []string{reqA.ID, reqB.ID} {
		id := id
		gg.Go(func() error {
			_, err := svc.Decide(gctx, id, "admin", model.DecisionApprove, "")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				approved++
				return nil
			}
			require.ErrorIs(t, err, errs.ErrInsufficientStock)
			insufficient++
			return nil
		})
	}
	require.NoError(t, gg.Wait())

	require.Equal(t, 1, approved)
	require.Equal(t, 1, insufficient)

	av, err := svc.GetAvailability(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, 3, av.Reserved)
}

// For any sequence of concurrent approvals the approved-and-unreleased sum
// never exceeds total stock.
func TestService_NoOversell(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()
	item := mustItem(t, svc, 10, model.KindSupply)

	ids := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		req := mustRequest(t, svc, item.ID, 1+i%3)
		ids = append(ids, req.ID)
	}

	gg := errgroup.Group{}
	for _, id := range ids {
		id := id
		gg.Go(func() error {
			_, err := svc.Decide(ctx, id, "admin", model.DecisionApprove, "")
			if err != nil && !errors.Is(err, errs.ErrInsufficientStock) {
				return err
			}
			return nil
		})
	}
	require.NoError(t, gg.Wait())

	sum := 0
	reqs, err := svc.ListRequests(ctx, "")
	require.NoError(t, err)
	for _, r := range reqs {
		if r.Status == model.StatusApproved {
			sum += r.Quantity
		}
	}
	av, err := svc.GetAvailability(ctx, item.ID)
	require.NoError(t, err)
	require.LessOrEqual(t, sum, 10)
	require.Equal(t, sum, av.Reserved)
	require.GreaterOrEqual(t, av.Available, 0)
}

// Exactly one of two racing decisions on the same request wins; the loser
// observes AlreadyDecided with the winner's status attached.
func TestService_SingleDecision(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()
	item := mustItem(t, svc, 5, model.KindAsset)
	req := mustRequest(t, svc, item.ID, 2)

	var mu sync.Mutex
	var wins, conflicts int

	gg := errgroup.Group{}
	gg.Go(func() error {
		_, err := svc.Decide(ctx, req.ID, "admin-1", model.DecisionApprove, "")
		mu.Lock()
		defer mu.Unlock()
		if err == nil {
			wins++
			return nil
		}
		require.ErrorIs(t, err, errs.ErrAlreadyDecided)
		conflicts++
		return nil
	})
	gg.Go(func() error {
		_, err := svc.Decide(ctx, req.ID, "admin-2", model.DecisionReject, "not eligible")
		mu.Lock()
		defer mu.Unlock()
		if err == nil {
			wins++
			return nil
		}
		require.ErrorIs(t, err, errs.ErrAlreadyDecided)
		conflicts++
		return nil
	})
	require.NoError(t, gg.Wait())

	require.Equal(t, 1, wins)
	require.Equal(t, 1, conflicts)

	got, err := svc.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	require.True(t, got.Status.Terminal() || got.Status == model.StatusApproved)
}

// Scenario: close releases stock once; a second close reports NotApproved
// and does not double-release.
func TestService_CloseIdempotence(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()
	item := mustItem(t, svc, 10, model.KindAsset)
	req := mustRequest(t, svc, item.ID, 2)

	_, err := svc.Decide(ctx, req.ID, "admin", model.DecisionApprove, "")
	require.NoError(t, err)

	res, err := svc.CloseRequest(ctx, req.ID)
	require.NoError(t, err)
	require.Equal(t, model.StatusReturned, res.Status)
	require.NotNil(t, res.ClosedAt)

	av, err := svc.GetAvailability(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, 0, av.Reserved)

	_, err = svc.CloseRequest(ctx, req.ID)
	require.ErrorIs(t, err, errs.ErrNotApproved)

	av, err = svc.GetAvailability(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, 0, av.Reserved)
}

func TestService_SupplyRequestCompletes(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()
	item := mustItem(t, svc, 4, model.KindSupply)
	req := mustRequest(t, svc, item.ID, 4)

	_, err := svc.Decide(ctx, req.ID, "admin", model.DecisionApprove, "")
	require.NoError(t, err)

	res, err := svc.CloseRequest(ctx, req.ID)
	require.NoError(t, err)
	require.Equal(t, model.StatusCompleted, res.Status)
}

// Scenario: rejecting with an empty reason fails and leaves the request
// PENDING.
func TestService_RejectRequiresReason(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()
	item := mustItem(t, svc, 5, model.KindAsset)
	req := mustRequest(t, svc, item.ID, 1)

	_, err := svc.Decide(ctx, req.ID, "admin", model.DecisionReject, "")
	require.ErrorIs(t, err, errs.ErrReasonRequired)

	got, err := svc.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	require.Equal(t, model.StatusPending, got.Status)

	res, err := svc.Decide(ctx, req.ID, "admin", model.DecisionReject, "broken")
	require.NoError(t, err)
	require.Equal(t, model.StatusRejected, res.Status)
	require.NotNil(t, res.DecisionReason)
	require.Equal(t, "broken", *res.DecisionReason)

	// a rejected request cannot close
	_, err = svc.CloseRequest(ctx, req.ID)
	require.ErrorIs(t, err, errs.ErrNotApproved)
}

func TestService_AdjustStock(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()
	item := mustItem(t, svc, 5, model.KindAsset)

	req := mustRequest(t, svc, item.ID, 4)
	_, err := svc.Decide(ctx, req.ID, "admin", model.DecisionApprove, "")
	require.NoError(t, err)

	// write-off below the reservation is refused
	_, err = svc.AdjustStock(ctx, item.ID, -2, "admin")
	require.ErrorIs(t, err, errs.ErrWouldUnderflow)

	av, err := svc.AdjustStock(ctx, item.ID, -1, "admin")
	require.NoError(t, err)
	require.Equal(t, 4, av.Total)
	require.Equal(t, 4, av.Reserved)
	require.Equal(t, 0, av.Available)

	av, err = svc.AdjustStock(ctx, item.ID, 6, "admin")
	require.NoError(t, err)
	require.Equal(t, 10, av.Total)

	_, err = svc.AdjustStock(ctx, uuid.NewString(), 1, "admin")
	require.ErrorIs(t, err, errs.ErrItemNotFound)
}

func TestService_DecideNotFound(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	_, err := svc.Decide(context.Background(), uuid.NewString(), "admin", model.DecisionApprove, "")
	require.ErrorIs(t, err, errs.ErrRequestNotFound)
}
