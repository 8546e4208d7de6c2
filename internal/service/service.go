package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/stockroom-service/internal/errs"
	"github.com/Astemirdum/stockroom-service/internal/model"
	"github.com/Astemirdum/stockroom-service/internal/repository"
)

type Service struct {
	log      *zap.Logger
	repo     repository.Repository
	locks    *itemLocks
	sessions *sessionStore
}

func NewService(repo repository.Repository, log *zap.Logger) *Service {
	return &Service{
		log:      log,
		repo:     repo,
		locks:    newItemLocks(),
		sessions: newSessionStore(),
	}
}

func (s *Service) CreateItem(ctx context.Context, req model.CreateItemRequest) (model.Item, error) {
	return s.repo.CreateItem(ctx, req)
}

func (s *Service) ListItems(ctx context.Context) ([]model.Item, error) {
	return s.repo.ListItems(ctx)
}

// GetAvailability is a non-locking read for display. It may be stale; the
// decision path re-validates inside its own transaction.
func (s *Service) GetAvailability(ctx context.Context, itemID string) (model.Availability, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return model.Availability{}, err
	}
	return item.Availability(), nil
}

func (s *Service) AdjustStock(ctx context.Context, itemID string, delta int, adminID string) (model.Availability, error) {
	unlock := s.locks.lock(itemID)
	defer unlock()

	item, err := s.repo.AdjustTotal(ctx, itemID, delta, adminID)
	if err != nil {
		return model.Availability{}, err
	}
	return item.Availability(), nil
}

// CreateRequest records intent only. No stock is reserved until approval.
func (s *Service) CreateRequest(ctx context.Context, req model.CreateRequestRequest) (model.Request, error) {
	if req.Quantity <= 0 {
		return model.Request{}, errs.ErrInvalidQuantity
	}
	return s.repo.CreateRequest(ctx, req)
}

func (s *Service) GetRequest(ctx context.Context, requestID string) (model.Request, error) {
	return s.repo.GetRequest(ctx, requestID)
}

func (s *Service) ListRequests(ctx context.Context, requesterID string) ([]model.Request, error) {
	return s.repo.ListRequests(ctx, requesterID)
}

// Decide routes an approve/reject through the per-item exclusive section so
// that of two racing decisions exactly one wins and the reservation check
// reads settled counters.
func (s *Service) Decide(ctx context.Context, requestID, deciderID string, decision model.Decision, reason string) (model.Request, error) {
	if decision == model.DecisionReject && reason == "" {
		return model.Request{}, errs.ErrReasonRequired
	}

	req, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return model.Request{}, err
	}

	unlock := s.locks.lock(req.ItemID)
	defer unlock()

	var res model.Request
	switch decision {
	case model.DecisionApprove:
		res, err = s.repo.ApproveRequest(ctx, requestID, deciderID)
	case model.DecisionReject:
		res, err = s.repo.RejectRequest(ctx, requestID, deciderID, reason)
	default:
		return model.Request{}, errors.Errorf("unknown decision %q", decision)
	}
	if err != nil {
		return model.Request{}, err
	}
	s.log.Info("request decided",
		zap.String("request_id", res.ID),
		zap.String("status", string(res.Status)),
		zap.String("decider_id", deciderID))
	return res, nil
}

// CloseRequest releases the reservation and applies the terminal-success
// status. A second close observes NotApproved and releases nothing.
func (s *Service) CloseRequest(ctx context.Context, requestID string) (model.Request, error) {
	req, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return model.Request{}, err
	}

	unlock := s.locks.lock(req.ItemID)
	defer unlock()

	res, err := s.repo.CloseRequest(ctx, requestID)
	if err != nil {
		return model.Request{}, err
	}
	s.log.Info("request closed",
		zap.String("request_id", res.ID),
		zap.String("status", string(res.Status)))
	return res, nil
}
