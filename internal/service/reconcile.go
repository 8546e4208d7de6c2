package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Astemirdum/stockroom-service/internal/errs"
	"github.com/Astemirdum/stockroom-service/internal/model"
)

// A reconciliation session is a report artifact: it snapshots total counts at
// start, accumulates scans, and never writes back to the ledger. Sessions
// live in memory and are dropped once the report is produced.
type session struct {
	id        string
	startedAt time.Time
	mu        sync.Mutex
	records   map[string]*model.ScanRecord
}

type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*session),
	}
}

func (st *sessionStore) get(sessionID string) (*session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[sessionID]
	if !ok {
		return nil, errs.ErrSessionNotFound
	}
	return s, nil
}

// StartReconciliation snapshots total_quantity per item. The expected count
// deliberately includes loaned-out units.
func (s *Service) StartReconciliation(ctx context.Context, itemIDs []string) (string, error) {
	records := make(map[string]*model.ScanRecord, len(itemIDs))
	for _, itemID := range itemIDs {
		item, err := s.repo.GetItem(ctx, itemID)
		if err != nil {
			return "", err
		}
		records[item.ID] = &model.ScanRecord{
			ItemID:           item.ID,
			ExpectedQuantity: item.TotalQuantity,
			Status:           model.ScanUnseen,
		}
	}

	ssn := &session{
		id:        uuid.NewString(),
		startedAt: time.Now().UTC(),
		records:   records,
	}
	s.sessions.mu.Lock()
	s.sessions.sessions[ssn.id] = ssn
	s.sessions.mu.Unlock()

	s.log.Info("reconciliation started",
		zap.String("session_id", ssn.id), zap.Int("items", len(itemIDs)))
	return ssn.id, nil
}

// RecordScan accumulates one scan event (delta is +1 per scan, or an
// explicit manual correction) and recomputes the record's status.
func (s *Service) RecordScan(_ context.Context, sessionID, itemID string, delta int) (model.ScanRecord, error) {
	ssn, err := s.sessions.get(sessionID)
	if err != nil {
		return model.ScanRecord{}, err
	}

	ssn.mu.Lock()
	defer ssn.mu.Unlock()

	rec, ok := ssn.records[itemID]
	if !ok {
		return model.ScanRecord{}, errs.ErrItemNotFound
	}
	rec.ScannedQuantity += delta
	if rec.ScannedQuantity < 0 {
		rec.ScannedQuantity = 0
	}
	switch {
	case rec.ScannedQuantity < rec.ExpectedQuantity:
		rec.Status = model.ScanUnder
	case rec.ScannedQuantity > rec.ExpectedQuantity:
		rec.Status = model.ScanOver
	default:
		rec.Status = model.ScanChecked
	}
	return *rec, nil
}

// CloseReconciliation produces the report and discards the session.
func (s *Service) CloseReconciliation(_ context.Context, sessionID string) (model.ReconciliationReport, error) {
	s.sessions.mu.Lock()
	ssn, ok := s.sessions.sessions[sessionID]
	if ok {
		delete(s.sessions.sessions, sessionID)
	}
	s.sessions.mu.Unlock()
	if !ok {
		return model.ReconciliationReport{}, errs.ErrSessionNotFound
	}

	ssn.mu.Lock()
	defer ssn.mu.Unlock()

	records := make([]model.ScanRecord, 0, len(ssn.records))
	for _, rec := range ssn.records {
		records = append(records, *rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].ItemID < records[j].ItemID
	})

	report := model.ReconciliationReport{
		SessionID: ssn.id,
		StartedAt: ssn.startedAt,
		ClosedAt:  time.Now().UTC(),
		Records:   records,
	}
	s.log.Info("reconciliation closed",
		zap.String("session_id", sessionID), zap.Int("records", len(records)))
	return report, nil
}
