package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/stockroom-service/internal/errs"
	"github.com/Astemirdum/stockroom-service/internal/model"
)

// Scenario: total=8; 3 scans -> under, 5 more -> checked, 1 more -> over.
// The ledger is untouched throughout.
func TestService_Reconciliation(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()
	item := mustItem(t, svc, 8, model.KindAsset)

	sessionID, err := svc.StartReconciliation(ctx, []string{item.ID})
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	var rec model.ScanRecord
	for i := 0; i < 3; i++ {
		rec, err = svc.RecordScan(ctx, sessionID, item.ID, 1)
		require.NoError(t, err)
	}
	require.Equal(t, 3, rec.ScannedQuantity)
	require.Equal(t, model.ScanUnder, rec.Status)

	for i := 0; i < 5; i++ {
		rec, err = svc.RecordScan(ctx, sessionID, item.ID, 1)
		require.NoError(t, err)
	}
	require.Equal(t, 8, rec.ScannedQuantity)
	require.Equal(t, model.ScanChecked, rec.Status)

	rec, err = svc.RecordScan(ctx, sessionID, item.ID, 1)
	require.NoError(t, err)
	require.Equal(t, 9, rec.ScannedQuantity)
	require.Equal(t, model.ScanOver, rec.Status)

	// manual decrement control
	rec, err = svc.RecordScan(ctx, sessionID, item.ID, -1)
	require.NoError(t, err)
	require.Equal(t, 8, rec.ScannedQuantity)
	require.Equal(t, model.ScanChecked, rec.Status)

	av, err := svc.GetAvailability(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, 8, av.Total)
	require.Equal(t, 0, av.Reserved)

	report, err := svc.CloseReconciliation(ctx, sessionID)
	require.NoError(t, err)
	require.Equal(t, sessionID, report.SessionID)
	require.Len(t, report.Records, 1)
	require.Equal(t, model.ScanChecked, report.Records[0].Status)
	require.False(t, report.ClosedAt.Before(report.StartedAt))

	// session is discarded with the report
	_, err = svc.RecordScan(ctx, sessionID, item.ID, 1)
	require.ErrorIs(t, err, errs.ErrSessionNotFound)
	_, err = svc.CloseReconciliation(ctx, sessionID)
	require.ErrorIs(t, err, errs.ErrSessionNotFound)
}

// Expected counts snapshot total stock at session start; approvals after the
// snapshot do not move the target.
func TestService_ReconciliationSnapshotsTotal(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()
	item := mustItem(t, svc, 5, model.KindAsset)

	req := mustRequest(t, svc, item.ID, 2)
	_, err := svc.Decide(ctx, req.ID, "admin", model.DecisionApprove, "")
	require.NoError(t, err)

	sessionID, err := svc.StartReconciliation(ctx, []string{item.ID})
	require.NoError(t, err)

	// expected is total (5), not available (3)
	rec, err := svc.RecordScan(ctx, sessionID, item.ID, 1)
	require.NoError(t, err)
	require.Equal(t, 5, rec.ExpectedQuantity)

	// restock after the snapshot does not change the session's target
	_, err = svc.AdjustStock(ctx, item.ID, 4, "admin")
	require.NoError(t, err)
	rec, err = svc.RecordScan(ctx, sessionID, item.ID, 1)
	require.NoError(t, err)
	require.Equal(t, 5, rec.ExpectedQuantity)
}

func TestService_ReconciliationUnknowns(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()
	item := mustItem(t, svc, 2, model.KindSupply)

	_, err := svc.StartReconciliation(ctx, []string{uuid.NewString()})
	require.ErrorIs(t, err, errs.ErrItemNotFound)

	sessionID, err := svc.StartReconciliation(ctx, []string{item.ID})
	require.NoError(t, err)

	// scanning an item outside the session's set
	_, err = svc.RecordScan(ctx, sessionID, uuid.NewString(), 1)
	require.ErrorIs(t, err, errs.ErrItemNotFound)

	_, err = svc.RecordScan(ctx, uuid.NewString(), item.ID, 1)
	require.ErrorIs(t, err, errs.ErrSessionNotFound)
}
