package handler

import (
	"context"

	"github.com/Astemirdum/stockroom-service/internal/model"
	"github.com/Astemirdum/stockroom-service/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type StockroomService interface {
	CreateItem(ctx context.Context, req model.CreateItemRequest) (model.Item, error)
	ListItems(ctx context.Context) ([]model.Item, error)
	GetAvailability(ctx context.Context, itemID string) (model.Availability, error)
	AdjustStock(ctx context.Context, itemID string, delta int, adminID string) (model.Availability, error)

	CreateRequest(ctx context.Context, req model.CreateRequestRequest) (model.Request, error)
	GetRequest(ctx context.Context, requestID string) (model.Request, error)
	ListRequests(ctx context.Context, requesterID string) ([]model.Request, error)
	Decide(ctx context.Context, requestID, deciderID string, decision model.Decision, reason string) (model.Request, error)
	CloseRequest(ctx context.Context, requestID string) (model.Request, error)

	StartReconciliation(ctx context.Context, itemIDs []string) (string, error)
	RecordScan(ctx context.Context, sessionID, itemID string, delta int) (model.ScanRecord, error)
	CloseReconciliation(ctx context.Context, sessionID string) (model.ReconciliationReport, error)
}

var _ StockroomService = (*service.Service)(nil)
