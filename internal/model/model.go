package model

import (
	"time"
)

type ItemKind string

const (
	KindAsset  ItemKind = "ASSET"
	KindSupply ItemKind = "SUPPLY"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusReturned  Status = "RETURNED"
	StatusCompleted Status = "COMPLETED"
)

// Terminal reports whether no further transition may leave the status.
func (s Status) Terminal() bool {
	switch s {
	case StatusRejected, StatusReturned, StatusCompleted:
		return true
	}
	return false
}

// CloseStatus is the terminal-success status for a given item kind:
// asset loans are returned, supply requests are completed.
func (k ItemKind) CloseStatus() Status {
	if k == KindSupply {
		return StatusCompleted
	}
	return StatusReturned
}

type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

type Item struct {
	ID               string    `json:"itemId" db:"id"`
	Name             string    `json:"name" db:"name"`
	Kind             ItemKind  `json:"kind" db:"kind"`
	TotalQuantity    int       `json:"totalQuantity" db:"total_quantity"`
	ReservedQuantity int       `json:"reservedQuantity" db:"reserved_quantity"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
}

// Availability is the display-only read model. Available is always derived,
// never stored.
type Availability struct {
	ItemID    string `json:"itemId"`
	Total     int    `json:"total"`
	Reserved  int    `json:"reserved"`
	Available int    `json:"available"`
}

func (i Item) Availability() Availability {
	return Availability{
		ItemID:    i.ID,
		Total:     i.TotalQuantity,
		Reserved:  i.ReservedQuantity,
		Available: i.TotalQuantity - i.ReservedQuantity,
	}
}

type Request struct {
	ID             string     `json:"requestId" db:"id"`
	ItemID         string     `json:"itemId" db:"item_id"`
	RequesterID    string     `json:"requesterId" db:"requester_id"`
	Quantity       int        `json:"quantity" db:"quantity"`
	Status         Status     `json:"status" db:"status"`
	DueAt          *time.Time `json:"dueAt,omitempty" db:"due_at"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	DecidedAt      *time.Time `json:"decidedAt,omitempty" db:"decided_at"`
	ClosedAt       *time.Time `json:"closedAt,omitempty" db:"closed_at"`
	DeciderID      *string    `json:"deciderId,omitempty" db:"decider_id"`
	DecisionReason *string    `json:"decisionReason,omitempty" db:"decision_reason"`
}

type CreateItemRequest struct {
	Name          string   `json:"name" validate:"required"`
	Kind          ItemKind `json:"kind" validate:"required,oneof=ASSET SUPPLY"`
	TotalQuantity int      `json:"totalQuantity" validate:"gte=0"`
}

type CreateRequestRequest struct {
	ItemID      string     `json:"itemId" validate:"required"`
	Quantity    int        `json:"quantity"`
	DueAt       *time.Time `json:"dueAt,omitempty"`
	RequesterID string     `validate:"required"`
}

type DecideRequest struct {
	Decision  Decision `json:"decision" validate:"required,oneof=APPROVE REJECT"`
	Reason    string   `json:"reason,omitempty"`
	DeciderID string   `validate:"required"`
}

type AdjustStockRequest struct {
	Delta   int    `json:"delta" validate:"required"`
	AdminID string `validate:"required"`
}

// DecisionEvent is published to kafka after a committed transition.
type DecisionEvent struct {
	RequestID string `json:"requestId"`
	ItemID    string `json:"itemId"`
	Status    Status `json:"status"`
	DeciderID string `json:"deciderId,omitempty"`
	Quantity  int    `json:"quantity"`
}

type ScanStatus string

const (
	ScanUnseen  ScanStatus = "unseen"
	ScanChecked ScanStatus = "checked"
	ScanOver    ScanStatus = "over"
	ScanUnder   ScanStatus = "under"
)

// ScanRecord accumulates scan events for one item inside a reconciliation
// session. ExpectedQuantity is a snapshot of the item's total at session
// start and is compared against total stock, not availability.
type ScanRecord struct {
	ItemID           string     `json:"itemId"`
	ExpectedQuantity int        `json:"expectedQuantity"`
	ScannedQuantity  int        `json:"scannedQuantity"`
	Status           ScanStatus `json:"status"`
}

type StartReconciliationRequest struct {
	ItemIDs []string `json:"itemIds" validate:"required,min=1"`
}

type RecordScanRequest struct {
	ItemID string `json:"itemId" validate:"required"`
	Delta  int    `json:"delta"`
}

type ScanMsg struct {
	SessionID string `json:"sessionId"`
	ItemID    string `json:"itemId"`
	Delta     int    `json:"delta"`
}

type ReconciliationReport struct {
	SessionID string       `json:"sessionId"`
	StartedAt time.Time    `json:"startedAt"`
	ClosedAt  time.Time    `json:"closedAt"`
	Records   []ScanRecord `json:"records"`
}
