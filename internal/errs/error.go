package errs

import (
	"errors"
	"fmt"

	"github.com/Astemirdum/stockroom-service/internal/model"
)

var (
	ErrItemNotFound    = errors.New("item not found")
	ErrRequestNotFound = errors.New("request not found")
	ErrSessionNotFound = errors.New("reconciliation session not found")

	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrReasonRequired  = errors.New("rejection reason is required")

	ErrAlreadyDecided    = errors.New("request already decided")
	ErrNotApproved       = errors.New("request is not approved")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrWouldUnderflow    = errors.New("total would drop below reserved")
)

// InsufficientStockError carries the availability snapshot observed inside
// the failed reservation so the caller can explain the rejection.
type InsufficientStockError struct {
	ItemID    string `json:"itemId"`
	Requested int    `json:"requested"`
	Total     int    `json:"total"`
	Reserved  int    `json:"reserved"`
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: item %s requested %d, available %d of %d",
		e.ItemID, e.Requested, e.Total-e.Reserved, e.Total)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// AlreadyDecidedError reports the status the request already holds.
type AlreadyDecidedError struct {
	RequestID string       `json:"requestId"`
	Status    model.Status `json:"status"`
}

func (e *AlreadyDecidedError) Error() string {
	return fmt.Sprintf("request %s already decided: %s", e.RequestID, e.Status)
}

func (e *AlreadyDecidedError) Is(target error) bool {
	return target == ErrAlreadyDecided
}

// NotApprovedError reports the actual status of a request that cannot close.
type NotApprovedError struct {
	RequestID string       `json:"requestId"`
	Status    model.Status `json:"status"`
}

func (e *NotApprovedError) Error() string {
	return fmt.Sprintf("request %s is not approved: %s", e.RequestID, e.Status)
}

func (e *NotApprovedError) Is(target error) bool {
	return target == ErrNotApproved
}

// WouldUnderflowError reports the counters that block a stock adjustment.
type WouldUnderflowError struct {
	ItemID   string `json:"itemId"`
	Delta    int    `json:"delta"`
	Total    int    `json:"total"`
	Reserved int    `json:"reserved"`
}

func (e *WouldUnderflowError) Error() string {
	return fmt.Sprintf("adjust %s by %d: total %d would drop below reserved %d",
		e.ItemID, e.Delta, e.Total, e.Reserved)
}

func (e *WouldUnderflowError) Is(target error) bool {
	return target == ErrWouldUnderflow
}
