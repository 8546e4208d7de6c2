package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/stockroom-service/internal/errs"
	"github.com/Astemirdum/stockroom-service/internal/model"
)

type Repository interface {
	CreateItem(ctx context.Context, req model.CreateItemRequest) (model.Item, error)
	GetItem(ctx context.Context, itemID string) (model.Item, error)
	ListItems(ctx context.Context) ([]model.Item, error)
	AdjustTotal(ctx context.Context, itemID string, delta int, adminID string) (model.Item, error)

	CreateRequest(ctx context.Context, req model.CreateRequestRequest) (model.Request, error)
	GetRequest(ctx context.Context, requestID string) (model.Request, error)
	ListRequests(ctx context.Context, requesterID string) ([]model.Request, error)
	ApproveRequest(ctx context.Context, requestID, deciderID string) (model.Request, error)
	RejectRequest(ctx context.Context, requestID, deciderID, reason string) (model.Request, error)
	CloseRequest(ctx context.Context, requestID string) (model.Request, error)
}

type repository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewRepository(db *pgxpool.Pool, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	itemsTableName    = `items`
	requestsTableName = `requests`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const txAttempts = 3

// withTx runs fn inside a serializable transaction, retrying a bounded
// number of times on serialization failures and deadlocks. The status-guarded
// updates inside fn make a retried attempt safe.
func (r *repository) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	var err error
	for i := 0; i < txAttempts; i++ {
		err = r.runTx(ctx, fn)
		if err == nil || !retryable(err) {
			return err
		}
		r.log.Warn("tx retry", zap.Int("attempt", i+1), zap.Error(err))
	}
	return err
}

func (r *repository) runTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func retryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected
}

func (r *repository) CreateItem(ctx context.Context, req model.CreateItemRequest) (model.Item, error) {
	query, args, err := qb.Insert(itemsTableName).
		Columns("id", "name", "kind", "total_quantity", "reserved_quantity").
		Values(uuid.New(), req.Name, req.Kind, req.TotalQuantity, 0).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Item{}, err
	}
	return r.queryItem(ctx, r.db, query, args...)
}

func (r *repository) GetItem(ctx context.Context, itemID string) (model.Item, error) {
	query, args, err := qb.Select("id", "name", "kind", "total_quantity", "reserved_quantity", "created_at").
		From(itemsTableName).
		Where(sq.Eq{"id": itemID}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Item{}, err
	}
	return r.queryItem(ctx, r.db, query, args...)
}

func (r *repository) ListItems(ctx context.Context) ([]model.Item, error) {
	query, args, err := qb.Select("id", "name", "kind", "total_quantity", "reserved_quantity", "created_at").
		From(itemsTableName).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return pgx.CollectRows(rows, pgx.RowToStructByName[model.Item])
}

// AdjustTotal applies an admin restock or write-off. The guard keeps
// total_quantity from dropping below reserved_quantity or zero.
func (r *repository) AdjustTotal(ctx context.Context, itemID string, delta int, adminID string) (model.Item, error) {
	var item model.Item
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		q := `
update items
    set total_quantity = total_quantity + $2
where id = $1
  and total_quantity + $2 >= reserved_quantity
  and total_quantity + $2 >= 0
returning *`
		rows, err := tx.Query(ctx, q, itemID, delta)
		if err != nil {
			return err
		}
		item, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Item])
		if err == nil {
			return nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		cur, err := r.getItemTx(ctx, tx, itemID)
		if err != nil {
			return err
		}
		return &errs.WouldUnderflowError{
			ItemID:   itemID,
			Delta:    delta,
			Total:    cur.TotalQuantity,
			Reserved: cur.ReservedQuantity,
		}
	})
	if err != nil {
		return model.Item{}, err
	}
	r.log.Debug("stock adjusted",
		zap.String("item_id", itemID), zap.Int("delta", delta), zap.String("admin_id", adminID))
	return item, nil
}

func (r *repository) CreateRequest(ctx context.Context, req model.CreateRequestRequest) (model.Request, error) {
	var res model.Request
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		item, err := r.getItemTx(ctx, tx, req.ItemID)
		if err != nil {
			return err
		}
		// Checked once at creation; the reserve at approval time is authoritative.
		if req.Quantity > item.TotalQuantity {
			return errs.ErrInvalidQuantity
		}
		query, args, err := qb.Insert(requestsTableName).
			Columns("id", "item_id", "requester_id", "quantity", "status", "due_at", "created_at").
			Values(uuid.New(), req.ItemID, req.RequesterID, req.Quantity, model.StatusPending, req.DueAt, time.Now().UTC()).
			Suffix("returning *").
			ToSql()
		if err != nil {
			return err
		}
		res, err = r.queryRequest(ctx, tx, query, args...)
		return err
	})
	if err != nil {
		return model.Request{}, err
	}
	return res, nil
}

func (r *repository) GetRequest(ctx context.Context, requestID string) (model.Request, error) {
	query, args, err := qb.Select(requestColumns...).
		From(requestsTableName).
		Where(sq.Eq{"id": requestID}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Request{}, err
	}
	return r.queryRequest(ctx, r.db, query, args...)
}

var requestColumns = []string{
	"id", "item_id", "requester_id", "quantity", "status",
	"due_at", "created_at", "decided_at", "closed_at", "decider_id", "decision_reason",
}

func (r *repository) ListRequests(ctx context.Context, requesterID string) ([]model.Request, error) {
	q := qb.Select(requestColumns...).
		From(requestsTableName).
		OrderBy("created_at")
	if requesterID != "" {
		q = q.Where(sq.Eq{"requester_id": requesterID})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return pgx.CollectRows(rows, pgx.RowToStructByName[model.Request])
}

// ApproveRequest commits the PENDING -> APPROVED transition and the stock
// reservation as one atomic unit. On InsufficientStock the request stays
// PENDING and the error carries the counters observed inside the transaction.
func (r *repository) ApproveRequest(ctx context.Context, requestID, deciderID string) (model.Request, error) {
	var res model.Request
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		req, err := r.lockRequest(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if req.Status != model.StatusPending {
			return &errs.AlreadyDecidedError{RequestID: requestID, Status: req.Status}
		}

		reserveQ := `
update items
    set reserved_quantity = reserved_quantity + $2
where id = $1 and reserved_quantity + $2 <= total_quantity`
		ct, err := tx.Exec(ctx, reserveQ, req.ItemID, req.Quantity)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			item, err := r.getItemTx(ctx, tx, req.ItemID)
			if err != nil {
				return err
			}
			return &errs.InsufficientStockError{
				ItemID:    req.ItemID,
				Requested: req.Quantity,
				Total:     item.TotalQuantity,
				Reserved:  item.ReservedQuantity,
			}
		}

		q := `
update requests
    set status = $2, decided_at = now(), decider_id = $3
where id = $1 and status = 'PENDING'
returning *`
		res, err = r.queryRequest(ctx, tx, q, requestID, model.StatusApproved, deciderID)
		return err
	})
	if err != nil {
		return model.Request{}, err
	}
	return res, nil
}

func (r *repository) RejectRequest(ctx context.Context, requestID, deciderID, reason string) (model.Request, error) {
	var res model.Request
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		q := `
update requests
    set status = 'REJECTED', decided_at = now(), decider_id = $2, decision_reason = $3
where id = $1 and status = 'PENDING'
returning *`
		var err error
		res, err = r.queryRequest(ctx, tx, q, requestID, deciderID, reason)
		if err == nil {
			return nil
		}
		if !errors.Is(err, errs.ErrRequestNotFound) {
			return err
		}
		req, err := r.lockRequest(ctx, tx, requestID)
		if err != nil {
			return err
		}
		return &errs.AlreadyDecidedError{RequestID: requestID, Status: req.Status}
	})
	if err != nil {
		return model.Request{}, err
	}
	return res, nil
}

// CloseRequest commits the APPROVED -> RETURNED/COMPLETED transition and the
// reservation release atomically. The terminal label follows the item kind.
func (r *repository) CloseRequest(ctx context.Context, requestID string) (model.Request, error) {
	var res model.Request
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		req, err := r.lockRequest(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if req.Status != model.StatusApproved {
			return &errs.NotApprovedError{RequestID: requestID, Status: req.Status}
		}
		item, err := r.getItemTx(ctx, tx, req.ItemID)
		if err != nil {
			return err
		}

		releaseQ := `
update items
    set reserved_quantity = greatest(reserved_quantity - $2, 0)
where id = $1`
		if _, err := tx.Exec(ctx, releaseQ, req.ItemID, req.Quantity); err != nil {
			return err
		}

		q := `
update requests
    set status = $2, closed_at = now()
where id = $1 and status = 'APPROVED'
returning *`
		res, err = r.queryRequest(ctx, tx, q, requestID, item.Kind.CloseStatus())
		return err
	})
	if err != nil {
		return model.Request{}, err
	}
	return res, nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *repository) queryItem(ctx context.Context, q querier, query string, args ...any) (model.Item, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return model.Item{}, err
	}
	defer rows.Close()

	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Item])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Item{}, errs.ErrItemNotFound
		}
		r.log.Error("queryItem", zap.String("q", query), zap.Any("args", args))
		return model.Item{}, err
	}
	return item, nil
}

func (r *repository) queryRequest(ctx context.Context, q querier, query string, args ...any) (model.Request, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return model.Request{}, err
	}
	defer rows.Close()

	req, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Request])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Request{}, errs.ErrRequestNotFound
		}
		r.log.Error("queryRequest", zap.String("q", query), zap.Any("args", args))
		return model.Request{}, err
	}
	return req, nil
}

func (r *repository) getItemTx(ctx context.Context, tx pgx.Tx, itemID string) (model.Item, error) {
	q := `
select id, name, kind, total_quantity, reserved_quantity, created_at
from items
where id = $1
for update`
	return r.queryItem(ctx, tx, q, itemID)
}

func (r *repository) lockRequest(ctx context.Context, tx pgx.Tx, requestID string) (model.Request, error) {
	q := `
select id, item_id, requester_id, quantity, status,
       due_at, created_at, decided_at, closed_at, decider_id, decision_reason
from requests
where id = $1
for update`
	return r.queryRequest(ctx, tx, q, requestID)
}
