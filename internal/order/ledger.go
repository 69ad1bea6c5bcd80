package order

import (
	stderrors "errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/activshop/storefront/internal/domain"
	"github.com/activshop/storefront/internal/storage"
	"github.com/activshop/storefront/pkg/errors"
)

// Ledger is the durable, append-only record of all orders. Orders are
// never deleted; only their status field changes after creation.
type Ledger interface {
	// Save appends the order and returns it unchanged.
	Save(order domain.Order) (domain.Order, error)
	// UpdateStatus sets the status of the order with the given id. It
	// returns false when no order matches. An illegal transition is
	// rejected with ErrInvalidStateTransition and the ledger is left
	// untouched.
	UpdateStatus(orderID string, status domain.OrderStatus) (bool, error)
	// List returns all orders in append (chronological) order.
	List() ([]domain.Order, error)
}

// FileLedger keeps the order list as one JSON document in local
// storage, read-modify-written on every change. Corrupt or absent
// storage reads as an empty list.
type FileLedger struct {
	store  storage.Store
	key    string
	logger *zap.Logger
}

// NewFileLedger returns a ledger persisted under key.
func NewFileLedger(store storage.Store, key string, logger *zap.Logger) *FileLedger {
	return &FileLedger{store: store, key: key, logger: logger}
}

func (l *FileLedger) Save(order domain.Order) (domain.Order, error) {
	orders := l.load()
	orders = append(orders, order)
	if err := l.store.Write(l.key, orders); err != nil {
		return domain.Order{}, fmt.Errorf("failed to save order %s: %w", order.ID, err)
	}
	return order, nil
}

func (l *FileLedger) UpdateStatus(orderID string, status domain.OrderStatus) (bool, error) {
	orders := l.load()
	for i := range orders {
		if orders[i].ID != orderID {
			continue
		}
		if !orders[i].Status.CanTransitionTo(status) {
			return false, &errors.ErrInvalidStateTransition{
				From: orders[i].Status,
				To:   status,
			}
		}
		orders[i].Status = status
		if err := l.store.Write(l.key, orders); err != nil {
			return false, fmt.Errorf("failed to update order %s: %w", orderID, err)
		}
		return true, nil
	}
	return false, nil
}

func (l *FileLedger) List() ([]domain.Order, error) {
	return l.load(), nil
}

// load reads the persisted list, degrading to empty on absence or
// corruption.
func (l *FileLedger) load() []domain.Order {
	var orders []domain.Order
	if err := l.store.Read(l.key, &orders); err != nil {
		if !stderrors.Is(err, storage.ErrNotExist) {
			l.logger.Warn("Discarding unreadable order ledger", zap.String("key", l.key), zap.Error(err))
		}
		return []domain.Order{}
	}
	return orders
}
