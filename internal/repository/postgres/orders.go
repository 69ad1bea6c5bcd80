package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/activshop/storefront/internal/domain"
	"github.com/activshop/storefront/pkg/errors"
)

// OrderLedger is the postgres-backed order.Ledger, for deployments
// where the order log should outlive the instance's local disk.
//
// Schema:
//
//	CREATE TABLE orders (
//	    seq                BIGSERIAL PRIMARY KEY,
//	    id                 TEXT UNIQUE NOT NULL,
//	    created_at         TEXT NOT NULL,
//	    client_nom         TEXT NOT NULL,
//	    client_telephone   TEXT NOT NULL,
//	    client_email       TEXT NOT NULL DEFAULT '',
//	    client_adresse     TEXT NOT NULL,
//	    client_ville       TEXT NOT NULL,
//	    contact_method     TEXT NOT NULL,
//	    platform_whatsapp  TEXT NOT NULL DEFAULT '',
//	    platform_facebook  TEXT NOT NULL DEFAULT '',
//	    platform_instagram TEXT NOT NULL DEFAULT '',
//	    items              JSONB NOT NULL,
//	    total_amount       BIGINT NOT NULL,
//	    status             TEXT NOT NULL,
//	    message            TEXT NOT NULL DEFAULT ''
//	);
type OrderLedger struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderLedger creates a postgres-backed ledger.
func NewOrderLedger(db *sql.DB, logger *zap.Logger) *OrderLedger {
	return &OrderLedger{db: db, logger: logger}
}

func (l *OrderLedger) Save(order domain.Order) (domain.Order, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return domain.Order{}, fmt.Errorf("failed to marshal items: %w", err)
	}

	query := `
		INSERT INTO orders (
			id, created_at,
			client_nom, client_telephone, client_email, client_adresse, client_ville,
			contact_method, platform_whatsapp, platform_facebook, platform_instagram,
			items, total_amount, status, message
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err = l.db.Exec(query,
		order.ID,
		order.Timestamp,
		order.ClientInfo.Nom,
		order.ClientInfo.Telephone,
		order.ClientInfo.Email,
		order.ClientInfo.Adresse,
		order.ClientInfo.Ville,
		string(order.ContactMethod),
		order.PlatformInfo.WhatsApp,
		order.PlatformInfo.Facebook,
		order.PlatformInfo.Instagram,
		items,
		order.TotalAmount,
		string(order.Status),
		order.Message,
	)
	if err != nil {
		l.logger.Error("Failed to save order", zap.String("order_id", order.ID), zap.Error(err))
		return domain.Order{}, err
	}

	return order, nil
}

func (l *OrderLedger) UpdateStatus(orderID string, status domain.OrderStatus) (bool, error) {
	var current string
	err := l.db.QueryRow(`SELECT status FROM orders WHERE id = $1`, orderID).Scan(&current)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		l.logger.Error("Failed to get order status", zap.String("order_id", orderID), zap.Error(err))
		return false, err
	}

	if !domain.OrderStatus(current).CanTransitionTo(status) {
		return false, &errors.ErrInvalidStateTransition{
			From: domain.OrderStatus(current),
			To:   status,
		}
	}

	_, err = l.db.Exec(`UPDATE orders SET status = $2 WHERE id = $1`, orderID, string(status))
	if err != nil {
		l.logger.Error("Failed to update order status", zap.String("order_id", orderID), zap.Error(err))
		return false, err
	}
	return true, nil
}

func (l *OrderLedger) List() ([]domain.Order, error) {
	query := `
		SELECT id, created_at,
			client_nom, client_telephone, client_email, client_adresse, client_ville,
			contact_method, platform_whatsapp, platform_facebook, platform_instagram,
			items, total_amount, status, message
		FROM orders
		ORDER BY seq
	`

	rows, err := l.db.Query(query)
	if err != nil {
		l.logger.Error("Failed to list orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var o domain.Order
		var contactMethod, status string
		var items []byte

		err := rows.Scan(
			&o.ID,
			&o.Timestamp,
			&o.ClientInfo.Nom,
			&o.ClientInfo.Telephone,
			&o.ClientInfo.Email,
			&o.ClientInfo.Adresse,
			&o.ClientInfo.Ville,
			&contactMethod,
			&o.PlatformInfo.WhatsApp,
			&o.PlatformInfo.Facebook,
			&o.PlatformInfo.Instagram,
			&items,
			&o.TotalAmount,
			&status,
			&o.Message,
		)
		if err != nil {
			return nil, err
		}

		o.ContactMethod = domain.Channel(contactMethod)
		o.Status = domain.OrderStatus(status)
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal items for %s: %w", o.ID, err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
