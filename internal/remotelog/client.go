// Package remotelog talks to the spreadsheet-backed order mirror. The
// mirror is best-effort: every error it returns is treated by callers
// as a soft failure, logged and never propagated to the customer.
package remotelog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/activshop/storefront/internal/domain"
)

// Client posts orders to the spreadsheet web app endpoint.
type Client struct {
	scriptURL  string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the given script URL. An empty URL
// yields a nil client, which disables mirroring.
func NewClient(scriptURL string, logger *zap.Logger) *Client {
	if scriptURL == "" {
		return nil
	}
	return &Client{
		scriptURL: strings.TrimSuffix(scriptURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

// actionRequest is the envelope of the mirror's request protocol.
type actionRequest struct {
	Action  string         `json:"action"`
	Data    *MirroredOrder `json:"data,omitempty"`
	OrderID string         `json:"orderId,omitempty"`
	Status  string         `json:"status,omitempty"`
}

// MirroredOrder is the 13-field row the mirror stores per order. The
// row is flat: items is a single "name xQty, name xQty" string, not a
// list. getOrders returns rows in this exact shape.
type MirroredOrder struct {
	OrderID         string `json:"orderId"`
	Timestamp       string `json:"timestamp"`
	ClientName      string `json:"clientName"`
	ClientPhone     string `json:"clientPhone"`
	ClientEmail     string `json:"clientEmail"`
	ClientAddress   string `json:"clientAddress"`
	ClientCity      string `json:"clientCity"`
	ContactMethod   string `json:"contactMethod"`
	PlatformContact string `json:"platformContact"`
	Items           string `json:"items"`
	TotalAmount     int64  `json:"totalAmount"`
	Status          string `json:"status"`
	Message         string `json:"message"`
}

type actionResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// AddOrder mirrors a new order.
func (c *Client) AddOrder(ctx context.Context, o domain.Order) error {
	items := make([]string, len(o.Items))
	for i, item := range o.Items {
		items[i] = fmt.Sprintf("%s x%d", item.ProductName, item.Quantity)
	}

	req := actionRequest{
		Action: "addOrder",
		Data: &MirroredOrder{
			OrderID:         o.ID,
			Timestamp:       o.Timestamp,
			ClientName:      o.ClientInfo.Nom,
			ClientPhone:     o.ClientInfo.Telephone,
			ClientEmail:     o.ClientInfo.Email,
			ClientAddress:   o.ClientInfo.Adresse,
			ClientCity:      o.ClientInfo.Ville,
			ContactMethod:   string(o.ContactMethod),
			PlatformContact: o.PlatformContact(),
			Items:           strings.Join(items, ", "),
			TotalAmount:     o.TotalAmount,
			Status:          string(o.Status),
			Message:         o.Message,
		},
	}

	_, err := c.post(ctx, req)
	return err
}

// UpdateOrderStatus mirrors a status change.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	req := actionRequest{
		Action:  "updateOrderStatus",
		OrderID: orderID,
		Status:  string(status),
	}
	_, err := c.post(ctx, req)
	return err
}

// GetOrders fetches all mirrored rows.
func (c *Client) GetOrders(ctx context.Context) ([]MirroredOrder, error) {
	url := c.scriptURL + "?action=getOrders"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	body, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Orders []MirroredOrder `json:"orders"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return resp.Orders, nil
}

func (c *Client) post(ctx context.Context, req actionRequest) (*actionResponse, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.scriptURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	body, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	var resp actionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if !resp.Success {
		return &resp, fmt.Errorf("remote log rejected %s: %s", req.Action, resp.Error)
	}
	return &resp, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("remote log error: status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
