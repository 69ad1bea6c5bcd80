package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/activshop/storefront/internal/cart"
	"github.com/activshop/storefront/internal/catalog"
	"github.com/activshop/storefront/internal/dispatch"
	"github.com/activshop/storefront/internal/domain"
	"github.com/activshop/storefront/internal/order"
	"github.com/activshop/storefront/internal/remotelog"
	"github.com/activshop/storefront/pkg/errors"
)

// CheckoutRequest carries the customer's checkout form.
type CheckoutRequest struct {
	ClientInfo    domain.ClientInfo
	PlatformInfo  domain.PlatformInfo
	ContactMethod domain.Channel
	Message       string
}

// CheckoutResult is the saved order plus its channel hand-off. Flow is
// the terminal state of the checkout attempt: FlowSuccess on a
// completed submission, FlowError when the save or dispatch failed,
// FlowIdle when validation rejected the request before it started.
type CheckoutResult struct {
	Order    domain.Order
	Dispatch dispatch.Result
	Flow     FlowState
}

// CheckoutService turns a cart and a checkout form into a persisted,
// dispatched order. The local ledger save is authoritative; the remote
// mirror is fired without awaiting its result.
type CheckoutService struct {
	catalog    *catalog.Catalog
	builder    *order.Builder
	ledger     order.Ledger
	dispatcher *dispatch.Dispatcher
	remote     *remotelog.Client
	logger     *zap.Logger
}

// NewCheckoutService creates a checkout service. remote may be nil to
// disable mirroring.
func NewCheckoutService(
	cat *catalog.Catalog,
	builder *order.Builder,
	ledger order.Ledger,
	dispatcher *dispatch.Dispatcher,
	remote *remotelog.Client,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		catalog:    cat,
		builder:    builder,
		ledger:     ledger,
		dispatcher: dispatcher,
		remote:     remote,
		logger:     logger,
	}
}

// Submit validates the request, builds the order, saves it to the
// ledger, mirrors it remotely (best effort) and resolves the channel
// hand-off. Validation failures reject the request before anything is
// written.
func (s *CheckoutService) Submit(ctx context.Context, c *cart.Store, req CheckoutRequest) (CheckoutResult, error) {
	flow := NewFlow()

	if err := s.validate(c, req); err != nil {
		return CheckoutResult{Flow: flow.State()}, err
	}
	s.advance(flow, FlowChannelSelected)
	s.advance(flow, FlowFormValid)
	s.advance(flow, FlowSubmitting)

	message := req.Message
	if message == "" {
		message = fmt.Sprintf("Commande de %s via %s", req.ClientInfo.Nom, req.ContactMethod)
	}

	o := s.builder.Build(order.BuildInput{
		Items:         order.ItemsFromCart(c.Items(), s.catalog),
		ClientInfo:    req.ClientInfo,
		PlatformInfo:  req.PlatformInfo,
		ContactMethod: req.ContactMethod,
		Message:       message,
	})

	saved, err := s.ledger.Save(o)
	if err != nil {
		s.advance(flow, FlowError)
		s.logger.Error("Failed to save order", zap.String("order_id", o.ID), zap.Error(err))
		return CheckoutResult{Flow: flow.State()}, fmt.Errorf("failed to save order: %w", err)
	}

	// Mirror to the remote log without awaiting it. A mirror failure
	// never rolls back the local save.
	if s.remote != nil {
		go func(o domain.Order) {
			mirrorCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
			defer cancel()
			if err := s.remote.AddOrder(mirrorCtx, o); err != nil {
				s.logger.Warn("Failed to mirror order to remote log", zap.String("order_id", o.ID), zap.Error(err))
			}
		}(saved)
	}

	result, err := s.dispatcher.Dispatch(saved)
	if err != nil {
		s.advance(flow, FlowError)
		s.logger.Error("Failed to dispatch order", zap.String("order_id", saved.ID), zap.Error(err))
		return CheckoutResult{Flow: flow.State()}, err
	}

	if err := c.Clear(); err != nil {
		// The order is already saved and dispatched; a stale cart is
		// only a cosmetic leftover.
		s.logger.Warn("Failed to clear cart after checkout", zap.Error(err))
	}

	s.advance(flow, FlowSuccess)
	s.logger.Info("Order submitted",
		zap.String("order_id", saved.ID),
		zap.String("channel", string(saved.ContactMethod)),
		zap.Int64("total", saved.TotalAmount),
	)
	return CheckoutResult{Order: saved, Dispatch: result, Flow: flow.State()}, nil
}

// advance moves the flow one step. Submit only requests transitions
// the machine allows, so a rejection here is a programming error.
func (s *CheckoutService) advance(flow *Flow, next FlowState) {
	if err := flow.To(next); err != nil {
		s.logger.DPanic("Illegal checkout flow transition", zap.Error(err))
	}
}

// UpdateStatus applies a status change to the ledger and mirrors it.
func (s *CheckoutService) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (bool, error) {
	ok, err := s.ledger.UpdateStatus(orderID, status)
	if err != nil || !ok {
		return ok, err
	}

	if s.remote != nil {
		go func() {
			mirrorCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
			defer cancel()
			if err := s.remote.UpdateOrderStatus(mirrorCtx, orderID, status); err != nil {
				s.logger.Warn("Failed to mirror status update", zap.String("order_id", orderID), zap.Error(err))
			}
		}()
	}
	return true, nil
}

func (s *CheckoutService) validate(c *cart.Store, req CheckoutRequest) error {
	if !req.ContactMethod.IsValid() {
		return &errors.ErrValidation{Field: "contactMethod", Message: fmt.Sprintf("unsupported channel %q", req.ContactMethod)}
	}
	if req.ClientInfo.Nom == "" {
		return &errors.ErrValidation{Field: "nom", Message: "required"}
	}
	if req.ClientInfo.Telephone == "" {
		return &errors.ErrValidation{Field: "telephone", Message: "required"}
	}
	if req.ClientInfo.Ville == "" {
		return &errors.ErrValidation{Field: "ville", Message: "required"}
	}
	handle, _ := req.PlatformInfo.Handle(req.ContactMethod)
	if handle == "" {
		return &errors.ErrValidation{Field: string(req.ContactMethod), Message: "contact handle required for the chosen channel"}
	}
	if c.TotalItems() == 0 {
		return &errors.ErrValidation{Field: "cart", Message: "cart is empty"}
	}
	return nil
}
