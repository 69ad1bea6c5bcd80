// Package dispatch formats order messages and resolves the external
// hand-off for each contact channel. The hand-off is fire-and-forget:
// once the customer is sent to the external surface there is no retry
// and no delivery confirmation.
package dispatch

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/activshop/storefront/internal/config"
	"github.com/activshop/storefront/internal/domain"
)

const whatsAppSendURL = "https://api.whatsapp.com/send"

// Result describes the single hand-off for an order. URL is the
// external destination to open. When CopyRequired is true the channel
// has no programmatic send and Message must be surfaced to the
// customer for manual copy-paste.
type Result struct {
	Channel      domain.Channel `json:"channel"`
	URL          string         `json:"url"`
	Message      string         `json:"message"`
	CopyRequired bool           `json:"copyRequired"`
}

// Dispatcher resolves orders against the shop's fixed channel
// endpoints.
type Dispatcher struct {
	channels config.ChannelsConfig
	now      func() time.Time
	logger   *zap.Logger
}

// NewDispatcher creates a dispatcher on the system clock.
func NewDispatcher(channels config.ChannelsConfig, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{channels: channels, now: time.Now, logger: logger}
}

// NewDispatcherAt creates a dispatcher with a fixed clock, for tests.
func NewDispatcherAt(channels config.ChannelsConfig, now func() time.Time, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{channels: channels, now: now, logger: logger}
}

// Dispatch produces the formatted message and the hand-off target for
// the order's channel. An unsupported channel is reported as an error,
// never a panic.
func (d *Dispatcher) Dispatch(o domain.Order) (Result, error) {
	message := FormatMessage(o, d.now())

	switch o.ContactMethod {
	case domain.ChannelWhatsApp:
		// Always the shop's number, never the customer's.
		phone := digitsOnly(d.channels.WhatsAppNumber)
		target := fmt.Sprintf("%s?phone=%s&text=%s", whatsAppSendURL, phone, url.QueryEscape(message))
		d.logger.Info("Order dispatched", zap.String("order_id", o.ID), zap.String("channel", "whatsapp"))
		return Result{
			Channel: domain.ChannelWhatsApp,
			URL:     target,
			Message: message,
		}, nil

	case domain.ChannelFacebook:
		d.logger.Info("Order dispatched", zap.String("order_id", o.ID), zap.String("channel", "facebook"))
		return Result{
			Channel:      domain.ChannelFacebook,
			URL:          d.channels.FacebookPageURL,
			Message:      message,
			CopyRequired: true,
		}, nil

	case domain.ChannelInstagram:
		d.logger.Info("Order dispatched", zap.String("order_id", o.ID), zap.String("channel", "instagram"))
		return Result{
			Channel:      domain.ChannelInstagram,
			URL:          d.channels.InstagramPageURL,
			Message:      message,
			CopyRequired: true,
		}, nil

	default:
		return Result{}, fmt.Errorf("unsupported channel: %q", o.ContactMethod)
	}
}

func digitsOnly(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
