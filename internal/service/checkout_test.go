package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/activshop/storefront/internal/cart"
	"github.com/activshop/storefront/internal/catalog"
	"github.com/activshop/storefront/internal/config"
	"github.com/activshop/storefront/internal/dispatch"
	"github.com/activshop/storefront/internal/domain"
	"github.com/activshop/storefront/internal/order"
	"github.com/activshop/storefront/internal/remotelog"
	"github.com/activshop/storefront/internal/storage"
	"github.com/activshop/storefront/pkg/errors"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]domain.Product{
		{ID: 1, Nom: "Créatine", Categorie: domain.CategoryComplements, Prix: 5000},
		{ID: 2, Nom: "Corde à sauter", Categorie: domain.CategoryEquipements, Prix: 3500},
	})
}

func testRequest() CheckoutRequest {
	return CheckoutRequest{
		ClientInfo: domain.ClientInfo{
			Nom:       "Jean Dossou",
			Telephone: "+229 90000000",
			Adresse:   "Rue 12",
			Ville:     "Cotonou",
		},
		PlatformInfo:  domain.PlatformInfo{WhatsApp: "+229 90000000"},
		ContactMethod: domain.ChannelWhatsApp,
	}
}

type fixture struct {
	svc    *CheckoutService
	cart   *cart.Store
	ledger order.Ledger
}

func newFixture(t *testing.T, remote *remotelog.Client) fixture {
	t.Helper()
	logger := zap.NewNop()
	mem := storage.NewMemoryStore()
	ledger := order.NewFileLedger(mem, "activshop_orders", logger)

	now := func() time.Time { return time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC) }
	dispatcher := dispatch.NewDispatcherAt(config.ChannelsConfig{
		WhatsAppNumber:   "22948740015",
		FacebookPageURL:  "https://www.facebook.com/activshop",
		InstagramPageURL: "https://www.instagram.com/activshop_bj",
	}, now, logger)

	svc := NewCheckoutService(testCatalog(), order.NewBuilderAt(now, 1), ledger, dispatcher, remote, logger)

	c := cart.NewStore(mem, "cart_test", logger)
	require.NoError(t, c.Add(1))
	require.NoError(t, c.Add(1))
	require.NoError(t, c.Add(2))

	return fixture{svc: svc, cart: c, ledger: ledger}
}

func TestSubmit(t *testing.T) {
	f := newFixture(t, nil)

	res, err := f.svc.Submit(context.Background(), f.cart, testRequest())
	require.NoError(t, err)

	require.Equal(t, domain.OrderStatusPending, res.Order.Status)
	require.Equal(t, int64(13500), res.Order.TotalAmount)
	require.Equal(t, "Commande de Jean Dossou via whatsapp", res.Order.Message)
	require.Len(t, res.Order.Items, 2)

	require.Equal(t, domain.ChannelWhatsApp, res.Dispatch.Channel)
	require.Contains(t, res.Dispatch.URL, "phone=22948740015")
	require.Equal(t, FlowSuccess, res.Flow)

	// The ledger holds the order; the cart is cleared
	orders, err := f.ledger.List()
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, res.Order.ID, orders[0].ID)
	require.Equal(t, 0, f.cart.TotalItems())
}

func TestSubmitRejectsEmptyName(t *testing.T) {
	f := newFixture(t, nil)

	req := testRequest()
	req.ClientInfo.Nom = ""

	_, err := f.svc.Submit(context.Background(), f.cart, req)

	var vErr *errors.ErrValidation
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "nom", vErr.Field)

	// Rejected before any write: ledger untouched, cart intact
	orders, _ := f.ledger.List()
	require.Empty(t, orders)
	require.Equal(t, 3, f.cart.TotalItems())
}

type failingLedger struct{}

func (failingLedger) Save(domain.Order) (domain.Order, error) {
	return domain.Order{}, fmt.Errorf("disk full")
}

func (failingLedger) UpdateStatus(string, domain.OrderStatus) (bool, error) {
	return false, nil
}

func (failingLedger) List() ([]domain.Order, error) { return nil, nil }

func TestSubmitFlowStates(t *testing.T) {
	t.Run("validation rejection leaves the flow idle", func(t *testing.T) {
		f := newFixture(t, nil)
		req := testRequest()
		req.ClientInfo.Nom = ""

		res, err := f.svc.Submit(context.Background(), f.cart, req)
		require.Error(t, err)
		require.Equal(t, FlowIdle, res.Flow)
	})

	t.Run("save failure ends in error", func(t *testing.T) {
		f := newFixture(t, nil)
		f.svc.ledger = failingLedger{}

		res, err := f.svc.Submit(context.Background(), f.cart, testRequest())
		require.Error(t, err)
		require.Equal(t, FlowError, res.Flow)
		require.Equal(t, 3, f.cart.TotalItems(), "a failed submission must not clear the cart")
	})
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CheckoutRequest)
		field  string
	}{
		{"missing phone", func(r *CheckoutRequest) { r.ClientInfo.Telephone = "" }, "telephone"},
		{"missing city", func(r *CheckoutRequest) { r.ClientInfo.Ville = "" }, "ville"},
		{"unsupported channel", func(r *CheckoutRequest) { r.ContactMethod = "telegram" }, "contactMethod"},
		{"missing handle", func(r *CheckoutRequest) { r.PlatformInfo.WhatsApp = "" }, "whatsapp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			req := testRequest()
			tt.mutate(&req)

			_, err := f.svc.Submit(context.Background(), f.cart, req)

			var vErr *errors.ErrValidation
			require.ErrorAs(t, err, &vErr)
			require.Equal(t, tt.field, vErr.Field)

			orders, _ := f.ledger.List()
			require.Empty(t, orders)
		})
	}
}

func TestSubmitRejectsEmptyCart(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.cart.Clear())

	_, err := f.svc.Submit(context.Background(), f.cart, testRequest())

	var vErr *errors.ErrValidation
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "cart", vErr.Field)
}

func TestSubmitSurvivesRemoteMirrorFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := newFixture(t, remotelog.NewClient(srv.URL, zap.NewNop()))

	res, err := f.svc.Submit(context.Background(), f.cart, testRequest())
	require.NoError(t, err, "a mirror failure must not fail the checkout")

	orders, _ := f.ledger.List()
	require.Len(t, orders, 1)
	require.Equal(t, res.Order.ID, orders[0].ID)
}

func TestSubmitMirrorsToRemoteLog(t *testing.T) {
	mirrored := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Action string `json:"action"`
			Data   struct {
				OrderID string `json:"orderId"`
			} `json:"data"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		mirrored <- req.Data.OrderID
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	f := newFixture(t, remotelog.NewClient(srv.URL, zap.NewNop()))

	res, err := f.svc.Submit(context.Background(), f.cart, testRequest())
	require.NoError(t, err)

	select {
	case id := <-mirrored:
		require.Equal(t, res.Order.ID, id)
	case <-time.After(5 * time.Second):
		t.Fatal("order was never mirrored")
	}
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t, nil)

	res, err := f.svc.Submit(context.Background(), f.cart, testRequest())
	require.NoError(t, err)

	ok, err := f.svc.UpdateStatus(context.Background(), res.Order.ID, domain.OrderStatusConfirmed)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = f.svc.UpdateStatus(context.Background(), "CMD-MISSING-00000", domain.OrderStatusConfirmed)
	require.NoError(t, err)
	require.False(t, ok)
}
