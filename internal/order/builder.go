// Package order implements order construction, the durable order
// ledger and its CSV projection.
package order

import (
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/activshop/storefront/internal/catalog"
	"github.com/activshop/storefront/internal/domain"
)

// BuildInput carries everything needed to construct an order. Field
// validation (non-empty name, supported channel, matching handle) is
// the caller's responsibility; the builder only assembles.
type BuildInput struct {
	Items         []domain.OrderItem
	ClientInfo    domain.ClientInfo
	PlatformInfo  domain.PlatformInfo
	ContactMethod domain.Channel
	Message       string
}

// Builder constructs immutable orders. The clock and random source are
// injectable so tests can pin identifiers and timestamps.
type Builder struct {
	now  func() time.Time
	rand *rand.Rand
}

// NewBuilder returns a builder on the system clock.
func NewBuilder() *Builder {
	return &Builder{
		now:  time.Now,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewBuilderAt returns a builder with a fixed clock and seeded random
// source, for tests.
func NewBuilderAt(now func() time.Time, seed int64) *Builder {
	return &Builder{
		now:  now,
		rand: rand.New(rand.NewSource(seed)),
	}
}

// Build assembles a pending order from the input. It has no side
// effects; persistence is the ledger's job.
func (b *Builder) Build(in BuildInput) domain.Order {
	var total int64
	for _, item := range in.Items {
		total += item.TotalPrice
	}

	return domain.Order{
		ID:            b.generateOrderID(),
		Timestamp:     b.now().Format(time.RFC3339),
		ClientInfo:    in.ClientInfo,
		PlatformInfo:  in.PlatformInfo,
		ContactMethod: in.ContactMethod,
		Items:         in.Items,
		TotalAmount:   total,
		Status:        domain.OrderStatusPending,
		Message:       in.Message,
	}
}

// generateOrderID concatenates the current time in milliseconds and a
// 5-character random suffix, both base 36, prefixed CMD- and upper
// cased. Uniqueness is probabilistic, which is acceptable at
// human-scale order volume.
func (b *Builder) generateOrderID() string {
	timestamp := strconv.FormatInt(b.now().UnixMilli(), 36)
	suffix := randomBase36(b.rand, 5)
	return strings.ToUpper("CMD-" + timestamp + "-" + suffix)
}

const base36Chars = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomBase36(r *rand.Rand, n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteByte(base36Chars[r.Intn(len(base36Chars))])
	}
	return sb.String()
}

// ItemsFromCart resolves cart entries against the catalog into
// denormalized order items, sorted by product identifier for a stable
// order. Entries missing from the catalog are skipped.
func ItemsFromCart(entries map[int]int, cat *catalog.Catalog) []domain.OrderItem {
	ids := make([]int, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	items := make([]domain.OrderItem, 0, len(ids))
	for _, id := range ids {
		p, ok := cat.ByID(id)
		if !ok {
			continue
		}
		qty := entries[id]
		items = append(items, domain.OrderItem{
			ProductID:   p.ID,
			Quantity:    qty,
			ProductName: p.Nom,
			UnitPrice:   p.Prix,
			TotalPrice:  p.Prix * int64(qty),
		})
	}
	return items
}
