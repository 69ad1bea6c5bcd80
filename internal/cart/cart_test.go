package cart

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/activshop/storefront/internal/catalog"
	"github.com/activshop/storefront/internal/domain"
	"github.com/activshop/storefront/internal/storage"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]domain.Product{
		{ID: 1, Nom: "Créatine", Categorie: domain.CategoryComplements, Prix: 5000},
		{ID: 2, Nom: "Corde à sauter", Categorie: domain.CategoryEquipements, Prix: 3500},
		{ID: 3, Nom: "Bandes de résistance", Categorie: domain.CategoryEquipements, Prix: 8000},
	})
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(storage.NewMemoryStore(), "shop_cart_items", zap.NewNop())
}

func TestAddAndRemoveMatchReferenceMapping(t *testing.T) {
	s := newTestStore(t)
	ref := map[int]int{}

	type op struct {
		add bool
		id  int
	}
	ops := []op{
		{true, 1}, {true, 1}, {true, 2}, {false, 1},
		{true, 3}, {false, 2}, {false, 2}, // second remove of 2 is a no-op
		{true, 1}, {true, 1}, {false, 3},
	}

	for _, o := range ops {
		if o.add {
			require.NoError(t, s.Add(o.id))
			ref[o.id]++
		} else {
			require.NoError(t, s.Remove(o.id))
			if ref[o.id] > 1 {
				ref[o.id]--
			} else {
				delete(ref, o.id)
			}
		}

		wantTotal := 0
		for _, q := range ref {
			wantTotal += q
		}
		require.Equal(t, wantTotal, s.TotalItems())
		require.Equal(t, ref, s.Items())

		for id, q := range s.Items() {
			require.Greaterf(t, q, 0, "product %d stored with non-positive quantity", id)
		}
	}
}

func TestRemoveLastUnitDeletesEntry(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Add(1))
	require.NoError(t, s.Remove(1))

	_, present := s.Items()[1]
	require.False(t, present, "entry should be deleted, not stored at zero")
}

func TestRemoveAbsentProductIsNoOp(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Remove(42))
	require.Equal(t, 0, s.TotalItems())
}

func TestTotalPrice(t *testing.T) {
	s := newTestStore(t)
	cat := testCatalog()

	require.NoError(t, s.Add(1))
	require.NoError(t, s.Add(1))
	require.NoError(t, s.Add(2))
	require.Equal(t, int64(2*5000+3500), s.TotalPrice(cat))
}

func TestTotalPriceUnknownProductContributesZero(t *testing.T) {
	s := newTestStore(t)
	cat := testCatalog()

	require.NoError(t, s.Add(999))
	require.NoError(t, s.Add(1))
	require.Equal(t, int64(5000), s.TotalPrice(cat))
}

func TestPersistenceRoundTrip(t *testing.T) {
	mem := storage.NewMemoryStore()
	logger := zap.NewNop()

	s := NewStore(mem, "shop_cart_items", logger)
	require.NoError(t, s.Add(1))
	require.NoError(t, s.Add(1))
	require.NoError(t, s.Add(3))

	restored := NewStore(mem, "shop_cart_items", logger)
	require.Equal(t, s.Items(), restored.Items())
	require.Equal(t, 3, restored.TotalItems())
}

func TestCorruptPersistedCartStartsEmpty(t *testing.T) {
	mem := storage.NewMemoryStore()
	require.NoError(t, mem.Write("shop_cart_items", "definitely not a cart"))

	s := NewStore(mem, "shop_cart_items", zap.NewNop())
	require.Equal(t, 0, s.TotalItems())
}

func TestClear(t *testing.T) {
	mem := storage.NewMemoryStore()
	s := NewStore(mem, "shop_cart_items", zap.NewNop())
	require.NoError(t, s.Add(1))
	require.NoError(t, s.Clear())
	require.Equal(t, 0, s.TotalItems())

	restored := NewStore(mem, "shop_cart_items", zap.NewNop())
	require.Equal(t, 0, restored.TotalItems())
}

func TestManagerSessionsAreIsolated(t *testing.T) {
	m := NewManager(storage.NewMemoryStore(), zap.NewNop())

	idA, cartA := m.New()
	idB, cartB := m.New()
	require.NotEqual(t, idA, idB)

	require.NoError(t, cartA.Add(1))
	require.Equal(t, 1, cartA.TotalItems())
	require.Equal(t, 0, cartB.TotalItems())

	// Same session id yields the same cart
	got, ok := m.Get(idA)
	require.True(t, ok)
	require.Same(t, cartA, got)
}

func TestManagerRejectsUnissuedSession(t *testing.T) {
	mem := storage.NewMemoryStore()
	m := NewManager(mem, zap.NewNop())

	_, ok := m.Get("never-issued")
	require.False(t, ok)

	// The lookup must not seed storage for the unknown id
	var persisted map[int]int
	require.ErrorIs(t, mem.Read("cart_never-issued", &persisted), storage.ErrNotExist)
}

func TestManagerRestoresIssuedSessionAfterRestart(t *testing.T) {
	mem := storage.NewMemoryStore()

	m := NewManager(mem, zap.NewNop())
	id, c := m.New()
	require.NoError(t, c.Add(1))
	require.NoError(t, c.Add(1))

	// A fresh manager over the same storage stands in for a restart
	restored, ok := NewManager(mem, zap.NewNop()).Get(id)
	require.True(t, ok)
	require.Equal(t, 2, restored.TotalItems())
}

func TestManagerRecognizesEmptySessionAfterRestart(t *testing.T) {
	mem := storage.NewMemoryStore()
	id, _ := NewManager(mem, zap.NewNop()).New()

	restored, ok := NewManager(mem, zap.NewNop()).Get(id)
	require.True(t, ok)
	require.Equal(t, 0, restored.TotalItems())
}
