// Package catalog loads the immutable product list from the static
// catalog document and serves lookups from memory.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/activshop/storefront/internal/domain"
)

// Catalog is an in-memory view of the product list.
type Catalog struct {
	products []domain.Product
	byID     map[int]domain.Product
}

// New builds a catalog from a product list.
func New(products []domain.Product) *Catalog {
	byID := make(map[int]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Catalog{products: products, byID: byID}
}

// Products returns all products in document order.
func (c *Catalog) Products() []domain.Product {
	return c.products
}

// ByID looks up a product by identifier.
func (c *Catalog) ByID(id int) (domain.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Loader fetches the catalog document from an HTTP URL or a file path.
type Loader struct {
	source     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewLoader creates a loader for the given source.
func NewLoader(source string, logger *zap.Logger) *Loader {
	return &Loader{
		source: source,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Load fetches and parses the product list. A failed fetch or parse is
// returned to the caller as an error to present as a load-error state;
// it is never fatal to the process.
func (l *Loader) Load() (*Catalog, error) {
	var data []byte
	var err error

	if strings.HasPrefix(l.source, "http://") || strings.HasPrefix(l.source, "https://") {
		data, err = l.fetch()
	} else {
		data, err = os.ReadFile(l.source)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog from %s: %w", l.source, err)
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	l.logger.Info("Catalog loaded", zap.Int("products", len(products)))
	return New(products), nil
}

func (l *Loader) fetch() ([]byte, error) {
	resp, err := l.httpClient.Get(l.source)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog fetch error: status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
