package order

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/activshop/storefront/internal/domain"
)

// csvHeaders is the fixed 12-column projection of an order. The email
// column stays even when empty; the free-text message is deliberately
// excluded.
var csvHeaders = []string{
	"ID Commande",
	"Date/Heure",
	"Nom Client",
	"Téléphone",
	"Email",
	"Adresse",
	"Ville",
	"Méthode Contact",
	"Contact Plateforme",
	"Produits",
	"Montant Total",
	"Statut",
}

// ExportCSV projects orders into the fixed 12-column table, one data
// line per order in ledger order. An empty slice yields the empty
// string.
func ExportCSV(orders []domain.Order) string {
	if len(orders) == 0 {
		return ""
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Write(csvHeaders)
	for _, o := range orders {
		w.Write([]string{
			o.ID,
			o.Timestamp,
			o.ClientInfo.Nom,
			o.ClientInfo.Telephone,
			o.ClientInfo.Email,
			o.ClientInfo.Adresse,
			o.ClientInfo.Ville,
			string(o.ContactMethod),
			o.PlatformContact(),
			ItemSummary(o.Items),
			strconv.FormatInt(o.TotalAmount, 10),
			string(o.Status),
		})
	}
	w.Flush()
	return sb.String()
}

// ItemSummary renders items as "name xQty" entries joined by "; ",
// the form used in both the CSV export and the remote mirror.
func ItemSummary(items []domain.OrderItem) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.ProductName + " x" + strconv.Itoa(item.Quantity)
	}
	return strings.Join(parts, "; ")
}
