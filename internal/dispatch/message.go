package dispatch

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/activshop/storefront/internal/domain"
)

// FormatMessage renders the order into the message a human operator
// reads on the other end of the channel. The wording and ordering are
// fixed; downstream staff rely on this exact structure.
func FormatMessage(o domain.Order, at time.Time) string {
	greeting := "Bonjour"
	if at.Hour() >= 18 {
		greeting = "Bonsoir"
	}

	lines := make([]string, len(o.Items))
	for i, item := range o.Items {
		lines[i] = fmt.Sprintf("• %s x%d (%s FCFA)", item.ProductName, item.Quantity, FormatAmount(item.TotalPrice))
	}
	cartDetails := strings.Join(lines, "\n")

	total := FormatAmount(o.TotalAmount) + " FCFA"

	method := o.ContactMethod.DisplayName()
	platformContact := fmt.Sprintf("%s: %s", method, o.PlatformContact())

	clientDetails := fmt.Sprintf(
		"👤 **Informations client :**\nNom: %s\nTéléphone: %s\nEmail: %s\nAdresse: %s, %s\n\n📱 **Contact %s :**\n%s",
		o.ClientInfo.Nom,
		o.ClientInfo.Telephone,
		o.ClientInfo.Email,
		o.ClientInfo.Adresse,
		o.ClientInfo.Ville,
		method,
		platformContact,
	)

	return fmt.Sprintf(
		"%s ! 👋\n\nJe souhaite commander les produits suivants :\n\n%s\n\n💰 **Prix total : %s**\n\n%s\n\n🚚 Merci de me confirmer la disponibilité et les modalités de livraison et paiement.\n\n💪 ActivShop Bénin !",
		greeting,
		cartDetails,
		total,
		clientDetails,
	)
}

// FormatAmount groups digits in thousands separated by spaces, the way
// amounts in FCFA are written ("10 000").
func FormatAmount(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var groups []string
	for len(s) > 3 {
		groups = append([]string{s[len(s)-3:]}, groups...)
		s = s[:len(s)-3]
	}
	groups = append([]string{s}, groups...)

	out := strings.Join(groups, " ")
	if neg {
		out = "-" + out
	}
	return out
}
