package domain

// Product represents a catalog product. Products are loaded from the
// static catalog document and never mutated.
type Product struct {
	ID          int      `json:"id"`
	Nom         string   `json:"nom"`
	Categorie   Category `json:"categorie"`
	Prix        int64    `json:"prix"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
}

// ClientInfo holds the customer contact details collected at checkout.
// Email is the only optional field.
type ClientInfo struct {
	Nom       string `json:"nom"`
	Telephone string `json:"telephone"`
	Email     string `json:"email"`
	Adresse   string `json:"adresse"`
	Ville     string `json:"ville"`
}

// PlatformInfo holds the customer's per-channel contact handles. Only
// the handle matching the chosen channel is required at submission.
type PlatformInfo struct {
	WhatsApp  string `json:"whatsapp"`
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
}

// Handle returns the contact handle for the given channel. The second
// return is false for unsupported channels.
func (p PlatformInfo) Handle(c Channel) (string, bool) {
	switch c {
	case ChannelWhatsApp:
		return p.WhatsApp, true
	case ChannelFacebook:
		return p.Facebook, true
	case ChannelInstagram:
		return p.Instagram, true
	default:
		return "", false
	}
}

// OrderItem is a denormalized snapshot of a product at order time,
// decoupled from later catalog changes.
type OrderItem struct {
	ProductID   int    `json:"productId"`
	Quantity    int    `json:"quantity"`
	ProductName string `json:"productName"`
	UnitPrice   int64  `json:"unitPrice"`
	TotalPrice  int64  `json:"totalPrice"`
}

// Order is an immutable snapshot of a checkout attempt. Only Status is
// ever updated after creation, through the ledger's status update.
type Order struct {
	ID            string       `json:"id"`
	Timestamp     string       `json:"timestamp"`
	ClientInfo    ClientInfo   `json:"clientInfo"`
	PlatformInfo  PlatformInfo `json:"platformInfo"`
	ContactMethod Channel      `json:"contactMethod"`
	Items         []OrderItem  `json:"items"`
	TotalAmount   int64        `json:"totalAmount"`
	Status        OrderStatus  `json:"status"`
	Message       string       `json:"message"`
}

// PlatformContact returns the handle the customer supplied for the
// order's chosen channel, or "" when none matches.
func (o Order) PlatformContact() string {
	handle, _ := o.PlatformInfo.Handle(o.ContactMethod)
	return handle
}
