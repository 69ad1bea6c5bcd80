package domain

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusDelivered,
		OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a status transition is valid
func (s OrderStatus) CanTransitionTo(newStatus OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return newStatus == OrderStatusConfirmed ||
			newStatus == OrderStatusCancelled
	case OrderStatusConfirmed:
		return newStatus == OrderStatusDelivered ||
			newStatus == OrderStatusCancelled
	case OrderStatusDelivered, OrderStatusCancelled:
		return false // Terminal states
	default:
		return false
	}
}

// Channel identifies the messaging surface used to hand an order to the shop
type Channel string

const (
	ChannelWhatsApp  Channel = "whatsapp"
	ChannelFacebook  Channel = "facebook"
	ChannelInstagram Channel = "instagram"
)

// IsValid checks if the channel is one of the supported surfaces
func (c Channel) IsValid() bool {
	switch c {
	case ChannelWhatsApp, ChannelFacebook, ChannelInstagram:
		return true
	default:
		return false
	}
}

// DisplayName returns the human-readable name used in customer messages
func (c Channel) DisplayName() string {
	switch c {
	case ChannelWhatsApp:
		return "WhatsApp"
	case ChannelFacebook:
		return "Facebook"
	case ChannelInstagram:
		return "Instagram"
	default:
		return string(c)
	}
}

// Category represents a product category in the catalog
type Category string

const (
	CategoryComplements Category = "Compléments"
	CategoryEquipements Category = "Équipements"
	CategoryVetements   Category = "Vêtements"
)
