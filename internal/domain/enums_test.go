package domain

import "testing"

func TestOrderStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusPending, OrderStatusPending, false},

		{OrderStatusConfirmed, OrderStatusDelivered, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusPending, false},

		// Terminal states
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusConfirmed, false},

		{OrderStatus("unknown"), OrderStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.allowed)
			}
		})
	}
}

func TestOrderStatusIsValid(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusDelivered, OrderStatusCancelled} {
		if !s.IsValid() {
			t.Errorf("expected %s to be valid", s)
		}
	}
	for _, s := range []OrderStatus{"", "shipped", "PENDING"} {
		if s.IsValid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestChannelIsValid(t *testing.T) {
	for _, c := range []Channel{ChannelWhatsApp, ChannelFacebook, ChannelInstagram} {
		if !c.IsValid() {
			t.Errorf("expected %s to be valid", c)
		}
	}
	for _, c := range []Channel{"", "telegram", "WhatsApp"} {
		if c.IsValid() {
			t.Errorf("expected %q to be invalid", c)
		}
	}
}

func TestChannelDisplayName(t *testing.T) {
	tests := []struct {
		channel Channel
		want    string
	}{
		{ChannelWhatsApp, "WhatsApp"},
		{ChannelFacebook, "Facebook"},
		{ChannelInstagram, "Instagram"},
		{Channel("telegram"), "telegram"},
	}
	for _, tt := range tests {
		if got := tt.channel.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%s) = %q, want %q", tt.channel, got, tt.want)
		}
	}
}

func TestPlatformInfoHandle(t *testing.T) {
	info := PlatformInfo{
		WhatsApp:  "+229 90000000",
		Facebook:  "client.fb",
		Instagram: "client_ig",
	}

	tests := []struct {
		channel Channel
		want    string
		ok      bool
	}{
		{ChannelWhatsApp, "+229 90000000", true},
		{ChannelFacebook, "client.fb", true},
		{ChannelInstagram, "client_ig", true},
		{Channel("telegram"), "", false},
	}
	for _, tt := range tests {
		got, ok := info.Handle(tt.channel)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Handle(%s) = (%q, %v), want (%q, %v)", tt.channel, got, ok, tt.want, tt.ok)
		}
	}
}
