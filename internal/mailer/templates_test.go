package mailer

import (
	"testing"

	"turkish_shop_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestSelectTemplate(t *testing.T) {
	tests := []struct {
		name        string
		order       models.Order
		wantSubject string
	}{
		{
			name:        "steam from product name alone",
			order:       models.Order{Product: "Fortnite Steam Key", DeliveryValue: "AAAA-BBBB"},
			wantSubject: "🎮 Your Steam key is here - The Turkish Shop",
		},
		{
			name:        "playstation from platform field",
			order:       models.Order{Platform: "PlayStation", Product: "Gift Card", DeliveryValue: "XXXX"},
			wantSubject: "🎮 Your PlayStation code is here - The Turkish Shop",
		},
		{
			name:        "psn alias",
			order:       models.Order{Product: "PSN Card £20", DeliveryValue: "XXXX"},
			wantSubject: "🎮 Your PlayStation code is here - The Turkish Shop",
		},
		{
			name:        "discord nitro",
			order:       models.Order{Product: "Discord Nitro 1 Month", DeliveryValue: "XXXX"},
			wantSubject: "💜 Your Discord Nitro code is here - The Turkish Shop",
		},
		{
			name:        "spotify code",
			order:       models.Order{Product: "Spotify Premium 3 Months", DeliveryValue: "XXXX"},
			wantSubject: "🎵 Your Spotify code is here - The Turkish Shop",
		},
		{
			name:        "spotify account by product name",
			order:       models.Order{Product: "Spotify Premium Account", DeliveryValue: "alice:secret"},
			wantSubject: "🎵 Your Spotify account details - The Turkish Shop",
		},
		{
			name:        "roblox top-up",
			order:       models.Order{Product: "Robux 1000"},
			wantSubject: "✅ Your Roblox top-up is complete - The Turkish Shop",
		},
		{
			name:        "brawl stars top-up",
			order:       models.Order{Platform: "Brawl Stars", Product: "Gems 360"},
			wantSubject: "✅ Your Brawl Stars top-up is complete - The Turkish Shop",
		},
		{
			name:        "unknown product falls back to generic",
			order:       models.Order{Product: "Mystery Box", DeliveryValue: "XXXX"},
			wantSubject: "✅ Your order has been delivered - The Turkish Shop",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := SelectTemplate(tt.order)
			assert.Equal(t, tt.wantSubject, tpl.Subject)
			assert.NotEmpty(t, tpl.HTML)
			assert.NotEmpty(t, tpl.Text)
		})
	}
}

func TestTemplateCarriesOrderContext(t *testing.T) {
	tpl := SelectTemplate(models.Order{
		OrderID:       "TS-1001",
		Product:       "Steam Key",
		DeliveryValue: "AAAA-BBBB-CCCC",
	})

	assert.Contains(t, tpl.HTML, "TS-1001")
	assert.Contains(t, tpl.HTML, "AAAA-BBBB-CCCC")
	assert.Contains(t, tpl.Text, "TS-1001")
	assert.Contains(t, tpl.Text, "AAAA-BBBB-CCCC")
}

func TestSpotifyAccountUsesSplitCredentials(t *testing.T) {
	tpl := SelectTemplate(models.Order{
		OrderID:       "TS-1001",
		Product:       "Spotify Premium Account",
		DeliveryValue: "alice:p@ss:w0rd",
	})

	assert.Contains(t, tpl.Text, "Username: alice")
	assert.Contains(t, tpl.Text, "Password: p@ss:w0rd")
}

func TestSplitAccountCredentials(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		wantUsername string
		wantPassword string
	}{
		{"first colon only", "alice:p@ss:w0rd", "alice", "p@ss:w0rd"},
		{"no colon", "alice", "alice", "provided password"},
		{"empty username", ":secret", "provided username", "secret"},
		{"empty password", "alice:", "alice", "provided password"},
		{"empty value", "", "provided username", "provided password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			username, password := SplitAccountCredentials(tt.value)
			assert.Equal(t, tt.wantUsername, username)
			assert.Equal(t, tt.wantPassword, password)
		})
	}
}
