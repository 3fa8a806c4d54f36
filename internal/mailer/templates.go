package mailer

import (
	"fmt"
	"strings"

	"turkish_shop_backend/internal/models"
)

// Template is a rendered delivery email.
type Template struct {
	Subject string
	HTML    string
	Text    string
}

// SelectTemplate picks the delivery email for an order. Platform detection is
// a case-insensitive substring match against the platform field AND the
// product name — either match is sufficient, so admins do not have to fill
// both fields consistently.
func SelectTemplate(o models.Order) Template {
	switch {
	case matchesPlatform(o, "playstation", "psn"):
		return playstationTemplate(o)
	case matchesPlatform(o, "steam"):
		return steamTemplate(o)
	case matchesPlatform(o, "nitro", "discord"):
		return nitroTemplate(o)
	case matchesPlatform(o, "spotify"):
		if isAccountDelivery(o) {
			return spotifyAccountTemplate(o)
		}
		return spotifyCodeTemplate(o)
	case matchesPlatform(o, "roblox", "robux"):
		return topUpTemplate(o, "Roblox")
	case matchesPlatform(o, "brawl stars", "brawl"):
		return topUpTemplate(o, "Brawl Stars")
	default:
		return genericTemplate(o)
	}
}

func matchesPlatform(o models.Order, keywords ...string) bool {
	platform := strings.ToLower(o.Platform)
	product := strings.ToLower(o.Product)
	for _, kw := range keywords {
		if strings.Contains(platform, kw) || strings.Contains(product, kw) {
			return true
		}
	}
	return false
}

func isAccountDelivery(o models.Order) bool {
	return strings.Contains(strings.ToLower(o.DeliveryType), "account") ||
		strings.Contains(strings.ToLower(o.Product), "account")
}

// SplitAccountCredentials splits a "username:password" delivery value on the
// first colon only, so passwords containing colons survive intact. Either
// empty side falls back to placeholder text.
func SplitAccountCredentials(deliveryValue string) (username, password string) {
	username = deliveryValue
	if idx := strings.Index(deliveryValue, ":"); idx >= 0 {
		username = deliveryValue[:idx]
		password = deliveryValue[idx+1:]
	}
	if strings.TrimSpace(username) == "" {
		username = "provided username"
	}
	if strings.TrimSpace(password) == "" {
		password = "provided password"
	}
	return username, password
}

func playstationTemplate(o models.Order) Template {
	return Template{
		Subject: "🎮 Your PlayStation code is here - The Turkish Shop",
		HTML: renderShell("🎮 PlayStation", o,
			"Your PlayStation code is ready. Redeem it on the PlayStation Store under Redeem Codes.",
			codeBox("Your code", o.DeliveryValue)),
		Text: fmt.Sprintf("Your PlayStation code for order %s:\n\n%s\n\nRedeem it on the PlayStation Store under Redeem Codes.\n\nThe Turkish Shop", o.OrderID, o.DeliveryValue),
	}
}

func steamTemplate(o models.Order) Template {
	return Template{
		Subject: "🎮 Your Steam key is here - The Turkish Shop",
		HTML: renderShell("🎮 Steam", o,
			"Your Steam key is ready. Activate it in Steam via Games → Activate a Product on Steam.",
			codeBox("Your key", o.DeliveryValue)),
		Text: fmt.Sprintf("Your Steam key for order %s:\n\n%s\n\nActivate it in Steam via Games → Activate a Product on Steam.\n\nThe Turkish Shop", o.OrderID, o.DeliveryValue),
	}
}

func nitroTemplate(o models.Order) Template {
	return Template{
		Subject: "💜 Your Discord Nitro code is here - The Turkish Shop",
		HTML: renderShell("💜 Discord Nitro", o,
			"Your Discord Nitro code is ready. Redeem it at discord.com/billing under Redeem Codes.",
			codeBox("Your code", o.DeliveryValue)),
		Text: fmt.Sprintf("Your Discord Nitro code for order %s:\n\n%s\n\nRedeem it at discord.com/billing.\n\nThe Turkish Shop", o.OrderID, o.DeliveryValue),
	}
}

func spotifyAccountTemplate(o models.Order) Template {
	username, password := SplitAccountCredentials(o.DeliveryValue)
	creds := fmt.Sprintf(`%s%s`,
		codeBox("Username", username),
		codeBox("Password", password))
	return Template{
		Subject: "🎵 Your Spotify account details - The Turkish Shop",
		HTML: renderShell("🎵 Spotify Premium", o,
			"Your Spotify Premium account is ready. Sign in with the details below and do not change the account email.",
			creds),
		Text: fmt.Sprintf("Your Spotify account for order %s:\n\nUsername: %s\nPassword: %s\n\nSign in at spotify.com. Please do not change the account email.\n\nThe Turkish Shop", o.OrderID, username, password),
	}
}

func spotifyCodeTemplate(o models.Order) Template {
	return Template{
		Subject: "🎵 Your Spotify code is here - The Turkish Shop",
		HTML: renderShell("🎵 Spotify Premium", o,
			"Your Spotify code is ready. Redeem it at spotify.com/redeem.",
			codeBox("Your code", o.DeliveryValue)),
		Text: fmt.Sprintf("Your Spotify code for order %s:\n\n%s\n\nRedeem it at spotify.com/redeem.\n\nThe Turkish Shop", o.OrderID, o.DeliveryValue),
	}
}

func topUpTemplate(o models.Order, game string) Template {
	return Template{
		Subject: fmt.Sprintf("✅ Your %s top-up is complete - The Turkish Shop", game),
		HTML: renderShell("✅ "+game, o,
			fmt.Sprintf("Your %s top-up has been completed and should already be visible on your account.", game),
			""),
		Text: fmt.Sprintf("Your %s top-up for order %s is complete and should already be visible on your account.\n\nThe Turkish Shop", game, o.OrderID),
	}
}

func genericTemplate(o models.Order) Template {
	return Template{
		Subject: "✅ Your order has been delivered - The Turkish Shop",
		HTML: renderShell("✅ Order delivered", o,
			"Your order has been delivered. Your product details are below.",
			codeBox("Your product", o.DeliveryValue)),
		Text: fmt.Sprintf("Your order %s has been delivered.\n\n%s\n\nThe Turkish Shop", o.OrderID, o.DeliveryValue),
	}
}

// renderShell wraps content in the shared inline-styled email layout.
func renderShell(headline string, o models.Order, message, extra string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Order delivered</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f5f5f5;">
    <table role="presentation" style="width: 100%%; border-collapse: collapse; background-color: #f5f5f5;">
        <tr>
            <td style="padding: 40px 20px;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; box-shadow: 0 4px 6px rgba(0,0,0,0.1);">
                    <!-- Header -->
                    <tr>
                        <td style="background: linear-gradient(135deg, #e30a17 0%%, #8b0000 100%%); padding: 40px 30px; text-align: center; border-radius: 12px 12px 0 0;">
                            <h1 style="margin: 0; color: #ffffff; font-size: 28px; font-weight: 600;">
                                %s
                            </h1>
                            <p style="margin: 10px 0 0 0; color: #ffffff; font-size: 16px; opacity: 0.9;">
                                The Turkish Shop
                            </p>
                        </td>
                    </tr>

                    <!-- Content -->
                    <tr>
                        <td style="padding: 30px;">
                            <p style="margin: 0 0 20px 0; color: #333333; font-size: 16px; line-height: 1.6;">
                                %s
                            </p>
                            %s
                            <table role="presentation" style="width: 100%%; border-collapse: collapse; background-color: #f8f9fa; border-radius: 8px; margin: 20px 0;">
                                <tr>
                                    <td style="padding: 20px;">
                                        <table role="presentation" style="width: 100%%; border-collapse: collapse;">
                                            <tr>
                                                <td style="padding: 8px 0; color: #666666; font-size: 14px;">
                                                    <strong style="color: #333333;">Order number:</strong>
                                                </td>
                                                <td style="padding: 8px 0; color: #333333; font-size: 14px; text-align: right;">
                                                    %s
                                                </td>
                                            </tr>
                                            <tr>
                                                <td style="padding: 8px 0; color: #666666; font-size: 14px;">
                                                    <strong style="color: #333333;">Product:</strong>
                                                </td>
                                                <td style="padding: 8px 0; color: #333333; font-size: 14px; text-align: right;">
                                                    %s
                                                </td>
                                            </tr>
                                        </table>
                                    </td>
                                </tr>
                            </table>
                            <p style="margin: 20px 0 0 0; color: #666666; font-size: 14px; line-height: 1.6;">
                                Questions? Our support team is available 7 days a week.
                            </p>
                        </td>
                    </tr>

                    <!-- Footer -->
                    <tr>
                        <td style="padding: 30px; background-color: #f8f9fa; border-radius: 0 0 12px 12px; text-align: center;">
                            <p style="margin: 0 0 10px 0; color: #999999; font-size: 12px;">
                                © The Turkish Shop - All rights reserved
                            </p>
                            <p style="margin: 0; color: #999999; font-size: 12px;">
                                This email was sent automatically, please do not reply.
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`, headline, message, extra, o.OrderID, o.Product)
}

func codeBox(label, value string) string {
	return fmt.Sprintf(`
                            <table role="presentation" style="width: 100%%; border-collapse: collapse; background-color: #1f2937; border-radius: 8px; margin: 20px 0;">
                                <tr>
                                    <td style="padding: 20px; text-align: center;">
                                        <p style="margin: 0 0 8px 0; color: #9ca3af; font-size: 12px; text-transform: uppercase; letter-spacing: 0.5px;">
                                            %s
                                        </p>
                                        <p style="margin: 0; color: #ffffff; font-size: 20px; font-family: 'Courier New', monospace; font-weight: 700; letter-spacing: 1px;">
                                            %s
                                        </p>
                                    </td>
                                </tr>
                            </table>`, label, value)
}
