package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSMTPConfigConfigured(t *testing.T) {
	assert.False(t, SMTPConfig{}.Configured())
	assert.False(t, SMTPConfig{Username: "user", Password: "pass"}.Configured())
	assert.True(t, SMTPConfig{Host: "smtp.example.com"}.Configured())
}

func TestSendWithoutProvidersFailsGracefully(t *testing.T) {
	d := New(Config{From: "noreply@theturkishshop.com"})

	res := d.Send("a@b.com", "subject", "<p>html</p>", "text")

	// No provider is a failure Result, never a Go error or a panic.
	assert.False(t, res.Success)
	assert.Equal(t, "no email provider configured", res.Error)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("MAIL_FROM", "shop@theturkishshop.com")
	t.Setenv("SMTP_HOST", "smtp.primary.test")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SMTP_USERNAME", "primary-user")
	t.Setenv("SMTP_PASSWORD", "primary-pass")
	t.Setenv("SMTP_FALLBACK_HOST", "smtp.fallback.test")

	cfg := ConfigFromEnv()

	assert.Equal(t, "shop@theturkishshop.com", cfg.From)
	assert.Equal(t, "smtp.primary.test", cfg.Primary.Host)
	assert.Equal(t, 2525, cfg.Primary.Port)
	assert.Equal(t, "primary-user", cfg.Primary.Username)
	assert.True(t, cfg.Fallback.Configured())
	assert.Equal(t, 587, cfg.Fallback.Port, "port defaults to 587 when unset")
}
