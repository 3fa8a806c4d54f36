package mailer

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"
)

// SMTPConfig is one relay. A relay counts as configured when it has a host.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

func (c SMTPConfig) Configured() bool {
	return c.Host != ""
}

// Config is resolved once at startup and injected into the dispatcher; there
// are no ambient provider singletons.
type Config struct {
	From     string
	Primary  SMTPConfig
	Fallback SMTPConfig
}

// ConfigFromEnv builds the dispatcher config from SMTP_* / SMTP_FALLBACK_*
// environment variables.
func ConfigFromEnv() Config {
	return Config{
		From:     envOr("MAIL_FROM", "noreply@theturkishshop.com"),
		Primary:  smtpFromEnv("SMTP"),
		Fallback: smtpFromEnv("SMTP_FALLBACK"),
	}
}

func smtpFromEnv(prefix string) SMTPConfig {
	port := 587
	if raw := os.Getenv(prefix + "_PORT"); raw != "" {
		if p, err := strconv.Atoi(raw); err == nil {
			port = p
		}
	}
	return SMTPConfig{
		Host:     os.Getenv(prefix + "_HOST"),
		Port:     port,
		Username: os.Getenv(prefix + "_USERNAME"),
		Password: os.Getenv(prefix + "_PASSWORD"),
	}
}

// Result is the uniform outcome of a send attempt. Success false always comes
// with a descriptive Error string.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Dispatcher sends transactional email with best-effort semantics: primary
// relay first, fallback second, and a failure Result instead of an error when
// both are down or unconfigured. It never panics and never returns a Go error
// — callers must not fail their own mutation because email failed.
type Dispatcher struct {
	cfg Config
}

func New(cfg Config) *Dispatcher {
	return &Dispatcher{cfg: cfg}
}

// Send delivers one message. Tries the primary relay, then the fallback.
func (d *Dispatcher) Send(to, subject, htmlBody, textBody string) Result {
	if !d.cfg.Primary.Configured() && !d.cfg.Fallback.Configured() {
		return Result{Success: false, Error: "no email provider configured"}
	}

	var firstErr error
	if d.cfg.Primary.Configured() {
		if err := d.sendVia(d.cfg.Primary, to, subject, htmlBody, textBody); err == nil {
			log.Printf("📧 Email sent to %s (primary relay)", to)
			return Result{Success: true}
		} else {
			firstErr = err
			log.Printf("⚠️ Primary relay failed for %s: %v", to, err)
		}
	}

	if d.cfg.Fallback.Configured() {
		if err := d.sendVia(d.cfg.Fallback, to, subject, htmlBody, textBody); err == nil {
			log.Printf("📧 Email sent to %s (fallback relay)", to)
			return Result{Success: true}
		} else {
			log.Printf("❌ Fallback relay failed for %s: %v", to, err)
			if firstErr != nil {
				return Result{Success: false, Error: fmt.Sprintf("primary: %v; fallback: %v", firstErr, err)}
			}
			return Result{Success: false, Error: err.Error()}
		}
	}

	return Result{Success: false, Error: firstErr.Error()}
}

func (d *Dispatcher) sendVia(relay SMTPConfig, to, subject, htmlBody, textBody string) error {
	msg := mail.NewMsg()

	if err := msg.From(d.cfg.From); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, textBody)
	msg.AddAlternativeString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(relay.Host,
		mail.WithPort(relay.Port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(relay.Username),
		mail.WithPassword(relay.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	return client.DialAndSend(msg)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
