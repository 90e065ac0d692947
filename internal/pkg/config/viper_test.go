package config

import (
	"testing"
	"time"
)

const testYAML = `
app:
  name: aurora
  debug: true
server:
  port: 8080
modules:
  auth:
    otp_ttl_minutes: 5
    otp_window_hours: 1
hash:
  pepper: cGVwcGVy
messaging:
  brokers: "localhost:9092,localhost:9093"
mail:
  headers: "X-Mailer:aurora,X-Priority:1"
`

func newTestConfig(t *testing.T) *Viper {
	t.Helper()

	cfg, err := NewViperFromBytes("yaml", []byte(testYAML))
	if err != nil {
		t.Fatalf("NewViperFromBytes() error = %v", err)
	}

	return cfg
}

func TestViperTypedGetters(t *testing.T) {
	cfg := newTestConfig(t)

	if got := cfg.GetString("app.name"); got != "aurora" {
		t.Errorf("GetString(app.name) = %q, want %q", got, "aurora")
	}

	if !cfg.GetBool("app.debug") {
		t.Error("GetBool(app.debug) = false, want true")
	}

	if got := cfg.GetUint16("server.port"); got != 8080 {
		t.Errorf("GetUint16(server.port) = %d, want 8080", got)
	}

	if got := cfg.GetMinute("modules.auth.otp_ttl_minutes"); got != 5*time.Minute {
		t.Errorf("GetMinute(otp_ttl_minutes) = %v, want 5m", got)
	}

	if got := cfg.GetHour("modules.auth.otp_window_hours"); got != time.Hour {
		t.Errorf("GetHour(otp_window_hours) = %v, want 1h", got)
	}

	if got := string(cfg.GetBinary("hash.pepper")); got != "pepper" {
		t.Errorf("GetBinary(hash.pepper) = %q, want %q", got, "pepper")
	}
}

func TestViperCollections(t *testing.T) {
	cfg := newTestConfig(t)

	brokers := cfg.GetArray("messaging.brokers")
	if len(brokers) != 2 || brokers[0] != "localhost:9092" {
		t.Errorf("GetArray(messaging.brokers) = %v", brokers)
	}

	headers := cfg.GetMap("mail.headers")
	if headers["X-Mailer"] != "aurora" || headers["X-Priority"] != "1" {
		t.Errorf("GetMap(mail.headers) = %v", headers)
	}
}

func TestViperMissingKeys(t *testing.T) {
	cfg := newTestConfig(t)

	if got := cfg.GetString("nope"); got != "" {
		t.Errorf("GetString(nope) = %q, want empty", got)
	}

	if got := cfg.GetInt64("nope"); got != 0 {
		t.Errorf("GetInt64(nope) = %d, want 0", got)
	}
}

func TestNewViperFromBytesRequiresType(t *testing.T) {
	if _, err := NewViperFromBytes("  ", []byte("a: b")); err == nil {
		t.Error("NewViperFromBytes() error = nil, want error")
	}
}
