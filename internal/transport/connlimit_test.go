package transport

import (
	"testing"

	"github.com/towerkeep/mudcore/internal/config"
)

func TestConnLimiterPerIPLimit(t *testing.T) {
	limiter := NewConnLimiter(config.ConnectionsConfig{MaxPerIP: 2, MaxTotal: 100})

	if !limiter.TryAcquire("192.168.1.1") {
		t.Fatal("first connection should be allowed")
	}
	if !limiter.TryAcquire("192.168.1.1") {
		t.Fatal("second connection should be allowed")
	}
	if limiter.TryAcquire("192.168.1.1") {
		t.Fatal("third connection from same IP should be rejected")
	}
	if !limiter.TryAcquire("192.168.1.2") {
		t.Fatal("connection from a different IP should be allowed")
	}

	limiter.Release("192.168.1.1")
	if !limiter.TryAcquire("192.168.1.1") {
		t.Fatal("connection should be allowed again after release")
	}
}

func TestConnLimiterTotalLimit(t *testing.T) {
	limiter := NewConnLimiter(config.ConnectionsConfig{MaxPerIP: 10, MaxTotal: 3})

	for i, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		if !limiter.TryAcquire(ip) {
			t.Fatalf("connection %d should be allowed", i)
		}
	}
	if limiter.TryAcquire("10.0.0.4") {
		t.Fatal("fourth connection should be rejected by the total limit")
	}

	limiter.Release("10.0.0.1")
	if !limiter.TryAcquire("10.0.0.4") {
		t.Fatal("connection should be allowed after a release frees a slot")
	}
}

func TestConnLimiterUnlimited(t *testing.T) {
	limiter := NewConnLimiter(config.ConnectionsConfig{MaxPerIP: 0, MaxTotal: 0})

	for i := 0; i < 100; i++ {
		if !limiter.TryAcquire("10.0.0.1") {
			t.Fatalf("connection %d should be allowed when unlimited", i)
		}
	}
}

func TestConnLimiterStats(t *testing.T) {
	limiter := NewConnLimiter(config.ConnectionsConfig{MaxPerIP: 10, MaxTotal: 100})

	limiter.TryAcquire("10.0.0.1")
	limiter.TryAcquire("10.0.0.1")
	limiter.TryAcquire("10.0.0.2")

	total, distinctIPs := limiter.Stats()
	if total != 3 {
		t.Errorf("expected total 3, got %d", total)
	}
	if distinctIPs != 2 {
		t.Errorf("expected 2 distinct IPs, got %d", distinctIPs)
	}

	limiter.Release("10.0.0.1")
	limiter.Release("10.0.0.1")
	total, distinctIPs = limiter.Stats()
	if total != 1 {
		t.Errorf("expected total 1 after releasing both of 10.0.0.1's slots, got %d", total)
	}
	if distinctIPs != 1 {
		t.Errorf("expected 1 distinct IP remaining, got %d", distinctIPs)
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"192.168.1.1:12345", "192.168.1.1"},
		{"[::1]:12345", "::1"},
		{"no-port-here", "no-port-here"},
	}
	for _, tt := range tests {
		if got := extractIP(tt.input); got != tt.expected {
			t.Errorf("extractIP(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
