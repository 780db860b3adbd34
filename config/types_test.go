package config

import (
	"testing"
	"time"
)

func TestEffectiveCookieTTLCappedAtSixtyDays(t *testing.T) {
	cases := []struct {
		ttl  time.Duration
		want time.Duration
	}{
		{0, 60 * 24 * time.Hour},
		{24 * time.Hour, 24 * time.Hour},
		{90 * 24 * time.Hour, 60 * 24 * time.Hour},
	}
	for _, tc := range cases {
		cfg := &AppConfig{SessionCookieTTL: tc.ttl}
		if got := cfg.EffectiveCookieTTL(); got != tc.want {
			t.Errorf("ttl=%v: got %v, want %v", tc.ttl, got, tc.want)
		}
	}
}

func TestIdentityRequestTimeoutDefault(t *testing.T) {
	c := &IdentityConfig{}
	if got := c.RequestTimeout(); got != 10*time.Second {
		t.Fatalf("got %v", got)
	}
	c.RequestTimeoutSec = 3
	if got := c.RequestTimeout(); got != 3*time.Second {
		t.Fatalf("got %v", got)
	}
}
