package config_test

import (
	"testing"
	"time"

	"gopkg.in/yaml.v2"

	"learn.admission/config"
)

// TestLimitConfigUnmarshal verifies duration-string parsing of the interval
// field.
func TestLimitConfigUnmarshal(t *testing.T) {
	var cfg config.LimitConfig
	data := "key: api\ncapacity: 100\ninterval: 250ms\n"
	if err := yaml.Unmarshal([]byte(data), &cfg); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}
	if cfg.Key != "api" || cfg.Capacity != 100 || cfg.Interval != 250*time.Millisecond {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

// TestLimitConfigUnmarshalEmptyInterval verifies that an omitted interval
// parses as zero (a permanently blocked policy) rather than erroring.
func TestLimitConfigUnmarshalEmptyInterval(t *testing.T) {
	var cfg config.LimitConfig
	if err := yaml.Unmarshal([]byte("key: api\ncapacity: 1\n"), &cfg); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}
	if cfg.Interval != 0 {
		t.Fatalf("interval = %v, want 0", cfg.Interval)
	}
}

// TestLimitConfigUnmarshalBadInterval verifies that a malformed duration is
// reported as an error naming the offending key.
func TestLimitConfigUnmarshalBadInterval(t *testing.T) {
	var cfg config.LimitConfig
	if err := yaml.Unmarshal([]byte("key: api\ncapacity: 1\ninterval: soon\n"), &cfg); err == nil {
		t.Fatal("expected an error for an unparseable interval")
	}
}
