package utils

import (
	"testing"
	"time"
)

func TestGetEnvAsBool(t *testing.T) {
	cases := []struct {
		val  string
		def  bool
		want bool
	}{
		{"1", false, true},
		{"true", false, true},
		{"yes", false, true},
		{"0", true, false},
		{"no", true, false},
		{"garbage", true, true},
		{"", false, false},
	}
	for _, c := range cases {
		t.Setenv("TEST_BOOL", c.val)
		if got := GetEnvAsBool("TEST_BOOL", c.def); got != c.want {
			t.Errorf("GetEnvAsBool(%q, %v) = %v, want %v", c.val, c.def, got, c.want)
		}
	}
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	if got := GetEnvAsInt("TEST_INT", 7); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
	t.Setenv("TEST_INT", "not-a-number")
	if got := GetEnvAsInt("TEST_INT", 7); got != 7 {
		t.Errorf("expected default 7, got %d", got)
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("TEST_DUR", "150ms")
	if got := GetEnvAsDuration("TEST_DUR", time.Second); got != 150*time.Millisecond {
		t.Errorf("expected 150ms, got %v", got)
	}
	t.Setenv("TEST_DUR", "bogus")
	if got := GetEnvAsDuration("TEST_DUR", time.Second); got != time.Second {
		t.Errorf("expected default 1s, got %v", got)
	}
}
