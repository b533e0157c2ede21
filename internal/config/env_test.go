package config

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("AGENTPAY_TEST_STR", "  value  ")
	if got := GetEnv("AGENTPAY_TEST_STR", "fallback"); got != "value" {
		t.Errorf("expected trimmed value, got %q", got)
	}
	if got := GetEnv("AGENTPAY_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %q", got)
	}
}

func TestParseIntEnv(t *testing.T) {
	t.Setenv("AGENTPAY_TEST_INT", "42")
	if got := ParseIntEnv("AGENTPAY_TEST_INT", 7); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
	t.Setenv("AGENTPAY_TEST_INT", "not-a-number")
	if got := ParseIntEnv("AGENTPAY_TEST_INT", 7); got != 7 {
		t.Errorf("expected fallback 7, got %d", got)
	}
}

func TestParseBoolString(t *testing.T) {
	cases := []struct {
		raw      string
		fallback bool
		want     bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"YES", false, true},
		{"off", true, false},
		{"0", true, false},
		{"", true, true},
		{"garbage", false, false},
	}
	for _, tc := range cases {
		if got := ParseBoolString(tc.raw, tc.fallback); got != tc.want {
			t.Errorf("ParseBoolString(%q, %v) = %v, want %v", tc.raw, tc.fallback, got, tc.want)
		}
	}
}
