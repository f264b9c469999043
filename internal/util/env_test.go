package util

import "testing"

func TestParseBoolEnv(t *testing.T) {
	cases := []struct {
		value string
		def   bool
		want  bool
	}{
		{"", true, true},
		{"true", false, true},
		{"YES", false, true},
		{"0", true, false},
		{"off", true, false},
		{"maybe", true, true},
	}
	for _, tc := range cases {
		t.Setenv("CF_TEST_BOOL", tc.value)
		if got := ParseBoolEnv("CF_TEST_BOOL", tc.def); got != tc.want {
			t.Errorf("ParseBoolEnv(%q, %v) = %v, want %v", tc.value, tc.def, got, tc.want)
		}
	}
}

func TestParseIntEnv(t *testing.T) {
	cases := []struct {
		value string
		want  int
	}{
		{"", 7},
		{"42", 42},
		{" 13 ", 13},
		{"not-a-number", 7},
	}
	for _, tc := range cases {
		t.Setenv("CF_TEST_INT", tc.value)
		if got := ParseIntEnv("CF_TEST_INT", 7); got != tc.want {
			t.Errorf("ParseIntEnv(%q) = %d, want %d", tc.value, got, tc.want)
		}
	}
}

func TestGetEnvDefault(t *testing.T) {
	t.Setenv("CF_TEST_STR", "")
	if got := GetEnvDefault("CF_TEST_STR", "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %q", got)
	}
	t.Setenv("CF_TEST_STR", "set")
	if got := GetEnvDefault("CF_TEST_STR", "fallback"); got != "set" {
		t.Errorf("expected set, got %q", got)
	}
}
