package envutil

import "testing"

func TestStr(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_STR", "value")
	t.Setenv("ENVUTIL_TEST_STR_BLANK", "   ")

	if got := Str("ENVUTIL_TEST_STR", "def"); got != "value" {
		t.Fatalf("expected %q, got %q", "value", got)
	}
	if got := Str("ENVUTIL_TEST_STR_BLANK", "def"); got != "def" {
		t.Fatalf("expected default for blank value, got %q", got)
	}
	if got := Str("ENVUTIL_TEST_STR_MISSING", "def"); got != "def" {
		t.Fatalf("expected default for missing value, got %q", got)
	}
}

func TestInt(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_INT", "42")
	t.Setenv("ENVUTIL_TEST_INT_BAD", "not-a-number")

	if got := Int("ENVUTIL_TEST_INT", 7); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	if got := Int("ENVUTIL_TEST_INT_BAD", 7); got != 7 {
		t.Fatalf("expected default for unparseable value, got %d", got)
	}
	if got := Int("ENVUTIL_TEST_INT_MISSING", 7); got != 7 {
		t.Fatalf("expected default for missing value, got %d", got)
	}
}

func TestBool(t *testing.T) {
	tests := []struct {
		value string
		def   bool
		want  bool
	}{
		{"1", false, true},
		{"true", false, true},
		{"YES", false, true},
		{"on", false, true},
		{"0", true, false},
		{"false", true, false},
		{"no", true, false},
		{"off", true, false},
		{"maybe", true, true},
		{"", false, false},
	}
	for _, tc := range tests {
		t.Run("value "+tc.value, func(t *testing.T) {
			t.Setenv("ENVUTIL_TEST_BOOL", tc.value)
			if got := Bool("ENVUTIL_TEST_BOOL", tc.def); got != tc.want {
				t.Fatalf("Bool(%q, %v) = %v, expected %v", tc.value, tc.def, got, tc.want)
			}
		})
	}
}
