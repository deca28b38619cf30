package core

import "testing"

func TestFindAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"кофе 500", "500", true},
		{"обед 12.50", "12.50", true},
		{"обед 12,50", "12.50", true},
		{"500", "500", true},
		{"такси 150 и еще 200", "150", true}, // first match wins
		{"1,", "1.", true},
		{"кофе без суммы", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := FindAmount(tc.in)
		if ok != tc.ok || got != tc.out {
			t.Fatalf("FindAmount(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.out, tc.ok)
		}
	}
}

func TestValidAmount(t *testing.T) {
	valid := []string{"500", "12.50", "12,50", " 42 ", "0.5"}
	for _, s := range valid {
		if !ValidAmount(s) {
			t.Fatalf("ValidAmount(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "примерно 500", "12.50 тг", "-5", "двести"}
	for _, s := range invalid {
		if ValidAmount(s) {
			t.Fatalf("ValidAmount(%q) = true, want false", s)
		}
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"12.50", "12.5", true},
		{"12,50", "12.5", true},
		{"500", "500", true},
		{"", "0", false},
		{"abc", "0", false},
		{"**2024-01-01 итого**", "0", false},
	}
	for _, tc := range cases {
		got, ok := ParseAmount(tc.in)
		if ok != tc.ok {
			t.Fatalf("ParseAmount(%q) ok = %v, want %v", tc.in, ok, tc.ok)
		}
		if got.String() != tc.out {
			t.Fatalf("ParseAmount(%q) = %s, want %s", tc.in, got, tc.out)
		}
	}
}
