package language

import "testing"

func TestToISO2(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"en", "en"},
		{"EN", "en"},
		{"en-US", "en"},
		{"english", "en"},
		{"English", "en"},
		{"ja", "ja"},
		{"japanese", "ja"},
		{"pt-BR", "pt"},
		{"", ""},
		{"zz", ""},
		{"klingon", ""},
	}
	for _, tc := range tests {
		if got := ToISO2(tc.input); got != tc.want {
			t.Errorf("ToISO2(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("en-US"); got != "English" {
		t.Fatalf("DisplayName(en-US) = %q", got)
	}
	// Unresolvable inputs pass through unchanged.
	if got := DisplayName("zz"); got != "zz" {
		t.Fatalf("DisplayName(zz) = %q", got)
	}
}
