package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	tests := []struct {
		name   string
		region string
		input  string
		want   string
	}{
		{name: "national US number", region: "", input: "(415) 555-2671", want: "+14155552671"},
		{name: "international prefix wins", region: "US", input: "+31 20 123 4567", want: "+31201234567"},
		{name: "national NL number", region: "nl", input: "020 123 4567", want: "+31201234567"},
		{name: "garbage kept", region: "US", input: " call me ", want: "call me"},
		{name: "empty", region: "US", input: "  ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewNormalizer(tt.region).NormalizeE164(tt.input); got != tt.want {
				t.Fatalf("NormalizeE164(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
