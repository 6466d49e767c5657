package wrapper

import "testing"

func TestLength(t *testing.T) {
	if len(CommonJS) != 62 {
		t.Fatalf("len(CommonJS) = %d, want 62", len(CommonJS))
	}
	tests := map[string]int{
		"v8.17.0":  62,
		"v10.15.3": 62,
		"10.16.0":  0,
		"v12.22.1": 0,
		"v20.11.0": 0,
		"":         0,
		"latest":   0,
		"v18":      0,
	}
	for in, want := range tests {
		if got := Length(in); got != want {
			t.Errorf("Length(%q) = %d, want %d", in, got, want)
		}
	}
}
