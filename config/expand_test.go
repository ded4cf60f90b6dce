package config

import (
	"strings"
	"testing"
)

func TestExpandStrict(t *testing.T) {
	t.Setenv("DW_USER", "admin")
	t.Setenv("DW_PASS", "hunter2")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain string", "admin", "admin"},
		{"single reference", "${DW_USER}", "admin"},
		{"embedded reference", "user-${DW_USER}-x", "user-admin-x"},
		{"multiple references", "${DW_USER}:${DW_PASS}", "admin:hunter2"},
		{"escaped dollar", "pa$$word", "pa$word"},
		{"bare dollar untouched", "pa$word", "pa$word"},
		{"unbraced ref untouched", "$DW_USER", "$DW_USER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandStrict(tt.input)
			if err != nil {
				t.Fatalf("expandStrict(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("expandStrict(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExpandStrict_MissingVariables(t *testing.T) {
	_, err := expandStrict("${DW_MISSING_B}:${DW_MISSING_A}")
	if err == nil {
		t.Fatal("expandStrict() error = nil, want missing variable failure")
	}
	// Missing names are reported sorted for stable messages.
	if !strings.Contains(err.Error(), "DW_MISSING_A, DW_MISSING_B") {
		t.Errorf("error = %v, want sorted missing names", err)
	}
}

func TestExpandStrict_EmptyValueIsNotMissing(t *testing.T) {
	t.Setenv("DW_EMPTY", "")

	got, err := expandStrict("x${DW_EMPTY}y")
	if err != nil {
		t.Fatalf("expandStrict() error = %v", err)
	}
	if got != "xy" {
		t.Errorf("expandStrict() = %q, want 'xy'", got)
	}
}
