package validation

import (
	"strings"
	"testing"
)

type sample struct {
	Name    string   `json:"name" validate:"required"`
	Mode    string   `yaml:"mode" validate:"omitempty,oneof=fast slow"`
	Entries []string `json:"entries" validate:"max=2,dive,notblank"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		input   *sample
		wantErr string
	}{
		{"valid", &sample{Name: "x", Mode: "fast"}, ""},
		{"missing name", &sample{}, "name: field is required"},
		{"bad mode", &sample{Name: "x", Mode: "medium"}, "mode: must be one of [fast slow]"},
		{"too many entries", &sample{Name: "x", Entries: []string{"a", "b", "c"}}, "entries: must not exceed 2"},
		{"blank entry", &sample{Name: "x", Entries: []string{"  "}}, "entries[0]: must not be blank"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateStructNil(t *testing.T) {
	if err := ValidateStruct(nil); err == nil {
		t.Error("Expected error for nil value")
	}
}
