package errors

import (
	"testing"
)

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{"valid", 255, 255, false},
		{"one pixel", 1, 1, false},
		{"zero width", 0, 10, true},
		{"zero height", 10, 0, true},
		{"negative width", -4, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimensions(%d, %d) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidArgument) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidArgument)
			}
		})
	}
}

func TestValidateDensity(t *testing.T) {
	if err := ValidateDensity(0); err != nil {
		t.Errorf("zero density should pass: %v", err)
	}
	if err := ValidateDensity(10); err != nil {
		t.Errorf("positive density should pass: %v", err)
	}
	if err := ValidateDensity(-1); !Is(err, ErrCodeInvalidArgument) {
		t.Errorf("negative density error = %v, want INVALID_ARGUMENT", err)
	}
}

func TestValidateBand(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
		wantErr  bool
	}{
		{"default band", 10, 20, false},
		{"narrowest", 0, 2, false},
		{"empty", 5, 6, true},
		{"inverted", 20, 10, true},
		{"negative min", -1, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBand(tt.min, tt.max)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBand(%d, %d) error = %v, wantErr %v", tt.min, tt.max, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "voronoi", false},
		{"with dash", "VoronoiGen-20261019", false},
		{"with dot", "map.v2", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"slash", "out/map", true},
		{"backslash", "out\\map", true},
		{"traversal", "..map", true},
		{"null byte", "map\x00", true},
		{"newline", "map\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
