package errors

import (
	"testing"
)

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		height  int
		max     int
		wantErr bool
	}{
		{"smallest", 1, 1, 100, false},
		{"at max", 100, 100, 100, false},
		{"unbounded", 5000, 2, 0, false},
		{"zero width", 0, 5, 100, true},
		{"negative height", 5, -1, 100, true},
		{"over max width", 101, 5, 100, true},
		{"over max height", 5, 101, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(tt.width, tt.height, tt.max)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimensions(%d, %d, %d) error = %v, wantErr %v", tt.width, tt.height, tt.max, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDimensions) {
				t.Errorf("ValidateDimensions returned wrong error code: %v", err)
			}
		})
	}
}

func TestValidateFormatAndStyle(t *testing.T) {
	formats := []string{"text", "json", "dot", "svg"}
	if err := ValidateFormat("svg", formats); err != nil {
		t.Errorf("ValidateFormat(svg) = %v", err)
	}
	if err := ValidateFormat("png", formats); !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormat(png) = %v, want INVALID_FORMAT", err)
	}

	styles := []string{"blocks", "ascii"}
	if err := ValidateStyle("ascii", styles); err != nil {
		t.Errorf("ValidateStyle(ascii) = %v", err)
	}
	if err := ValidateStyle("", styles); !Is(err, ErrCodeInvalidStyle) {
		t.Errorf("ValidateStyle(\"\") = %v, want INVALID_STYLE", err)
	}
}

func TestValidateMongoURI(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"mongodb://localhost:27017", false},
		{"mongodb+srv://cluster.example.net", false},
		{"", true},
		{"http://localhost:27017", true},
		{"localhost:27017", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateMongoURI(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMongoURI(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRedisAddr(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"localhost:6379", false},
		{"[::1]:6379", false},
		{"", true},
		{"localhost", true},
		{"localhost:", true},
		{":6379", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateRedisAddr(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRedisAddr(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidConfig) {
				t.Errorf("ValidateRedisAddr returned wrong error code: %v", err)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidDimensions,
		ErrCodeInvalidAlgorithm,
		ErrCodeInvalidFormat,
		ErrCodeInvalidStyle,
		ErrCodeInvalidConfig,
		ErrCodeOutOfRange,
		ErrCodeNotFound,
		ErrCodeMazeNotFound,
		ErrCodeNetwork,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
