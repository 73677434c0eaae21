package validation

import "testing"

func TestValidatePlate(t *testing.T) {
	tests := []struct {
		name  string
		plate string
		want  bool
	}{
		{"valid 7 digits", "1234567", true},
		{"valid 8 digits", "12345678", true},
		{"leading zeros", "0012345", true},
		{"too short", "123456", false},
		{"too long", "123456789", false},
		{"empty string", "", false},
		{"letters", "12345ab", false},
		{"embedded dash", "123-4567", false},
		{"embedded space", "123 4567", false},
		{"unicode digits", "１２３４５６７", false},
		{"negative number", "-1234567", false},
		{"decimal", "1234.567", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePlate(tt.plate)
			if got != tt.want {
				t.Errorf("ValidatePlate(%q) = %v, want %v", tt.plate, got, tt.want)
			}
		})
	}
}

func TestNormalizePlate(t *testing.T) {
	tests := []struct {
		name  string
		plate string
		want  string
	}{
		{"already clean", "1234567", "1234567"},
		{"surrounding whitespace", "  1234567 ", "1234567"},
		{"israeli dash format", "123-45-678", "12345678"},
		{"spaces between groups", "123 45 678", "12345678"},
		{"mixed separators", " 12-34 567", "1234567"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePlate(tt.plate)
			if got != tt.want {
				t.Errorf("NormalizePlate(%q) = %q, want %q", tt.plate, got, tt.want)
			}
		})
	}
}

func TestShardDigit(t *testing.T) {
	tests := []struct {
		plate string
		want  int
	}{
		{"1234567", 7},
		{"1234560", 0},
		{"99999999", 9},
		{"7654321", 1},
	}

	for _, tt := range tests {
		if got := ShardDigit(tt.plate); got != tt.want {
			t.Errorf("ShardDigit(%q) = %d, want %d", tt.plate, got, tt.want)
		}
	}
}
