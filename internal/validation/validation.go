package validation

import (
	"regexp"
	"strings"
)

// PlatePattern defines the valid plate format: 7 or 8 digits, nothing else.
var PlatePattern = regexp.MustCompile(`^[0-9]{7,8}$`)

// ValidatePlate checks if a plate matches the allowed pattern.
func ValidatePlate(plate string) bool {
	return PlatePattern.MatchString(plate)
}

// NormalizePlate strips the separators people type into plate numbers
// (12-345-67, "123 45 678") so lookups are forgiving about formatting.
func NormalizePlate(plate string) string {
	plate = strings.TrimSpace(plate)
	plate = strings.ReplaceAll(plate, "-", "")
	plate = strings.ReplaceAll(plate, " ", "")
	return plate
}

// ShardDigit returns the shard index (0-9) for a plate: its last digit.
// The plate must already be validated.
func ShardDigit(plate string) int {
	return int(plate[len(plate)-1] - '0')
}
