package plancsv

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount parses a money cell into cents. Both plain and European
// formats appear in the wild: "1500.00" -> 150000, "1.500,00" -> 150000,
// "1500" -> 150000.
func parseAmount(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("amount is required")
	}

	clean := s
	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
