package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Monetary values circulate as integer centavos so that aggregate
// totals never drift. These helpers convert at the API boundary.

// FormatBRL renders centavos as "R$ 1.234,56".
func FormatBRL(centavos int64) string {
	sign := ""
	if centavos < 0 {
		sign = "-"
		centavos = -centavos
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, formatThousand(centavos/100), centavos%100)
}

// ParseBRL parses "R$ 1.234,56", "1234,56" or "1234.56" into centavos.
// At most two decimal places are accepted.
func ParseBRL(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.ToLower(s), "r$")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("valor monetário vazio")
	}

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	// Brazilian format uses '.' as thousand separator and ',' as the
	// decimal mark; plain API input uses '.' as the decimal mark.
	intPart, fracPart := s, ""
	switch {
	case strings.Contains(s, ","):
		parts := strings.SplitN(s, ",", 2)
		intPart = strings.ReplaceAll(parts[0], ".", "")
		fracPart = parts[1]
	case strings.Contains(s, "."):
		parts := strings.SplitN(s, ".", 2)
		intPart, fracPart = parts[0], parts[1]
	}

	if len(fracPart) > 2 {
		return 0, fmt.Errorf("mais de duas casas decimais: %q", s)
	}
	for len(fracPart) < 2 {
		fracPart += "0"
	}

	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("valor monetário inválido: %q", s)
	}
	frac, err := strconv.ParseInt(fracPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("valor monetário inválido: %q", s)
	}

	out := whole*100 + frac
	if neg {
		out = -out
	}
	return out, nil
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(c)
	}
	return out.String()
}
