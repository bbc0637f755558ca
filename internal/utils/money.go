package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatMoney renders an integer amount with thousand separators.
func FormatMoney(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + formatThousand(amount)
}

// FormatSalaryRange renders "from - to", collapsing to one side when the other is unset.
func FormatSalaryRange(from, to int64) string {
	switch {
	case from <= 0 && to <= 0:
		return "Negotiable"
	case to <= 0:
		return "From " + FormatMoney(from)
	case from <= 0:
		return "Up to " + FormatMoney(to)
	default:
		return fmt.Sprintf("%s - %s", FormatMoney(from), FormatMoney(to))
	}
}

// ParseMoney parses "1,000" or "1.000" into an integer amount.
func ParseMoney(s string) (int64, error) {
	s = strings.TrimSpace(s)
	replacer := strings.NewReplacer(".", "", ",", "", " ", "")
	s = replacer.Replace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid amount")
	}
	return strconv.ParseInt(s, 10, 64)
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
