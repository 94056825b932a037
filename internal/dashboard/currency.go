package dashboard

import (
	"fmt"
	"strings"

	"budgetry/internal/core"
)

// FormatCurrency renders a cent amount as rupees with Indian digit
// grouping: the last three digits form one group, the rest pair off
// in twos (₹12,34,567.89).
func FormatCurrency(m core.Money) string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	whole := cents / 100
	frac := cents % 100
	return fmt.Sprintf("%s₹%s.%02d", sign, groupIndian(whole), frac)
}

func groupIndian(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	head := s[:len(s)-3]
	tail := s[len(s)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	return strings.Join(groups, ",") + "," + tail
}
