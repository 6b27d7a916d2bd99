package classify

import (
	"strconv"
	"strings"
)

// ParseAmount normalizes a feed amount into an integer. It tolerates
// grouping commas and surrounding whitespace and returns 0 on anything it
// cannot parse. Callers treat a non-positive amount as "no usable amount",
// so a malformed field and a genuinely zero field are equivalent here and
// parsing never fails.
func ParseAmount(raw string) int64 {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
