package items

import "math"

// ParseID reads an item id from a path segment the lenient way clients
// already rely on: leading whitespace is skipped, an optional sign is
// accepted, then leading decimal digits are consumed and the rest ignored
// ("12abc" -> 12). ok is false when no digit was found; such ids match no item.
func ParseID(s string) (id int, ok bool) {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	start := i
	n := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		d := int(s[i] - '0')
		if n > (math.MaxInt-d)/10 {
			// Too large to name any registry id.
			return 0, false
		}
		n = n*10 + d
		i++
	}
	if i == start {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}
