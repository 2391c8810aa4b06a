package svcconfig

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseDuration parses the JSON form of google.proto.Duration: a decimal
// number of seconds followed by "s", e.g. "5s", "1.5s". Exponents, signs
// and unit suffixes other than "s" are rejected; parsers distinguish the
// malformed-string case from out-of-range values themselves.
func ParseDuration(v Value) (time.Duration, bool) {
	text, ok := v.AsString()
	if !ok {
		return 0, false
	}
	if !strings.HasSuffix(text, "s") {
		return 0, false
	}
	num := text[:len(text)-1]
	if num == "" || !isDecimal(num) {
		return 0, false
	}
	secs, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	// Second counts beyond the time.Duration range would wrap on
	// conversion; treat them as malformed rather than returning garbage.
	if secs > float64(math.MaxInt64)/float64(time.Second) {
		return 0, false
	}
	return time.Duration(secs * float64(time.Second)), true
}

// isDecimal accepts digits with at most one interior decimal point.
func isDecimal(s string) bool {
	dot := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '.' {
			if dot || i == 0 || i == len(s)-1 {
				return false
			}
			dot = true
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
