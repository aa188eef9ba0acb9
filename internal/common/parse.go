package common

import (
	"strconv"
	"strings"
)

// ParseUint64orHex parses a decimal or 0x prefixed hexadecimal number, as
// nodes print block numbers either way.
func ParseUint64orHex(val string) (uint64, error) {
	if hex, ok := strings.CutPrefix(strings.ToLower(val), "0x"); ok {
		return strconv.ParseUint(hex, 16, 64)
	}
	return strconv.ParseUint(val, 10, 64)
}

func ToLowerWithTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
