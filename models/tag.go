package models

import (
	"fmt"
	"strconv"
	"strings"
)

const TagPrefix = "AST"

// TagNumber extracts the numeric suffix after the last '-'.
// Tags that do not parse count as 0.
func TagNumber(tag string) int {
	i := strings.LastIndex(tag, "-")
	if i < 0 {
		return 0
	}
	n, err := strconv.Atoi(tag[i+1:])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// FormatTag renders AST-NNN, zero-padded to three digits.
func FormatTag(n int) string {
	return fmt.Sprintf("%s-%03d", TagPrefix, n)
}
