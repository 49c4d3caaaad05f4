package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagNumber(t *testing.T) {
	cases := []struct {
		tag  string
		want int
	}{
		{"AST-001", 1},
		{"AST-042", 42},
		{"AST-1000", 1000},
		{"LEGACY", 0},
		{"AST-", 0},
		{"AST-ABC", 0},
		{"", 0},
		{"X-Y-007", 7},
	}
	for _, tc := range cases {
		t.Run(tc.tag, func(t *testing.T) {
			assert.Equal(t, tc.want, TagNumber(tc.tag))
		})
	}
}

func TestFormatTag(t *testing.T) {
	assert.Equal(t, "AST-001", FormatTag(1))
	assert.Equal(t, "AST-042", FormatTag(42))
	assert.Equal(t, "AST-1000", FormatTag(1000))
}
