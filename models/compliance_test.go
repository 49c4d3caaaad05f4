package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHotoCompliant(t *testing.T) {
	cases := []struct {
		name  string
		owner string
		hoto  string
		want  bool
	}{
		{"hoto number present", "Finance Dept", "HOTO-2024-17", true},
		{"missing hoto number", "Finance Dept", "", false},
		{"whitespace hoto number", "Finance Dept", "   ", false},
		{"exempt cloud office", "Cloud Office", "", true},
		{"exempt substring match", "NDC Cloud Office Team", "", true},
		{"exempt coc", "COC", "", true},
		{"exempt coc mixed case", "regional CoC desk", "", true},
		{"empty owner no hoto", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := &Asset{Owner: tc.owner, HotoNumber: tc.hoto}
			assert.Equal(t, tc.want, IsHotoCompliant(a))
		})
	}
}
