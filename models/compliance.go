package models

import "strings"

// HOTO 豁免单位：owner 含以下子串即不需要 HOTO 号
var hotoExemptOwners = []string{"cloud office", "coc"}

// IsHotoCompliant is advisory only. It never blocks a write; callers use it
// to build the non-compliance listing.
func IsHotoCompliant(a *Asset) bool {
	owner := strings.ToLower(strings.TrimSpace(a.Owner))
	for _, exempt := range hotoExemptOwners {
		if strings.Contains(owner, exempt) {
			return true
		}
	}
	return strings.TrimSpace(a.HotoNumber) != ""
}
