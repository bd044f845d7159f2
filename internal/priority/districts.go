package priority

import (
	pstrings "medhope/pkg/platform/strings"
)

// Districts is the fixed set a case location must belong to.
var Districts = []string{
	"Central",
	"East",
	"Keamari",
	"Korangi",
	"Malir",
	"South",
	"West",
}

var districtIndex = func() map[string]string {
	idx := make(map[string]string, len(Districts))
	for _, d := range Districts {
		idx[pstrings.NormalizeKey(d)] = d
	}
	return idx
}()

// CanonicalDistrict returns the canonical spelling of district, if known.
func CanonicalDistrict(district string) (string, bool) {
	d, ok := districtIndex[pstrings.NormalizeKey(district)]
	return d, ok
}
