package priority

import (
	"strings"

	pstrings "medhope/pkg/platform/strings"
)

type indexedEntry struct {
	area  string
	class Class
}

type districtIndexEntry struct {
	exact   map[string]Class
	ordered []indexedEntry
}

// Classifier maps a (district, area) pair to a Priority. It is immutable
// after construction and safe for concurrent use.
type Classifier struct {
	districts map[string]*districtIndexEntry
}

// NewClassifier indexes entries by normalized district. Exact area names are
// resolved through a hash map; partial names fall back to a substring scan of
// the district's entries in dataset order.
func NewClassifier(entries []Entry) *Classifier {
	c := &Classifier{districts: make(map[string]*districtIndexEntry)}
	for _, e := range entries {
		district := pstrings.NormalizeKey(e.District)
		area := pstrings.NormalizeKey(e.AreaName)
		if district == "" || area == "" {
			continue
		}
		idx, ok := c.districts[district]
		if !ok {
			idx = &districtIndexEntry{exact: make(map[string]Class)}
			c.districts[district] = idx
		}
		if _, dup := idx.exact[area]; !dup {
			idx.exact[area] = e.Class
		}
		idx.ordered = append(idx.ordered, indexedEntry{area: area, class: e.Class})
	}
	return c
}

// NewDefaultClassifier builds a Classifier over the embedded dataset.
func NewDefaultClassifier() *Classifier {
	return NewClassifier(DefaultEntries())
}

// Classify never fails: unknown or empty input yields Default.
func (c *Classifier) Classify(district, area string) Priority {
	d := pstrings.NormalizeKey(district)
	a := pstrings.NormalizeKey(area)
	if d == "" || a == "" {
		return Default
	}
	idx, ok := c.districts[d]
	if !ok {
		return Default
	}
	if class, ok := idx.exact[a]; ok {
		return class.Priority()
	}
	for _, e := range idx.ordered {
		if strings.Contains(e.area, a) || strings.Contains(a, e.area) {
			return e.class.Priority()
		}
	}
	return Default
}
