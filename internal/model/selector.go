package model

// Selector picks the subset of a world's bodies a Dynamic applies to: an
// explicit list of body ids, a list of body-id pairs, or neither — meaning
// "all bodies". Only the union of referenced bodies is considered affected.
type Selector struct {
	Bodies []string    `json:"bodies,omitempty"`
	Pairs  [][2]string `json:"pairs,omitempty"`
}

// IsEmpty reports whether the selector names no bodies or pairs at all.
func (s Selector) IsEmpty() bool {
	return len(s.Bodies) == 0 && len(s.Pairs) == 0
}

// Mask returns, for the given ordered body ids, a boolean slice that is true
// at index i iff body ids[i] is affected by the selector. An empty selector,
// or one whose referenced ids resolve to nothing in ids, selects every body.
func (s Selector) Mask(ids []string) []bool {
	mask := make([]bool, len(ids))

	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	any := false
	for _, id := range s.Bodies {
		if i, ok := index[id]; ok {
			mask[i] = true
			any = true
		}
	}
	for _, pair := range s.Pairs {
		if i, ok := index[pair[0]]; ok {
			mask[i] = true
			any = true
		}
		if i, ok := index[pair[1]]; ok {
			mask[i] = true
			any = true
		}
	}

	if !any {
		for i := range mask {
			mask[i] = true
		}
	}
	return mask
}
