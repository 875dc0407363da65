package section

import "sort"

// Set holds sections by canonical identity. Lookups hash with Key and fall
// back to canonical equality inside a bucket, so hash collisions never merge
// distinct sections. The zero value is an empty, ready-to-use Set.
// Set is not safe for concurrent mutation; concurrent reads are fine.
type Set struct {
	buckets map[Key][]Section
	n       int
}

// NewSet returns an empty Set with room for hint sections.
func NewSet(hint int) *Set {
	return &Set{buckets: make(map[Key][]Section, hint)}
}

// Len returns the number of distinct sections.
func (st *Set) Len() int { return st.n }

// Add inserts s unless a canonically equal section is present.
// Reports whether s was inserted.
func (st *Set) Add(s Section) bool {
	k := s.Key()
	for _, e := range st.buckets[k] {
		if e.Same(s) {
			return false
		}
	}
	if st.buckets == nil {
		st.buckets = make(map[Key][]Section)
	}
	st.buckets[k] = append(st.buckets[k], s)
	st.n++

	return true
}

// Has reports whether a section canonically equal to s is present.
func (st *Set) Has(s Section) bool {
	for _, e := range st.buckets[s.Key()] {
		if e.Same(s) {
			return true
		}
	}

	return false
}

// Remove deletes the section canonically equal to s. Reports whether one was found.
func (st *Set) Remove(s Section) bool {
	k := s.Key()
	bucket := st.buckets[k]
	for i, e := range bucket {
		if !e.Same(s) {
			continue
		}
		if len(bucket) == 1 {
			delete(st.buckets, k)
		} else {
			st.buckets[k] = append(bucket[:i:i], bucket[i+1:]...)
		}
		st.n--

		return true
	}

	return false
}

// Sections returns the members ordered by Key, then by canonical content.
// The order is deterministic for a given set of members.
func (st *Set) Sections() []Section {
	type keyed struct {
		key Key
		sec Section
	}
	all := make([]keyed, 0, st.n)
	for k, bucket := range st.buckets {
		for _, s := range bucket {
			all = append(all, keyed{key: k, sec: s})
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].key != all[j].key {
			return all[i].key < all[j].key
		}

		return all[i].sec.ring.Compare(all[j].sec.ring) < 0
	})

	out := make([]Section, len(all))
	for i := range all {
		out[i] = all[i].sec
	}

	return out
}
