package jsonv

import "sort"

// DisplayMembers returns the members of an object sorted by key for display.
// Sorting is by byte order, the same order JavaScript's default sort gives
// for BMP-only keys.
func (v *Value) DisplayMembers() []Member {
	members := v.Members()
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Key < members[j].Key
	})
	return members
}
