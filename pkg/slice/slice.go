// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package slice

// DuplicatedString returns the first string that occurs twice in s, or "".
func DuplicatedString(s []string) string {
	m := map[string]struct{}{}
	for _, k := range s {
		if _, ok := m[k]; ok {
			return k
		}
		m[k] = struct{}{}
	}
	return ""
}

func ToSet(s []string) map[string]struct{} {
	m := make(map[string]struct{}, len(s))
	for _, k := range s {
		m[k] = struct{}{}
	}
	return m
}

// Union returns the distinct strings of every slice, in order of first appearance.
func Union(slices ...[]string) []string {
	m := map[string]struct{}{}
	res := []string{}
	for _, sl := range slices {
		for _, s := range sl {
			if _, ok := m[s]; ok {
				continue
			}
			m[s] = struct{}{}
			res = append(res, s)
		}
	}
	return res
}

// Intersect returns strings of sl that are also in other, keeping sl's order.
func Intersect(sl, other []string) []string {
	m := ToSet(other)
	res := []string{}
	for _, s := range sl {
		if _, ok := m[s]; ok {
			res = append(res, s)
		}
	}
	return res
}

func StringSliceContains(sl []string, s string) bool {
	for _, v := range sl {
		if v == s {
			return true
		}
	}
	return false
}

// CompareStringSlices splits slice into strings that oldSlice also has (unchanged)
// and strings it doesn't (added), and lists strings only oldSlice has (removed).
func CompareStringSlices(slice, oldSlice []string) (unchanged, added, removed []string) {
	m := ToSet(slice)
	oldM := ToSet(oldSlice)
	for _, col := range slice {
		if _, ok := oldM[col]; !ok {
			added = append(added, col)
		} else {
			unchanged = append(unchanged, col)
		}
	}
	for _, col := range oldSlice {
		if _, ok := m[col]; !ok {
			removed = append(removed, col)
		}
	}
	return
}
