package learning

import "strings"

// NormalizeKey folds a topic or skill name for comparison.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// KeySet is a case-insensitive set of topic or skill names.
type KeySet map[string]struct{}

func NewKeySet(items ...[]string) KeySet {
	set := KeySet{}
	for _, list := range items {
		for _, it := range list {
			if k := NormalizeKey(it); k != "" {
				set[k] = struct{}{}
			}
		}
	}
	return set
}

func (s KeySet) Has(item string) bool {
	_, ok := s[NormalizeKey(item)]
	return ok
}

// Intersect returns the items of list present in s, in list order, without duplicates.
func (s KeySet) Intersect(list []string) []string {
	return filterKeys(list, func(k string) bool { _, ok := s[k]; return ok })
}

// Missing returns the items of list absent from s, in list order, without duplicates.
func (s KeySet) Missing(list []string) []string {
	return filterKeys(list, func(k string) bool { _, ok := s[k]; return !ok })
}

// Dedupe drops blanks and case-insensitive repeats, keeping the first spelling.
func Dedupe(list []string) []string {
	return filterKeys(list, func(string) bool { return true })
}

func filterKeys(list []string, keep func(key string) bool) []string {
	out := make([]string, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, it := range list {
		k := NormalizeKey(it)
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if keep(k) {
			out = append(out, strings.TrimSpace(it))
		}
	}
	return out
}
