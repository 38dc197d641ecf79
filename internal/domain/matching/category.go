package matching

import "strings"

// categoryFamilies groups category labels that are loosely interchangeable
// when matching supplies to needs. Relatedness holds iff both labels belong
// to the same family (the family key included). Unknown labels are only
// exact-matchable.
var categoryFamilies = map[string][]string{
	"medical":   {"health", "firstaid", "medicine", "pharmaceutical"},
	"food":      {"nutrition", "supplies", "rations", "emergency"},
	"shelter":   {"housing", "tents", "blankets", "bedding"},
	"water":     {"hydration", "sanitation", "hygiene"},
	"equipment": {"tools", "gear", "machinery"},
}

// familyOf maps every lowercased label to its family key
var familyOf = buildFamilyIndex()

func buildFamilyIndex() map[string]string {
	index := make(map[string]string)
	for family, members := range categoryFamilies {
		index[family] = family
		for _, member := range members {
			index[member] = family
		}
	}
	return index
}

// CategoriesMatch reports whether two category labels match exactly,
// case-insensitive
func CategoriesMatch(a, b string) bool {
	return strings.EqualFold(a, b)
}

// CategoriesRelated reports whether two distinct category labels belong to
// the same family
func CategoriesRelated(a, b string) bool {
	familyA, okA := familyOf[strings.ToLower(a)]
	familyB, okB := familyOf[strings.ToLower(b)]
	return okA && okB && familyA == familyB
}
