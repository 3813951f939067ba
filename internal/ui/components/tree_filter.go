package components

import (
	"strings"

	"github.com/rebeliceyang/lazyjson/internal/jsonv"
	"github.com/rebeliceyang/lazyjson/internal/models"
)

// SearchQuery represents a parsed search query
type SearchQuery struct {
	Pattern    string // The search pattern (after removing prefix/type)
	Negate     bool   // True if query starts with !
	TypeFilter string // Normalized filter: "key", "value" or a value kind
}

// Filter prefixes, longest first so "null:" wins over "n:"
var typePrefixes = []struct {
	prefix string
	filter string
}{
	{"boolean:", "boolean"},
	{"string:", "string"},
	{"number:", "number"},
	{"object:", "object"},
	{"array:", "array"},
	{"value:", "value"},
	{"bool:", "boolean"},
	{"null:", "null"},
	{"key:", "key"},
	{"k:", "key"},
	{"v:", "value"},
	{"s:", "string"},
	{"n:", "number"},
	{"b:", "boolean"},
	{"o:", "object"},
	{"a:", "array"},
}

// ParseSearchQuery parses a search query string into structured form
// Examples:
//   - "name" → {Pattern: "name", Negate: false, TypeFilter: ""}
//   - "!test" → {Pattern: "test", Negate: true, TypeFilter: ""}
//   - "k:id" → {Pattern: "id", Negate: false, TypeFilter: "key"}
//   - "!s:http" → {Pattern: "http", Negate: true, TypeFilter: "string"}
func ParseSearchQuery(query string) SearchQuery {
	q := SearchQuery{}

	if strings.HasPrefix(query, "!") {
		q.Negate = true
		query = query[1:]
	}

	queryLower := strings.ToLower(query)
	for _, p := range typePrefixes {
		if strings.HasPrefix(queryLower, p.prefix) {
			q.TypeFilter = p.filter
			query = query[len(p.prefix):]
			break
		}
	}

	q.Pattern = query
	return q
}

// FuzzyMatch performs fuzzy subsequence matching
// Returns whether the pattern matches and the positions of matched characters
// Matching is case-insensitive
func FuzzyMatch(pattern, target string) (bool, []int) {
	if pattern == "" {
		return true, []int{}
	}

	patternLower := []rune(strings.ToLower(pattern))
	targetLower := []rune(strings.ToLower(target))

	positions := make([]int, 0, len(patternLower))
	patternIdx := 0

	for i := 0; i < len(targetLower) && patternIdx < len(patternLower); i++ {
		if targetLower[i] == patternLower[patternIdx] {
			positions = append(positions, i)
			patternIdx++
		}
	}

	if patternIdx == len(patternLower) {
		return true, positions
	}
	return false, nil
}

// NodeMatchesType checks if an entry matches the given kind filter.
// "key" and "value" restrict which text is searched, not the entry kind.
func NodeMatchesType(node *models.TreeNode, typeFilter string) bool {
	switch typeFilter {
	case "", "key":
		return true
	case "value":
		return node.Kind == models.EntryPrimitive
	default:
		return node.ValueKind.String() == typeFilter
	}
}

// valueText is the searchable text of a primitive entry
func valueText(node *models.TreeNode) string {
	if node.Kind != models.EntryPrimitive || node.Value == nil {
		return ""
	}
	if node.ValueKind == jsonv.KindString {
		return node.Value.Str()
	}
	return node.Value.Literal()
}

// patternMatches applies the pattern to the key and/or value text selected
// by the filter
func patternMatches(node *models.TreeNode, q SearchQuery) bool {
	if q.Pattern == "" {
		return true
	}
	keyOK := false
	if node.HasKey && q.TypeFilter != "value" {
		keyOK, _ = FuzzyMatch(q.Pattern, node.Key)
	}
	if keyOK || q.TypeFilter == "key" {
		return keyOK
	}
	valueOK, _ := FuzzyMatch(q.Pattern, valueText(node))
	return valueOK && node.Kind == models.EntryPrimitive
}

// FilterTree filters the built entries based on search query
// Returns a flat list of matching entries in document order. The root is
// never a match.
func FilterTree(root *models.TreeNode, query SearchQuery) []*models.TreeNode {
	var matches []*models.TreeNode
	if root == nil {
		return matches
	}

	root.Walk(func(node *models.TreeNode) bool {
		if node.Parent == nil {
			return true
		}

		typeMatches := NodeMatchesType(node, query.TypeFilter)
		textMatches := patternMatches(node, query)

		shouldInclude := false
		if query.Negate {
			switch {
			case query.TypeFilter != "" && !typeMatches:
				shouldInclude = true
			case typeMatches && !textMatches:
				shouldInclude = true
			}
		} else {
			shouldInclude = typeMatches && textMatches
		}

		if shouldInclude {
			matches = append(matches, node)
		}
		return true
	})
	return matches
}

// NextMatch returns the first match after current in document order,
// wrapping around. It returns nil when there are no matches.
func NextMatch(matches []*models.TreeNode, current *models.TreeNode) *models.TreeNode {
	if len(matches) == 0 {
		return nil
	}
	if current != nil {
		order := make(map[*models.TreeNode]int)
		i := 0
		current.Root().Walk(func(n *models.TreeNode) bool {
			order[n] = i
			i++
			return true
		})
		pos, ok := order[current]
		if ok {
			for _, m := range matches {
				if order[m] > pos {
					return m
				}
			}
		}
	}
	return matches[0]
}
