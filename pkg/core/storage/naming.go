package storage

import (
	// 外部依赖
	"strings"

	// 内部引用
	model "github.com/labsuite/chemmanager/pkg/model"
)

// LocationName renders a node against its ancestor chain (root first, self
// excluded). Depth-1 nodes are just their own name; deeper nodes show the
// root followed by the parenthesized path down to and including the node.
func LocationName(chain []*model.Storage, node *model.Storage) string {
	if len(chain) == 0 {
		return node.Name
	}

	parts := make([]string, 0, len(chain))
	for _, n := range chain[1:] {
		parts = append(parts, n.Name)
	}
	parts = append(parts, node.Name)

	return chain[0].Name + " (" + strings.Join(parts, ", ") + ")"
}

// FullAbbreviation concatenates the non-empty abbreviations from the root
// down to the node itself. Absent abbreviations contribute nothing.
func FullAbbreviation(chain []*model.Storage, node *model.Storage) string {
	var b strings.Builder
	for _, n := range chain {
		if n.Abbreviation != nil {
			b.WriteString(*n.Abbreviation)
		}
	}
	if node.Abbreviation != nil {
		b.WriteString(*node.Abbreviation)
	}
	return b.String()
}

// DisplayName is the tree-listing label: shared nodes carry a marker,
// unshared ones are indented two spaces per level below the root with the
// abbreviation in parentheses when present.
func DisplayName(node *model.Storage, depth int, shared bool) string {
	if shared {
		return node.Name + " (shared)"
	}

	indent := strings.Repeat("  ", depth-1)
	if node.Abbreviation != nil {
		return indent + node.Name + " (" + *node.Abbreviation + ")"
	}
	return indent + node.Name
}
