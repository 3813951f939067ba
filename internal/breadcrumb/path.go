// Package breadcrumb reconstructs logical JSON paths from tree entries and
// tracks the path shown in the breadcrumb bar.
package breadcrumb

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rebeliceyang/lazyjson/internal/jsonv"
	"github.com/rebeliceyang/lazyjson/internal/models"
)

// Separator joins step labels in the human-readable path
const Separator = " › "

var (
	// ErrPathNotFound is returned when a step matches no child entry
	ErrPathNotFound = errors.New("path not found")
	// ErrPlaceholder is returned when a lazy placeholder blocks the path
	ErrPlaceholder = errors.New("path crosses an unloaded placeholder")
)

// StepKind tells whether a step is matched by key or by ordinal
type StepKind string

const (
	ObjectProperty StepKind = "object-property"
	ArrayItem      StepKind = "array-item"
)

// Step is one hop from a parent entry to a child entry
type Step struct {
	Key      string
	Index    int
	HasIndex bool
	Kind     StepKind
}

// Label returns the key, or [index] for array items
func (s Step) Label() string {
	if s.Kind == ArrayItem {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	return s.Key
}

// Path is the sequence of steps from the root to an entry
type Path []Step

// Compute walks parent links upward from node. The root contributes no
// step, so len(path) equals node.Depth.
func Compute(node *models.TreeNode) Path {
	if node == nil {
		return nil
	}
	path := make(Path, node.Depth)
	i := node.Depth
	for current := node; current.Parent != nil && i > 0; current = current.Parent {
		i--
		if current.ArrayItem {
			path[i] = Step{Index: current.Index, HasIndex: true, Kind: ArrayItem}
		} else {
			path[i] = Step{Key: current.Key, Kind: ObjectProperty}
		}
	}
	return path[i:]
}

// Equal reports whether two paths have the same steps
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// String joins step labels with Separator
func (p Path) String() string {
	labels := make([]string, len(p))
	for i, s := range p {
		labels[i] = s.Label()
	}
	return strings.Join(labels, Separator)
}

var identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Expression returns the path in $.key[0]["odd key"] notation
func (p Path) Expression() string {
	var sb strings.Builder
	sb.WriteString("$")
	for _, s := range p {
		switch {
		case s.Kind == ArrayItem:
			fmt.Fprintf(&sb, "[%d]", s.Index)
		case identifier.MatchString(s.Key):
			sb.WriteString("." + s.Key)
		default:
			sb.WriteString("[" + jsonv.Quote(s.Key) + "]")
		}
	}
	return sb.String()
}

// Pointer returns the RFC 6901 JSON Pointer for the path, which is also the
// ID of the entry it leads to
func (p Path) Pointer() string {
	id := ""
	for _, s := range p {
		if s.Kind == ArrayItem {
			id = models.ChildID(id, strconv.Itoa(s.Index))
		} else {
			id = models.ChildID(id, s.Key)
		}
	}
	return id
}

// Resolve replays path from root, matching each step by key for object
// properties and by ordinal for array items
func Resolve(root *models.TreeNode, path Path) (*models.TreeNode, error) {
	current := root
	for i, step := range path {
		if current.Placeholder {
			return current, fmt.Errorf("step %d: %w", i, ErrPlaceholder)
		}
		next := matchStep(current, step)
		if next == nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, step.Label(), ErrPathNotFound)
		}
		current = next
	}
	return current, nil
}

func matchStep(parent *models.TreeNode, step Step) *models.TreeNode {
	switch step.Kind {
	case ArrayItem:
		if parent.Kind != models.EntryArray || step.Index < 0 || step.Index >= len(parent.Children) {
			return nil
		}
		return parent.Children[step.Index]
	default:
		if parent.Kind != models.EntryObject {
			return nil
		}
		for _, child := range parent.Children {
			if child.HasKey && child.Key == step.Key {
				return child
			}
		}
		return nil
	}
}
