package models

// TargetKind is the interaction role of a rendered element. It is fixed when
// the element is created so dispatch never re-derives it from styling.
type TargetKind string

const (
	TargetNone      TargetKind = ""
	TargetEntry     TargetKind = "entry"
	TargetExpander  TargetKind = "expander"
	TargetKey       TargetKind = "key"
	TargetValue     TargetKind = "value"
	TargetLoadMore  TargetKind = "load-more"
	TargetCrumb     TargetKind = "crumb"
	TargetRootCrumb TargetKind = "root-crumb"
)

// ParseTargetKind maps a data-role attribute back to its kind
func ParseTargetKind(s string) TargetKind {
	switch k := TargetKind(s); k {
	case TargetEntry, TargetExpander, TargetKey, TargetValue, TargetLoadMore, TargetCrumb, TargetRootCrumb:
		return k
	}
	return TargetNone
}
