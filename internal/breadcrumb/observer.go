package breadcrumb

import "github.com/rebeliceyang/lazyjson/internal/models"

const (
	// Threshold is the minimum visible ratio for an entry to count as
	// intersecting
	Threshold = 0.1
	// RootMargin shrinks the observed band by this fraction at the top and
	// at the bottom of the viewport
	RootMargin = 0.2
)

// Visibility is one notification for one observed entry
type Visibility struct {
	Node         *models.TreeNode
	Ratio        float64
	Intersecting bool
}

// Observer forwards the most visible entry of each batch to a tracker
type Observer struct {
	tracker *Tracker
}

// NewObserver creates an observer driving tracker
func NewObserver(tracker *Tracker) *Observer {
	return &Observer{tracker: tracker}
}

// Notify handles one batch of visibility changes. Only the most
// intersecting candidate is reported, so a burst of scroll notifications
// costs at most one path computation.
func (o *Observer) Notify(batch []Visibility) *models.TreeNode {
	var (
		best     *models.TreeNode
		maxRatio float64
	)
	for _, v := range batch {
		if v.Intersecting && v.Ratio > maxRatio {
			maxRatio = v.Ratio
			best = v.Node
		}
	}
	if best != nil {
		o.tracker.Update(best)
	}
	return best
}

// Band returns the observed half-open row range [start, end) for a viewport
// of the given height, after applying RootMargin
func Band(height int) (start, end int) {
	margin := int(float64(height) * RootMargin)
	start, end = margin, height-margin
	if end <= start {
		return 0, height
	}
	return start, end
}

// Ratio returns the fraction of the span [spanStart, spanEnd) that falls
// within [bandStart, bandEnd)
func Ratio(spanStart, spanEnd, bandStart, bandEnd int) float64 {
	if spanEnd <= spanStart {
		return 0
	}
	lo, hi := max(spanStart, bandStart), min(spanEnd, bandEnd)
	if hi <= lo {
		return 0
	}
	return float64(hi-lo) / float64(spanEnd-spanStart)
}
