package domain

import (
	"fmt"
	"strings"
	"time"
)

// Filter selects which part of the graph a tree traversal materializes
type Filter int

const (
	FilterAll Filter = iota
	FilterRecent
	FilterTemp
	FilterProjects
	FilterTrails
	FilterTopics
	FilterModes
	FilterTags
	// FilterContext yields only the current context's members, each Selected.
	// The full tree with members marked comes from FilterAll, which overlays
	// the selection on every entry.
	FilterContext
)

// RecentWindow is how far back the RECENT filter looks at LastAccessed
const RecentWindow = 7 * 24 * time.Hour

// Well-known anchor node ids, one per category filter
const (
	AnchorProjects = "anchor-projects"
	AnchorTrails   = "anchor-trails"
	AnchorTopics   = "anchor-topics"
	AnchorModes    = "anchor-modes"
	AnchorTags     = "anchor-tags"
)

// Anchor describes a category anchor node
type Anchor struct {
	ID     string
	Name   string
	Filter Filter
}

// Anchors lists every category anchor in display order
var Anchors = []Anchor{
	{AnchorProjects, "Projects", FilterProjects},
	{AnchorTrails, "Trails", FilterTrails},
	{AnchorTopics, "Topics", FilterTopics},
	{AnchorModes, "Modes", FilterModes},
	{AnchorTags, "Tags", FilterTags},
}

// AllFilters lists every filter in the order front ends cycle through them
var AllFilters = []Filter{
	FilterAll, FilterRecent, FilterTemp,
	FilterProjects, FilterTrails, FilterTopics, FilterModes, FilterTags,
	FilterContext,
}

func (f Filter) String() string {
	switch f {
	case FilterAll:
		return "all"
	case FilterRecent:
		return "recent"
	case FilterTemp:
		return "temp"
	case FilterProjects:
		return "projects"
	case FilterTrails:
		return "trails"
	case FilterTopics:
		return "topics"
	case FilterModes:
		return "modes"
	case FilterTags:
		return "tags"
	case FilterContext:
		return "context"
	default:
		return "unknown"
	}
}

// ParseFilter parses a filter name (case-insensitive)
func ParseFilter(s string) (Filter, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return FilterAll, nil
	}
	for _, f := range AllFilters {
		if f.String() == name {
			return f, nil
		}
	}
	return FilterAll, fmt.Errorf("unknown filter %q", s)
}

// AnchorID returns the anchor node id for category filters
func (f Filter) AnchorID() (string, bool) {
	for _, a := range Anchors {
		if a.Filter == f {
			return a.ID, true
		}
	}
	return "", false
}

// IsAnchored reports whether the filter starts from a category anchor
func (f Filter) IsAnchored() bool {
	_, ok := f.AnchorID()
	return ok
}

// MatchesRoot reports whether a root node passes the filter predicate.
// Only meaningful for the root filters ALL, RECENT and TEMP.
func (f Filter) MatchesRoot(n Node, now time.Time) bool {
	switch f {
	case FilterRecent:
		return !n.LastAccessed.Before(now.Add(-RecentWindow))
	case FilterTemp:
		return n.Temp
	default:
		return true
	}
}
