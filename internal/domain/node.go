package domain

import (
	"slices"
	"time"
)

// Node is a unit of the work hierarchy (project, topic, trail, tag, mode...)
type Node struct {
	ID           string    // Opaque unique id, immutable once assigned
	Name         string    // Display name
	Created      time.Time // Creation time
	LastAccessed time.Time // Bumped whenever the node becomes current
	Temp         bool      // Scratch node, surfaced by the TEMP filter
	WorkspaceRef string    // Optional external workspace id, empty when unset
}

// NodePatch carries a partial node update. Nil fields are left untouched.
type NodePatch struct {
	Name         *string
	Temp         *bool
	WorkspaceRef *string // Empty string clears the reference
	LastAccessed *time.Time
}

// IsEmpty reports whether the patch carries no field at all
func (p NodePatch) IsEmpty() bool {
	return p.Name == nil && p.Temp == nil && p.WorkspaceRef == nil && p.LastAccessed == nil
}

// Apply returns a copy of n with the patch applied
func (p NodePatch) Apply(n Node) Node {
	if p.Name != nil {
		n.Name = *p.Name
	}
	if p.Temp != nil {
		n.Temp = *p.Temp
	}
	if p.WorkspaceRef != nil {
		n.WorkspaceRef = *p.WorkspaceRef
	}
	if p.LastAccessed != nil {
		n.LastAccessed = *p.LastAccessed
	}
	return n
}

// Relationship is a directed parent -> child edge
type Relationship struct {
	ParentID string
	ChildID  string
	Seq      int64 // Insertion sequence assigned by the store
}

// HistoryRecord is one entry of the append-only navigation log
type HistoryRecord struct {
	ID             int64
	CurrentNodeID  string
	PreviousNodeID string // Empty when there was no valid previous node
	Timestamp      time.Time
}

// Context is a named set of node ids used to mark traversal results as selected
type Context struct {
	ID            string
	Name          string
	MemberNodeIDs map[string]struct{}
}

// NewContext builds a Context from a member id list
func NewContext(id, name string, members []string) *Context {
	set := make(map[string]struct{}, len(members))
	for _, m := range members {
		set[m] = struct{}{}
	}
	return &Context{ID: id, Name: name, MemberNodeIDs: set}
}

// Has reports whether nodeID is a member of the context
func (c *Context) Has(nodeID string) bool {
	if c == nil {
		return false
	}
	_, ok := c.MemberNodeIDs[nodeID]
	return ok
}

// Members returns the member ids in sorted order
func (c *Context) Members() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, 0, len(c.MemberNodeIDs))
	for id := range c.MemberNodeIDs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// FirstParent returns the parent id of childID with the lowest insertion
// sequence, which is the deterministic pick for multi-parent nodes.
func FirstParent(childID string, edges []Relationship) (string, bool) {
	var (
		best  Relationship
		found bool
	)
	for _, e := range edges {
		if e.ChildID != childID {
			continue
		}
		if !found || e.Seq < best.Seq {
			best = e
			found = true
		}
	}
	return best.ParentID, found
}
