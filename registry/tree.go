// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package registry

import (
	"log/slog"
	"slices"

	"github.com/binaryshapes/mixor/fault"
	"github.com/binaryshapes/mixor/tracelog"
)

// TreeNode is one node of a derived dependency tree. Trees are
// recomputed from the catalog on every call to [Registry.Tree] and
// never persisted.
type TreeNode struct {
	// Record is a snapshot of the node's catalog record.
	Record Record `json:"record"`

	// Depth is the distance from the root, which sits at 0.
	Depth int `json:"depth"`

	// Path lists the record ids from the root down to this node.
	Path []string `json:"path"`

	// Children holds the resolved child nodes. A branch that would
	// revisit an id already on the traversal is terminated here with
	// no children.
	Children []*TreeNode `json:"children,omitempty"`
}

// Tree derives the dependency tree rooted at rootID by depth-first
// traversal of ChildrenIDs and Refs.
//
// Cycles never make Tree recurse forever: a child id that was already
// visited during this call becomes a leaf node and a warning is
// logged. Tree fails with [ErrNotFound] only when rootID itself is
// absent. A record listing a child id missing from the catalog is a
// broken invariant and panics with [ErrCorrupted]: children can only
// be attached through registered components, so the catalog cannot
// reach that state through its own API.
func (r *Registry) Tree(rootID string) (*TreeNode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	root, ok := r.records[rootID]
	if !ok {
		return nil, fault.Newf("registry", "not_found", "no record for id %q", rootID)
	}

	visited := map[string]struct{}{rootID: {}}
	return r.walk(root, 0, []string{rootID}, visited), nil
}

func (r *Registry) walk(rec *Record, depth int, path []string, visited map[string]struct{}) *TreeNode {
	node := &TreeNode{
		Record: rec.snapshot(),
		Depth:  depth,
		Path:   path,
	}

	for _, childID := range childIDs(rec) {
		childPath := append(slices.Clone(path), childID)

		if _, seen := visited[childID]; seen {
			r.log.Warn("dependency cycle detected",
				tracelog.Component(childID),
				slog.Any("path", path),
			)
			node.Children = append(node.Children, &TreeNode{
				Record: r.mustChild(rec.ID, childID).snapshot(),
				Depth:  depth + 1,
				Path:   childPath,
			})
			continue
		}
		visited[childID] = struct{}{}

		child := r.mustChild(rec.ID, childID)
		node.Children = append(node.Children, r.walk(child, depth+1, childPath, visited))
	}
	return node
}

func (r *Registry) mustChild(parentID, childID string) *Record {
	child, ok := r.records[childID]
	if !ok {
		panic(fault.Newf("registry", "corrupted",
			"record %q lists missing child %q", parentID, childID))
	}
	return child
}

// childIDs returns the union of a record's children and refs in
// declaration order, dropping duplicates.
func childIDs(rec *Record) []string {
	if len(rec.ChildrenIDs) == 0 && len(rec.Refs) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(rec.ChildrenIDs)+len(rec.Refs))
	out := make([]string, 0, len(rec.ChildrenIDs)+len(rec.Refs))
	for _, id := range rec.ChildrenIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, id := range rec.Refs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
