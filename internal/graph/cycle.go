package graph

import (
	"context"

	"trailhead/internal/ports"
)

// MaxCycleSearchDepth caps the reachability search used for cycle detection
const MaxCycleSearchDepth = 100

// wouldCreateCycle reports whether inserting parentID -> childID would close a
// loop, i.e. parentID is already reachable from childID by following edges
// forward. It must run on the same transaction as the insert it guards.
// A search that exhausts the hop cap with nodes still unexplored counts as a
// cycle, so the cap can never let a loop through.
func wouldCreateCycle(ctx context.Context, tx ports.GraphTx, parentID, childID string) (bool, error) {
	if parentID == childID {
		return true, nil
	}

	visited := map[string]bool{childID: true}
	frontier := []string{childID}

	for hops := 0; hops < MaxCycleSearchDepth && len(frontier) > 0; hops++ {
		var next []string
		for _, id := range frontier {
			children, err := tx.ChildIDs(ctx, id)
			if err != nil {
				return false, err
			}
			for _, c := range children {
				if c == parentID {
					return true, nil
				}
				if !visited[c] {
					visited[c] = true
					next = append(next, c)
				}
			}
		}
		frontier = next
	}

	return len(frontier) > 0, nil
}
