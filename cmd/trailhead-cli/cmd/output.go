package cmd

import (
	"fmt"
	"io"

	"trailhead/internal/domain"
)

func printNodes(w io.Writer, label string, nodes []domain.Node) {
	if len(nodes) == 0 {
		return
	}
	fmt.Fprintf(w, "  %s:\n", label)
	for _, n := range nodes {
		fmt.Fprintf(w, "    %s %s\n", n.ID, n.Name)
	}
}
