package commands

import (
	"context"
	"sort"
	"strings"

	"trailhead/internal/domain"
	"trailhead/internal/ports"
)

// SearchResult wraps a node with its breadcrumb and relevance score
type SearchResult struct {
	Node  domain.Node
	Path  string
	Score int
}

// SearchCommand searches node names with fuzzy matching
type SearchCommand struct {
	graph ports.NodeGraph
	Query string
	Limit int
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(graph ports.NodeGraph, query string) *SearchCommand {
	return &SearchCommand{
		graph: graph,
		Query: query,
		Limit: 50,
	}
}

// Execute runs the search command and returns scored, sorted results
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	if len(strings.TrimSpace(c.Query)) < 2 {
		return nil, nil
	}

	nodes, err := c.graph.FindNodes(ctx, "")
	if err != nil {
		return nil, err
	}

	results := FuzzySort(nodes, c.Query)
	if c.Limit > 0 && len(results) > c.Limit {
		results = results[:c.Limit]
	}
	for i := range results {
		results[i].Path = describe(ctx, c.graph, results[i].Node)
	}
	return results, nil
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Exact substring match ranks highest
	if strings.Contains(target, query) {
		score := 100
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: chars must appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] == query[queryIdx] {
			if prevMatchIdx == i-1 {
				score += 10 // consecutive chars
			}
			if i == 0 {
				score += 15 // start of string
			}
			if i > 0 && (target[i-1] == ' ' || target[i-1] == '-' || target[i-1] == '_') {
				score += 10 // word start
			}
			score++
			prevMatchIdx = i
			queryIdx++
		}
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}

// FuzzySort scores nodes by name against query, dropping non-matches.
// Equal scores fall back to the most recently accessed node.
func FuzzySort(nodes []domain.Node, query string) []SearchResult {
	scored := make([]SearchResult, 0, len(nodes))
	for _, n := range nodes {
		if s := FuzzyScore(n.Name, query); s > 0 {
			scored = append(scored, SearchResult{Node: n, Score: s})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Node.LastAccessed.After(scored[j].Node.LastAccessed)
	})
	return scored
}
