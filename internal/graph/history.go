package graph

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"trailhead/internal/application"
	"trailhead/internal/domain"
	"trailhead/internal/ports"
)

// DefaultHistoryLimit is used by RecentHistory when limit is not positive
const DefaultHistoryLimit = 20

// UpdateNodeHistory appends a navigation record and bumps LastAccessed of the
// current node. A blank or unknown previous id is recorded as absent.
func (e *Engine) UpdateNodeHistory(ctx context.Context, currentID, previousID string) error {
	if err := application.ValidateRequired("currentID", currentID); err != nil {
		return err
	}

	return e.withTx(ctx, "update history", func(tx ports.GraphTx) error {
		return e.recordHistory(ctx, tx, currentID, previousID)
	})
}

// Visit makes id the current node, recording whatever was current before it
// as previous. Revisiting the current node keeps the existing previous.
func (e *Engine) Visit(ctx context.Context, id string) error {
	if err := application.ValidateRequired("id", id); err != nil {
		return err
	}

	return e.withTx(ctx, "visit", func(tx ports.GraphTx) error {
		latest, err := tx.LatestHistory(ctx)
		if err != nil {
			return err
		}

		previous := ""
		if latest != nil {
			previous = latest.CurrentNodeID
			if previous == id {
				previous = latest.PreviousNodeID
			}
		}
		return e.recordHistory(ctx, tx, id, previous)
	})
}

func (e *Engine) recordHistory(ctx context.Context, tx ports.GraphTx, currentID, previousID string) error {
	if _, err := requireNode(ctx, tx, currentID); err != nil {
		return err
	}

	previousID = strings.TrimSpace(previousID)
	if previousID != "" {
		prev, err := tx.GetNode(ctx, previousID)
		if err != nil {
			return err
		}
		if prev == nil {
			e.log.Debug("previous node not found, recording without it", zap.String("previousID", previousID))
			previousID = ""
		}
	}

	now := e.now()
	rec := &domain.HistoryRecord{
		CurrentNodeID:  currentID,
		PreviousNodeID: previousID,
		Timestamp:      now,
	}
	if err := tx.AppendHistory(ctx, rec); err != nil {
		return err
	}
	if err := tx.TouchNode(ctx, currentID, now); err != nil {
		return err
	}

	e.log.Debug("history recorded",
		zap.Int64("recordID", rec.ID),
		zap.String("currentID", currentID),
		zap.String("previousID", previousID),
	)
	return nil
}

// GetCurrentNode returns the node of the most recent history record, or nil
// when the history is empty or that node has since been deleted.
func (e *Engine) GetCurrentNode(ctx context.Context) (*domain.Node, error) {
	return e.historyNode(ctx, "current node", func(rec *domain.HistoryRecord) string {
		return rec.CurrentNodeID
	})
}

// GetPreviousNode returns the previous node of the most recent history record
func (e *Engine) GetPreviousNode(ctx context.Context) (*domain.Node, error) {
	return e.historyNode(ctx, "previous node", func(rec *domain.HistoryRecord) string {
		return rec.PreviousNodeID
	})
}

func (e *Engine) historyNode(ctx context.Context, op string, pick func(*domain.HistoryRecord) string) (*domain.Node, error) {
	var node *domain.Node
	err := e.withReadTx(ctx, op, func(tx ports.GraphTx) error {
		latest, err := tx.LatestHistory(ctx)
		if err != nil || latest == nil {
			return err
		}
		id := pick(latest)
		if id == "" {
			return nil
		}
		node, err = tx.GetNode(ctx, id)
		return err
	})
	return node, err
}

// RecentHistory returns up to limit history records, newest first
func (e *Engine) RecentHistory(ctx context.Context, limit int) ([]domain.HistoryRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	var records []domain.HistoryRecord
	err := e.withReadTx(ctx, "recent history", func(tx ports.GraphTx) error {
		var err error
		records, err = tx.RecentHistory(ctx, limit)
		return err
	})
	return records, err
}
