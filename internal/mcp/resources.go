package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) sessionStatus(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	snap, err := h.ds.SessionStatus(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(h.statusPayload(ctx, snap))
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) catalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	trainings, err := h.ds.ListTrainings(ctx)
	if err != nil {
		return nil, err
	}

	exercises, err := h.ds.ListExercises(ctx)
	if err != nil {
		h.log.Warn("catalog: exercise query failed", "error", err)
	}

	categories, err := h.ds.ListCategories(ctx)
	if err != nil {
		h.log.Warn("catalog: category query failed", "error", err)
	}

	data, err := json.Marshal(map[string]any{
		"trainings":  trainings,
		"exercises":  exercises,
		"categories": categories,
	})
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
