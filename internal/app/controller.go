package service

import (
	"context"

	"github.com/okian/cosmicboard/internal/domain/filter"
	"github.com/okian/cosmicboard/internal/domain/model"
	"github.com/okian/cosmicboard/internal/domain/stats"
	"github.com/okian/cosmicboard/internal/domain/types"
)

// Renderer paints one snapshot. It is called after load and after every change.
type Renderer func(ctx context.Context, snap types.Snapshot)

// Controller drives a single interactive session: load once, then re-render
// on every mode or search change. It is not safe for concurrent use.
type Controller struct {
	loader Loader
	render Renderer

	engine  *filter.Engine
	board   model.Board
	summary stats.Summary
}

// NewController wires a loader to a renderer. A nil renderer discards output.
func NewController(loader Loader, render Renderer) *Controller {
	if render == nil {
		render = func(context.Context, types.Snapshot) {}
	}
	return &Controller{
		loader: loader,
		render: render,
		engine: filter.New(nil),
	}
}

// Init loads the board, computes the aggregates and renders the first view.
func (c *Controller) Init(ctx context.Context) {
	c.board = c.loader.Load(ctx)
	c.summary = stats.Compute(c.board.Scores)
	c.engine.Reset(c.board.Scores)
	c.render(ctx, c.Snapshot())
}

// SetMode changes the mode filter and re-renders.
func (c *Controller) SetMode(ctx context.Context, mode string) {
	c.engine.SetMode(mode)
	c.render(ctx, c.Snapshot())
}

// SetSearchTerm changes the search term and re-renders.
func (c *Controller) SetSearchTerm(ctx context.Context, term string) {
	c.engine.SetSearchTerm(term)
	c.render(ctx, c.Snapshot())
}

// ClearSearch drops the search term and re-renders.
func (c *Controller) ClearSearch(ctx context.Context) {
	c.engine.ClearSearch()
	c.render(ctx, c.Snapshot())
}

// Snapshot returns the current view without rendering.
func (c *Controller) Snapshot() types.Snapshot {
	return types.Snapshot{
		State:       c.engine.State(),
		View:        c.engine.CurrentView(),
		Stats:       c.summary,
		LastUpdated: c.board.LastUpdated,
		Origin:      c.board.Origin,
	}
}
