package database

import "context"

// BoundAdapter adapts Adapter's context-aware sample block methods to the
// context-free model.BlockStore interface RemoveUnusedBlocks expects,
// since the semantic model package stays context-agnostic by design.
type BoundAdapter struct {
	a   *Adapter
	ctx context.Context
}

// WithContext binds ctx for use through model.BlockStore.
func (a *Adapter) WithContext(ctx context.Context) *BoundAdapter {
	return &BoundAdapter{a: a, ctx: ctx}
}

func (b *BoundAdapter) ListBlockIDs() ([]int64, error) { return b.a.ListBlockIDs(b.ctx) }
func (b *BoundAdapter) DeleteBlocks(ids []int64) error { return b.a.DeleteBlocks(b.ctx, ids) }
func (b *BoundAdapter) Vacuum() error                  { return b.a.Vacuum(b.ctx) }
