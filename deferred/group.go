package deferred

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ForceAll materializes the given cells concurrently. limit bounds the number
// of in-flight materializations; limit <= 0 means unbounded. Already
// materialized and nil cells are skipped. The first error is returned;
// remaining cells may or may not have been forced.
//
// Cells shared between dependency chains are still produced exactly once:
// each cell's own sync.Once serializes duplicate forcing.
func ForceAll(ctx context.Context, limit int, cells ...Forcer) error {
	g, _ := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for _, c := range cells {
		if c == nil || c.IsMaterialized() {
			continue
		}
		g.Go(func() error {
			return c.Force()
		})
	}

	return g.Wait()
}
