package modgraph

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// CompileGroupsConcurrently runs fn once per independent dependency-tree
// group, one goroutine per group with no further limit, preserving the in-order, sequential
// contract within each group (: "coarse parallelism by module
// across independent dependency trees," pass order within a module
// preserved). The within-group order is the group's own slice order;
// fn is responsible for processing its modules in that order.
func CompileGroupsConcurrently(ctx context.Context, groups [][]*ModuleInfo, fn func([]*ModuleInfo) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, group := range groups {
		group := group
		g.Go(func() error {
			return fn(group)
		})
	}
	return g.Wait()
}
