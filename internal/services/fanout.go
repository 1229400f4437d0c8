package services

import (
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/youthcare-backend/internal/platform/ctxutil"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
)

const fanOutLimit = 4

// fanOut runs fn for every index in [0, n) with bounded concurrency and
// returns the first error. A transaction must not be used from two
// goroutines at once, so inside one the calls run one at a time.
func fanOut(dbc dbctx.Context, n int, fn func(dbctx.Context, int) error) error {
	g, gctx := errgroup.WithContext(ctxutil.Default(dbc.Ctx))
	limit := fanOutLimit
	if dbc.Tx != nil {
		limit = 1
	}
	g.SetLimit(limit)
	inner := dbctx.Context{Ctx: gctx, Tx: dbc.Tx}
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error { return fn(inner, i) })
	}
	return g.Wait()
}
