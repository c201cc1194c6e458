// Package pairing implements the tree walker and pairing engine (spec.md
// §4.1): a parallel, name-sorted co-traversal of two trees that classifies
// each name as unchanged/modified/added/deleted and schedules leaf
// comparison tasks.
package pairing

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/semdiff/semdiff/internal/pkg/differ"
	"github.com/semdiff/semdiff/internal/pkg/report"
	"github.com/semdiff/semdiff/internal/pkg/tree"
)

// Walker drives the co-traversal. Chain dispatches leaf pairs/singletons;
// Sink records the outcome.
type Walker struct {
	Chain differ.Chain
	Sink  report.Sink

	// MaxConcurrency bounds the number of leaf tasks in flight at once. Zero
	// means runtime.GOMAXPROCS(0) — the "work-stealing thread pool" of
	// spec.md §4.1 rendered as goroutines bounded by a counting semaphore.
	MaxConcurrency int
}

// Walk performs the full traversal starting at the two roots and returns
// after every scheduled leaf task has completed (the task scope has
// joined), or the first error encountered.
func (w *Walker) Walk(ctx context.Context, expected, actual tree.Node) error {
	n := w.MaxConcurrency
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	sem := semaphore.NewWeighted(int64(n))

	g, gctx := errgroup.WithContext(ctx)

	recurseErr := w.recurse(gctx, g, sem, expected, actual, "")
	waitErr := g.Wait()
	// A caller-thread traversal error (directory listing failure) is
	// reported eagerly per spec.md §7, unless the task scope's own
	// first-error-wins slot already holds something — that one is
	// authoritative, since a context cancellation can make recurse fail
	// with ctx.Err() even though the "real" error is a leaf task's.
	if waitErr != nil {
		return waitErr
	}
	return recurseErr
}

// recurse walks one pair of nodes on the caller's goroutine (directory
// recursion is synchronous — cheap, bounded by tree depth) and schedules a
// goroutine per leaf pair/singleton encountered (differ work is CPU-heavy:
// FFT, image/audio decode).
func (w *Walker) recurse(ctx context.Context, g *errgroup.Group, sem *semaphore.Weighted, expected, actual tree.Node, parent string) error {
	expChildren, err := expected.Children()
	if err != nil {
		return fmt.Errorf("list expected %q: %w", parent, err)
	}
	actChildren, err := actual.Children()
	if err != nil {
		return fmt.Errorf("list actual %q: %w", parent, err)
	}

	tree.SortItems(expChildren)
	tree.SortItems(actChildren)

	i, j := 0, 0
	for i < len(expChildren) || j < len(actChildren) {
		switch {
		case i >= len(expChildren):
			// expected exhausted: remainder of actual is all Added.
			if err := w.handleOneSided(ctx, g, sem, actChildren[j], parent, sideActual); err != nil {
				return err
			}
			j++
		case j >= len(actChildren):
			if err := w.handleOneSided(ctx, g, sem, expChildren[i], parent, sideExpected); err != nil {
				return err
			}
			i++
		default:
			e, a := expChildren[i], actChildren[j]
			switch compareItems(e, a) {
			case 0:
				if err := w.handlePair(ctx, g, sem, e, a, parent); err != nil {
					return err
				}
				i++
				j++
			case -1:
				// expected side is deleted.
				if err := w.handleOneSided(ctx, g, sem, e, parent, sideExpected); err != nil {
					return err
				}
				i++
			default:
				// actual side is added.
				if err := w.handleOneSided(ctx, g, sem, a, parent, sideActual); err != nil {
					return err
				}
				j++
			}
		}
	}
	return nil
}

type side int

const (
	sideExpected side = iota
	sideActual
)

// compareItems implements the ordering invariant from spec.md §3: nodes
// sort before leaves, within a kind lexicographic by name. It returns -1 if
// e sorts before a, 1 if after, 0 if equal (same kind, same name — cross-kind
// matches are impossible given this ordering, per spec.md §3's invariant).
func compareItems(e, a tree.Item) int {
	if e.IsNode() != a.IsNode() {
		if e.IsNode() {
			return -1
		}
		return 1
	}
	switch {
	case e.Name() < a.Name():
		return -1
	case e.Name() > a.Name():
		return 1
	default:
		return 0
	}
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}

// handlePair processes a same-name pair: recurse if both are nodes,
// otherwise schedule a leaf comparison task.
func (w *Walker) handlePair(ctx context.Context, g *errgroup.Group, sem *semaphore.Weighted, e, a tree.Item, parent string) error {
	name := e.Name()
	path := joinPath(parent, name)

	if e.IsNode() && a.IsNode() {
		return w.recurse(ctx, g, sem, e.(tree.Node), a.(tree.Node), path)
	}

	// Cross-kind same-name pairs cannot occur: compareItems sorts by kind
	// first, so equal names only ever arrive here as (leaf, leaf).
	expLeaf, aOK1 := e.(tree.Leaf)
	actLeaf, aOK2 := a.(tree.Leaf)
	if !aOK1 || !aOK2 {
		return fmt.Errorf("pairing: impossible cross-kind match at %q", path)
	}

	return w.scheduleLeafTask(ctx, g, sem, func() error {
		tag, d, err := w.Chain.Diff(path, expLeaf, actLeaf)
		if err != nil {
			return fmt.Errorf("diff %q: %w", path, err)
		}
		status := report.Modified
		if d.Equal() {
			status = report.Unchanged
		}
		return w.Sink.Record(report.Entry{Key: path, Status: status, DifferTag: tag, Detail: d})
	})
}

// handleOneSided emits Added/Deleted for a single item, recursing through
// an entire absent subtree if it is a node (spec.md §4.1 step 3).
func (w *Walker) handleOneSided(ctx context.Context, g *errgroup.Group, sem *semaphore.Weighted, item tree.Item, parent string, s side) error {
	path := joinPath(parent, item.Name())

	if item.IsNode() {
		n := item.(tree.Node)
		children, err := n.Children()
		if err != nil {
			return fmt.Errorf("list %q: %w", path, err)
		}
		for _, c := range children {
			if err := w.handleOneSided(ctx, g, sem, c, path, s); err != nil {
				return err
			}
		}
		return nil
	}

	leaf := item.(tree.Leaf)
	return w.scheduleLeafTask(ctx, g, sem, func() error {
		var (
			tag    string
			d      differ.Diff
			err    error
			status report.Status
		)
		switch s {
		case sideExpected:
			tag, d, err = w.Chain.Deleted(path, leaf)
			status = report.Deleted
		default:
			tag, d, err = w.Chain.Added(path, leaf)
			status = report.Added
		}
		if err != nil {
			return fmt.Errorf("diff %q: %w", path, err)
		}
		return w.Sink.Record(report.Entry{Key: path, Status: status, DifferTag: tag, Detail: d})
	})
}

func (w *Walker) scheduleLeafTask(ctx context.Context, g *errgroup.Group, sem *semaphore.Weighted, task func() error) error {
	if err := sem.Acquire(ctx, 1); err != nil {
		return err
	}
	g.Go(func() error {
		defer sem.Release(1)
		return task()
	})
	return nil
}
