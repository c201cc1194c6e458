// Package engine wires the tree walker, differ chain, and reporter sink
// together into the single Run entry point spec.md §2's data-flow
// paragraph describes: (A) tree -> (B) pairing -> (C) differ dispatch ->
// (D-H) semantic differs -> (I) reporter sink.
package engine

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/semdiff/semdiff/internal/pkg/differ"
	"github.com/semdiff/semdiff/internal/pkg/differ/audiodiff"
	"github.com/semdiff/semdiff/internal/pkg/differ/binarydiff"
	"github.com/semdiff/semdiff/internal/pkg/differ/imagediff"
	"github.com/semdiff/semdiff/internal/pkg/differ/jsondiff"
	"github.com/semdiff/semdiff/internal/pkg/differ/textdiff"
	"github.com/semdiff/semdiff/internal/pkg/pairing"
	"github.com/semdiff/semdiff/internal/pkg/report"
	"github.com/semdiff/semdiff/internal/pkg/tree/fstree"
)

// Config is the full configuration bundle of spec.md §6's table, all
// defaulting to the zero value per that table's "(defaults = 0)" column.
type Config struct {
	JSON  jsondiff.Config
	Image imagediff.Config
	Audio audiodiff.Config

	// MaxConcurrency bounds in-flight leaf tasks; zero means
	// runtime.GOMAXPROCS(0) (pairing.Walker's own default).
	MaxConcurrency int
}

// Chain builds the differ chain in spec.md §4.2's recommended order: JSON
// (narrowest) -> text -> audio -> image -> binary (universal fallback).
func Chain(cfg Config) differ.Chain {
	return differ.Chain{
		{Name: "json", Calculator: jsondiff.Calculator{Config: cfg.JSON}},
		{Name: "text", Calculator: textdiff.Calculator{}},
		{Name: "audio", Calculator: audiodiff.Calculator{Config: cfg.Audio}},
		{Name: "image", Calculator: imagediff.Calculator{Config: cfg.Image}},
		{Name: "binary", Calculator: binarydiff.Calculator{}},
	}
}

// Run performs one full comparison: walk expectedRoot and actualRoot on
// fs, dispatch every leaf pair/singleton through the differ chain, and
// record every outcome into sink. It returns after sink.Finish() has run
// (the success path) or the first error encountered (spec.md §7's
// propagation policy: sink.Finish() is only reached if no traversal/differ
// error occurred).
func Run(ctx context.Context, fs afero.Fs, expectedRoot, actualRoot string, cfg Config, sink report.Sink) error {
	if err := sink.Start(); err != nil {
		return fmt.Errorf("engine: start sink: %w", err)
	}

	w := &pairing.Walker{
		Chain:          Chain(cfg),
		Sink:           sink,
		MaxConcurrency: cfg.MaxConcurrency,
	}

	expected := fstree.Root(fs, expectedRoot)
	actual := fstree.Root(fs, actualRoot)

	if err := w.Walk(ctx, expected, actual); err != nil {
		return fmt.Errorf("engine: walk: %w", err)
	}

	if err := sink.Finish(); err != nil {
		return fmt.Errorf("engine: finish sink: %w", err)
	}
	return nil
}
