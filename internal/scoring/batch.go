// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import (
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/research-hunter/pkg/types"
)

// ScoredPaper pairs a paper with its score breakdown.
type ScoredPaper struct {
	Paper types.Paper `json:"paper" yaml:"paper"`
	Score Breakdown   `json:"score" yaml:"score"`
}

// ScoreAll scores every paper and returns the pairs sorted descending by
// total, ties broken by input order. The config is validated first: a bad
// config scores nothing.
//
// Records are independent, so scoring fans out across workers; only the
// final stable sort is single-threaded, which keeps the output order
// deterministic run-to-run.
func ScoreAll(papers []types.Paper, cfg Config) ([]ScoredPaper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	scored := make([]ScoredPaper, len(papers))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range papers {
		i, p := i, p
		g.Go(func() error {
			scored[i] = ScoredPaper{Paper: p, Score: Score(p, cfg)}
			return nil
		})
	}
	// Workers never return errors; Wait only synchronizes.
	_ = g.Wait()

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score.Total > scored[j].Score.Total
	})
	return scored, nil
}
