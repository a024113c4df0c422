// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/pdiddy/research-hunter/pkg/types"
)

func TestScoreAllSortsDescending(t *testing.T) {
	cfg := testConfig(t, map[string]int{"wearable": 8})
	papers := []types.Paper{
		{ID: "low", Title: "nothing relevant"},
		{ID: "high", Title: "wearable", Year: testYear, CitationCount: 500},
		{ID: "mid", Title: "wearable", Year: testYear - 8},
	}

	scored, err := ScoreAll(papers, cfg)
	if err != nil {
		t.Fatalf("ScoreAll: %v", err)
	}

	var order []string
	for _, s := range scored {
		order = append(order, s.Paper.ID)
	}
	if want := []string{"high", "mid", "low"}; !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	for i := 1; i < len(scored); i++ {
		if scored[i].Score.Total > scored[i-1].Score.Total {
			t.Errorf("not sorted descending at %d: %d > %d", i, scored[i].Score.Total, scored[i-1].Score.Total)
		}
	}
}

func TestScoreAllStableOnTies(t *testing.T) {
	cfg := testConfig(t, map[string]int{"x": 1})

	// All papers score identically; input order must survive.
	papers := make([]types.Paper, 50)
	for i := range papers {
		papers[i] = types.Paper{ID: fmt.Sprintf("p%02d", i), Year: testYear}
	}

	scored, err := ScoreAll(papers, cfg)
	if err != nil {
		t.Fatalf("ScoreAll: %v", err)
	}
	for i, s := range scored {
		if want := fmt.Sprintf("p%02d", i); s.Paper.ID != want {
			t.Fatalf("position %d = %s, want %s (ties must keep input order)", i, s.Paper.ID, want)
		}
	}
}

func TestScoreAllDeterministic(t *testing.T) {
	cfg, err := NewConfig(nil, testYear)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	papers := make([]types.Paper, 200)
	for i := range papers {
		papers[i] = types.Paper{
			ID:            fmt.Sprintf("p%d", i),
			Title:         fmt.Sprintf("wearable emotion study %d", i),
			Year:          testYear - i%15,
			CitationCount: i * 7 % 600,
		}
	}

	first, err := ScoreAll(papers, cfg)
	if err != nil {
		t.Fatalf("ScoreAll: %v", err)
	}
	for run := 0; run < 10; run++ {
		again, err := ScoreAll(papers, cfg)
		if err != nil {
			t.Fatalf("ScoreAll: %v", err)
		}
		if !reflect.DeepEqual(again, first) {
			t.Fatalf("run %d produced a different ranking", run)
		}
	}
}

func TestScoreAllBadConfigScoresNothing(t *testing.T) {
	cfg := Config{KeywordWeights: map[string]int{"x": -5}, CurrentYear: testYear}
	scored, err := ScoreAll([]types.Paper{{Title: "x"}}, cfg)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
	if scored != nil {
		t.Errorf("scored = %v, want nil: a bad config must not score any record", scored)
	}
}

func TestScoreAllEmptyInput(t *testing.T) {
	cfg := testConfig(t, map[string]int{"x": 1})
	scored, err := ScoreAll(nil, cfg)
	if err != nil {
		t.Fatalf("ScoreAll: %v", err)
	}
	if len(scored) != 0 {
		t.Errorf("len = %d, want 0", len(scored))
	}
}
