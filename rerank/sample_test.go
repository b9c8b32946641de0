package rerank

import (
	"context"
	"math/rand"
	"testing"

	"github.com/Keli-LYU/SteamGameRecSys/core"
)

func scoredItem(appID int64, score float64) *core.Item {
	it := core.NewItem(appID)
	it.Score = score
	return it
}

func TestSampleNodeNoDuplicates(t *testing.T) {
	node := &SampleNode{Count: 5, Rand: rand.New(rand.NewSource(1))}

	for trial := 0; trial < 200; trial++ {
		items := []*core.Item{
			scoredItem(1, 10),
			scoredItem(2, 5),
			scoredItem(3, 1),
			scoredItem(4, 0),
			scoredItem(5, 20),
		}
		out, err := node.Process(context.Background(), nil, items)
		if err != nil {
			t.Fatalf("Process: %v", err)
		}
		if len(out) != 5 {
			t.Fatalf("expected 5 items, got %d", len(out))
		}
		seen := make(map[int64]bool)
		for _, it := range out {
			if seen[it.AppID] {
				t.Fatalf("duplicate app id %d in output", it.AppID)
			}
			seen[it.AppID] = true
		}
	}
}

func TestSampleNodeCountCappedToPool(t *testing.T) {
	node := &SampleNode{Count: 10, Rand: rand.New(rand.NewSource(2))}

	items := []*core.Item{scoredItem(1, 3), scoredItem(2, 7)}
	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected count capped to pool size 2, got %d", len(out))
	}
}

func TestSampleNodeZeroTotalShuffles(t *testing.T) {
	node := &SampleNode{Count: 3, Rand: rand.New(rand.NewSource(3))}

	items := []*core.Item{
		scoredItem(1, 0),
		scoredItem(2, 0),
		scoredItem(3, 0),
		scoredItem(4, 0),
	}
	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 items, got %d", len(out))
	}
	seen := make(map[int64]bool)
	for _, it := range out {
		seen[it.AppID] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 distinct items, got %v", seen)
	}
}

func TestSampleNodeBothItemsAlwaysPresent(t *testing.T) {
	// 两个候选取两个：无论权重差多大都不能静默丢弃任何一个
	node := &SampleNode{Count: 2, Rand: rand.New(rand.NewSource(4))}

	for trial := 0; trial < 300; trial++ {
		items := []*core.Item{
			scoredItem(1, 15), // 高权重
			scoredItem(2, 2),
		}
		out, err := node.Process(context.Background(), nil, items)
		if err != nil {
			t.Fatalf("Process: %v", err)
		}
		if len(out) != 2 {
			t.Fatalf("expected both items, got %d", len(out))
		}
		if out[0].AppID == out[1].AppID {
			t.Fatalf("duplicate app id %d", out[0].AppID)
		}
	}
}

func TestSampleNodeHigherScoreDrawnFirstMoreOften(t *testing.T) {
	node := &SampleNode{Count: 1, Rand: rand.New(rand.NewSource(5))}

	first := make(map[int64]int)
	const trials = 2000

	for trial := 0; trial < trials; trial++ {
		items := []*core.Item{
			scoredItem(1, 9),
			scoredItem(2, 1),
		}
		out, err := node.Process(context.Background(), nil, items)
		if err != nil {
			t.Fatalf("Process: %v", err)
		}
		first[out[0].AppID]++
	}

	// 期望 9:1，容忍随机波动，只断言方向性优势
	if first[1] <= first[2] {
		t.Fatalf("expected higher-scored item drawn first more often: %v", first)
	}
}

func TestDiversityDedupsByLeadingGenre(t *testing.T) {
	node := &Diversity{}

	a := core.NewItem(1)
	a.Genres = []string{"Action", "FPS"}
	b := core.NewItem(2)
	b.Genres = []string{"Action"}
	c := core.NewItem(3)
	c.Genres = []string{"RPG"}
	d := core.NewItem(4) // 无类型，保留

	out, err := node.Process(context.Background(), nil, []*core.Item{a, b, c, d})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 items after dedup, got %d", len(out))
	}
	if out[0].AppID != 1 || out[1].AppID != 3 || out[2].AppID != 4 {
		t.Fatalf("unexpected order: %v %v %v", out[0].AppID, out[1].AppID, out[2].AppID)
	}
}

func TestTopNNode(t *testing.T) {
	items := []*core.Item{scoredItem(1, 3), scoredItem(2, 2), scoredItem(3, 1)}

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"no truncation when zero", 0, 3},
		{"truncates", 2, 2},
		{"larger than pool", 10, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &TopNNode{N: tt.n}
			out, err := node.Process(context.Background(), nil, items)
			if err != nil {
				t.Fatalf("Process: %v", err)
			}
			if len(out) != tt.want {
				t.Fatalf("expected %d items, got %d", tt.want, len(out))
			}
		})
	}
}
