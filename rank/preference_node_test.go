package rank

import (
	"context"
	"math/rand"
	"testing"

	"github.com/Keli-LYU/SteamGameRecSys/core"
)

func newTestItem(appID int64, genres ...string) *core.Item {
	it := core.NewItem(appID)
	it.Genres = genres
	return it
}

func TestPreferenceNodeScoresNonNegative(t *testing.T) {
	node := &PreferenceNode{Rand: rand.New(rand.NewSource(1))}

	profile := core.NewUserProfile("u1")
	profile.AddGenreWeight("Action", 10)
	profile.AddClickedGame(2)

	rctx := &core.RecommendContext{UserID: "u1", Profile: profile}

	for trial := 0; trial < 200; trial++ {
		items := []*core.Item{
			newTestItem(1, "Action"),
			newTestItem(2, "Action"), // 点击过，吃 0.7 惩罚
			newTestItem(3, "RPG"),    // 零权重
		}
		items[0].PositiveReviews = 50000 // 热度封顶到 1

		out, err := node.Process(context.Background(), rctx, items)
		if err != nil {
			t.Fatalf("Process: %v", err)
		}
		for _, it := range out {
			if it.Score < 0 {
				t.Fatalf("item %d got negative score %f", it.AppID, it.Score)
			}
		}
	}
}

func TestPreferenceNodeMatchingGenreScoresHigher(t *testing.T) {
	node := &PreferenceNode{Rand: rand.New(rand.NewSource(42))}

	profile := core.NewUserProfile("u1")
	profile.AddGenreWeight("Action", 10)

	rctx := &core.RecommendContext{UserID: "u1", Profile: profile}

	var actionSum, rpgSum float64
	const trials = 500

	for trial := 0; trial < trials; trial++ {
		items := []*core.Item{
			newTestItem(1, "Action"),
			newTestItem(2, "RPG"),
		}
		if _, err := node.Process(context.Background(), rctx, items); err != nil {
			t.Fatalf("Process: %v", err)
		}
		actionSum += items[0].Score
		rpgSum += items[1].Score
	}

	// Action 权重为 10：期望分约 15；RPG 零权重：期望分约 2.5
	if actionSum <= rpgSum {
		t.Fatalf("expected matching genre to score higher on average: action=%f rpg=%f",
			actionSum/trials, rpgSum/trials)
	}
}

func TestPreferenceNodeClickedPenalty(t *testing.T) {
	node := &PreferenceNode{Rand: rand.New(rand.NewSource(7))}

	profile := core.NewUserProfile("u1")
	profile.AddGenreWeight("Action", 100)
	profile.AddClickedGame(2)

	rctx := &core.RecommendContext{UserID: "u1", Profile: profile}

	var freshSum, clickedSum float64
	const trials = 500

	for trial := 0; trial < trials; trial++ {
		items := []*core.Item{
			newTestItem(1, "Action"),
			newTestItem(2, "Action"),
		}
		if _, err := node.Process(context.Background(), rctx, items); err != nil {
			t.Fatalf("Process: %v", err)
		}
		freshSum += items[0].Score
		clickedSum += items[1].Score
	}

	// 相同权重下点击过的游戏均分应明显更低（×0.7）
	if clickedSum >= freshSum {
		t.Fatalf("expected clicked item to score lower on average: fresh=%f clicked=%f",
			freshSum/trials, clickedSum/trials)
	}
}

func TestPreferenceNodeEmptyProfileSkipsScoring(t *testing.T) {
	node := &PreferenceNode{Rand: rand.New(rand.NewSource(3))}

	tests := []struct {
		name string
		rctx *core.RecommendContext
	}{
		{"nil context", nil},
		{"nil profile", &core.RecommendContext{UserID: "u1"}},
		{"no weights", &core.RecommendContext{
			UserID:  "u1",
			Profile: core.NewUserProfile("u1"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := []*core.Item{newTestItem(1, "Action")}
			out, err := node.Process(context.Background(), tt.rctx, items)
			if err != nil {
				t.Fatalf("Process: %v", err)
			}
			if len(out) != 1 || out[0].Score != 0 {
				t.Fatalf("expected untouched items, got %+v", out)
			}
		})
	}
}
