package engine

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/Keli-LYU/SteamGameRecSys/core"
	"github.com/Keli-LYU/SteamGameRecSys/gamecache"
	"github.com/Keli-LYU/SteamGameRecSys/preference"
	"github.com/Keli-LYU/SteamGameRecSys/recall"
	"github.com/Keli-LYU/SteamGameRecSys/store"
)

type memCatalog struct {
	games map[int64]*core.Item
	order []int64
}

func newMemCatalog(games ...*core.Item) *memCatalog {
	c := &memCatalog{games: make(map[int64]*core.Item, len(games))}
	for _, g := range games {
		c.games[g.AppID] = g
		c.order = append(c.order, g.AppID)
	}
	return c
}

func (c *memCatalog) GetGame(_ context.Context, appID int64) (*core.Item, error) {
	g, ok := c.games[appID]
	if !ok {
		return nil, core.ErrGameNotFound
	}
	return g, nil
}

func (c *memCatalog) ListGames(_ context.Context) ([]*core.Item, error) {
	out := make([]*core.Item, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.games[id])
	}
	return out, nil
}

func catalogGame(appID int64, genres ...string) *core.Item {
	it := core.NewItem(appID)
	it.Genres = genres
	return it
}

func newTestEngine(t *testing.T, catalog core.Catalog, opts ...Option) (*Engine, preference.Store) {
	t.Helper()
	s := store.NewMemoryStore()
	t.Cleanup(func() { s.Close() })

	prefs := preference.NewKVStore(s)
	cache := gamecache.NewKVCache(s)

	opts = append(opts, WithRand(rand.New(rand.NewSource(1))))
	e := NewEngine(catalog, prefs, cache, opts...)
	t.Cleanup(func() { e.Close() })
	return e, prefs
}

func TestRecommendEmptyProfileShuffles(t *testing.T) {
	catalog := newMemCatalog(
		catalogGame(1, "Action"),
		catalogGame(2, "RPG"),
		catalogGame(3, "Strategy"),
		catalogGame(4, "Indie"),
	)
	e, _ := newTestEngine(t, catalog)

	ctx := context.Background()
	for trial := 0; trial < 50; trial++ {
		out, err := e.Recommend(ctx, "newcomer", 3)
		if err != nil {
			t.Fatalf("Recommend: %v", err)
		}
		if len(out) != 3 {
			t.Fatalf("expected min(count, candidates) = 3 items, got %d", len(out))
		}
		seen := make(map[int64]bool)
		for _, it := range out {
			if seen[it.AppID] {
				t.Fatalf("duplicate app id %d", it.AppID)
			}
			seen[it.AppID] = true
		}
	}
}

func TestRecommendCountCappedToCandidates(t *testing.T) {
	catalog := newMemCatalog(catalogGame(1, "Action"), catalogGame(2, "RPG"))
	e, _ := newTestEngine(t, catalog)

	out, err := e.Recommend(context.Background(), "u1", 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 items, got %d", len(out))
	}
}

func TestRecommendEmptyCatalog(t *testing.T) {
	e, _ := newTestEngine(t, newMemCatalog())

	out, err := e.Recommend(context.Background(), "u1", 5)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty result, got %d items", len(out))
	}
}

func TestRecommendFallbackSource(t *testing.T) {
	e, _ := newTestEngine(t, newMemCatalog(),
		WithFallbackSource(&recall.Hot{IDs: []int64{570, 730}}))

	out, err := e.Recommend(context.Background(), "u1", 5)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected fallback candidates, got %d items", len(out))
	}
}

func TestRecommendBothCandidatesAlwaysPresent(t *testing.T) {
	catalog := newMemCatalog(catalogGame(1, "Action"), catalogGame(2, "RPG"))
	e, prefs := newTestEngine(t, catalog)

	ctx := context.Background()
	if err := prefs.Increment(ctx, "u1", "Action", 10); err != nil {
		t.Fatalf("Increment: %v", err)
	}

	for trial := 0; trial < 200; trial++ {
		out, err := e.Recommend(ctx, "u1", 2)
		if err != nil {
			t.Fatalf("Recommend: %v", err)
		}
		if len(out) != 2 {
			t.Fatalf("expected both candidates, got %d", len(out))
		}
		if out[0].AppID == out[1].AppID {
			t.Fatalf("duplicate app id %d", out[0].AppID)
		}
	}
}

func TestRecommendPrefersWeightedGenre(t *testing.T) {
	catalog := newMemCatalog(catalogGame(1, "Action"), catalogGame(2, "RPG"))
	e, prefs := newTestEngine(t, catalog)

	ctx := context.Background()
	if err := prefs.Increment(ctx, "u1", "Action", 10); err != nil {
		t.Fatalf("Increment: %v", err)
	}

	first := make(map[int64]int)
	const trials = 1000
	for trial := 0; trial < trials; trial++ {
		out, err := e.Recommend(ctx, "u1", 1)
		if err != nil {
			t.Fatalf("Recommend: %v", err)
		}
		first[out[0].AppID]++
	}

	if first[1] <= first[2] {
		t.Fatalf("expected weighted genre drawn first more often: %v", first)
	}
}

func TestRecommendDoesNotMutateCatalogRecords(t *testing.T) {
	g1 := catalogGame(1, "Action")
	g2 := catalogGame(2, "RPG")
	catalog := newMemCatalog(g1, g2)
	e, prefs := newTestEngine(t, catalog)

	ctx := context.Background()
	if err := prefs.Increment(ctx, "heavy", "Action", 100); err != nil {
		t.Fatalf("Increment: %v", err)
	}
	for trial := 0; trial < 100; trial++ {
		if _, err := e.Recommend(ctx, "heavy", 2); err != nil {
			t.Fatalf("Recommend: %v", err)
		}
	}

	// 链路打分发生在副本上，目录记录保持原样
	if g1.Score != 0 || g2.Score != 0 {
		t.Fatalf("catalog records carry residual scores: %v / %v", g1.Score, g2.Score)
	}
	if len(g1.Labels) != 0 || len(g2.Labels) != 0 {
		t.Fatalf("catalog records carry residual labels: %v / %v", g1.Labels, g2.Labels)
	}

	// 空画像用户不受前面打分历史影响：首位应接近均匀
	first := make(map[int64]int)
	const trials = 400
	for trial := 0; trial < trials; trial++ {
		out, err := e.Recommend(ctx, "newcomer", 1)
		if err != nil {
			t.Fatalf("Recommend: %v", err)
		}
		first[out[0].AppID]++
	}
	for _, id := range []int64{1, 2} {
		if first[id] < trials/4 {
			t.Fatalf("expected roughly uniform first pick for empty profile, got %v", first)
		}
	}
}

func TestRecommendFromNormalizesGenres(t *testing.T) {
	e, prefs := newTestEngine(t, newMemCatalog())

	ctx := context.Background()
	if err := prefs.Increment(ctx, "u1", "Action", 1000); err != nil {
		t.Fatalf("Increment: %v", err)
	}

	combined := catalogGame(1, "Action, FPS")
	other := catalogGame(2, "RPG")
	candidates := []*core.Item{combined, other}

	first := make(map[int64]int)
	const trials = 200
	for trial := 0; trial < trials; trial++ {
		out, err := e.RecommendFrom(ctx, "u1", candidates, 1)
		if err != nil {
			t.Fatalf("RecommendFrom: %v", err)
		}
		first[out[0].AppID]++
	}
	if first[1] <= first[2] {
		t.Fatalf("expected combined genre string to match after normalization: %v", first)
	}

	// 调用方传入的候选不被改写
	if combined.Score != 0 || len(combined.Genres) != 1 || combined.Genres[0] != "Action, FPS" {
		t.Fatalf("caller's candidate mutated: %+v", combined)
	}
}

func TestRecordClickAccumulatesWeights(t *testing.T) {
	game := catalogGame(10, "Action", "FPS")
	e, prefs := newTestEngine(t, newMemCatalog(game))

	ctx := context.Background()
	if err := e.RecordClick(ctx, "u1", 10); err != nil {
		t.Fatalf("RecordClick: %v", err)
	}
	if err := e.RecordWishlist(ctx, "u1", 10); err != nil {
		t.Fatalf("RecordWishlist: %v", err)
	}

	profile, err := prefs.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if profile == nil {
		t.Fatal("expected profile after feedback")
	}
	if got := profile.WeightOf("Action"); got != 6 {
		t.Fatalf("expected Action weight 6 (click 1 + wishlist 5), got %d", got)
	}
	if got := profile.WeightOf("FPS"); got != 6 {
		t.Fatalf("expected FPS weight 6, got %d", got)
	}
	if !profile.HasClicked(10) {
		t.Fatal("expected interaction recorded")
	}
}

func TestRecordClickUnknownGame(t *testing.T) {
	e, _ := newTestEngine(t, newMemCatalog())

	err := e.RecordClick(context.Background(), "u1", 999)
	if err == nil {
		t.Fatal("expected error for unknown game")
	}
}

func TestGameDetailPopulatesCache(t *testing.T) {
	game := catalogGame(10, "Action")
	game.Name = "Test Shooter"
	e, _ := newTestEngine(t, newMemCatalog(game))

	ctx := context.Background()
	got, err := e.GameDetail(ctx, 10)
	if err != nil {
		t.Fatalf("GameDetail: %v", err)
	}
	if got.Name != "Test Shooter" {
		t.Fatalf("unexpected game %+v", got)
	}

	stats, err := e.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.CachedGames != 1 {
		t.Fatalf("expected 1 cached game, got %d", stats.CachedGames)
	}
}

func TestRecommendFromSuppliedCandidates(t *testing.T) {
	e, _ := newTestEngine(t, newMemCatalog())

	candidates := []*core.Item{
		catalogGame(1, "Action"),
		catalogGame(2, "RPG"),
		catalogGame(3, "Indie"),
	}
	out, err := e.RecommendFrom(context.Background(), "u1", candidates, 2)
	if err != nil {
		t.Fatalf("RecommendFrom: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 items, got %d", len(out))
	}
}

func TestEngineSweeperLifecycle(t *testing.T) {
	e, _ := newTestEngine(t, newMemCatalog(catalogGame(1, "Action")),
		WithSweeper(10*time.Millisecond, gamecache.DefaultRetention))

	if _, err := e.GameDetail(context.Background(), 1); err != nil {
		t.Fatalf("GameDetail: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	if err := e.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	// 再次 Close 应当幂等
	if err := e.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
