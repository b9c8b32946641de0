package filter

import (
	"context"
	"testing"

	"github.com/Keli-LYU/SteamGameRecSys/core"
	"github.com/Keli-LYU/SteamGameRecSys/store"
)

func TestBlacklistFilter(t *testing.T) {
	f := NewBlacklistFilter([]int64{10, 20}, nil, "")

	blocked := core.NewItem(10)
	allowed := core.NewItem(30)

	if ok, _ := f.ShouldFilter(context.Background(), nil, blocked); !ok {
		t.Fatal("expected blacklisted item to be filtered")
	}
	if ok, _ := f.ShouldFilter(context.Background(), nil, allowed); ok {
		t.Fatal("expected non-blacklisted item to pass")
	}
}

func TestBlacklistFilterFromStore(t *testing.T) {
	s := store.NewMemoryStore()
	defer s.Close()

	ctx := context.Background()
	if err := s.Set(ctx, "blacklist:games", []byte("[100,200]")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	f := NewBlacklistFilter(nil, NewStoreAdapter(s), "blacklist:games")

	if ok, _ := f.ShouldFilter(ctx, nil, core.NewItem(200)); !ok {
		t.Fatal("expected store-backed blacklist to filter item 200")
	}
	if ok, _ := f.ShouldFilter(ctx, nil, core.NewItem(300)); ok {
		t.Fatal("expected item 300 to pass")
	}
}

func TestExprFilter(t *testing.T) {
	f, err := NewExprFilter(`item.price > 60.0`)
	if err != nil {
		t.Fatalf("NewExprFilter: %v", err)
	}

	pricey := core.NewItem(1)
	pricey.Price = 69.99
	cheap := core.NewItem(2)
	cheap.Price = 9.99

	if ok, err := f.ShouldFilter(context.Background(), nil, pricey); err != nil || !ok {
		t.Fatalf("expected pricey item filtered, ok=%v err=%v", ok, err)
	}
	if ok, err := f.ShouldFilter(context.Background(), nil, cheap); err != nil || ok {
		t.Fatalf("expected cheap item kept, ok=%v err=%v", ok, err)
	}
}

func TestFilterNodeCombinesFilters(t *testing.T) {
	node := &FilterNode{
		Filters: []Filter{
			NewBlacklistFilter([]int64{2}, nil, ""),
		},
	}

	items := []*core.Item{core.NewItem(1), core.NewItem(2), core.NewItem(3), nil}
	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 items after filtering, got %d", len(out))
	}
	for _, it := range out {
		if it.AppID == 2 {
			t.Fatal("blacklisted item survived filtering")
		}
	}
}
