package recall

import (
	"context"
	"time"

	"github.com/Keli-LYU/SteamGameRecSys/core"
	"github.com/Keli-LYU/SteamGameRecSys/pipeline"
)

// Catalog 是目录全量召回源：把外部目录的当前全量（或目录自身过滤后的）
// 候选集拉入链路。
//
// 目录查询是网络型操作，必须有界：Timeout 内拿到多少算多少，
// 超时/故障时返回空候选而不是让整次推荐请求失败。
// Catalog 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type Catalog struct {
	Catalog core.Catalog

	// Timeout 单次目录查询的超时；0 表示跟随请求 ctx
	Timeout time.Duration
}

func (r *Catalog) Name() string        { return "recall.catalog" }
func (r *Catalog) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *Catalog) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *Catalog) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Catalog == nil {
		return nil, nil
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	games, err := r.Catalog.ListGames(ctx)
	if err != nil && len(games) == 0 {
		// 超时/目录故障：以空候选降级，由上层决定 fallback
		return nil, nil
	}
	// 超时前已取回的部分结果照常使用

	out := make([]*core.Item, 0, len(games))
	for _, g := range games {
		if g == nil {
			continue
		}
		// 拷贝后再进链路：Score/Labels 不写回目录自己的记录
		it := g.Clone()
		it.Genres = core.NormalizeGenres(it.Genres...)
		it.PutLabel("recall_source", core.Label{Value: "catalog", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
