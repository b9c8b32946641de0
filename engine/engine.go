// Package engine 将目录、偏好存储、详情缓存与推荐流水线组装为
// 完整的推荐引擎。引擎不持有任何全局状态，所有依赖在构造时注入。
package engine

import (
	"context"
	"math/rand"
	"time"

	"github.com/Keli-LYU/SteamGameRecSys/core"
	"github.com/Keli-LYU/SteamGameRecSys/gamecache"
	"github.com/Keli-LYU/SteamGameRecSys/pipeline"
	"github.com/Keli-LYU/SteamGameRecSys/preference"
	"github.com/Keli-LYU/SteamGameRecSys/rank"
	"github.com/Keli-LYU/SteamGameRecSys/recall"
	"github.com/Keli-LYU/SteamGameRecSys/rerank"
)

// Engine 是推荐引擎：读画像、召回候选、打分、加权采样。
//
// 推荐路径：
//   - 画像存在且有权重 → 偏好打分 + 加权无放回采样
//   - 画像缺失或无权重 → 跳过打分，均匀洗牌取前 count 个
//
// 反馈路径：点击 +1 / 加愿望单 +5，按游戏的每个类型累加权重，
// 并记录互动用于后续软降权。
type Engine struct {
	catalog core.Catalog
	prefs   preference.Store
	cache   gamecache.Cache
	loader  *gamecache.Loader
	sweeper *gamecache.Sweeper

	recallTimeout time.Duration
	loaderMaxAge  time.Duration
	fallback      recall.Source
	rnd           *rand.Rand
}

// Option 配置 Engine。
type Option func(*Engine)

// WithRecallTimeout 设置目录召回的超时时间，超时后使用已取到的部分结果。
func WithRecallTimeout(d time.Duration) Option {
	return func(e *Engine) { e.recallTimeout = d }
}

// WithFreshness 设置详情读取的新鲜度 TTL（默认 24h）。
func WithFreshness(maxAge time.Duration) Option {
	return func(e *Engine) { e.loaderMaxAge = maxAge }
}

// WithSweeper 启动后台清理：每 interval 删除一次超过 retention 的缓存行。
func WithSweeper(interval, retention time.Duration) Option {
	return func(e *Engine) {
		e.sweeper = gamecache.NewSweeper(e.cache, interval, retention)
	}
}

// WithFallbackSource 设置目录为空时的兜底候选源（如热门榜单）。
func WithFallbackSource(src recall.Source) Option {
	return func(e *Engine) { e.fallback = src }
}

// WithRand 注入随机源，用于可复现的测试。注入后引擎不再并发安全，
// 仅限单 goroutine 场景使用。
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rnd = r }
}

// NewEngine 组装推荐引擎。catalog、prefs、cache 均为必填。
func NewEngine(catalog core.Catalog, prefs preference.Store, cache gamecache.Cache, opts ...Option) *Engine {
	e := &Engine{
		catalog:       catalog,
		prefs:         prefs,
		cache:         cache,
		recallTimeout: 3 * time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.loader = gamecache.NewLoader(catalog, cache)
	if e.loaderMaxAge > 0 {
		e.loader.MaxAge = e.loaderMaxAge
	}
	if e.sweeper != nil {
		e.sweeper.Start()
	}
	return e
}

// Recommend 为用户生成 count 个推荐。
// 候选来自目录全量；目录为空时退到兜底源；仍为空则返回空列表。
func (e *Engine) Recommend(ctx context.Context, userID string, count int) ([]*core.Item, error) {
	rctx, err := e.buildContext(ctx, userID)
	if err != nil {
		return nil, err
	}

	src := &recall.Catalog{Catalog: e.catalog, Timeout: e.recallTimeout}
	candidates, err := src.Recall(ctx, rctx)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 && e.fallback != nil {
		candidates, _ = e.fallback.Recall(ctx, rctx)
	}

	return e.rankAndSample(ctx, rctx, candidates, count)
}

// RecommendFrom 在调用方提供的候选集上生成 count 个推荐。
// 候选先拷贝再规范化类型标签：打分与采样不触碰调用方的记录。
func (e *Engine) RecommendFrom(ctx context.Context, userID string, candidates []*core.Item, count int) ([]*core.Item, error) {
	rctx, err := e.buildContext(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]*core.Item, 0, len(candidates))
	for _, c := range candidates {
		if c == nil {
			continue
		}
		it := c.Clone()
		it.Genres = core.NormalizeGenres(it.Genres...)
		items = append(items, it)
	}
	return e.rankAndSample(ctx, rctx, items, count)
}

func (e *Engine) buildContext(ctx context.Context, userID string) (*core.RecommendContext, error) {
	profile, err := e.prefs.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &core.RecommendContext{
		UserID:  userID,
		Scene:   "recommend",
		Profile: profile,
	}, nil
}

func (e *Engine) rankAndSample(ctx context.Context, rctx *core.RecommendContext, candidates []*core.Item, count int) ([]*core.Item, error) {
	if count <= 0 || len(candidates) == 0 {
		return []*core.Item{}, nil
	}

	var nodes []pipeline.Node
	if !rctx.Profile.Empty() {
		nodes = append(nodes, &rank.PreferenceNode{Rand: e.rnd})
	}
	// 无画像时不打分，采样节点在零总分下退化为均匀洗牌
	nodes = append(nodes, &rerank.SampleNode{Count: count, Rand: e.rnd})

	p := &pipeline.Pipeline{Nodes: nodes}
	return p.Run(ctx, rctx, candidates)
}

// RecordClick 记录一次点击：按游戏的每个类型 +1，并记录互动。
func (e *Engine) RecordClick(ctx context.Context, userID string, appID int64) error {
	return e.feedback(ctx, userID, appID, preference.ClickDelta)
}

// RecordWishlist 记录一次加愿望单：按游戏的每个类型 +5，并记录互动。
func (e *Engine) RecordWishlist(ctx context.Context, userID string, appID int64) error {
	return e.feedback(ctx, userID, appID, preference.WishlistDelta)
}

func (e *Engine) feedback(ctx context.Context, userID string, appID int64, delta int64) error {
	game, err := e.loader.Get(ctx, appID)
	if err != nil {
		return err
	}
	return e.prefs.ApplyFeedback(ctx, userID, appID, game.Genres, delta)
}

// ApplyFeedback 是原始反馈入口：调用方已知游戏类型时直接累加权重。
func (e *Engine) ApplyFeedback(ctx context.Context, userID string, appID int64, genres []string, delta int64) error {
	return e.prefs.ApplyFeedback(ctx, userID, appID, genres, delta)
}

// GameDetail 读穿透获取游戏详情：先查缓存（新鲜度 TTL 内），未命中回源目录并写回。
func (e *Engine) GameDetail(ctx context.Context, appID int64) (*core.Item, error) {
	return e.loader.Get(ctx, appID)
}

// Stats 是引擎的运行指标快照。
type Stats struct {
	CachedGames int64 `json:"cached_games"`
}

// Stats 返回当前运行指标。
func (e *Engine) Stats(ctx context.Context) (*Stats, error) {
	n, err := e.cache.Len(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{CachedGames: n}, nil
}

// Close 停止后台清理任务。不关闭注入的存储，它们的生命周期归调用方。
func (e *Engine) Close() error {
	if e.sweeper != nil {
		e.sweeper.Stop()
	}
	return nil
}
