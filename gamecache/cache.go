// Package gamecache 实现游戏详情缓存（Detail Cache）：
// 每个 App ID 一份序列化的详情载荷加捕获时间戳。
//
// 两个年龄阈值是独立的：
//   - 新鲜度 TTL（读取时、调用方指定，默认 24h）：超龄条目按未命中处理，
//     但读取不删除它
//   - 保留期（维护时、默认 7 天，长于 TTL）：Sweep 物理删除超龄行，
//     由后台定时任务独立于请求流量执行
//
// 读路径约定：先查缓存再发起外部抓取；抓取成功后写回缓存（见 Loader）。
package gamecache

import (
	"context"
	"time"

	"github.com/Keli-LYU/SteamGameRecSys/core"
	"github.com/Keli-LYU/SteamGameRecSys/pkg/conv"
)

const (
	// DefaultMaxAge 读取时的默认新鲜度 TTL
	DefaultMaxAge = 24 * time.Hour

	// DefaultRetention 维护时的默认保留期
	DefaultRetention = 7 * 24 * time.Hour
)

// ErrCacheMiss 表示条目不存在或已超过调用方给定的新鲜度 TTL。
var ErrCacheMiss = core.NewDomainError(core.ModuleCache, core.ErrorCodeNotFound, "gamecache: miss")

// Cache 是详情缓存的领域接口。
type Cache interface {
	// Put 无条件写入/覆盖，捕获时间戳取当前时间
	Put(ctx context.Context, game *core.Item) error

	// Get 返回缓存的详情；条目缺失或年龄超过 maxAge 时返回 ErrCacheMiss。
	// 过期条目不会被读取删除。
	Get(ctx context.Context, appID int64, maxAge time.Duration) (*core.Item, error)

	// Sweep 删除所有年龄超过 retention 的条目，返回删除数量
	Sweep(ctx context.Context, retention time.Duration) (int, error)

	// Len 返回当前缓存条目数（含已过期未清理的）
	Len(ctx context.Context) (int64, error)
}

// payload 是持久化的详情载荷。数值字段用容错类型承接：
// 外部来源的脏数据（字符串价格、缺失计数）降级为 0 而不是报错。
type payload struct {
	AppID           int64             `json:"app_id"`
	Name            string            `json:"name"`
	Price           conv.LenientFloat `json:"price"`
	Genres          []string          `json:"genres"`
	Description     string            `json:"description"`
	ReleaseDate     string            `json:"release_date"`
	PositiveReviews conv.LenientInt   `json:"positive_reviews"`
	NegativeReviews conv.LenientInt   `json:"negative_reviews"`
}

// record 是单条缓存记录：载荷 + 捕获时间。
type record struct {
	Game     payload   `json:"game"`
	CachedAt time.Time `json:"cached_at"`
}

func toPayload(game *core.Item) payload {
	return payload{
		AppID:           game.AppID,
		Name:            game.Name,
		Price:           conv.LenientFloat(game.Price),
		Genres:          core.NormalizeGenres(game.Genres...),
		Description:     game.Description,
		ReleaseDate:     game.ReleaseDate,
		PositiveReviews: conv.LenientInt(game.PositiveReviews),
		NegativeReviews: conv.LenientInt(game.NegativeReviews),
	}
}

func (p payload) toItem() *core.Item {
	it := core.NewItem(p.AppID)
	it.Name = p.Name
	it.Price = float64(p.Price)
	it.Genres = core.NormalizeGenres(p.Genres...)
	it.Description = p.Description
	it.ReleaseDate = p.ReleaseDate
	it.PositiveReviews = int64(p.PositiveReviews)
	it.NegativeReviews = int64(p.NegativeReviews)
	return it
}
