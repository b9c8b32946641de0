package gamecache

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Keli-LYU/SteamGameRecSys/core"
)

// Loader 是详情的读穿透路径：每次外部抓取前先查缓存，抓取成功后写回。
// 同一 App ID 的并发未命中由 singleflight 合并为一次目录查询。
type Loader struct {
	catalog core.Catalog
	cache   Cache

	// MaxAge 读取时的新鲜度 TTL；0 表示使用 DefaultMaxAge
	MaxAge time.Duration

	group singleflight.Group
}

func NewLoader(catalog core.Catalog, cache Cache) *Loader {
	return &Loader{catalog: catalog, cache: cache}
}

// Get 返回游戏详情：缓存命中直接返回；否则查目录并写回缓存。
// 目录查不到时返回 core.ErrGameNotFound。
func (l *Loader) Get(ctx context.Context, appID int64) (*core.Item, error) {
	maxAge := l.MaxAge
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}

	if l.cache != nil {
		if game, err := l.cache.Get(ctx, appID, maxAge); err == nil {
			return game, nil
		} else if !core.IsNotFound(err) {
			return nil, err
		}
	}

	v, err, _ := l.group.Do(strconv.FormatInt(appID, 10), func() (any, error) {
		fetched, err := l.catalog.GetGame(ctx, appID)
		if err != nil {
			return nil, err
		}
		// 目录自己的记录不动，规范化发生在副本上
		game := fetched.Clone()
		game.Genres = core.NormalizeGenres(game.Genres...)
		if l.cache != nil {
			// 写回失败不影响本次结果
			_ = l.cache.Put(ctx, game)
		}
		return game, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*core.Item), nil
}
