package gamecache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/Keli-LYU/SteamGameRecSys/core"
)

const (
	entryKeyPrefix = "game:cache:"
	indexKey       = "game:cache:index"
)

// KVCache 基于 core.KeyValueStore 的缓存实现：
//   - 每个 App ID 一条 JSON 记录（game:cache:{appID}）
//   - 有序集合 game:cache:index 以捕获时间（毫秒）为分数做年龄索引，
//     Sweep 按区间扫描候选，逐条对照数据行后删除
//
// MemoryStore（测试/开发）与 RedisStore（生产）都可作为后端。
type KVCache struct {
	store core.KeyValueStore

	// now 可在测试中替换以构造任意年龄的条目
	now func() time.Time
}

func NewKVCache(kv core.KeyValueStore) *KVCache {
	return &KVCache{store: kv, now: time.Now}
}

var _ Cache = (*KVCache)(nil)

func entryKey(appID int64) string {
	return entryKeyPrefix + strconv.FormatInt(appID, 10)
}

func (c *KVCache) Put(ctx context.Context, game *core.Item) error {
	rec := record{
		Game:     toPayload(game),
		CachedAt: c.now().UTC(),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := c.store.Set(ctx, entryKey(game.AppID), data); err != nil {
		return err
	}
	return c.store.ZAdd(ctx, indexKey, float64(rec.CachedAt.UnixMilli()), strconv.FormatInt(game.AppID, 10))
}

func (c *KVCache) Get(ctx context.Context, appID int64, maxAge time.Duration) (*core.Item, error) {
	data, err := c.store.Get(ctx, entryKey(appID))
	if core.IsStoreNotFound(err) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		// 损坏的记录按未命中处理，留给 Sweep 回收
		return nil, ErrCacheMiss
	}

	if c.now().Sub(rec.CachedAt) > maxAge {
		// 过期即未命中；不在读路径上删除
		return nil, ErrCacheMiss
	}
	return rec.Game.toItem(), nil
}

func (c *KVCache) Sweep(ctx context.Context, retention time.Duration) (int, error) {
	cutoff := float64(c.now().Add(-retention).UnixMilli())

	members, err := c.store.ZRangeByScore(ctx, indexKey, 0, cutoff)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, member := range members {
		appID, parseErr := strconv.ParseInt(member, 10, 64)
		if parseErr != nil {
			// 无法解析的索引成员只能清掉索引本身
			if err := c.store.ZRem(ctx, indexKey, member); err != nil {
				return deleted, err
			}
			continue
		}

		// 先摘索引再看数据行：扫描和删除之间 Put 可能刚刷新过该条目，
		// 删除与否以数据行里的 CachedAt 为准，而不是扫描时的快照。
		if err := c.store.ZRem(ctx, indexKey, member); err != nil {
			return deleted, err
		}

		data, err := c.store.Get(ctx, entryKey(appID))
		if core.IsStoreNotFound(err) {
			continue
		}
		if err != nil {
			return deleted, err
		}

		var rec record
		if json.Unmarshal(data, &rec) == nil && float64(rec.CachedAt.UnixMilli()) > cutoff {
			// 并发刷新过，把索引补回去，条目保留
			if err := c.store.ZAdd(ctx, indexKey, float64(rec.CachedAt.UnixMilli()), member); err != nil {
				return deleted, err
			}
			continue
		}

		if err := c.store.Delete(ctx, entryKey(appID)); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

func (c *KVCache) Len(ctx context.Context) (int64, error) {
	return c.store.ZCard(ctx, indexKey)
}
