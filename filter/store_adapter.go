package filter

import (
	"context"
	"encoding/json"

	"github.com/Keli-LYU/SteamGameRecSys/core"
)

// StoreAdapter 将 core.Store 适配为过滤器所需的存储接口。
type StoreAdapter struct {
	store core.Store
}

// NewStoreAdapter 创建一个 core.Store 适配器。
func NewStoreAdapter(s core.Store) *StoreAdapter {
	return &StoreAdapter{store: s}
}

// GetBlacklist 从 Store 读取黑名单（JSON 编码的游戏 ID 数组）。
func (a *StoreAdapter) GetBlacklist(ctx context.Context, key string) ([]int64, error) {
	data, err := a.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}

	return ids, nil
}

// GetOwnedGames 从 Store 读取用户已拥有的游戏列表。
// 实际 key 为 {keyPrefix}:{userID}。
func (a *StoreAdapter) GetOwnedGames(ctx context.Context, userID string, keyPrefix string) ([]int64, error) {
	key := keyPrefix + ":" + userID
	return a.GetBlacklist(ctx, key)
}
