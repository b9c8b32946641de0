package preference

import (
	"context"
	"strconv"
	"time"

	"github.com/Keli-LYU/SteamGameRecSys/core"
)

// HashStore 把画像拆成三个后端结构：
//   - pref:weights:{userID}  Hash，genre -> 权重，HIncrBy 原子累加
//   - pref:clicked:{userID}  Set，交互过的 App ID，SAdd 天然幂等
//   - pref:touched:{userID}  最近一次修改时间（RFC3339）
//
// 自增与集合写入在后端原子执行，同一用户的并发反馈不需要客户端锁，
// 也不会丢更新；这是 Redis 部署下的推荐实现。
type HashStore struct {
	store core.KeyValueStore
}

// NewHashStore 基于支持 HIncrBy/SAdd 的 KeyValueStore 创建偏好存储。
func NewHashStore(kv core.KeyValueStore) *HashStore {
	return &HashStore{store: kv}
}

var _ Store = (*HashStore)(nil)

func weightsKey(userID string) string { return "pref:weights:" + userID }
func clickedKey(userID string) string { return "pref:clicked:" + userID }
func touchedKey(userID string) string { return "pref:touched:" + userID }

func (s *HashStore) Get(ctx context.Context, userID string) (*core.UserProfile, error) {
	weights, err := s.store.HGetAll(ctx, weightsKey(userID))
	if err != nil && !core.IsStoreNotFound(err) {
		return nil, err
	}
	clicked, err := s.store.SMembers(ctx, clickedKey(userID))
	if err != nil && !core.IsStoreNotFound(err) {
		return nil, err
	}

	touched, err := s.store.Get(ctx, touchedKey(userID))
	if core.IsStoreNotFound(err) {
		// 从未写入过：画像不存在
		if len(weights) == 0 && len(clicked) == 0 {
			return nil, nil
		}
	} else if err != nil {
		return nil, err
	}

	p := core.NewUserProfile(userID)
	for genre, raw := range weights {
		// 损坏的权重值降级为 0，不中断请求
		n, _ := strconv.ParseInt(string(raw), 10, 64)
		if n < 0 {
			n = 0
		}
		p.GenreWeights[genre] = n
	}
	for _, member := range clicked {
		if id, err := strconv.ParseInt(member, 10, 64); err == nil {
			p.ClickedGames = append(p.ClickedGames, id)
		}
	}
	if ts, err := time.Parse(time.RFC3339Nano, string(touched)); err == nil {
		p.UpdatedAt = ts
	}
	return p, nil
}

func (s *HashStore) touch(ctx context.Context, userID string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	return s.store.Set(ctx, touchedKey(userID), []byte(now))
}

func (s *HashStore) Increment(ctx context.Context, userID, genre string, delta int64) error {
	if _, err := s.store.HIncrBy(ctx, weightsKey(userID), genre, delta); err != nil {
		return err
	}
	return s.touch(ctx, userID)
}

func (s *HashStore) ApplyFeedback(ctx context.Context, userID string, appID int64, genres []string, delta int64) error {
	for _, g := range core.NormalizeGenres(genres...) {
		if _, err := s.store.HIncrBy(ctx, weightsKey(userID), g, delta); err != nil {
			return err
		}
	}
	if err := s.store.SAdd(ctx, clickedKey(userID), strconv.FormatInt(appID, 10)); err != nil {
		return err
	}
	return s.touch(ctx, userID)
}

func (s *HashStore) RecordInteraction(ctx context.Context, userID string, appID int64) error {
	if err := s.store.SAdd(ctx, clickedKey(userID), strconv.FormatInt(appID, 10)); err != nil {
		return err
	}
	return s.touch(ctx, userID)
}

func (s *HashStore) Close() error {
	return s.store.Close()
}
