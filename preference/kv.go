package preference

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/Keli-LYU/SteamGameRecSys/core"
)

const kvKeyPrefix = "pref:profile:"

// KVStore 把整份画像序列化为一条 JSON 记录存入 core.Store。
// 读-改-写由每用户的互斥锁串行化：同一用户的并发 Increment 不会互相
// 覆盖；不同用户各持有各自的锁，互不阻塞。
type KVStore struct {
	store core.Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKVStore 基于任意 core.Store 创建偏好存储。
func NewKVStore(s core.Store) *KVStore {
	return &KVStore{
		store: s,
		locks: make(map[string]*sync.Mutex),
	}
}

var _ Store = (*KVStore)(nil)

// userLock 返回某个用户的互斥锁（惰性创建，创建后不回收）。
func (s *KVStore) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

func (s *KVStore) Get(ctx context.Context, userID string) (*core.UserProfile, error) {
	return s.load(ctx, userID)
}

func (s *KVStore) load(ctx context.Context, userID string) (*core.UserProfile, error) {
	data, err := s.store.Get(ctx, kvKeyPrefix+userID)
	if core.IsStoreNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var p core.UserProfile
	if err := json.Unmarshal(data, &p); err != nil {
		// 记录损坏按缺失处理，而不是让整条请求失败
		return nil, nil
	}
	p.UserID = userID
	return &p, nil
}

func (s *KVStore) save(ctx context.Context, p *core.UserProfile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, kvKeyPrefix+p.UserID, data)
}

// mutate 在用户锁内执行一次读-改-写。fn 返回 false 表示画像未变化，跳过写回。
func (s *KVStore) mutate(ctx context.Context, userID string, fn func(p *core.UserProfile) bool) error {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	p, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	if p == nil {
		p = core.NewUserProfile(userID)
	}
	if !fn(p) {
		return nil
	}
	return s.save(ctx, p)
}

func (s *KVStore) Increment(ctx context.Context, userID, genre string, delta int64) error {
	return s.mutate(ctx, userID, func(p *core.UserProfile) bool {
		p.AddGenreWeight(genre, delta)
		return true
	})
}

func (s *KVStore) ApplyFeedback(ctx context.Context, userID string, appID int64, genres []string, delta int64) error {
	normalized := core.NormalizeGenres(genres...)
	return s.mutate(ctx, userID, func(p *core.UserProfile) bool {
		for _, g := range normalized {
			p.AddGenreWeight(g, delta)
		}
		p.AddClickedGame(appID)
		return true
	})
}

func (s *KVStore) RecordInteraction(ctx context.Context, userID string, appID int64) error {
	return s.mutate(ctx, userID, func(p *core.UserProfile) bool {
		return p.AddClickedGame(appID)
	})
}

func (s *KVStore) Close() error {
	return s.store.Close()
}
