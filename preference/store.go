// Package preference 实现用户偏好存储（Weight Store）：
// 每个用户一份类型权重画像 + 交互过的游戏集合。
//
// 两个实现对应两种并发策略（并发反馈不允许丢更新）：
//   - KVStore：画像序列化为单条 JSON 记录，读-改-写由每用户互斥锁串行化，
//     对应原始 SQLite 单行存储的形态
//   - HashStore：权重按 Hash 字段存储，自增由后端（HIncrBy/SAdd）原子执行，
//     无需客户端锁，适合 Redis
package preference

import (
	"context"

	"github.com/Keli-LYU/SteamGameRecSys/core"
)

// 反馈权重策略常量。存储本身对增量大小不感知，只应用调用方给出的 delta；
// 这两个值由引擎在反馈入口处使用。
const (
	// ClickDelta 点击反馈：受影响游戏的每个类型权重 +1
	ClickDelta int64 = 1

	// WishlistDelta 加入愿望单反馈：每个类型权重 +5
	WishlistDelta int64 = 5
)

// Store 是偏好存储的领域接口。
//
// 约定：
//   - Get 对不存在的用户返回 (nil, nil)：画像缺失是合法状态
//     （"尚无观测"），不同于全零权重，也不是错误
//   - 所有修改操作对同一 userID 串行生效，不丢并发更新；
//     不同 userID 之间互不影响
//   - 每次修改都会刷新画像的 UpdatedAt
//   - 存储层故障以 UNAVAILABLE 领域错误向上传播（core.IsUnavailable）
type Store interface {
	// Get 读取用户画像；用户不存在时返回 (nil, nil)
	Get(ctx context.Context, userID string) (*core.UserProfile, error)

	// Increment 给单个类型累加权重（用户不存在则惰性创建）
	Increment(ctx context.Context, userID, genre string, delta int64) error

	// ApplyFeedback 对一次反馈事件：先规范化 genres，再给每个类型
	// 累加 delta，并把 appID 记入交互集合
	ApplyFeedback(ctx context.Context, userID string, appID int64, genres []string, delta int64) error

	// RecordInteraction 将游戏记入用户的交互集合，幂等
	RecordInteraction(ctx context.Context, userID string, appID int64) error

	// Close 释放底层资源
	Close() error
}
