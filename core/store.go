package core

import "context"

// Store 是存储的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（store）实现
//   - 遵循依赖倒置原则：领域层定义接口，基础设施层实现接口
//
// 使用场景：
//   - 用户偏好存储（preference 包）
//   - 游戏详情缓存（gamecache 包）
type Store interface {
	// Name 返回存储后端名称（用于日志/监控）
	Name() string

	// Get 读取单个 key 的值；key 不存在时返回 ErrStoreNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set 写入单个 key-value；ttl 为可选的过期秒数
	Set(ctx context.Context, key string, value []byte, ttl ...int) error

	// Delete 删除单个 key
	Delete(ctx context.Context, key string) error

	// BatchGet 批量读取，缺失的 key 不出现在结果中
	BatchGet(ctx context.Context, keys []string) (map[string][]byte, error)

	// BatchSet 批量写入
	BatchSet(ctx context.Context, kvs map[string][]byte, ttl ...int) error

	// Close 关闭连接/释放资源
	Close() error
}

// KeyValueStore 是 Store 的扩展接口，提供偏好存储与详情缓存依赖的
// 原子/索引原语。
//
// 扩展功能：
//   - 哈希字段原子自增（HIncrBy）：并发反馈下的权重累加不丢更新
//   - 集合（SAdd/SMembers）：用户交互过的游戏集合，天然幂等
//   - 有序集合（ZAdd/ZRange*）：按时间戳索引缓存条目，支持按龄清理；
//     按分数排序的热门列表
//
// 如果后端不支持某些操作，可返回 ErrStoreNotSupported。
type KeyValueStore interface {
	Store

	// ZAdd 向有序集合添加成员
	ZAdd(ctx context.Context, key string, score float64, member string) error

	// ZRange 按分数降序获取有序集合成员（用于 TopN 热门召回）
	ZRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	// ZRangeByScore 按分数区间（升序）获取成员（用于按龄扫描）
	ZRangeByScore(ctx context.Context, key string, min, max float64) ([]string, error)

	// ZRem 从有序集合删除指定成员（成员不存在时忽略）
	ZRem(ctx context.Context, key string, members ...string) error

	// ZRemRangeByScore 删除分数区间内的成员，返回删除数量
	ZRemRangeByScore(ctx context.Context, key string, min, max float64) (int64, error)

	// ZCard 返回有序集合的成员数量
	ZCard(ctx context.Context, key string) (int64, error)

	// HGet 读取 Hash 字段
	HGet(ctx context.Context, key, field string) ([]byte, error)

	// HSet 写入 Hash 字段
	HSet(ctx context.Context, key, field string, value []byte) error

	// HGetAll 读取整个 Hash
	HGetAll(ctx context.Context, key string) (map[string][]byte, error)

	// HIncrBy 对 Hash 字段做原子自增，返回自增后的值
	HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error)

	// SAdd 向集合添加成员（幂等）
	SAdd(ctx context.Context, key string, members ...string) error

	// SMembers 返回集合全部成员
	SMembers(ctx context.Context, key string) ([]string, error)
}

// Store 错误定义（使用统一的 DomainError）
var (
	// ErrStoreNotFound 表示 key 不存在
	ErrStoreNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "store: key not found")

	// ErrStoreNotSupported 表示操作不支持
	ErrStoreNotSupported = NewDomainError(ModuleStore, ErrorCodeNotSupported, "store: operation not supported")
)

// IsStoreNotFound 检查错误是否为 key 不存在。
func IsStoreNotFound(err error) bool {
	domainErr := GetDomainError(err)
	return domainErr != nil && domainErr.Module == ModuleStore && domainErr.Code == ErrorCodeNotFound
}
