package core

import "context"

// Catalog 是外部游戏目录（catalog of record）的领域接口。
// 目录如何被填充、分页、抓取不在核心范围内；核心只消费这份契约。
//
// 实现约定：
//   - GetGame 查不到时返回 ErrGameNotFound（NOT_FOUND），
//     传输层故障返回 UNAVAILABLE
//   - ListGames 返回当前全量目录；调用方通过 ctx 设定超时，
//     超时时以已取得的部分结果为准
type Catalog interface {
	// GetGame 按 App ID 查询单个游戏详情
	GetGame(ctx context.Context, appID int64) (*Item, error)

	// ListGames 返回全量候选目录
	ListGames(ctx context.Context) ([]*Item, error)
}

// ErrGameNotFound 表示目录中不存在该游戏。
var ErrGameNotFound = NewDomainError(ModuleCatalog, ErrorCodeNotFound, "catalog: game not found")
