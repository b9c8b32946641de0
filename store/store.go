// Package store 提供 core.Store / core.KeyValueStore 的具体实现。
// 接口定义在 core 包，此包只包含实现。
//
// 示例：
//
//	var s core.Store = store.NewMemoryStore()
//	var kv core.KeyValueStore = store.NewMemoryStore()
package store

import "github.com/Keli-LYU/SteamGameRecSys/core"

// ErrNotFound 是 core.ErrStoreNotFound 的别名，方便包内与调用方使用。
var ErrNotFound = core.ErrStoreNotFound

// KeyValueStore 别名，见 core.KeyValueStore。
type KeyValueStore = core.KeyValueStore

// Store 别名，见 core.Store。
type Store = core.Store
