package gamecache

import (
	"context"
	"sync"
	"time"
)

// DefaultSweepInterval 后台清理的默认执行间隔。
const DefaultSweepInterval = time.Hour

// Sweeper 按固定间隔执行 Cache.Sweep 的后台任务，独立于请求流量。
// 不与任何一次请求的新鲜度 TTL 耦合：读取方可以各自要求更新的数据，
// 回收只看保留期。
type Sweeper struct {
	cache     Cache
	interval  time.Duration
	retention time.Duration
	ticker    *time.Ticker
	done      chan struct{}
	stopOnce  sync.Once

	// OnSweep 可选回调：每轮清理后收到 (删除数量, 错误)，用于打点/日志。
	// 需在 Start 之前设置。
	OnSweep func(deleted int, err error)
}

// NewSweeper 创建清理任务；interval <= 0 时使用 DefaultSweepInterval，
// retention <= 0 时使用 DefaultRetention。需调用 Start 启动。
func NewSweeper(cache Cache, interval, retention time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Sweeper{
		cache:     cache,
		interval:  interval,
		retention: retention,
		done:      make(chan struct{}),
	}
}

// Start 启动后台清理循环。
func (s *Sweeper) Start() {
	s.ticker = time.NewTicker(s.interval)
	go s.run()
}

func (s *Sweeper) run() {
	for {
		select {
		case <-s.done:
			return
		case <-s.ticker.C:
			deleted, err := s.cache.Sweep(context.Background(), s.retention)
			if s.OnSweep != nil {
				s.OnSweep(deleted, err)
			}
		}
	}
}

// Stop 停止清理任务；幂等，可并发调用。
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() {
		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.done)
	})
}
