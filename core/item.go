package core

// Item 是推荐链路中的统一承载结构：游戏目录字段、分数、标签。
// 目录字段从外部目录（catalog）拷贝而来，核心层不持有目录记录的引用。
// Labels 用于解释与策略驱动；Score 用于采样决策，仅在一次打分过程中有效。
type Item struct {
	AppID int64 // Steam App ID

	// 目录字段（来自外部目录或详情缓存）
	Name            string
	Price           float64
	Genres          []string // 规范化后的类型标签（见 NormalizeGenres）
	Description     string
	ReleaseDate     string
	PositiveReviews int64 // 正面评价数
	NegativeReviews int64 // 负面评价数

	// 链路内的瞬态字段，不做持久化
	Score  float64
	Labels map[string]Label
	Meta   map[string]any
}

func NewItem(appID int64) *Item {
	return &Item{
		AppID:  appID,
		Labels: make(map[string]Label),
		Meta:   make(map[string]any),
	}
}

// Clone 返回物品的独立副本：目录字段按值拷贝，Genres/Labels/Meta
// 为新分配的容器。候选进入推荐链路前必须经过拷贝，链路内写入的
// Score/Labels 不得落回目录自己的记录上。
func (it *Item) Clone() *Item {
	c := *it
	if it.Genres != nil {
		c.Genres = append([]string(nil), it.Genres...)
	}
	c.Labels = make(map[string]Label, len(it.Labels))
	for k, v := range it.Labels {
		c.Labels[k] = v
	}
	c.Meta = make(map[string]any, len(it.Meta))
	for k, v := range it.Meta {
		c.Meta[k] = v
	}
	return &c
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}
