package core

import "time"

// UserProfile 是用户偏好画像：由隐式反馈（点击、加愿望单）累积而来的
// 类型权重，加上交互过的游戏集合。
//
// 约定：
//   - 每个 user_id 至多一条画像；画像不存在（nil）是合法状态，
//     表示"尚无观测到的偏好"，与全零权重的画像含义不同
//   - 权重只增不减，除非整条画像被显式删除
//   - ClickedGames 用于打分时的软降权（×0.7），不做硬过滤
type UserProfile struct {
	UserID       string           `json:"user_id"`
	GenreWeights map[string]int64 `json:"genre_weights"`
	ClickedGames []int64          `json:"clicked_games"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// NewUserProfile 创建一个空画像（首次反馈时惰性创建）。
func NewUserProfile(userID string) *UserProfile {
	return &UserProfile{
		UserID:       userID,
		GenreWeights: make(map[string]int64),
		ClickedGames: make([]int64, 0),
		UpdatedAt:    time.Now(),
	}
}

// Empty 返回画像是否为空（nil 或没有任何类型权重）。
// 空画像走随机洗牌路径，不参与打分。
func (p *UserProfile) Empty() bool {
	return p == nil || len(p.GenreWeights) == 0
}

// WeightOf 返回某个类型的权重，未出现过的类型为 0。
func (p *UserProfile) WeightOf(genre string) int64 {
	if p == nil || p.GenreWeights == nil {
		return 0
	}
	return p.GenreWeights[genre]
}

// AddGenreWeight 给某个类型累加权重增量。
func (p *UserProfile) AddGenreWeight(genre string, delta int64) {
	if p.GenreWeights == nil {
		p.GenreWeights = make(map[string]int64)
	}
	p.GenreWeights[genre] += delta
	p.UpdatedAt = time.Now()
}

// AddClickedGame 将游戏加入交互集合，幂等；返回是否实际新增。
func (p *UserProfile) AddClickedGame(appID int64) bool {
	for _, id := range p.ClickedGames {
		if id == appID {
			return false
		}
	}
	p.ClickedGames = append(p.ClickedGames, appID)
	p.UpdatedAt = time.Now()
	return true
}

// HasClicked 返回用户是否交互过该游戏。
func (p *UserProfile) HasClicked(appID int64) bool {
	for _, id := range p.ClickedGames {
		if id == appID {
			return true
		}
	}
	return false
}
