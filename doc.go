// Package steamgamerecsys 是一个偏好加权的 Steam 游戏推荐引擎。
//
// 设计要点：
// - 画像驱动: 点击 / 愿望单反馈按游戏类型累加为用户权重画像
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → Rank → ReRank）
// - 概率采样: 加权无放回采样产出有序结果，高权不垄断、长尾有机会
package steamgamerecsys

import "github.com/Keli-LYU/SteamGameRecSys/pipeline"

// 轻量 facade：便于用户直接使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
