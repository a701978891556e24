package utils

import (
	"math"
	"time"
)

type HotConfig struct {
	Gravity        float64 // 时间重力
	WeightUpvote   float64
	WeightDownvote float64
	ScaleFactor    float64
}

var DefaultHotConfig = HotConfig{
	Gravity:        1.5,
	WeightUpvote:   1.0,
	WeightDownvote: 1.5,
	ScaleFactor:    100.0,
}

// HotScore 按票数和发布时长计算热度，票数取对数，按小时衰减
func HotScore(up, down int, age time.Duration) float64 {
	return DefaultHotConfig.Score(up, down, age)
}

func (c HotConfig) Score(up, down int, age time.Duration) float64 {
	weighted := float64(up)*c.WeightUpvote - float64(down)*c.WeightDownvote
	if weighted < 0 {
		weighted = 0
	}
	hours := age.Hours()
	if hours < 0 {
		hours = 0
	}
	return math.Log10(weighted+1) * c.ScaleFactor / math.Pow(hours+2, c.Gravity)
}
