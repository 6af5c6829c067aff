package service

import (
	"math/rand/v2"

	"loot-currency/internal/modules/currency/dto"
)

// 面额换算
const (
	copperPerSilver = 10
	silverPerGold   = 10
)

// RandomSource 随机数来源
type RandomSource interface {
	// IntRange 返回 [lo, hi] 闭区间内的均匀随机整数
	IntRange(lo, hi int) int
}

// mathRandSource 基于 math/rand/v2 全局源，可并发使用
type mathRandSource struct{}

func (mathRandSource) IntRange(lo, hi int) int {
	if lo >= hi {
		return lo
	}
	return lo + rand.IntN(hi-lo+1)
}

// DefaultRandomSource 生产环境使用的随机源
func DefaultRandomSource() RandomSource {
	return mathRandSource{}
}

// Generator 货币掉落生成器
type Generator struct {
	rng RandomSource
}

// NewGenerator 创建生成器，rng 为 nil 时使用默认随机源
func NewGenerator(rng RandomSource) *Generator {
	if rng == nil {
		rng = DefaultRandomSource()
	}
	return &Generator{rng: rng}
}

// Generate 生成一份货币掉落
// 调用方保证 1 <= level <= 20, 1 <= members <= 6
func (g *Generator) Generate(level, members int, reduce bool) dto.CoinBundle {
	gold := g.rng.IntRange(level, level*10)
	silver := g.drawAtLeastOne(gold / 2)
	copper := g.drawAtLeastOne(gold / 5)

	coins := dto.CoinBundle{
		GP: gold * members,
		SP: silver * members,
		CP: copper * members,
	}
	if reduce {
		coins = Consolidate(coins)
	}
	return coins
}

// drawAtLeastOne 在 [1, hi] 中取值，hi < 1 时固定为 1
func (g *Generator) drawAtLeastOne(hi int) int {
	if hi < 1 {
		return 1
	}
	return g.rng.IntRange(1, hi)
}

// Consolidate 铜币进位为银币，再银币进位为金币
func Consolidate(coins dto.CoinBundle) dto.CoinBundle {
	coins.SP += coins.CP / copperPerSilver
	coins.CP %= copperPerSilver
	coins.GP += coins.SP / silverPerGold
	coins.SP %= silverPerGold
	return coins
}
