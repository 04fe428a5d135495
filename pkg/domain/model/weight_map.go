// 指示: miu200521358
package model

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

const (
	// NormalizeTolerance は正規化判定の許容誤差を表す。
	NormalizeTolerance = 1e-6
	// DefaultMaxInfluences は1頂点あたりの既定インフルエンス上限を表す。
	DefaultMaxInfluences = 4
)

// WeightMap は1頂点分のインフルエンスindexからウェイトへの対応を表す。
// 非空のとき合計は1.0(誤差 NormalizeTolerance 以内)、0以下のウェイトは保持しない。
type WeightMap map[int]float64

// Clone はWeightMapの複製を返す。
func (w WeightMap) Clone() WeightMap {
	out := make(WeightMap, len(w))
	for index, weight := range w {
		out[index] = weight
	}
	return out
}

// Sum はウェイト合計を返す。
func (w WeightMap) Sum() float64 {
	values := make([]float64, 0, len(w))
	for _, weight := range w {
		values = append(values, weight)
	}
	return floats.Sum(values)
}

// Indexes はインフルエンスindexを昇順で返す。
func (w WeightMap) Indexes() []int {
	indexes := make([]int, 0, len(w))
	for index := range w {
		indexes = append(indexes, index)
	}
	sort.Ints(indexes)
	return indexes
}

// Normalized は合計が1.0になるよう正規化した複製を返す。
// 0以下のエントリは除去する。空のWeightMapは空のまま返す。
func (w WeightMap) Normalized() (WeightMap, error) {
	out := make(WeightMap, len(w))
	for index, weight := range w {
		if weight <= 0 {
			continue
		}
		out[index] = weight
	}
	if len(out) == 0 {
		if len(w) == 0 {
			return out, nil
		}
		return nil, fmt.Errorf("正のウェイトが存在しないため正規化できません")
	}

	total := out.Sum()
	if total <= NormalizeTolerance {
		return nil, fmt.Errorf("ウェイト合計が小さすぎるため正規化できません: %.9f", total)
	}
	for index, weight := range out {
		out[index] = weight / total
	}
	return out, nil
}

// Clamped はインフルエンス数を上限以下へ切り詰めて正規化した複製を返す。
// 上限超過時はウェイトの小さいエントリから除去する(同値はindexの大きい方を先に落とす)。
// maxInfluences が0以下のときは切り詰めを行わない。
func (w WeightMap) Clamped(maxInfluences int) (WeightMap, error) {
	if maxInfluences <= 0 || len(w) <= maxInfluences {
		return w.Normalized()
	}

	indexes := w.Indexes()
	sort.SliceStable(indexes, func(i int, j int) bool {
		if w[indexes[i]] == w[indexes[j]] {
			return indexes[i] < indexes[j]
		}
		return w[indexes[i]] > w[indexes[j]]
	})

	out := make(WeightMap, maxInfluences)
	for _, index := range indexes[:maxInfluences] {
		out[index] = w[index]
	}
	return out.Normalized()
}

// LargestIndex は最大ウェイトのインフルエンスindexを返す(同値はindexの小さい方)。
// 空のWeightMapでは第2戻り値がfalseになる。
func (w WeightMap) LargestIndex() (int, bool) {
	found := false
	largestIndex := 0
	largestWeight := 0.0
	for _, index := range w.Indexes() {
		if !found || w[index] > largestWeight {
			found = true
			largestIndex = index
			largestWeight = w[index]
		}
	}
	return largestIndex, found
}

// Validate はWeightMapの不変条件を検証する。
// maxInfluences が0以下のときはインフルエンス数上限の検査を行わない。
func (w WeightMap) Validate(maxInfluences int) error {
	if len(w) == 0 {
		return nil
	}
	if maxInfluences > 0 && len(w) > maxInfluences {
		return fmt.Errorf("インフルエンス数が上限を超えています: %d > %d", len(w), maxInfluences)
	}
	for index, weight := range w {
		if weight <= 0 {
			return fmt.Errorf("0以下のウェイトは保持できません: index=%d weight=%.9f", index, weight)
		}
		if weight > 1.0+NormalizeTolerance {
			return fmt.Errorf("1.0を超えるウェイトは保持できません: index=%d weight=%.9f", index, weight)
		}
	}
	total := w.Sum()
	if total < 1.0-NormalizeTolerance || total > 1.0+NormalizeTolerance {
		return fmt.Errorf("ウェイト合計が1.0ではありません: %.9f", total)
	}
	return nil
}
