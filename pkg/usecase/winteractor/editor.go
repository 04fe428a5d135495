// 指示: miu200521358
package winteractor

import (
	"sort"

	"github.com/miu200521358/mu_skin_weights/pkg/domain/model"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model/merrors"
)

// SetWeights は対象インフルエンスのウェイトを目標値へ近づけた新しいWeightMapを返す。
// 目標値は amount*falloff + 現在値*(1-falloff)。増減分は再配分元インフルエンスの
// 現在ウェイトに比例して引き当てる。第2戻り値は再配分元全零による頂点スキップを表す。
func SetWeights(
	weights model.WeightMap,
	target int,
	sources []int,
	amount float64,
	falloff float64,
	maxInfluences int,
) (model.WeightMap, bool, error) {
	current := weights[target]
	value := amount*falloff + current*(1.0-falloff)
	return applyTargetValue(weights, target, sources, value, maxInfluences)
}

// IncrementWeights は対象インフルエンスのウェイトへ増分を加えた新しいWeightMapを返す。
// 新しい値は clamp(現在値 + delta*falloff, 0, 1)。再配分はSetWeightsと同一。
func IncrementWeights(
	weights model.WeightMap,
	target int,
	sources []int,
	delta float64,
	falloff float64,
	maxInfluences int,
) (model.WeightMap, bool, error) {
	value := clamp01(weights[target] + delta*falloff)
	return applyTargetValue(weights, target, sources, value, maxInfluences)
}

// ScaleWeights は対象インフルエンスのウェイトを百分率で拡縮した新しいWeightMapを返す。
// 新しい値は clamp(現在値 * (1 + percent*falloff), 0, 1)。percent負数で縮小となる。
func ScaleWeights(
	weights model.WeightMap,
	target int,
	sources []int,
	percent float64,
	falloff float64,
	maxInfluences int,
) (model.WeightMap, bool, error) {
	value := clamp01(weights[target] * (1.0 + percent*falloff))
	return applyTargetValue(weights, target, sources, value, maxInfluences)
}

// SetWeightsBatch はSoftSelectionの各頂点へ同一の(対象, 再配分元, 量)を適用する。
// フォールオフは頂点ごとの値を用いる。
func SetWeightsBatch(
	weightsByVertex map[int]model.WeightMap,
	selection model.SoftSelection,
	target int,
	sources []int,
	amount float64,
	maxInfluences int,
) (BatchResult, error) {
	return runEditBatch(weightsByVertex, selection, func(weights model.WeightMap, falloff float64) (model.WeightMap, bool, error) {
		return SetWeights(weights, target, sources, amount, falloff, maxInfluences)
	})
}

// IncrementWeightsBatch はSoftSelectionの各頂点へ同一の増分を適用する。
func IncrementWeightsBatch(
	weightsByVertex map[int]model.WeightMap,
	selection model.SoftSelection,
	target int,
	sources []int,
	delta float64,
	maxInfluences int,
) (BatchResult, error) {
	return runEditBatch(weightsByVertex, selection, func(weights model.WeightMap, falloff float64) (model.WeightMap, bool, error) {
		return IncrementWeights(weights, target, sources, delta, falloff, maxInfluences)
	})
}

// ScaleWeightsBatch はSoftSelectionの各頂点へ同一の百分率を適用する。
func ScaleWeightsBatch(
	weightsByVertex map[int]model.WeightMap,
	selection model.SoftSelection,
	target int,
	sources []int,
	percent float64,
	maxInfluences int,
) (BatchResult, error) {
	return runEditBatch(weightsByVertex, selection, func(weights model.WeightMap, falloff float64) (model.WeightMap, bool, error) {
		return ScaleWeights(weights, target, sources, percent, falloff, maxInfluences)
	})
}

// runEditBatch は選択頂点を昇順に編集し、スキップ頂点を警告へ集約する。
func runEditBatch(
	weightsByVertex map[int]model.WeightMap,
	selection model.SoftSelection,
	edit func(model.WeightMap, float64) (model.WeightMap, bool, error),
) (BatchResult, error) {
	result := newBatchResult()
	for _, vertexIndex := range selection.Indexes() {
		edited, degenerate, err := edit(weightsByVertex[vertexIndex], selection[vertexIndex])
		if err != nil {
			return BatchResult{}, err
		}
		if degenerate {
			result.addWarning(vertexIndex, model.WeightWarningDegenerateRedistribution)
			continue
		}
		result.Updates[vertexIndex] = edited
	}
	return result, nil
}

// applyTargetValue は対象インフルエンスを目標値へ変更し、差分を再配分元で吸収した
// 新しいWeightMapを返す。入力は変更しない。
func applyTargetValue(
	weights model.WeightMap,
	target int,
	sources []int,
	targetValue float64,
	maxInfluences int,
) (model.WeightMap, bool, error) {
	sourceIndexes := filterSources(target, sources)
	if len(sourceIndexes) == 0 {
		return nil, false, &merrors.NoSourceInfluencesError{}
	}

	result := weights.Clone()
	current := result[target]
	desired := clamp01(targetValue)
	delta := desired - current

	sourceTotal := 0.0
	for _, sourceIndex := range sourceIndexes {
		sourceTotal += result[sourceIndex]
	}

	switch {
	case delta > model.NormalizeTolerance:
		// 増量は再配分元の保有分からのみ引き当てる。全零なら頂点を変更しない。
		if sourceTotal <= model.NormalizeTolerance {
			return weights.Clone(), true, nil
		}
		take := delta
		if take > sourceTotal {
			take = sourceTotal
		}
		scale := (sourceTotal - take) / sourceTotal
		for _, sourceIndex := range sourceIndexes {
			result[sourceIndex] *= scale
		}
		result[target] = current + take
	case delta < -model.NormalizeTolerance:
		give := -delta
		if sourceTotal > model.NormalizeTolerance {
			for _, sourceIndex := range sourceIndexes {
				result[sourceIndex] += give * result[sourceIndex] / sourceTotal
			}
		} else {
			share := give / float64(len(sourceIndexes))
			for _, sourceIndex := range sourceIndexes {
				result[sourceIndex] += share
			}
		}
		result[target] = desired
	default:
		result[target] = current
	}

	clamped := clampWithPriority(result, target, sourceIndexes, maxInfluences)
	normalized, err := clamped.Normalized()
	if err != nil {
		return nil, false, err
	}
	return normalized, false, nil
}

// clampWithPriority はインフルエンス数を上限以下へ切り詰める。
// 対象でも再配分元でもない小ウェイトのエントリから除去し、除去分は再配分元へ
// 比例配分で返す。なお候補が尽きた場合は小ウェイトの再配分元から除去する。
func clampWithPriority(
	weights model.WeightMap,
	target int,
	sourceIndexes []int,
	maxInfluences int,
) model.WeightMap {
	result := make(model.WeightMap, len(weights))
	for index, weight := range weights {
		if weight <= 0 && index != target {
			continue
		}
		result[index] = weight
	}
	if maxInfluences <= 0 {
		return result
	}

	sourceSet := make(map[int]struct{}, len(sourceIndexes))
	for _, sourceIndex := range sourceIndexes {
		sourceSet[sourceIndex] = struct{}{}
	}

	for len(result) > maxInfluences {
		dropIndex, found := smallestEntry(result, func(index int) bool {
			if index == target {
				return false
			}
			_, isSource := sourceSet[index]
			return !isSource
		})
		if !found {
			dropIndex, found = smallestEntry(result, func(index int) bool {
				return index != target
			})
		}
		if !found {
			break
		}

		dropped := result[dropIndex]
		delete(result, dropIndex)

		remainingTotal := 0.0
		remainingSources := make([]int, 0, len(sourceIndexes))
		for _, sourceIndex := range sourceIndexes {
			if weight, exists := result[sourceIndex]; exists && weight > 0 {
				remainingSources = append(remainingSources, sourceIndex)
				remainingTotal += weight
			}
		}
		if remainingTotal > 0 {
			for _, sourceIndex := range remainingSources {
				result[sourceIndex] += dropped * result[sourceIndex] / remainingTotal
			}
		} else {
			result[target] += dropped
		}
	}
	return result
}

// smallestEntry は条件を満たす最小ウェイトのindexを返す(同値はindexの小さい方)。
func smallestEntry(weights model.WeightMap, accept func(int) bool) (int, bool) {
	found := false
	smallestIndex := 0
	smallestWeight := 0.0
	for _, index := range weights.Indexes() {
		if !accept(index) {
			continue
		}
		if !found || weights[index] < smallestWeight {
			found = true
			smallestIndex = index
			smallestWeight = weights[index]
		}
	}
	return smallestIndex, found
}

// filterSources は対象indexを除いた再配分元indexを昇順・重複なしで返す。
func filterSources(target int, sources []int) []int {
	seen := make(map[int]struct{}, len(sources))
	out := make([]int, 0, len(sources))
	for _, sourceIndex := range sources {
		if sourceIndex == target {
			continue
		}
		if _, exists := seen[sourceIndex]; exists {
			continue
		}
		seen[sourceIndex] = struct{}{}
		out = append(out, sourceIndex)
	}
	sort.Ints(out)
	return out
}

// clamp01 は値を0.0〜1.0へ制限する。
func clamp01(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
