// 指示: miu200521358
package winteractor

import (
	"fmt"

	"github.com/miu200521358/mu_skin_weights/pkg/domain/model"
)

// PruneWeightMap は許容値未満のウェイトを除去して正規化した新しいWeightMapを返す。
// 除去で空になる場合は元の最大ウェイトのインフルエンスをウェイト1.0で残す。
// ウェイトを持っていた頂点が空になることはない。
func PruneWeightMap(weights model.WeightMap, tolerance float64) (model.WeightMap, error) {
	pruned := make(model.WeightMap, len(weights))
	for index, weight := range weights {
		if weight < tolerance {
			continue
		}
		pruned[index] = weight
	}
	if len(pruned) == 0 {
		largestIndex, found := weights.LargestIndex()
		if !found {
			return model.WeightMap{}, nil
		}
		return model.WeightMap{largestIndex: 1.0}, nil
	}
	return pruned.Normalized()
}

// PruneVertices は選択頂点それぞれへPruneWeightMapを適用する。
func PruneVertices(
	selection []int,
	weightsByVertex map[int]model.WeightMap,
	tolerance float64,
) (BatchResult, error) {
	result := newBatchResult()
	for _, vertexIndex := range sortedSelection(selection) {
		pruned, err := PruneWeightMap(weightsByVertex[vertexIndex], tolerance)
		if err != nil {
			return BatchResult{}, fmt.Errorf("頂点%dの切り詰めに失敗しました: %w", vertexIndex, err)
		}
		if len(pruned) == 0 {
			continue
		}
		result.Updates[vertexIndex] = pruned
	}
	return result, nil
}
