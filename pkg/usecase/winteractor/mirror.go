// 指示: miu200521358
package winteractor

import (
	"fmt"

	"github.com/miu200521358/mu_skin_weights/pkg/domain/model"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/wmath"
	"gonum.org/v1/gonum/spatial/r3"
)

// MirrorWeightMap は左右対称表でインフルエンスを写像した新しいWeightMapを返す。
// 対称相手の無いインフルエンスは自身へ写す。2つのインフルエンスが同一の相手へ
// 写る場合ウェイトは合算される。
func MirrorWeightMap(weights model.WeightMap, symmetry model.SymmetryMap) model.WeightMap {
	out := make(model.WeightMap, len(weights))
	for index, weight := range weights {
		if weight <= 0 {
			continue
		}
		out[symmetry.Resolve(index)] += weight
	}
	return out
}

// MirrorVertexWeights は選択頂点のウェイトを対称軸越しに反映した更新集合を返す。
// 各選択頂点の位置を軸で反転し、点群全体への最近傍問い合わせで対称相手を採用
// する。最近傍距離が tolerance を超える頂点はスキップして警告する。pull が偽の
// とき対称相手が写像済みウェイトを受け取り、真のとき方向が反転して選択頂点自身
// が相手の写像済みウェイトを受け取る。結果はその場では適用されず、呼び出し側が
// ホスト契約へ反映する。最近傍距離が完全一致する候補の優先順はPointTreeの
// 挿入順規則(最小index)に従う。
func MirrorVertexWeights(
	selection []int,
	weightsByVertex map[int]model.WeightMap,
	points []r3.Vec,
	symmetry model.SymmetryMap,
	pull bool,
	axis wmath.Axis,
	tolerance float64,
) (BatchResult, error) {
	result := newBatchResult()
	if len(selection) == 0 {
		return result, nil
	}

	// 最近傍indexの構築は一括操作あたり1回の直列処理とする。
	tree := wmath.NewPointTree(points)
	for _, vertexIndex := range sortedSelection(selection) {
		if vertexIndex < 0 || vertexIndex >= len(points) {
			return BatchResult{}, fmt.Errorf("頂点indexが点群の範囲外です: %d", vertexIndex)
		}

		reflected := axis.Reflect(points[vertexIndex])
		matchedIndex, distance, found := tree.Nearest(reflected)
		if !found || distance > tolerance {
			result.addWarning(vertexIndex, model.WeightWarningMirrorMatchFailed)
			continue
		}

		if pull {
			matchedWeights, exists := weightsByVertex[matchedIndex]
			if !exists {
				result.addWarning(vertexIndex, model.WeightWarningMirrorMatchFailed)
				continue
			}
			result.Updates[vertexIndex] = MirrorWeightMap(matchedWeights, symmetry)
		} else {
			result.Updates[matchedIndex] = MirrorWeightMap(weightsByVertex[vertexIndex], symmetry)
		}
	}
	return result, nil
}

// SwapWeights は選択頂点のウェイトを左右対称表でその場入れ替えした更新集合を返す。
func SwapWeights(
	selection []int,
	weightsByVertex map[int]model.WeightMap,
	symmetry model.SymmetryMap,
) BatchResult {
	result := newBatchResult()
	for _, vertexIndex := range sortedSelection(selection) {
		weights, exists := weightsByVertex[vertexIndex]
		if !exists {
			continue
		}
		result.Updates[vertexIndex] = MirrorWeightMap(weights, symmetry)
	}
	return result
}

// TransferPairWeights は転送元頂点の写像済みウェイトを転送先頂点へ与える更新
// 集合を返す。
func TransferPairWeights(
	fromVertexIndex int,
	toVertexIndex int,
	weightsByVertex map[int]model.WeightMap,
	symmetry model.SymmetryMap,
) (BatchResult, error) {
	weights, exists := weightsByVertex[fromVertexIndex]
	if !exists {
		return BatchResult{}, fmt.Errorf("転送元頂点のウェイトが見つかりません: %d", fromVertexIndex)
	}
	result := newBatchResult()
	result.Updates[toVertexIndex] = MirrorWeightMap(weights, symmetry)
	return result, nil
}
