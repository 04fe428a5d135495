// 指示: miu200521358
package winteractor

import (
	"fmt"
	"sort"

	"github.com/miu200521358/mu_skin_weights/pkg/domain/model"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
)

// AverageWeights は複数WeightMapの算術平均を正規化して返す。
// いずれかのWeightMapに現れるインフルエンスは、持たないWeightMapからは0として
// 算入する。maxInfluences が正のときは小ウェイトのエントリを上限まで除去する。
func AverageWeights(maps []model.WeightMap, maxInfluences int) (model.WeightMap, error) {
	if len(maps) == 0 {
		return model.WeightMap{}, nil
	}

	indexSet := map[int]struct{}{}
	for _, weights := range maps {
		for index := range weights {
			indexSet[index] = struct{}{}
		}
	}
	if len(indexSet) == 0 {
		return model.WeightMap{}, nil
	}

	averaged := make(model.WeightMap, len(indexSet))
	values := make([]float64, len(maps))
	for index := range indexSet {
		for i, weights := range maps {
			values[i] = weights[index]
		}
		mean := stat.Mean(values, nil)
		if mean <= 0 {
			continue
		}
		averaged[index] = mean
	}
	return averaged.Clamped(maxInfluences)
}

// BlendVertices は選択頂点全体の平均ウェイトを各頂点へ適用する。
func BlendVertices(
	selection []int,
	weightsByVertex map[int]model.WeightMap,
	maxInfluences int,
) (BatchResult, error) {
	result := newBatchResult()
	if len(selection) == 0 {
		return result, nil
	}

	sorted := sortedSelection(selection)
	maps := make([]model.WeightMap, 0, len(sorted))
	for _, vertexIndex := range sorted {
		maps = append(maps, weightsByVertex[vertexIndex])
	}
	averaged, err := AverageWeights(maps, maxInfluences)
	if err != nil {
		return BatchResult{}, err
	}
	for _, vertexIndex := range sorted {
		result.Updates[vertexIndex] = averaged.Clone()
	}
	return result, nil
}

// BlendBetweenVertices は両端2頂点をアンカーとする経路の内部頂点へ、アンカー間の
// 線形補間ウェイトを適用する。chain は隣接順または明示経路順で並んでいること。
// blendByDistance が真のとき補間係数は経路に沿った累積3D距離に比例し、偽のとき
// 等間隔となる。
func BlendBetweenVertices(
	chain []int,
	weightsByVertex map[int]model.WeightMap,
	points []r3.Vec,
	blendByDistance bool,
	maxInfluences int,
) (BatchResult, error) {
	result := newBatchResult()
	if len(chain) < 3 {
		return result, nil
	}

	parameters, err := chainParameters(chain, points, blendByDistance)
	if err != nil {
		return BatchResult{}, err
	}

	startWeights := weightsByVertex[chain[0]]
	endWeights := weightsByVertex[chain[len(chain)-1]]
	for i := 1; i < len(chain)-1; i++ {
		blended, err := lerpWeights(startWeights, endWeights, parameters[i], maxInfluences)
		if err != nil {
			return BatchResult{}, fmt.Errorf("頂点%dの補間に失敗しました: %w", chain[i], err)
		}
		result.Updates[chain[i]] = blended
	}
	return result, nil
}

// RelaxVertices は各選択頂点のウェイトを自身と位相隣接頂点のインフルエンス平均へ
// 置き換える(ラプラシアン平滑化1パス分)。隣接関係はホストが供給する。
// 呼び出しを繰り返すと平滑化が累積する。
func RelaxVertices(
	selection []int,
	weightsByVertex map[int]model.WeightMap,
	adjacency map[int][]int,
	maxInfluences int,
) (BatchResult, error) {
	result := newBatchResult()
	for _, vertexIndex := range sortedSelection(selection) {
		maps := []model.WeightMap{weightsByVertex[vertexIndex]}
		for _, neighborIndex := range adjacency[vertexIndex] {
			neighborWeights, exists := weightsByVertex[neighborIndex]
			if !exists {
				continue
			}
			maps = append(maps, neighborWeights)
		}
		relaxed, err := AverageWeights(maps, maxInfluences)
		if err != nil {
			return BatchResult{}, fmt.Errorf("頂点%dの平滑化に失敗しました: %w", vertexIndex, err)
		}
		result.Updates[vertexIndex] = relaxed
	}
	return result, nil
}

// chainParameters は経路各頂点の補間係数(0.0〜1.0)を返す。
func chainParameters(chain []int, points []r3.Vec, blendByDistance bool) ([]float64, error) {
	parameters := make([]float64, len(chain))
	if !blendByDistance {
		for i := range chain {
			parameters[i] = float64(i) / float64(len(chain)-1)
		}
		return parameters, nil
	}

	total := 0.0
	cumulative := make([]float64, len(chain))
	for i := 1; i < len(chain); i++ {
		previous, err := chainPoint(points, chain[i-1])
		if err != nil {
			return nil, err
		}
		current, err := chainPoint(points, chain[i])
		if err != nil {
			return nil, err
		}
		total += r3.Norm(r3.Sub(current, previous))
		cumulative[i] = total
	}
	if total <= 0 {
		// 全頂点が同一位置のときは等間隔補間へ切り替える。
		return chainParameters(chain, points, false)
	}
	for i := range chain {
		parameters[i] = cumulative[i] / total
	}
	return parameters, nil
}

// chainPoint は経路頂点の位置を返す。
func chainPoint(points []r3.Vec, vertexIndex int) (r3.Vec, error) {
	if vertexIndex < 0 || vertexIndex >= len(points) {
		return r3.Vec{}, fmt.Errorf("頂点indexが点群の範囲外です: %d", vertexIndex)
	}
	return points[vertexIndex], nil
}

// lerpWeights は2つのWeightMapを係数tで線形補間して正規化する。
func lerpWeights(a model.WeightMap, b model.WeightMap, t float64, maxInfluences int) (model.WeightMap, error) {
	indexSet := map[int]struct{}{}
	for index := range a {
		indexSet[index] = struct{}{}
	}
	for index := range b {
		indexSet[index] = struct{}{}
	}

	blended := make(model.WeightMap, len(indexSet))
	for index := range indexSet {
		weight := a[index]*(1.0-t) + b[index]*t
		if weight <= 0 {
			continue
		}
		blended[index] = weight
	}
	return blended.Clamped(maxInfluences)
}

// sortedSelection は選択頂点indexを昇順・重複なしで返す。
func sortedSelection(selection []int) []int {
	seen := make(map[int]struct{}, len(selection))
	out := make([]int, 0, len(selection))
	for _, vertexIndex := range selection {
		if _, exists := seen[vertexIndex]; exists {
			continue
		}
		seen[vertexIndex] = struct{}{}
		out = append(out, vertexIndex)
	}
	sort.Ints(out)
	return out
}
