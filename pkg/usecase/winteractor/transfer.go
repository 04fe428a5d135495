// 指示: miu200521358
package winteractor

import (
	"fmt"

	"github.com/miu200521358/mu_skin_weights/pkg/domain/model"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model/merrors"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/wmath"
	"gonum.org/v1/gonum/spatial/r3"
)

// SlabMode はスラブ貼り付けの対称相手選択方式を表す。
type SlabMode int

const (
	// SlabModeClosestPoint は選択重心から頂点方向へ進めた位置の最近傍を採用する。
	SlabModeClosestPoint SlabMode = iota
	// SlabModeNearestNeighbour は頂点位置の最近傍をそのまま採用する。
	SlabModeNearestNeighbour
	// SlabModeAlongNormal は頂点法線方向へ進めた位置の最近傍を採用する。
	SlabModeAlongNormal
)

// String は方式名を返す。
func (m SlabMode) String() string {
	switch m {
	case SlabModeNearestNeighbour:
		return "NearestNeighbour"
	case SlabModeAlongNormal:
		return "AlongNormal"
	default:
		return "ClosestPoint"
	}
}

// ApplyClosestWeights は転送元点群に最近傍index を構築し、転送先各点に最も近い
// 転送元頂点のWeightMapを複写して返す。戻り値は転送先頂点index順のスライスで、
// influenceMap によるid空間の写像を済ませてある。
func ApplyClosestWeights(
	sourcePoints []r3.Vec,
	sourceWeights []model.WeightMap,
	destinationPoints []r3.Vec,
	influenceMap model.InfluenceMap,
) ([]model.WeightMap, error) {
	if len(sourcePoints) != len(sourceWeights) {
		return nil, &merrors.VertexCountMismatchError{Expected: len(sourcePoints), Actual: len(sourceWeights)}
	}
	if len(sourcePoints) == 0 {
		return nil, fmt.Errorf("転送元点群が空です")
	}

	tree := wmath.NewPointTree(sourcePoints)
	out := make([]model.WeightMap, len(destinationPoints))
	for destinationIndex, destinationPoint := range destinationPoints {
		sourceIndex, _, found := tree.Nearest(destinationPoint)
		if !found {
			return nil, fmt.Errorf("最近傍問い合わせに失敗しました: 頂点%d", destinationIndex)
		}
		out[destinationIndex] = RemapWeightMap(sourceWeights[sourceIndex], influenceMap)
	}
	return out, nil
}

// SlabPasteWeights は選択頂点のウェイトを空間的に近い非選択頂点へ複写する更新
// 集合を返す。貼り付け先は mode の選択方式で決まり、見つからない頂点はスキップ
// して警告する。AlongNormal では normals に頂点index順の法線が必要となる。
func SlabPasteWeights(
	selection []int,
	weightsByVertex map[int]model.WeightMap,
	points []r3.Vec,
	normals []r3.Vec,
	mode SlabMode,
) (BatchResult, error) {
	result := newBatchResult()
	if len(selection) == 0 {
		return result, nil
	}
	if mode == SlabModeAlongNormal && len(normals) != len(points) {
		return BatchResult{}, fmt.Errorf("法線数と頂点数が一致しません: normals=%d points=%d", len(normals), len(points))
	}

	sorted := sortedSelection(selection)
	selectedSet := make(map[int]struct{}, len(sorted))
	for _, vertexIndex := range sorted {
		if vertexIndex < 0 || vertexIndex >= len(points) {
			return BatchResult{}, fmt.Errorf("頂点indexが点群の範囲外です: %d", vertexIndex)
		}
		selectedSet[vertexIndex] = struct{}{}
	}

	// 非選択頂点だけで最近傍indexを構築し、元の頂点indexへ引き直す。
	candidatePoints := make([]r3.Vec, 0, len(points)-len(selectedSet))
	candidateIndexes := make([]int, 0, len(points)-len(selectedSet))
	for vertexIndex, point := range points {
		if _, selected := selectedSet[vertexIndex]; selected {
			continue
		}
		candidatePoints = append(candidatePoints, point)
		candidateIndexes = append(candidateIndexes, vertexIndex)
	}
	if len(candidatePoints) == 0 {
		for _, vertexIndex := range sorted {
			result.addWarning(vertexIndex, model.WeightWarningSlabMatchFailed)
		}
		return result, nil
	}
	tree := wmath.NewPointTree(candidatePoints)

	centroid := selectionCentroid(sorted, points)
	for _, vertexIndex := range sorted {
		query, ok := slabQueryPoint(points[vertexIndex], centroid, normals, vertexIndex, mode, tree)
		if !ok {
			result.addWarning(vertexIndex, model.WeightWarningSlabMatchFailed)
			continue
		}
		matched, _, found := tree.Nearest(query)
		if !found {
			result.addWarning(vertexIndex, model.WeightWarningSlabMatchFailed)
			continue
		}
		result.Updates[candidateIndexes[matched]] = weightsByVertex[vertexIndex].Clone()
	}
	return result, nil
}

// slabQueryPoint は貼り付け先探索の問い合わせ位置を返す。
func slabQueryPoint(
	position r3.Vec,
	centroid r3.Vec,
	normals []r3.Vec,
	vertexIndex int,
	mode SlabMode,
	tree *wmath.PointTree,
) (r3.Vec, bool) {
	switch mode {
	case SlabModeNearestNeighbour:
		return position, true
	case SlabModeAlongNormal:
		_, distance, found := tree.Nearest(position)
		if !found {
			return r3.Vec{}, false
		}
		return r3.Add(position, r3.Scale(distance, normals[vertexIndex])), true
	default:
		// ClosestPoint: 選択重心から頂点への放射方向へ、最近傍距離分だけ進める。
		direction := r3.Sub(position, centroid)
		length := r3.Norm(direction)
		_, distance, found := tree.Nearest(position)
		if !found {
			return r3.Vec{}, false
		}
		if length <= model.NormalizeTolerance {
			return position, true
		}
		return r3.Add(position, r3.Scale(distance/length, direction)), true
	}
}

// selectionCentroid は選択頂点の重心を返す。
func selectionCentroid(selection []int, points []r3.Vec) r3.Vec {
	if len(selection) == 0 {
		return r3.Vec{}
	}
	sum := r3.Vec{}
	for _, vertexIndex := range selection {
		sum = r3.Add(sum, points[vertexIndex])
	}
	return r3.Scale(1.0/float64(len(selection)), sum)
}
