// 指示: miu200521358
package model

import "sort"

// SoftSelection は頂点indexからフォールオフ(0.0〜1.0)への対応を表す。
// フォールオフ1.0は編集を全量適用することを意味する。
type SoftSelection map[int]float64

// NewFullSelection はフォールオフ1.0のSoftSelectionを生成する。
func NewFullSelection(vertexIndexes ...int) SoftSelection {
	out := make(SoftSelection, len(vertexIndexes))
	for _, vertexIndex := range vertexIndexes {
		out[vertexIndex] = 1.0
	}
	return out
}

// Indexes は選択頂点indexを昇順で返す。
func (s SoftSelection) Indexes() []int {
	indexes := make([]int, 0, len(s))
	for vertexIndex := range s {
		indexes = append(indexes, vertexIndex)
	}
	sort.Ints(indexes)
	return indexes
}
