// 指示: miu200521358
package winteractor

import "github.com/miu200521358/mu_skin_weights/pkg/domain/model"

// BatchResult は選択頂点に対する一括操作の結果を表す。
// 頂点単位の非致命条件はWarningsへ集約し、他頂点の処理を中断しない。
type BatchResult struct {
	Updates  map[int]model.WeightMap
	Warnings []model.VertexWarning
}

// newBatchResult は空のBatchResultを生成する。
func newBatchResult() BatchResult {
	return BatchResult{Updates: map[int]model.WeightMap{}}
}

// addWarning は頂点単位警告を追加する。
func (r *BatchResult) addWarning(vertexIndex int, id string) {
	r.Warnings = append(r.Warnings, model.VertexWarning{VertexIndex: vertexIndex, ID: id})
}
