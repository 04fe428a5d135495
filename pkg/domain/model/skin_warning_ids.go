// 指示: miu200521358
package model

const (
	// WeightWarningDegenerateRedistribution は再配分元ウェイト全零による頂点スキップ警告。
	WeightWarningDegenerateRedistribution = "WeightWarningDegenerateRedistribution"
	// WeightWarningMirrorMatchFailed は許容距離内に対称頂点が無い頂点スキップ警告。
	WeightWarningMirrorMatchFailed = "WeightWarningMirrorMatchFailed"
	// WeightWarningSlabMatchFailed はスラブ貼り付け先頂点が見つからない頂点スキップ警告。
	WeightWarningSlabMatchFailed = "WeightWarningSlabMatchFailed"
)

// VertexWarning は一括操作中に発生した頂点単位の非致命条件を表す。
type VertexWarning struct {
	VertexIndex int
	ID          string
}
