// 指示: miu200521358
package whost

import (
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model"
	"gonum.org/v1/gonum/spatial/r3"
)

// ISkinHost はホスト側スキンへの接続契約を表す。
// エンジンはホスト固有の型を一切参照せず、この契約だけを経由する。
// 頂点indexの開始値は ArrayIndexOffset に従い、VertexWeights /
// ApplyVertexWeights のキーへ一貫して適用される。ControlPoints の並びは
// 頂点indexの並びと一致する。
type ISkinHost interface {
	// Name はスキン名を返す。
	Name() string
	// InfluenceNames はインフルエンスindexから表示名への対応を返す。
	InfluenceNames() model.InfluenceNameMap
	// MaxInfluences は1頂点あたりのインフルエンス上限を返す。
	MaxInfluences() int
	// NumControlPoints は頂点数を返す。
	NumControlPoints() int
	// ControlPoints は頂点位置を頂点index順で返す。
	ControlPoints() []r3.Vec
	// VertexWeights は指定頂点のウェイトを返す。index未指定時は全頂点分を返す。
	VertexWeights(vertexIndexes ...int) (map[int]model.WeightMap, error)
	// ApplyVertexWeights は頂点ウェイト更新集合をスキンへ反映する。
	ApplyVertexWeights(weights map[int]model.WeightMap) error
	// ArrayIndexOffset は頂点・点配列のindex開始値(0または1)を返す。
	ArrayIndexOffset() int
}
