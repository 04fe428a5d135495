// 指示: miu200521358
package winteractor

import (
	"fmt"

	"github.com/miu200521358/mu_skin_weights/pkg/domain/model"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model/merrors"
	"github.com/miu200521358/mu_skin_weights/pkg/usecase/port/whost"
)

// SkinWeightsUsecase はスナップショットの捕捉・適用とコピー&ペースト用
// クリップボードを提供する。クリップボードは単一書き込み前提で、並行アクセス
// 保護は呼び出し側の責務となる。
type SkinWeightsUsecase struct {
	clipboard *model.SkinSnapshot
}

// NewSkinWeightsUsecase はSkinWeightsUsecaseを生成する。
func NewSkinWeightsUsecase() *SkinWeightsUsecase {
	return &SkinWeightsUsecase{}
}

// CreateSnapshot はホストスキンの現在状態からスナップショットを捕捉する。
func CreateSnapshot(host whost.ISkinHost) (*model.SkinSnapshot, error) {
	if host == nil {
		return nil, fmt.Errorf("ホストスキンが未設定です")
	}

	vertexWeights, err := host.VertexWeights()
	if err != nil {
		return nil, fmt.Errorf("頂点ウェイトの取得に失敗しました: %w", err)
	}

	points := host.ControlPoints()
	offset := host.ArrayIndexOffset()
	weights := make([]model.WeightMap, len(points))
	for i := range weights {
		if vertexWeight, exists := vertexWeights[i+offset]; exists {
			weights[i] = vertexWeight.Clone()
		} else {
			weights[i] = model.WeightMap{}
		}
	}

	return model.NewSkinSnapshot(
		host.Name(),
		host.InfluenceNames().Clone(),
		host.MaxInfluences(),
		weights,
		points,
	)
}

// BuildSnapshotInfluenceMap はスナップショットのインフルエンスをホストのid空間へ
// 名前一致で写像する対応表を構築する。
func BuildSnapshotInfluenceMap(snapshot *model.SkinSnapshot, host whost.ISkinHost) (model.InfluenceMap, error) {
	return BuildInfluenceMap(snapshot.Influences, host.InfluenceNames(), nil)
}

// ApplySnapshotWeights はスナップショットのウェイトを頂点index対応のままホスト
// スキンへ適用する。頂点数が一致しない場合は致命エラーとなる。influenceMap が
// nil のときは名前一致で構築する。
func ApplySnapshotWeights(host whost.ISkinHost, snapshot *model.SkinSnapshot, influenceMap model.InfluenceMap) error {
	if err := validateApplyTarget(host, snapshot); err != nil {
		return err
	}
	if snapshot.VertexCount() != host.NumControlPoints() {
		return &merrors.VertexCountMismatchError{Expected: snapshot.VertexCount(), Actual: host.NumControlPoints()}
	}

	resolvedMap, err := resolveInfluenceMap(host, snapshot, influenceMap)
	if err != nil {
		return err
	}

	offset := host.ArrayIndexOffset()
	updates := make(map[int]model.WeightMap, snapshot.VertexCount())
	for vertexIndex, weights := range snapshot.Weights {
		updates[vertexIndex+offset] = RemapWeightMap(weights, resolvedMap)
	}
	return host.ApplyVertexWeights(updates)
}

// ApplySnapshotClosestWeights はスナップショットのウェイトを最近傍点対応でホスト
// スキンへ適用する。頂点数が異なるメッシュ間の転送に用いる。
func ApplySnapshotClosestWeights(host whost.ISkinHost, snapshot *model.SkinSnapshot, influenceMap model.InfluenceMap) error {
	if err := validateApplyTarget(host, snapshot); err != nil {
		return err
	}

	resolvedMap, err := resolveInfluenceMap(host, snapshot, influenceMap)
	if err != nil {
		return err
	}

	transferred, err := ApplyClosestWeights(snapshot.Points, snapshot.Weights, host.ControlPoints(), resolvedMap)
	if err != nil {
		return err
	}

	offset := host.ArrayIndexOffset()
	updates := make(map[int]model.WeightMap, len(transferred))
	for vertexIndex, weights := range transferred {
		updates[vertexIndex+offset] = weights
	}
	return host.ApplyVertexWeights(updates)
}

// CopySkin はホストスキンの現在状態をクリップボードへ複製する。
func (uc *SkinWeightsUsecase) CopySkin(host whost.ISkinHost) error {
	snapshot, err := CreateSnapshot(host)
	if err != nil {
		return err
	}
	clipboard, err := snapshot.Clone()
	if err != nil {
		return err
	}
	uc.clipboard = clipboard
	return nil
}

// PasteSkin はクリップボードのスナップショットを最近傍点対応でホストスキンへ
// 適用する。
func (uc *SkinWeightsUsecase) PasteSkin(host whost.ISkinHost) error {
	if uc.clipboard == nil {
		return fmt.Errorf("クリップボードにスキンがありません")
	}
	return ApplySnapshotClosestWeights(host, uc.clipboard, nil)
}

// HasClipboard はクリップボードにスナップショットが存在するかを返す。
func (uc *SkinWeightsUsecase) HasClipboard() bool {
	return uc.clipboard != nil
}

// validateApplyTarget は適用先ホストとスナップショットの前提を検証する。
func validateApplyTarget(host whost.ISkinHost, snapshot *model.SkinSnapshot) error {
	if host == nil {
		return fmt.Errorf("ホストスキンが未設定です")
	}
	if snapshot == nil {
		return fmt.Errorf("スナップショットが未設定です")
	}
	return snapshot.Validate()
}

// resolveInfluenceMap は指定が無ければ名前一致のインフルエンス対応を構築する。
func resolveInfluenceMap(
	host whost.ISkinHost,
	snapshot *model.SkinSnapshot,
	influenceMap model.InfluenceMap,
) (model.InfluenceMap, error) {
	if influenceMap != nil {
		return influenceMap, nil
	}
	return BuildSnapshotInfluenceMap(snapshot, host)
}
