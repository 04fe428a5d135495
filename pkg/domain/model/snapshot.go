// 指示: miu200521358
package model

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"
	"gonum.org/v1/gonum/spatial/r3"
)

// SkinSnapshot はスキンウェイト状態の独立した捕捉を表す。
// Weights と Points は0始まりの頂点index順で並ぶ。ホストのindex開始値への
// 変換は適用側(usecase)が行う。
type SkinSnapshot struct {
	Name          string
	Influences    InfluenceNameMap
	MaxInfluences int
	Weights       []WeightMap
	Points        []r3.Vec
}

// NewSkinSnapshot は検証済みのSkinSnapshotを生成する。
func NewSkinSnapshot(
	name string,
	influences InfluenceNameMap,
	maxInfluences int,
	weights []WeightMap,
	points []r3.Vec,
) (*SkinSnapshot, error) {
	snapshot := &SkinSnapshot{
		Name:          name,
		Influences:    influences,
		MaxInfluences: maxInfluences,
		Weights:       weights,
		Points:        points,
	}
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// VertexCount はスナップショットが保持する頂点数を返す。
func (s *SkinSnapshot) VertexCount() int {
	return len(s.Points)
}

// Validate はスナップショット全体の不変条件を検証する。
func (s *SkinSnapshot) Validate() error {
	if s == nil {
		return fmt.Errorf("スナップショットが未設定です")
	}
	if s.MaxInfluences < 0 {
		return fmt.Errorf("インフルエンス上限が負数です: %d", s.MaxInfluences)
	}
	if len(s.Weights) != len(s.Points) {
		return fmt.Errorf("ウェイト数と頂点数が一致しません: weights=%d points=%d", len(s.Weights), len(s.Points))
	}
	for vertexIndex, weights := range s.Weights {
		if err := weights.Validate(s.MaxInfluences); err != nil {
			return fmt.Errorf("頂点%dのウェイトが不正です: %w", vertexIndex, err)
		}
		for _, influenceIndex := range weights.Indexes() {
			if _, exists := s.Influences[influenceIndex]; !exists {
				return fmt.Errorf("頂点%dが未登録インフルエンスを参照しています: %d", vertexIndex, influenceIndex)
			}
		}
	}
	return nil
}

// Clone はスナップショットの深い複製を返す。
func (s *SkinSnapshot) Clone() (*SkinSnapshot, error) {
	out := &SkinSnapshot{}
	if err := deepcopy.Copy(out, s); err != nil {
		return nil, fmt.Errorf("スナップショットの複製に失敗しました: %w", err)
	}
	return out, nil
}
