// 指示: miu200521358
package io_snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/miu200521358/mu_skin_weights/pkg/domain/model"
	"gonum.org/v1/gonum/spatial/r3"
)

// snapshotDocument はスナップショットの永続化表現を表す。
// 保存形式に整数キーのマップが無いため、インフルエンスindexと頂点indexは
// 文字列へ符号化する。読み込み時の整数復元は必須の往復手順となる。
type snapshotDocument struct {
	Name          string                        `json:"name"`
	Influences    map[string]string             `json:"influences"`
	MaxInfluences int                           `json:"maxInfluences"`
	Weights       map[string]map[string]float64 `json:"weights"`
	Points        [][3]float64                  `json:"points"`
}

// SnapshotRepository はスナップショットファイルの読み書き契約を表す。
type SnapshotRepository struct {
	logger *slog.Logger
}

// NewSnapshotRepository はSnapshotRepositoryを生成する。既定ではログを出力しない。
func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// SetLogger は読み書きのログ出力先を設定する。nilでログ出力を無効化する。
func (r *SnapshotRepository) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r.logger = logger
}

// CanLoad は拡張子に応じて読み込み可否を判定する。
func (r *SnapshotRepository) CanLoad(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// InferName はパスから表示名を推定する。
func (r *SnapshotRepository) InferName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load はスナップショットファイルを読み込んで検証する。
// 文書の破損と頂点数不整合はこの呼び出しの致命エラーとなる。
func (r *SnapshotRepository) Load(path string) (*model.SkinSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("スナップショットの読み込みに失敗しました: %w", err)
	}

	var document snapshotDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("スナップショット文書の解析に失敗しました: %w", err)
	}

	snapshot, err := decodeDocument(&document)
	if err != nil {
		return nil, err
	}
	r.logger.Info("スキンウェイトを読み込みました", "path", path, "vertices", snapshot.VertexCount())
	return snapshot, nil
}

// Save はスナップショットを検証してファイルへ書き出す。
func (r *SnapshotRepository) Save(path string, snapshot *model.SkinSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("保存対象スナップショットが未設定です")
	}
	if err := snapshot.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(encodeDocument(snapshot), "", "    ")
	if err != nil {
		return fmt.Errorf("スナップショット文書の生成に失敗しました: %w", err)
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("出力先ディレクトリの作成に失敗しました: %w", err)
		}
	}
	r.logger.Info("スキンウェイトを書き出します", "path", path, "vertices", snapshot.VertexCount())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("スナップショットの書き出しに失敗しました: %w", err)
	}
	return nil
}

// encodeDocument はスナップショットを永続化表現へ変換する。
func encodeDocument(snapshot *model.SkinSnapshot) *snapshotDocument {
	document := &snapshotDocument{
		Name:          snapshot.Name,
		Influences:    make(map[string]string, len(snapshot.Influences)),
		MaxInfluences: snapshot.MaxInfluences,
		Weights:       make(map[string]map[string]float64, len(snapshot.Weights)),
		Points:        make([][3]float64, len(snapshot.Points)),
	}
	for influenceIndex, name := range snapshot.Influences {
		document.Influences[strconv.Itoa(influenceIndex)] = name
	}
	for vertexIndex, weights := range snapshot.Weights {
		if len(weights) == 0 {
			continue
		}
		encoded := make(map[string]float64, len(weights))
		for influenceIndex, weight := range weights {
			encoded[strconv.Itoa(influenceIndex)] = weight
		}
		document.Weights[strconv.Itoa(vertexIndex)] = encoded
	}
	for vertexIndex, point := range snapshot.Points {
		document.Points[vertexIndex] = [3]float64{point.X, point.Y, point.Z}
	}
	return document
}

// decodeDocument は永続化表現からスナップショットを復元する。
func decodeDocument(document *snapshotDocument) (*model.SkinSnapshot, error) {
	influences := make(model.InfluenceNameMap, len(document.Influences))
	for key, name := range document.Influences {
		influenceIndex, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("インフルエンスキーを整数へ復元できません: %q", key)
		}
		influences[influenceIndex] = name
	}

	points := make([]r3.Vec, len(document.Points))
	for vertexIndex, point := range document.Points {
		points[vertexIndex] = r3.Vec{X: point[0], Y: point[1], Z: point[2]}
	}

	weights := make([]model.WeightMap, len(points))
	for i := range weights {
		weights[i] = model.WeightMap{}
	}
	for key, encoded := range document.Weights {
		vertexIndex, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("頂点キーを整数へ復元できません: %q", key)
		}
		if vertexIndex < 0 || vertexIndex >= len(weights) {
			return nil, fmt.Errorf("頂点キーが点群の範囲外です: %d", vertexIndex)
		}
		decoded := make(model.WeightMap, len(encoded))
		for influenceKey, weight := range encoded {
			influenceIndex, err := strconv.Atoi(influenceKey)
			if err != nil {
				return nil, fmt.Errorf("インフルエンスキーを整数へ復元できません: %q", influenceKey)
			}
			decoded[influenceIndex] = weight
		}
		weights[vertexIndex] = decoded
	}

	return model.NewSkinSnapshot(document.Name, influences, document.MaxInfluences, weights, points)
}
