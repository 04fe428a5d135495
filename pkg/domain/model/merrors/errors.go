// 指示: miu200521358
package merrors

import "fmt"

// InvalidInfluenceError はスキンに存在せず解決もできないインフルエンス参照を表す。
type InvalidInfluenceError struct {
	InfluenceIndex int
}

// Error はエラーメッセージを返す。
func (e *InvalidInfluenceError) Error() string {
	return fmt.Sprintf("インフルエンスindexを解決できません: %d", e.InfluenceIndex)
}

// NoSourceInfluencesError は再配分元インフルエンス未指定での再配分要求を表す。
type NoSourceInfluencesError struct{}

// Error はエラーメッセージを返す。
func (e *NoSourceInfluencesError) Error() string {
	return "再配分元インフルエンスが指定されていません"
}

// VertexCountMismatchError はスナップショットと適用先スキンの頂点数不一致を表す。
type VertexCountMismatchError struct {
	Expected int
	Actual   int
}

// Error はエラーメッセージを返す。
func (e *VertexCountMismatchError) Error() string {
	return fmt.Sprintf("頂点数が一致しません: 期待=%d 実際=%d", e.Expected, e.Actual)
}
