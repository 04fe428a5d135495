// 指示: miu200521358
package model

// Influence はスキンに作用するジョイント(インフルエンス)を表す。
// index はスキン内で一意だが、メッシュやセッションをまたいで安定ではない。
type Influence struct {
	Index int
	Name  string
}

// InfluenceNameMap はインフルエンスindexから表示名への対応を表す。
type InfluenceNameMap map[int]string

// Clone はInfluenceNameMapの複製を返す。
func (m InfluenceNameMap) Clone() InfluenceNameMap {
	out := make(InfluenceNameMap, len(m))
	for index, name := range m {
		out[index] = name
	}
	return out
}

// InfluenceMap は取り込み側indexから適用先indexへの対応を表す。
// 取り込み/転送操作ごとに構築し、使い捨てる。
type InfluenceMap map[int]int

// Resolve は適用先indexを返す。未登録のindexは恒等写像として扱う。
func (m InfluenceMap) Resolve(index int) int {
	if mapped, exists := m[index]; exists {
		return mapped
	}
	return index
}

// SymmetryMap は左右対称ペアのインフルエンスindex対応を表す。
type SymmetryMap map[int]int

// Resolve は対称相手のindexを返す。相手が無いインフルエンスは自身へ写す。
func (m SymmetryMap) Resolve(index int) int {
	if mapped, exists := m[index]; exists {
		return mapped
	}
	return index
}
