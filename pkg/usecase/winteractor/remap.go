// 指示: miu200521358
package winteractor

import (
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model/merrors"
)

// BuildInfluenceMap は取り込み側インフルエンスから適用先インフルエンスへの対応を
// 構築する。名前の完全一致(大文字小文字区別)を優先し、一致しないインフルエンスは
// overrides の明示指定、それも無ければ恒等写像とする。id空間の相違が既知の場合、
// 呼び出し側は完全な overrides を供給すること。エンジンが名前衝突を推測で解決
// することはない。overrides が適用先に存在しないindexを指す場合はエラーとなる。
func BuildInfluenceMap(
	incoming model.InfluenceNameMap,
	destination model.InfluenceNameMap,
	overrides model.InfluenceMap,
) (model.InfluenceMap, error) {
	destinationByName := make(map[string]int, len(destination))
	for index, name := range destination {
		destinationByName[name] = index
	}

	influenceMap := make(model.InfluenceMap, len(incoming))
	for index, name := range incoming {
		if destinationIndex, exists := destinationByName[name]; exists {
			influenceMap[index] = destinationIndex
			continue
		}
		if overrideIndex, exists := overrides[index]; exists {
			if _, valid := destination[overrideIndex]; !valid {
				return nil, &merrors.InvalidInfluenceError{InfluenceIndex: overrideIndex}
			}
			influenceMap[index] = overrideIndex
			continue
		}
		influenceMap[index] = index
	}
	return influenceMap, nil
}

// RemapWeightMap はインフルエンス対応表でindexを写像した新しいWeightMapを返す。
// 複数のインフルエンスが同一の適用先へ写る場合ウェイトは合算される。
func RemapWeightMap(weights model.WeightMap, influenceMap model.InfluenceMap) model.WeightMap {
	out := make(model.WeightMap, len(weights))
	for index, weight := range weights {
		if weight <= 0 {
			continue
		}
		out[influenceMap.Resolve(index)] += weight
	}
	return out
}
