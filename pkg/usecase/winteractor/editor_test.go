// 指示: miu200521358
package winteractor

import (
	"errors"
	"math"
	"testing"

	"github.com/miu200521358/mu_skin_weights/pkg/domain/model"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model/merrors"
)

func assertWeights(t *testing.T, got model.WeightMap, want model.WeightMap) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("entry count mismatch: got=%v want=%v", got, want)
	}
	for index, weight := range want {
		if math.Abs(got[index]-weight) > model.NormalizeTolerance {
			t.Fatalf("weight mismatch at %d: got=%v want=%v", index, got, want)
		}
	}
}

func TestSetWeightsToFullDrainsSources(t *testing.T) {
	weights := model.WeightMap{0: 0.2, 1: 0.8}

	edited, degenerate, err := SetWeights(weights, 0, []int{1}, 1.0, 1.0, model.DefaultMaxInfluences)
	if err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if degenerate {
		t.Fatalf("unexpected degenerate")
	}
	assertWeights(t, edited, model.WeightMap{0: 1.0})
	// 入力は変更されない。
	assertWeights(t, weights, model.WeightMap{0: 0.2, 1: 0.8})
}

func TestSetWeightsDecreaseRedistributesProportionally(t *testing.T) {
	weights := model.WeightMap{0: 0.5, 1: 0.3, 2: 0.2}

	edited, degenerate, err := SetWeights(weights, 0, []int{1, 2}, 0.0, 1.0, model.DefaultMaxInfluences)
	if err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if degenerate {
		t.Fatalf("unexpected degenerate")
	}
	assertWeights(t, edited, model.WeightMap{1: 0.6, 2: 0.4})
}

func TestSetWeightsDecreaseToZeroSourcesSplitsEqually(t *testing.T) {
	weights := model.WeightMap{0: 1.0}

	edited, degenerate, err := SetWeights(weights, 0, []int{1, 2}, 0.0, 1.0, model.DefaultMaxInfluences)
	if err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if degenerate {
		t.Fatalf("unexpected degenerate")
	}
	assertWeights(t, edited, model.WeightMap{1: 0.5, 2: 0.5})
}

func TestSetWeightsFalloffInterpolatesTowardTarget(t *testing.T) {
	weights := model.WeightMap{0: 0.2, 1: 0.8}

	// 目標値 = 1.0*0.5 + 0.2*0.5 = 0.6
	edited, _, err := SetWeights(weights, 0, []int{1}, 1.0, 0.5, model.DefaultMaxInfluences)
	if err != nil {
		t.Fatalf("set failed: %v", err)
	}
	assertWeights(t, edited, model.WeightMap{0: 0.6, 1: 0.4})
}

func TestSetWeightsDegenerateLeavesVertexUnchanged(t *testing.T) {
	weights := model.WeightMap{0: 0.5, 2: 0.5}

	edited, degenerate, err := SetWeights(weights, 0, []int{1}, 1.0, 1.0, model.DefaultMaxInfluences)
	if err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if !degenerate {
		t.Fatalf("expected degenerate")
	}
	assertWeights(t, edited, model.WeightMap{0: 0.5, 2: 0.5})
}

func TestSetWeightsRequiresSources(t *testing.T) {
	_, _, err := SetWeights(model.WeightMap{0: 1.0}, 0, []int{0}, 0.5, 1.0, model.DefaultMaxInfluences)
	if err == nil {
		t.Fatalf("expected error")
	}
	var noSources *merrors.NoSourceInfluencesError
	if !errors.As(err, &noSources) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIncrementWeights(t *testing.T) {
	weights := model.WeightMap{0: 0.5, 1: 0.5}

	edited, _, err := IncrementWeights(weights, 0, []int{1}, 0.2, 0.5, model.DefaultMaxInfluences)
	if err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	assertWeights(t, edited, model.WeightMap{0: 0.6, 1: 0.4})
}

func TestIncrementWeightsCapsDrawAtSourceTotal(t *testing.T) {
	weights := model.WeightMap{0: 0.9, 1: 0.1}

	// 増分0.5に対し再配分元は0.1しか持たないため、引き当ては0.1で頭打ちとなる。
	edited, degenerate, err := IncrementWeights(weights, 0, []int{1}, 0.5, 1.0, model.DefaultMaxInfluences)
	if err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	if degenerate {
		t.Fatalf("unexpected degenerate")
	}
	assertWeights(t, edited, model.WeightMap{0: 1.0})
}

func TestScaleWeights(t *testing.T) {
	weights := model.WeightMap{0: 0.4, 1: 0.6}

	edited, _, err := ScaleWeights(weights, 0, []int{1}, 0.5, 1.0, model.DefaultMaxInfluences)
	if err != nil {
		t.Fatalf("scale failed: %v", err)
	}
	assertWeights(t, edited, model.WeightMap{0: 0.6, 1: 0.4})
}

func TestScaleWeightsNegativePercentShrinks(t *testing.T) {
	weights := model.WeightMap{0: 0.4, 1: 0.6}

	edited, _, err := ScaleWeights(weights, 0, []int{1}, -0.5, 1.0, model.DefaultMaxInfluences)
	if err != nil {
		t.Fatalf("scale failed: %v", err)
	}
	assertWeights(t, edited, model.WeightMap{0: 0.2, 1: 0.8})
}

func TestSetWeightsClampDropsSmallestOutsiderFirst(t *testing.T) {
	weights := model.WeightMap{0: 0.4, 1: 0.3, 2: 0.2, 3: 0.1}

	edited, _, err := SetWeights(weights, 0, []int{1}, 0.5, 1.0, 2)
	if err != nil {
		t.Fatalf("set failed: %v", err)
	}
	// 除去された2と3のウェイトは再配分元1へ返る。
	assertWeights(t, edited, model.WeightMap{0: 0.5, 1: 0.5})
}

func TestSetWeightsBatchCollectsDegenerateWarnings(t *testing.T) {
	weightsByVertex := map[int]model.WeightMap{
		0: {0: 0.5, 2: 0.5},
		1: {0: 0.5, 1: 0.5},
	}
	selection := model.NewFullSelection(0, 1)

	result, err := SetWeightsBatch(weightsByVertex, selection, 0, []int{1}, 1.0, model.DefaultMaxInfluences)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if len(result.Updates) != 1 {
		t.Fatalf("update count mismatch: %v", result.Updates)
	}
	assertWeights(t, result.Updates[1], model.WeightMap{0: 1.0})
	if len(result.Warnings) != 1 {
		t.Fatalf("warning count mismatch: %v", result.Warnings)
	}
	if result.Warnings[0].VertexIndex != 0 || result.Warnings[0].ID != model.WeightWarningDegenerateRedistribution {
		t.Fatalf("warning mismatch: %v", result.Warnings[0])
	}
}

func TestIncrementWeightsBatchUsesPerVertexFalloff(t *testing.T) {
	weightsByVertex := map[int]model.WeightMap{
		0: {0: 0.5, 1: 0.5},
		1: {0: 0.5, 1: 0.5},
	}
	selection := model.SoftSelection{0: 1.0, 1: 0.5}

	result, err := IncrementWeightsBatch(weightsByVertex, selection, 0, []int{1}, 0.2, model.DefaultMaxInfluences)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	assertWeights(t, result.Updates[0], model.WeightMap{0: 0.7, 1: 0.3})
	assertWeights(t, result.Updates[1], model.WeightMap{0: 0.6, 1: 0.4})
}

func TestScaleWeightsBatch(t *testing.T) {
	weightsByVertex := map[int]model.WeightMap{
		0: {0: 0.4, 1: 0.6},
	}
	selection := model.NewFullSelection(0)

	result, err := ScaleWeightsBatch(weightsByVertex, selection, 0, []int{1}, 0.5, model.DefaultMaxInfluences)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	assertWeights(t, result.Updates[0], model.WeightMap{0: 0.6, 1: 0.4})
}

func TestFilterSourcesRemovesTargetAndDuplicates(t *testing.T) {
	sources := filterSources(0, []int{2, 0, 1, 2, 1})
	if len(sources) != 2 || sources[0] != 1 || sources[1] != 2 {
		t.Fatalf("sources mismatch: %v", sources)
	}
}
