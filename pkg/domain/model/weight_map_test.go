// 指示: miu200521358
package model

import (
	"math"
	"testing"
)

func almostEqual(a float64, b float64) bool {
	return math.Abs(a-b) <= NormalizeTolerance
}

func TestWeightMapCloneIsIndependent(t *testing.T) {
	original := WeightMap{0: 0.6, 1: 0.4}
	cloned := original.Clone()
	cloned[0] = 0.1

	if !almostEqual(original[0], 0.6) {
		t.Fatalf("original mutated: %v", original)
	}
}

func TestWeightMapNormalized(t *testing.T) {
	normalized, err := WeightMap{0: 0.2, 1: 0.2}.Normalized()
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if !almostEqual(normalized[0], 0.5) || !almostEqual(normalized[1], 0.5) {
		t.Fatalf("normalized mismatch: %v", normalized)
	}
	if !almostEqual(normalized.Sum(), 1.0) {
		t.Fatalf("sum mismatch: %v", normalized.Sum())
	}
}

func TestWeightMapNormalizedDropsNonPositive(t *testing.T) {
	normalized, err := WeightMap{0: 0.5, 1: 0.0, 2: -0.25, 3: 0.5}.Normalized()
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if len(normalized) != 2 {
		t.Fatalf("entry count mismatch: %v", normalized)
	}
	if !almostEqual(normalized[0], 0.5) || !almostEqual(normalized[3], 0.5) {
		t.Fatalf("normalized mismatch: %v", normalized)
	}
}

func TestWeightMapNormalizedEmpty(t *testing.T) {
	normalized, err := WeightMap{}.Normalized()
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if len(normalized) != 0 {
		t.Fatalf("expected empty: %v", normalized)
	}
}

func TestWeightMapNormalizedRejectsZeroTotal(t *testing.T) {
	if _, err := (WeightMap{0: 0.0, 1: -1.0}).Normalized(); err == nil {
		t.Fatalf("expected error")
	}
}

func TestWeightMapClampedKeepsLargest(t *testing.T) {
	clamped, err := WeightMap{0: 0.5, 1: 0.3, 2: 0.2}.Clamped(2)
	if err != nil {
		t.Fatalf("clamp failed: %v", err)
	}
	if len(clamped) != 2 {
		t.Fatalf("entry count mismatch: %v", clamped)
	}
	if !almostEqual(clamped[0], 0.625) || !almostEqual(clamped[1], 0.375) {
		t.Fatalf("clamped mismatch: %v", clamped)
	}
}

func TestWeightMapClampedTieDropsLargerIndex(t *testing.T) {
	clamped, err := WeightMap{0: 0.25, 1: 0.25, 2: 0.25, 3: 0.25}.Clamped(2)
	if err != nil {
		t.Fatalf("clamp failed: %v", err)
	}
	if !almostEqual(clamped[0], 0.5) || !almostEqual(clamped[1], 0.5) {
		t.Fatalf("clamped mismatch: %v", clamped)
	}
}

func TestWeightMapClampedZeroLimitSkipsClamp(t *testing.T) {
	clamped, err := WeightMap{0: 0.2, 1: 0.2, 2: 0.2, 3: 0.2, 4: 0.2}.Clamped(0)
	if err != nil {
		t.Fatalf("clamp failed: %v", err)
	}
	if len(clamped) != 5 {
		t.Fatalf("entry count mismatch: %v", clamped)
	}
}

func TestWeightMapLargestIndexPrefersSmallerOnTie(t *testing.T) {
	index, found := WeightMap{2: 0.5, 1: 0.5}.LargestIndex()
	if !found {
		t.Fatalf("expected found")
	}
	if index != 1 {
		t.Fatalf("index mismatch: %d", index)
	}
}

func TestWeightMapLargestIndexEmpty(t *testing.T) {
	if _, found := (WeightMap{}).LargestIndex(); found {
		t.Fatalf("expected not found")
	}
}

func TestWeightMapValidate(t *testing.T) {
	if err := (WeightMap{0: 0.7, 1: 0.3}).Validate(DefaultMaxInfluences); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if err := (WeightMap{}).Validate(DefaultMaxInfluences); err != nil {
		t.Fatalf("empty validate failed: %v", err)
	}
	if err := (WeightMap{0: 0.7, 1: 0.2}).Validate(DefaultMaxInfluences); err == nil {
		t.Fatalf("expected sum error")
	}
	if err := (WeightMap{0: 1.0, 1: -0.1, 2: 0.1}).Validate(DefaultMaxInfluences); err == nil {
		t.Fatalf("expected non-positive error")
	}
	if err := (WeightMap{0: 0.2, 1: 0.2, 2: 0.2, 3: 0.2, 4: 0.2}).Validate(DefaultMaxInfluences); err == nil {
		t.Fatalf("expected count error")
	}
}
