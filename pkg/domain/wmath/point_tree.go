// 指示: miu200521358
package wmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// PointTree は3D点群への最近傍問い合わせindexを表す。
// 一括操作あたり1回構築し、以後は読み取り専用で共有する。
type PointTree struct {
	tree   *kdtree.Tree
	points []indexedPoint
}

// indexedPoint は挿入順indexを保持するkd-tree要素を表す。
type indexedPoint struct {
	pos   r3.Vec
	index int
}

// Compare は指定次元での座標差を返す。
func (p *indexedPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(*indexedPoint)
	switch d {
	case 0:
		return p.pos.X - q.pos.X
	case 1:
		return p.pos.Y - q.pos.Y
	default:
		return p.pos.Z - q.pos.Z
	}
}

// Dims は次元数を返す。
func (p *indexedPoint) Dims() int { return 3 }

// Distance は2点間の距離の二乗を返す。
func (p *indexedPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(*indexedPoint)
	return r3.Norm2(r3.Sub(p.pos, q.pos))
}

// pointSet はkdtree.Interfaceを実装する点群を表す。
type pointSet []indexedPoint

// Index はi番目の要素を返す。
func (s pointSet) Index(i int) kdtree.Comparable { return &s[i] }

// Len は要素数を返す。
func (s pointSet) Len() int { return len(s) }

// Pivot は指定次元の中央値で点群を分割する。
func (s pointSet) Pivot(d kdtree.Dim) int {
	p := pointPlane{dim: d, points: s}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// Slice は半開区間の部分点群を返す。
func (s pointSet) Slice(start int, end int) kdtree.Interface { return s[start:end] }

// pointPlane はkdtree.SortSlicerを実装する分割面を表す。
type pointPlane struct {
	dim    kdtree.Dim
	points pointSet
}

// Less は分割次元での大小を返す。
func (p pointPlane) Less(i int, j int) bool {
	return p.points[i].Compare(&p.points[j], p.dim) < 0
}

// Swap は2要素を入れ替える。
func (p pointPlane) Swap(i int, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}

// Len は要素数を返す。
func (p pointPlane) Len() int { return len(p.points) }

// Slice は半開区間の部分分割面を返す。
func (p pointPlane) Slice(start int, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}

// NewPointTree は点群から最近傍indexを構築する。index は与えられたスライス上の
// 位置(挿入順)で保持される。空の点群では問い合わせが常に失敗する。
func NewPointTree(points []r3.Vec) *PointTree {
	indexed := make(pointSet, len(points))
	for i, pos := range points {
		indexed[i] = indexedPoint{pos: pos, index: i}
	}
	if len(indexed) == 0 {
		return &PointTree{}
	}
	return &PointTree{
		tree:   kdtree.New(indexed, true),
		points: indexed,
	}
}

// Len は登録点数を返す。
func (t *PointTree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.points)
}

// Nearest は問い合わせ点に最も近い点のindexと距離を返す。
// 距離が完全に一致する候補が複数ある場合は挿入順で最小のindexを採用する。
func (t *PointTree) Nearest(q r3.Vec) (int, float64, bool) {
	if t == nil || t.tree == nil || len(t.points) == 0 {
		return -1, 0, false
	}

	query := indexedPoint{pos: q, index: -1}
	nearest, dist2 := t.tree.Nearest(&query)
	if nearest == nil {
		return -1, 0, false
	}

	bestIndex := nearest.(*indexedPoint).index
	keeper := kdtree.NewDistKeeper(dist2)
	t.tree.NearestSet(keeper, &query)
	for _, candidate := range keeper.Heap {
		if candidate.Comparable == nil {
			continue
		}
		point := candidate.Comparable.(*indexedPoint)
		if candidate.Dist <= dist2 && point.index < bestIndex {
			bestIndex = point.index
		}
	}
	return bestIndex, math.Sqrt(dist2), true
}
