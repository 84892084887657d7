package kmeans

import (
	"github.com/packagewjx/kmeans/internal/dataset"
	"gonum.org/v1/gonum/floats"
)

// Update 将每个中心更新为分配给它的所有点的坐标平均值，返回每个中心的点数。
// 没有分配到点的中心保持原来的坐标。必须在对所有点完成Assign之后调用
func Update(points *dataset.PointSet, assignments []int, centroids *Centroids) []int {
	counts := make([]int, centroids.Len())
	sums := make([]float64, len(centroids.data))

	for i := 0; i < points.Len(); i++ {
		c := assignments[i]
		counts[c]++
		floats.Add(sums[c*centroids.dim:(c+1)*centroids.dim], points.At(i))
	}

	// 先求和再相除
	for c := 0; c < centroids.Len(); c++ {
		if counts[c] == 0 {
			continue
		}
		center := centroids.At(c)
		sum := sums[c*centroids.dim : (c+1)*centroids.dim]
		for d := range center {
			center[d] = sum[d] / float64(counts[c])
		}
	}

	return counts
}
