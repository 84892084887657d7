package kmeans

import "github.com/packagewjx/kmeans/internal/dataset"

// Nearest 返回距离point最近的中心下标及距离。距离相同时取下标最小的中心
func Nearest(point []float64, centroids *Centroids) (int, float64) {
	nearest := 0
	minDist := Distance(point, centroids.At(0))
	for i := 1; i < centroids.Len(); i++ {
		dist := Distance(point, centroids.At(i))
		// 只有严格更小时才更新
		if dist < minDist {
			minDist = dist
			nearest = i
		}
	}
	return nearest, minDist
}

// Assign 为每个点重新计算最近的中心，结果写入assignments，返回分配发生变化的点的数量
func Assign(points *dataset.PointSet, centroids *Centroids, assignments []int) int {
	changed := 0
	for i := 0; i < points.Len(); i++ {
		nearest, _ := Nearest(points.At(i), centroids)
		if assignments[i] != nearest {
			assignments[i] = nearest
			changed++
		}
	}
	return changed
}
