package kmeans

import "gonum.org/v1/gonum/floats"

// MaxShift 计算所有中心在两次迭代之间移动距离的最大值
func MaxShift(previous, current *Centroids) float64 {
	shifts := make([]float64, current.Len())
	for i := range shifts {
		shifts[i] = Distance(previous.At(i), current.At(i))
	}
	return floats.Max(shifts)
}

// HasConverged 判断最大移动距离是否严格小于epsilon
func HasConverged(maxShift, epsilon float64) bool {
	return maxShift < epsilon
}
