package kmeans

import "gonum.org/v1/gonum/floats"

// Distance 计算两个等长向量之间的欧氏距离
func Distance(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}
