package kmeans

import (
	"github.com/packagewjx/kmeans/internal/dataset"
	"github.com/packagewjx/kmeans/pkg/core"
	"github.com/pkg/errors"
	"math"
)

// Centroids 保存K个D维聚类中心。中心的下标在整个迭代过程中保持不变
type Centroids struct {
	k    int
	dim  int
	data []float64
}

// Initialize 按读取顺序使用前k个点作为初始中心。点不够时重复使用最后一个点
func Initialize(points *dataset.PointSet, k int) (*Centroids, error) {
	if k < 1 {
		return nil, &core.ParameterError{Name: "K", Value: k, Err: core.ErrInvalidClusters}
	}
	c, err := newCentroids(k, points.Dim())
	if err != nil {
		return nil, err
	}

	src := 0
	for i := 0; i < k; i++ {
		copy(c.At(i), points.At(src))
		if src+1 < points.Len() {
			src++
		}
	}
	return c, nil
}

func newCentroids(k, dim int) (*Centroids, error) {
	if k > math.MaxInt/dim {
		return nil, &core.ResourceError{Err: errors.Wrapf(core.ErrSizeOverflow, "K=%d，维度=%d", k, dim)}
	}
	return &Centroids{k: k, dim: dim, data: make([]float64, k*dim)}, nil
}

func (c *Centroids) Len() int { return c.k }

func (c *Centroids) Dim() int { return c.dim }

// At 返回第i个中心，修改返回值会直接修改中心
func (c *Centroids) At(i int) []float64 {
	return c.data[i*c.dim : (i+1)*c.dim : (i+1)*c.dim]
}

func (c *Centroids) Clone() *Centroids {
	data := make([]float64, len(c.data))
	copy(data, c.data)
	return &Centroids{k: c.k, dim: c.dim, data: data}
}

// CopyFrom 将other的坐标复制到c中，两者的K和维度必须一致
func (c *Centroids) CopyFrom(other *Centroids) {
	if c.k != other.k || c.dim != other.dim {
		panic("kmeans: 中心的数量或维度不一致")
	}
	copy(c.data, other.data)
}

// Rows 返回所有中心坐标的拷贝
func (c *Centroids) Rows() [][]float64 {
	rows := make([][]float64, c.k)
	for i := range rows {
		rows[i] = make([]float64, c.dim)
		copy(rows[i], c.At(i))
	}
	return rows
}

func (c *Centroids) finite() bool {
	for _, f := range c.data {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
