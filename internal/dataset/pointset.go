// Package dataset 保存读取后的数据点集合。
//
// 所有点按读取顺序连续存放在一个[]float64中，维度由第一条记录决定。
package dataset

import (
	"github.com/packagewjx/kmeans/internal/datasource"
	"github.com/packagewjx/kmeans/pkg/core"
	"github.com/pkg/errors"
	"io"
	"math"
)

// PointSet 读取后不可变的数据点集合
type PointSet struct {
	dim  int
	n    int
	data []float64 // 行优先存放，长度为n*dim
}

// Load 从source中读取全部数据点。维度与第一条记录不一致、数据不是有限的数字或没有数据时返回InputError
func Load(source datasource.PointSource) (*PointSet, error) {
	ps := &PointSet{data: make([]float64, 0, 64)}

	var r *datasource.Record
	var err error
	for r, err = source.Load(); err == nil; r, err = source.Load() {
		if ps.n == 0 {
			if len(r.Point) == 0 {
				return nil, &core.InputError{Line: r.Line, Err: core.ErrMalformedToken}
			}
			ps.dim = len(r.Point)
		} else if len(r.Point) != ps.dim {
			return nil, &core.InputError{
				Line: r.Line,
				Err:  errors.Wrapf(core.ErrDimensionMismatch, "应为%d维，实际为%d维", ps.dim, len(r.Point)),
			}
		}
		for i, f := range r.Point {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, &core.InputError{
					Line: r.Line,
					Err:  errors.Wrapf(core.ErrNonFinite, "第%d个数据为%v", i+1, f),
				}
			}
		}
		if ps.n+1 > math.MaxInt/ps.dim {
			return nil, &core.ResourceError{Err: errors.Wrapf(core.ErrSizeOverflow, "第%d行", r.Line)}
		}
		ps.data = append(ps.data, r.Point...)
		ps.n++
	}

	if err != io.EOF {
		return nil, errors.Wrap(err, "读取数据点出错")
	}
	if ps.n == 0 {
		return nil, &core.InputError{Err: core.ErrEmptyPointSet}
	}

	return ps, nil
}

// FromPoints 使用已经解析好的数据点构造PointSet，校验规则与Load相同
func FromPoints(points []core.Point) (*PointSet, error) {
	records := make([]*datasource.Record, len(points))
	for i, p := range points {
		records[i] = &datasource.Record{Line: i + 1, Point: p}
	}
	return Load(&sliceSource{records: records})
}

type sliceSource struct {
	records []*datasource.Record
	next    int
}

func (s *sliceSource) Load() (*datasource.Record, error) {
	if s.next >= len(s.records) {
		return nil, io.EOF
	}
	r := s.records[s.next]
	s.next++
	return r, nil
}

func (p *PointSet) Len() int { return p.n }

func (p *PointSet) Dim() int { return p.dim }

// At 返回第i个点的只读视图，调用方不能修改返回的切片
func (p *PointSet) At(i int) []float64 {
	return p.data[i*p.dim : (i+1)*p.dim : (i+1)*p.dim]
}

// Row 返回第i个点的拷贝
func (p *PointSet) Row(i int) core.Point {
	row := make(core.Point, p.dim)
	copy(row, p.At(i))
	return row
}
