package dataset

import (
	"github.com/packagewjx/kmeans/internal/datasource"
	"github.com/packagewjx/kmeans/pkg/core"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"math"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	ps, err := Load(datasource.NewTextSource(strings.NewReader("0,0\n0,1\n10,0\n10,1\n")))
	if !assert.NoError(t, err) {
		assert.FailNow(t, "读取失败")
	}
	assert.Equal(t, 4, ps.Len())
	assert.Equal(t, 2, ps.Dim())
	assert.Equal(t, []float64{0, 1}, ps.At(1))
	assert.Equal(t, core.Point{10, 1}, ps.Row(3))

	// 保持读取顺序
	for i, expect := range [][]float64{{0, 0}, {0, 1}, {10, 0}, {10, 1}} {
		assert.Equal(t, expect, ps.At(i))
	}

	/*
		修改Row的返回值不影响PointSet
	*/
	row := ps.Row(0)
	row[0] = 100
	assert.Equal(t, float64(0), ps.At(0)[0])

	/*
		At返回的视图无法通过append越界写入下一个点
	*/
	view := ps.At(0)
	_ = append(view, 42)
	assert.Equal(t, []float64{0, 1}, ps.At(1))
}

func TestLoadHighDimension(t *testing.T) {
	fields := make([]string, 250)
	for i := range fields {
		fields[i] = "1.5"
	}
	line := strings.Join(fields, ",")
	ps, err := Load(datasource.NewTextSource(strings.NewReader(line + "\n" + line + "\n")))
	assert.NoError(t, err)
	assert.Equal(t, 250, ps.Dim())
	assert.Equal(t, 2, ps.Len())
}

func TestLoadErrors(t *testing.T) {
	/*
		维度不一致
	*/
	_, err := Load(datasource.NewTextSource(strings.NewReader("1,2\n3,4\n5,6,7\n")))
	assert.True(t, errors.Is(err, core.ErrDimensionMismatch))
	var inputErr *core.InputError
	if assert.True(t, errors.As(err, &inputErr)) {
		assert.Equal(t, 3, inputErr.Line)
	}

	_, err = Load(datasource.NewTextSource(strings.NewReader("1,2,3\n3,4\n")))
	assert.True(t, errors.Is(err, core.ErrDimensionMismatch))

	/*
		非数字
	*/
	_, err = Load(datasource.NewTextSource(strings.NewReader("1,2\nx,4\n")))
	assert.True(t, errors.Is(err, core.ErrMalformedToken))

	/*
		没有数据
	*/
	_, err = Load(datasource.NewTextSource(strings.NewReader("")))
	assert.True(t, errors.Is(err, core.ErrEmptyPointSet))
	assert.True(t, errors.As(err, &inputErr))
}

func TestFromPoints(t *testing.T) {
	points := []core.Point{{1, 2}, {3, 4}, {5, 6}}
	ps, err := FromPoints(points)
	assert.NoError(t, err)
	assert.Equal(t, 3, ps.Len())
	assert.Equal(t, 2, ps.Dim())

	points[0][0] = 100
	assert.Equal(t, float64(1), ps.At(0)[0])

	_, err = FromPoints([]core.Point{{1, 2}, {3}})
	assert.True(t, errors.Is(err, core.ErrDimensionMismatch))

	/*
		NaN与Inf在构造时就作为输入错误返回
	*/
	_, err = FromPoints([]core.Point{{0, 0}, {1, 1}, {math.NaN(), 2}, {5, 5}})
	assert.True(t, errors.Is(err, core.ErrNonFinite))
	var inputErr *core.InputError
	if assert.True(t, errors.As(err, &inputErr)) {
		assert.Equal(t, 3, inputErr.Line)
	}
	_, err = FromPoints([]core.Point{{0, 0}, {1, math.Inf(-1)}})
	assert.True(t, errors.Is(err, core.ErrNonFinite))

	_, err = FromPoints(nil)
	assert.True(t, errors.Is(err, core.ErrEmptyPointSet))

	_, err = FromPoints([]core.Point{{}})
	assert.True(t, errors.Is(err, core.ErrMalformedToken))
}
