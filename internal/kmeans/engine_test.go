package kmeans

import (
	"bytes"
	"github.com/packagewjx/kmeans/pkg/core"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"log"
	"math"
	"testing"
)

func TestCluster(t *testing.T) {
	/*
		前两个点[0,0]与[0,1]作为初始中心，第一轮后中心移动到[5,0]与[5,1]，之后保持不动
	*/
	ps := mustPoints(t, core.Point{0, 0}, core.Point{0, 1}, core.Point{10, 0}, core.Point{10, 1})
	result, err := Cluster(ps, Config{K: 2, MaxIterations: 10, Epsilon: 0.001})
	assert.NoError(t, err)
	assert.Equal(t, Converged, result.State)
	assert.Equal(t, 2, result.Iterations)
	assert.Equal(t, float64(0), result.MaxShift)
	assert.Equal(t, [][]float64{{5, 0}, {5, 1}}, result.Centroids)
	assert.Equal(t, []int{0, 1, 0, 1}, result.Assignments)
	assert.Equal(t, []int{2, 2}, result.Sizes)

	/*
		[0,0]与[10,0]作为初始中心时，分别收敛到两侧的簇
	*/
	ps = mustPoints(t, core.Point{0, 0}, core.Point{10, 0}, core.Point{0, 1}, core.Point{10, 1})
	result, err = Cluster(ps, Config{K: 2, MaxIterations: 10, Epsilon: 0.001})
	assert.NoError(t, err)
	assert.Equal(t, Converged, result.State)
	assert.Equal(t, [][]float64{{0, 0.5}, {10, 0.5}}, result.Centroids)
	assert.Equal(t, []int{0, 1, 0, 1}, result.Assignments)
}

func TestClusterIdenticalPointsConverge(t *testing.T) {
	ps := mustPoints(t,
		core.Point{1, 1}, core.Point{9, 9},
		core.Point{1, 1}, core.Point{9, 9},
		core.Point{1, 1}, core.Point{9, 9})
	result, err := Cluster(ps, Config{K: 2, MaxIterations: 100, Epsilon: 0.001})
	assert.NoError(t, err)
	assert.Equal(t, Converged, result.State)
	assert.LessOrEqual(t, result.Iterations, 2)
	assert.Equal(t, float64(0), result.MaxShift)
	assert.Equal(t, [][]float64{{1, 1}, {9, 9}}, result.Centroids)
	assert.Equal(t, []int{3, 3}, result.Sizes)
}

func TestEmptyClusterKeepsCoordinates(t *testing.T) {
	/*
		前两个点重合，距离相同时都分配给中心0，中心1在第一轮没有任何点
	*/
	ps := mustPoints(t, core.Point{0, 0}, core.Point{0, 0}, core.Point{4, 4}, core.Point{8, 8})
	engine, err := NewEngine(ps, Config{K: 2, MaxIterations: 10})
	if !assert.NoError(t, err) {
		assert.FailNow(t, "创建引擎失败")
	}
	assert.Equal(t, Iterating, engine.State())

	_, err = engine.Step()
	assert.NoError(t, err)
	result := engine.Result()
	assert.Equal(t, []int{4, 0}, result.Sizes)
	assert.Equal(t, []float64{0, 0}, result.Centroids[1])
	assert.Equal(t, []float64{3, 3}, result.Centroids[0])

	/*
		之后中心1重新获得离它更近的点
	*/
	result, err = engine.Run()
	assert.NoError(t, err)
	assert.Equal(t, Converged, result.State)
	assert.Equal(t, []int{1, 1, 0, 0}, result.Assignments)
	assert.Equal(t, [][]float64{{6, 6}, {0, 0}}, result.Centroids)
}

func TestDeadCentroidStaysFrozen(t *testing.T) {
	// 三个中心初始时完全重合，中心1和中心2在整个运行过程中都不会分配到点
	ps := mustPoints(t, core.Point{2}, core.Point{2}, core.Point{2}, core.Point{2})
	result, err := Cluster(ps, Config{K: 3})
	assert.NoError(t, err)
	assert.Equal(t, Converged, result.State)
	assert.Equal(t, [][]float64{{2}, {2}, {2}}, result.Centroids)
	assert.Equal(t, []int{4, 0, 0}, result.Sizes)
}

func TestConvergedStateIsIdempotent(t *testing.T) {
	ps := mustPoints(t, core.Point{0, 0}, core.Point{10, 0}, core.Point{0, 1}, core.Point{10, 1}, core.Point{0, 2})
	engine, err := NewEngine(ps, Config{K: 2})
	assert.NoError(t, err)
	result, err := engine.Run()
	assert.NoError(t, err)
	assert.Equal(t, Converged, result.State)

	before := engine.Centroids()
	shift, err := engine.Step()
	assert.NoError(t, err)
	assert.Equal(t, float64(0), shift)
	assert.Equal(t, before.Rows(), engine.Centroids().Rows())
	assert.Equal(t, result.Iterations+1, engine.Iterations())
}

func TestExhaustedBudget(t *testing.T) {
	ps := mustPoints(t, core.Point{0, 0}, core.Point{0, 1}, core.Point{10, 0}, core.Point{10, 1})
	result, err := Cluster(ps, Config{K: 2, MaxIterations: 1})
	assert.NoError(t, err)
	assert.Equal(t, ExhaustedBudget, result.State)
	assert.Equal(t, 1, result.Iterations)
	assert.Equal(t, float64(5), result.MaxShift)
	assert.Equal(t, [][]float64{{5, 0}, {5, 1}}, result.Centroids)
}

func TestTinyEpsilonRunsToBudget(t *testing.T) {
	// 中心仍在移动时，极小的epsilon不会提前收敛
	ps := mustPoints(t, core.Point{0, 0}, core.Point{0, 1}, core.Point{10, 0}, core.Point{10, 1})
	result, err := Cluster(ps, Config{K: 2, MaxIterations: 1, Epsilon: math.SmallestNonzeroFloat64})
	assert.NoError(t, err)
	assert.Equal(t, ExhaustedBudget, result.State)

	// 为0时使用默认值
	engine, err := NewEngine(ps, Config{K: 2})
	assert.NoError(t, err)
	assert.Equal(t, core.DefaultEpsilon, engine.config.Epsilon)
}

func TestTerminatesWithinBudget(t *testing.T) {
	points := make([]core.Point, 0, 60)
	for i := 0; i < 60; i++ {
		points = append(points, core.Point{float64(i * i % 17), float64(i * 7 % 23), float64(i % 5)})
	}
	ps := mustPoints(t, points...)
	for _, budget := range []int{1, 2, 3, 7, 50} {
		result, err := Cluster(ps, Config{K: 5, MaxIterations: budget, Epsilon: 1e-12})
		assert.NoError(t, err)
		assert.LessOrEqual(t, result.Iterations, budget)
		assert.True(t, result.State.Terminal())
		assert.Equal(t, 5, len(result.Centroids))
	}
}

func TestDeterministic(t *testing.T) {
	points := make([]core.Point, 0, 40)
	for i := 0; i < 40; i++ {
		points = append(points, core.Point{float64(i%7) * 1.25, float64(i%3) / 3, float64(40 - i)})
	}
	ps := mustPoints(t, points...)

	first, err := Cluster(ps, Config{K: 4})
	assert.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Cluster(ps, Config{K: 4})
		assert.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestMaximumK(t *testing.T) {
	ps := mustPoints(t, core.Point{0}, core.Point{1}, core.Point{5}, core.Point{6}, core.Point{20})
	result, err := Cluster(ps, Config{K: ps.Len() - 1, MaxIterations: 200})
	assert.NoError(t, err)
	assert.Equal(t, 4, len(result.Centroids))
	assert.True(t, result.State.Terminal())
	total := 0
	for _, size := range result.Sizes {
		total += size
	}
	assert.Equal(t, ps.Len(), total)
}

func TestNumericOverflow(t *testing.T) {
	ps := mustPoints(t, core.Point{1e308}, core.Point{1e308}, core.Point{1e308}, core.Point{0})
	_, err := Cluster(ps, Config{K: 2})
	var resourceErr *core.ResourceError
	assert.True(t, errors.As(err, &resourceErr))
	assert.True(t, errors.Is(err, core.ErrNumericOverflow))
}

func TestNewEngineErrors(t *testing.T) {
	_, err := NewEngine(nil, Config{K: 2})
	assert.True(t, errors.Is(err, core.ErrEmptyPointSet))

	ps := mustPoints(t, core.Point{0}, core.Point{1}, core.Point{2})
	_, err = NewEngine(ps, Config{K: 0})
	assert.True(t, errors.Is(err, core.ErrInvalidClusters))
}

func TestEngineLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	ps := mustPoints(t, core.Point{0, 0}, core.Point{0, 1}, core.Point{10, 0}, core.Point{10, 1})
	_, err := Cluster(ps, Config{K: 2, Logger: log.New(buf, "kmeans: ", 0)})
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "kmeans: 第1轮迭代")
	assert.Contains(t, buf.String(), Converged.String())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Initializing", Initializing.String())
	assert.Equal(t, "Iterating", Iterating.String())
	assert.Equal(t, "Converged", Converged.String())
	assert.Equal(t, "ExhaustedBudget", ExhaustedBudget.String())
	assert.Equal(t, "State(9)", State(9).String())
	assert.False(t, Iterating.Terminal())
}
