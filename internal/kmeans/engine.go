// Package kmeans 实现确定性的Lloyd K-Means聚类。
//
// 引擎使用前K个点初始化中心，之后重复执行 分配 -> 更新 -> 计算最大移动距离，
// 直到最大移动距离严格小于epsilon或迭代次数达到上限。引擎不持有任何包级状态，
// 不同的Engine可以在不同goroutine中同时运行。
package kmeans

import (
	"fmt"
	"github.com/packagewjx/kmeans/internal/dataset"
	"github.com/packagewjx/kmeans/pkg/core"
	"github.com/pkg/errors"
	"io/ioutil"
	"log"
	"math"
)

type State int

const (
	Initializing State = iota
	Iterating
	Converged
	ExhaustedBudget
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "Initializing"
	case Iterating:
		return "Iterating"
	case Converged:
		return "Converged"
	case ExhaustedBudget:
		return "ExhaustedBudget"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal 是否为结束状态
func (s State) Terminal() bool {
	return s == Converged || s == ExhaustedBudget
}

type Config struct {
	K             int
	MaxIterations int         // 为0时使用core.DefaultMaxIterations
	Epsilon       float64     // 为0时使用core.DefaultEpsilon。需要跑满迭代次数时使用极小的正数，移动距离为0时总是收敛
	Logger        *log.Logger // 为nil时不输出日志
}

// Complete 填充默认值并检查参数。K的上限由调用方负责检查
func (c *Config) Complete() error {
	if c.K < 1 {
		return &core.ParameterError{Name: "K", Value: c.K, Err: core.ErrInvalidClusters}
	}

	if c.MaxIterations == 0 {
		c.MaxIterations = core.DefaultMaxIterations
	} else if c.MaxIterations < 0 {
		return &core.ParameterError{Name: "maxIterations", Value: c.MaxIterations, Err: core.ErrInvalidIterations}
	}

	if c.Epsilon == 0 {
		c.Epsilon = core.DefaultEpsilon
	} else if c.Epsilon < 0 || math.IsNaN(c.Epsilon) || math.IsInf(c.Epsilon, 0) {
		return &core.ParameterError{Name: "epsilon", Value: c.Epsilon, Err: core.ErrInvalidEpsilon}
	}

	if c.Logger == nil {
		c.Logger = log.New(ioutil.Discard, "", 0)
	}
	return nil
}

type Result struct {
	Centroids   [][]float64
	Assignments []int // 最后一轮迭代中每个点所属的中心下标
	Sizes       []int // 最后一轮迭代中每个中心的点数
	Iterations  int
	MaxShift    float64
	State       State
}

type Engine struct {
	config      Config
	points      *dataset.PointSet
	centroids   *Centroids
	previous    *Centroids
	assignments []int
	sizes       []int
	iterations  int
	maxShift    float64
	state       State
}

// NewEngine 检查参数并初始化中心，返回的Engine处于Iterating状态
func NewEngine(points *dataset.PointSet, config Config) (*Engine, error) {
	if points == nil || points.Len() == 0 {
		return nil, &core.InputError{Err: core.ErrEmptyPointSet}
	}
	if err := config.Complete(); err != nil {
		return nil, err
	}

	e := &Engine{
		config: config,
		points: points,
		state:  Initializing,
	}

	centroids, err := Initialize(points, config.K)
	if err != nil {
		return nil, errors.Wrap(err, "初始化中心出错")
	}
	e.centroids = centroids
	e.previous = centroids.Clone()
	e.assignments = make([]int, points.Len())
	for i := range e.assignments {
		e.assignments[i] = -1
	}
	e.maxShift = math.Inf(1)

	config.Logger.Printf("使用前%d个点初始化中心，共%d个点，维度为%d\n", config.K, points.Len(), points.Dim())
	e.state = Iterating
	return e, nil
}

// Step 执行一轮完整的 分配 -> 更新 -> 计算移动距离，返回本轮的最大移动距离。
// Step不检查结束条件，在结束状态下调用也会执行一轮迭代
func (e *Engine) Step() (float64, error) {
	e.previous.CopyFrom(e.centroids)

	changed := Assign(e.points, e.centroids, e.assignments)
	e.sizes = Update(e.points, e.assignments, e.centroids)
	e.maxShift = MaxShift(e.previous, e.centroids)
	e.iterations++

	if !e.centroids.finite() {
		return e.maxShift, &core.ResourceError{
			Err: errors.Wrapf(core.ErrNumericOverflow, "第%d轮迭代", e.iterations),
		}
	}

	e.config.Logger.Printf("第%d轮迭代：%d个点改变分配，最大移动距离为%g\n", e.iterations, changed, e.maxShift)
	return e.maxShift, nil
}

// Run 迭代直到收敛或达到迭代次数上限
func (e *Engine) Run() (*Result, error) {
	for !e.state.Terminal() {
		shift, err := e.Step()
		if err != nil {
			return nil, err
		}

		if HasConverged(shift, e.config.Epsilon) {
			e.state = Converged
		} else if e.iterations >= e.config.MaxIterations {
			e.state = ExhaustedBudget
		}
	}

	e.config.Logger.Printf("迭代结束，状态为%s，共迭代%d轮\n", e.state, e.iterations)
	return e.Result(), nil
}

// Result 返回当前中心及统计信息的拷贝
func (e *Engine) Result() *Result {
	assignments := make([]int, len(e.assignments))
	copy(assignments, e.assignments)
	sizes := make([]int, len(e.sizes))
	copy(sizes, e.sizes)

	return &Result{
		Centroids:   e.centroids.Rows(),
		Assignments: assignments,
		Sizes:       sizes,
		Iterations:  e.iterations,
		MaxShift:    e.maxShift,
		State:       e.state,
	}
}

func (e *Engine) State() State { return e.state }

func (e *Engine) Iterations() int { return e.iterations }

// Centroids 返回当前中心的拷贝
func (e *Engine) Centroids() *Centroids { return e.centroids.Clone() }

// Cluster 使用config对points执行一次完整的K-Means聚类
func Cluster(points *dataset.PointSet, config Config) (*Result, error) {
	engine, err := NewEngine(points, config)
	if err != nil {
		return nil, err
	}
	return engine.Run()
}
