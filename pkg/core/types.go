package core

// Point 是一个D维的坐标向量，所有点的维度在读取第一条记录时确定
type Point []float64

const (
	DefaultMaxIterations = 200
	DefaultEpsilon       = 0.001
	// 输出坐标保留的小数位数
	DefaultOutputPrecision = 4
)

// max_iterations的合法范围为开区间(MinMaxIterations, MaxMaxIterations)
const (
	MinMaxIterations = 1
	MaxMaxIterations = 1000
)

const LineBreak = '\n'

const Splitter = ","
