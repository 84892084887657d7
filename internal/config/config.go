package config

import (
	"encoding/json"
	"fmt"
	"github.com/packagewjx/kmeans/internal/datasource"
	"github.com/packagewjx/kmeans/pkg/core"
	"github.com/spf13/viper"
	"math"
)

// 配置项名称，同时也是命令行参数名称
const (
	KeyMaxIterations   = "maxIterations"
	KeyEpsilon         = "epsilon"
	KeyOutputPrecision = "outputPrecision"
	KeyInput           = "input"
	KeyOutput          = "output"
	KeyMetricsFile     = "metricsFile"
	KeyVerbose         = "verbose"
)

// 环境变量前缀，例如KMEANS_EPSILON
const EnvPrefix = "KMEANS"

type Config struct {
	K               int     // 类别数量，应满足1 < K < 数据点数量
	MaxIterations   int     // 最大迭代次数，应满足1 < MaxIterations < 1000
	Epsilon         float64 // 收敛阈值
	OutputPrecision int     // 输出坐标的小数位数
	Input           string  // 输入文件。为"-"时读取标准输入
	Output          string  // 输出文件。为"-"时写到标准输出
	MetricsFile     string  // 若不为空，运行结束后将指标写入此文件
	Verbose         bool
}

func (c Config) String() string {
	marshal, _ := json.Marshal(c)
	return string(marshal)
}

// Default 返回默认配置，K需要由调用方指定
func Default() *Config {
	return &Config{
		MaxIterations:   core.DefaultMaxIterations,
		Epsilon:         core.DefaultEpsilon,
		OutputPrecision: core.DefaultOutputPrecision,
		Input:           datasource.StdStream,
		Output:          datasource.StdStream,
	}
}

// FromViper 从viper中读取除K以外的所有配置
func FromViper(v *viper.Viper, k int) *Config {
	return &Config{
		K:               k,
		MaxIterations:   v.GetInt(KeyMaxIterations),
		Epsilon:         v.GetFloat64(KeyEpsilon),
		OutputPrecision: v.GetInt(KeyOutputPrecision),
		Input:           v.GetString(KeyInput),
		Output:          v.GetString(KeyOutput),
		MetricsFile:     v.GetString(KeyMetricsFile),
		Verbose:         v.GetBool(KeyVerbose),
	}
}

// SetDefaults 在viper中注册默认值
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyMaxIterations, d.MaxIterations)
	v.SetDefault(KeyEpsilon, d.Epsilon)
	v.SetDefault(KeyOutputPrecision, d.OutputPrecision)
	v.SetDefault(KeyInput, d.Input)
	v.SetDefault(KeyOutput, d.Output)
}

// Complete 检查在读取数据之前就能确定的参数，并补全输入输出
func (c *Config) Complete() error {
	if c.MaxIterations <= core.MinMaxIterations || c.MaxIterations >= core.MaxMaxIterations {
		return &core.ParameterError{Name: KeyMaxIterations, Value: c.MaxIterations, Err: core.ErrInvalidIterations}
	}

	if c.Epsilon <= 0 || math.IsNaN(c.Epsilon) || math.IsInf(c.Epsilon, 0) {
		return &core.ParameterError{Name: KeyEpsilon, Value: c.Epsilon, Err: core.ErrInvalidEpsilon}
	}

	if c.OutputPrecision < 0 {
		return &core.ParameterError{
			Name:  KeyOutputPrecision,
			Value: c.OutputPrecision,
			Err:   fmt.Errorf("输出精度不能为负数"),
		}
	}

	if c.Input == "" {
		c.Input = datasource.StdStream
	}
	if c.Output == "" {
		c.Output = datasource.StdStream
	}
	return nil
}

// CheckClusters 读取数据后检查K是否满足1 < K < numPoints
func (c *Config) CheckClusters(numPoints int) error {
	if c.K <= 1 || c.K >= numPoints {
		return &core.ParameterError{Name: "K", Value: c.K, Err: core.ErrInvalidClusters}
	}
	return nil
}
