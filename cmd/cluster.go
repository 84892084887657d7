/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"github.com/packagewjx/kmeans/internal/classify"
	"github.com/packagewjx/kmeans/internal/config"
	"github.com/packagewjx/kmeans/internal/datasource"
	"github.com/packagewjx/kmeans/internal/dataset"
	"github.com/packagewjx/kmeans/internal/kmeans"
	"github.com/packagewjx/kmeans/internal/obs"
	"github.com/packagewjx/kmeans/internal/utils"
	"github.com/packagewjx/kmeans/pkg/core"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"io"
	"log"
	"os"
	"regexp"
	"strconv"
	"time"
)

// Flags
const (
	InputFlag           = config.KeyInput
	OutputFlag          = config.KeyOutput
	EpsilonFlag         = config.KeyEpsilon
	OutputPrecisionFlag = config.KeyOutputPrecision
	MetricsFileFlag     = config.KeyMetricsFile
	VerboseFlag         = config.KeyVerbose
)

const logFlags = log.LstdFlags | log.Lmsgprefix

var (
	input           string
	output          string
	epsilon         float64
	outputPrecision int
	metricsFile     string
	verbose         bool
)

var numberPattern = regexp.MustCompile("^\\d+$")

// clusterCmd represents the cluster command
var clusterCmd = &cobra.Command{
	Use:   "cluster K [maxIterations]",
	Short: "读取数据点聚类计算，并输出K个中心",
	Long: "K必须满足1 < K < 数据点数量，maxIterations必须满足1 < maxIterations < 1000，默认为200。\n" +
		"输出K行，每行一个中心，坐标之间以逗号分隔。",
	Args:    cobra.RangeArgs(1, 2),
	PreRunE: checkClusterArgs,
	RunE:    runClusterCmd,
}

func init() {
	rootCmd.AddCommand(clusterCmd)
	addClusterFlags(clusterCmd)
}

func addClusterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&input, InputFlag, "i", datasource.StdStream,
		"输入文件，为-时读取标准输入。以.gz、.zst、.lz4结尾时自动解压")
	cmd.Flags().StringVarP(&output, OutputFlag, "o", datasource.StdStream,
		"输出文件，为-时输出到标准输出")
	cmd.Flags().Float64VarP(&epsilon, EpsilonFlag, "e", core.DefaultEpsilon,
		"收敛阈值，所有中心的移动距离都小于此值时停止迭代")
	cmd.Flags().IntVarP(&outputPrecision, OutputPrecisionFlag, "p", core.DefaultOutputPrecision,
		"输出数据精度，默认为4")
	cmd.Flags().StringVar(&metricsFile, MetricsFileFlag, "",
		"运行结束后将Prometheus指标写入此文件")
	cmd.Flags().BoolVarP(&verbose, VerboseFlag, "v", false,
		"输出每一轮迭代的日志")
}

func checkClusterArgs(cmd *cobra.Command, args []string) error {
	if !numberPattern.MatchString(args[0]) {
		return &core.ParameterError{Name: "K", Value: args[0], Err: core.ErrInvalidClusters}
	}
	if len(args) > 1 && !numberPattern.MatchString(args[1]) {
		return &core.ParameterError{Name: config.KeyMaxIterations, Value: args[1], Err: core.ErrInvalidIterations}
	}

	// 根命令与cluster子命令拥有同名参数，因此在运行时绑定实际使用的参数
	return errors.Wrap(viper.BindPFlags(cmd.Flags()), "绑定参数出错")
}

func runClusterCmd(cmd *cobra.Command, args []string) error {
	v := viper.GetViper()
	config.SetDefaults(v)

	k, err := strconv.Atoi(args[0])
	if err != nil {
		return &core.ParameterError{Name: "K", Value: args[0], Err: core.ErrInvalidClusters}
	}
	cfg := config.FromViper(v, k)
	if len(args) > 1 {
		cfg.MaxIterations, err = strconv.Atoi(args[1])
		if err != nil {
			return &core.ParameterError{Name: config.KeyMaxIterations, Value: args[1], Err: core.ErrInvalidIterations}
		}
	}

	return runCluster(cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// runCluster 执行一次完整的聚类：检查参数，读取数据，运行K-Means并输出中心。
// in与out在cfg.Input与cfg.Output为"-"时使用
func runCluster(cfg *config.Config, in io.Reader, out io.Writer, errOut io.Writer) (err error) {
	logger := log.New(errOut, "kmeans: ", logFlags)
	metrics := obs.NewMetrics()
	defer func() {
		if err != nil {
			metrics.ObserveError(err)
		}
		if cfg.MetricsFile == "" {
			return
		}
		if writeErr := metrics.WriteToFile(cfg.MetricsFile); writeErr != nil {
			if err == nil {
				err = writeErr
			} else {
				logger.Println("写入指标文件失败", writeErr)
			}
		}
	}()

	if err = cfg.Complete(); err != nil {
		return err
	}
	logger.Println("使用配置", cfg)

	logger.Println("读取数据中")
	points, read, err := loadPoints(cfg.Input, in)
	if err != nil {
		return errors.Wrap(err, "读取错误")
	}
	logger.Printf("读取数据完成，共%d个点，维度为%d，读取%d字节\n", points.Len(), points.Dim(), read)

	if err = cfg.CheckClusters(points.Len()); err != nil {
		return err
	}

	context := &classify.KMeansContext{
		MaxIterations: cfg.MaxIterations,
		Epsilon:       cfg.Epsilon,
	}
	if cfg.Verbose {
		context.Logger = log.New(errOut, "kmeans-engine: ", logFlags)
	}

	logger.Println("运行K-Means算法中")
	start := time.Now()
	result, err := classify.GetAlgorithm(classify.KMeans).Run(points, cfg.K, context)
	if err != nil {
		return errors.Wrap(err, "运行K-Means算法出错")
	}
	metrics.ObserveResult(points.Len(), result, time.Since(start))
	logResult(logger, result)

	written, err := writeResult(cfg, result.Centroids, out)
	if err != nil {
		return errors.Wrap(err, "输出结果错误")
	}
	logger.Printf("输出完成，共%d字节\n", written)
	return nil
}

func loadPoints(name string, in io.Reader) (*dataset.PointSet, uint64, error) {
	var reader io.Reader
	if name == datasource.StdStream {
		reader = in
	} else {
		rc, err := datasource.Open(name)
		if err != nil {
			return nil, 0, err
		}
		defer func() {
			_ = rc.Close()
		}()
		reader = rc
	}

	counter := &utils.ReadCounter{Reader: reader}
	points, err := dataset.Load(datasource.NewTextSource(counter))
	if err != nil {
		return nil, counter.Count, err
	}
	return points, counter.Count, nil
}

// writeResult 只在聚类成功后才创建输出文件
func writeResult(cfg *config.Config, centers [][]float64, out io.Writer) (uint64, error) {
	if cfg.Output != datasource.StdStream {
		fout, err := os.Create(cfg.Output)
		if err != nil {
			return 0, &core.ResourceError{Err: errors.Wrap(err, "创建输出文件错误")}
		}
		defer func() {
			_ = fout.Close()
		}()
		out = fout
	}

	counter := &utils.WriterCounter{Writer: out}
	err := classify.OutputResult(centers, counter, cfg.OutputPrecision)
	return counter.Count, err
}

func logResult(logger *log.Logger, result *kmeans.Result) {
	switch result.State {
	case kmeans.Converged:
		logger.Printf("运行K-Means算法完成，迭代%d轮后收敛\n", result.Iterations)
	default:
		logger.Printf("运行K-Means算法完成，达到最大迭代次数%d，最后一轮最大移动距离为%g\n",
			result.Iterations, result.MaxShift)
	}
	logger.Printf("各类点数：%v\n", result.Sizes)
}
