package classify

import (
	"github.com/packagewjx/kmeans/internal/dataset"
	"github.com/packagewjx/kmeans/internal/kmeans"
	"log"
)

// 聚类算法接口
type Algorithm interface {
	Run(points *dataset.PointSet, numClass int, context interface{}) (*kmeans.Result, error)
}

type AlgorithmType string

const (
	KMeans = AlgorithmType("kmeans")
)

func GetAlgorithm(algorithmType AlgorithmType) Algorithm {
	switch algorithmType {
	case KMeans:
		return &kMeansRunner{}
	default:
		return nil
	}
}

type KMeansContext struct {
	MaxIterations int
	Epsilon       float64
	Logger        *log.Logger
}

type kMeansRunner struct {
}

func (k *kMeansRunner) Run(points *dataset.PointSet, numClass int, context interface{}) (*kmeans.Result, error) {
	config := kmeans.Config{K: numClass}

	if context != nil {
		ctx, ok := context.(*KMeansContext)
		if !ok {
			log.Printf("输入的context不是KMeansContext类型。将使用默认参数")
		} else {
			config.MaxIterations = ctx.MaxIterations
			config.Epsilon = ctx.Epsilon
			config.Logger = ctx.Logger
		}
	}

	return kmeans.Cluster(points, config)
}
