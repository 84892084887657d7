package datasource

import "github.com/packagewjx/kmeans/pkg/core"

type PointSource interface {
	// 读取一条数据点记录。若读取完毕，则error设置为io.EOF。error为其他时表示读取出错
	Load() (*Record, error)
}

type Record struct {
	Line  int // 记录所在行号，从1开始
	Point core.Point
}
