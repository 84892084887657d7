package classify

import (
	"bytes"
	"encoding/csv"
	"github.com/packagewjx/kmeans/pkg/core"
	"github.com/pkg/errors"
	"io"
	"strconv"
)

// OutputResult 将中心按下标顺序输出，每行一个中心，坐标以逗号分隔并保留precision位小数。
// 全部内容格式化完成后才一次性写出，失败时不会产生部分输出
func OutputResult(centers [][]float64, output io.Writer, precision int) error {
	buf, err := FormatResult(centers, precision)
	if err != nil {
		return err
	}

	n, err := output.Write(buf)
	if err != nil {
		return &core.ResourceError{Err: errors.Wrap(err, "写入数据错误")}
	}
	if n != len(buf) {
		return &core.ResourceError{Err: errors.Wrap(io.ErrShortWrite, "输出不足")}
	}
	return nil
}

// FormatResult 将中心格式化为CSV文本
func FormatResult(centers [][]float64, precision int) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	for _, center := range centers {
		record := make([]string, len(center))
		for i, f := range center {
			record[i] = strconv.FormatFloat(f, 'f', precision, 64)
		}
		err := writer.Write(record)
		if err != nil {
			return nil, errors.Wrap(err, "格式化数据错误")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, errors.Wrap(err, "格式化数据错误")
	}
	return buf.Bytes(), nil
}
