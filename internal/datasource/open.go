package datasource

import (
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/packagewjx/kmeans/pkg/core"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
)

// 表示标准输入或标准输出的文件名
const StdStream = "-"

type Compression string

const (
	CompressionNone = Compression("")
	CompressionGzip = Compression("gzip")
	CompressionZstd = Compression("zstd")
	CompressionLZ4  = Compression("lz4")
)

// 根据文件扩展名判断压缩格式
func CompressionOf(name string) Compression {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz", ".gzip":
		return CompressionGzip
	case ".zst", ".zstd":
		return CompressionZstd
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// Open 打开数据文件。name为StdStream时读取标准输入，压缩文件会被透明解压
func Open(name string) (io.ReadCloser, error) {
	if name == "" || name == StdStream {
		return ioutil.NopCloser(os.Stdin), nil
	}

	fin, err := os.Open(name)
	if err != nil {
		return nil, &core.ResourceError{Err: errors.Wrap(err, "打开输入文件错误")}
	}

	rc, err := Decompress(fin, CompressionOf(name))
	if err != nil {
		_ = fin.Close()
		return nil, &core.ResourceError{Err: errors.Wrapf(err, "解压文件%s错误", name)}
	}
	return rc, nil
}

// Decompress 按照指定压缩格式包装reader。关闭返回值时会同时关闭原reader
func Decompress(rc io.ReadCloser, compression Compression) (io.ReadCloser, error) {
	switch compression {
	case CompressionGzip:
		zr, err := gzip.NewReader(rc)
		if err != nil {
			return nil, errors.Wrap(err, "读取gzip头部错误")
		}
		return &chainCloser{Reader: zr, closers: []io.Closer{zr, rc}}, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(rc)
		if err != nil {
			return nil, errors.Wrap(err, "创建zstd解码器错误")
		}
		return &chainCloser{Reader: dec, closers: []io.Closer{dec.IOReadCloser(), rc}}, nil
	case CompressionLZ4:
		return &chainCloser{Reader: lz4.NewReader(rc), closers: []io.Closer{rc}}, nil
	default:
		return rc, nil
	}
}

type chainCloser struct {
	io.Reader
	closers []io.Closer
}

func (c *chainCloser) Close() error {
	var first error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
