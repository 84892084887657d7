package datasource

import (
	"bufio"
	"github.com/packagewjx/kmeans/pkg/core"
	"github.com/pkg/errors"
	"io"
	"math"
	"strconv"
	"strings"
)

// 创建从文本读取数据点的PointSource。每行一个点，坐标以逗号或空白分隔，空行将被跳过
func NewTextSource(reader io.Reader) PointSource {
	return &textSource{reader: bufio.NewReader(reader)}
}

type textSource struct {
	reader *bufio.Reader
	line   int
}

func (t *textSource) Load() (*Record, error) {
	for {
		line, err := t.reader.ReadString(core.LineBreak)
		if line == "" {
			if err == nil {
				continue
			}
			return nil, err
		}
		t.line++

		line = strings.TrimSpace(line)
		if line == "" {
			if err != nil {
				return nil, err
			}
			continue
		}

		point, perr := ParseRecord(line)
		if perr != nil {
			return nil, &core.InputError{Line: t.line, Err: perr}
		}
		return &Record{Line: t.line, Point: point}, nil
	}
}

// ParseRecord 将一行文本解析为数据点。含有逗号时按逗号分割，否则按空白分割
func ParseRecord(line string) (core.Point, error) {
	var tokens []string
	if strings.Contains(line, core.Splitter) {
		tokens = strings.Split(line, core.Splitter)
	} else {
		tokens = strings.Fields(line)
	}

	point := make(core.Point, len(tokens))
	for i, token := range tokens {
		token = strings.TrimSpace(token)
		f, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return nil, errors.Wrapf(core.ErrMalformedToken, "第%d个数据为[%s]", i+1, token)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, errors.Wrapf(core.ErrNonFinite, "第%d个数据为[%s]", i+1, token)
		}
		point[i] = f
	}
	return point, nil
}
