package core

import (
	"fmt"
	"github.com/pkg/errors"
)

var ErrEmptyPointSet = fmt.Errorf("没有读取到任何数据点")

var ErrDimensionMismatch = fmt.Errorf("数据点维度不一致")

var ErrMalformedToken = fmt.Errorf("数据不是数字")

var ErrNonFinite = fmt.Errorf("数据不是有限实数")

var ErrInvalidClusters = fmt.Errorf("Invalid number of clusters!")

var ErrInvalidIterations = fmt.Errorf("Invalid maximum iteration!")

var ErrInvalidEpsilon = fmt.Errorf("Invalid epsilon!")

var ErrSizeOverflow = fmt.Errorf("数据规模超出可分配范围")

var ErrNumericOverflow = fmt.Errorf("中心坐标超出float64表示范围")

// 所有非参数错误对用户显示的统一信息
const GenericErrorMessage = "An Error Has Occurred"

// InputError 输入数据有误：非数字、维度不一致或没有数据
type InputError struct {
	Line int // 出错的行号，从1开始。0表示与具体行无关
	Err  error
}

func (e *InputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("第%d行数据有误：%v", e.Line, e.Err)
	}
	return fmt.Sprintf("输入数据有误：%v", e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

func (e *InputError) Cause() error { return e.Err }

// ParameterError 运行参数超出合法范围。Err总是本包中定义的参数错误之一
type ParameterError struct {
	Name  string
	Value interface{}
	Err   error
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%v（%s=%v）", e.Err, e.Name, e.Value)
}

func (e *ParameterError) Unwrap() error { return e.Err }

func (e *ParameterError) Cause() error { return e.Err }

// ResourceError 资源相关的失败，如分配规模溢出、数值溢出、打开输入或写出结果失败
type ResourceError struct {
	Err error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("资源错误：%v", e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

func (e *ResourceError) Cause() error { return e.Err }

// UserMessage 返回命令行中展示给用户的一行错误信息
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var p *ParameterError
	if errors.As(err, &p) {
		return p.Err.Error()
	}
	return GenericErrorMessage
}
