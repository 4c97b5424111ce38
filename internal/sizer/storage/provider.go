package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Source.Open when the named catalog file does not exist.
var ErrNotFound = errors.New("catalog file not found")

// Source 定义了目录文件 (CSV) 的通用读取接口
type Source interface {
	// Open 打开名为 name 的文件, 调用方负责关闭
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// String 用于日志, 描述数据来源
	String() string
}
