// Package logx 管理 run 级日志文件（WARNING/ERROR 的权威落点）。
package logx

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New 打开日志文件并构造写入该文件的 Logger。
//
// 约束：
// - 进程启动时打开一次，run 期间不轮转；每次 run 覆盖上一次的日志（O_TRUNC）
// - 哪些目录/记录被跳过、为何跳过，以这份日志为准（进度 UI 只是辅助通道）
// - 目录级上下文用 folder 字段携带，便于逐目录排查
func New(path string) (*logrus.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, err
	}

	l := logrus.New()
	l.SetOutput(f)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		DisableColors:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l, f, nil
}

// Discard 返回丢弃所有输出的 Logger（日志文件打不开时的兜底，以及测试用）。
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
