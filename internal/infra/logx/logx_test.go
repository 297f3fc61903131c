package logx

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_WritesToFileWithFolderContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")

	logger, closer, err := New(path)
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}

	logger.WithField("folder", "sku123").Warn("缺少数据文件或图片，跳过该目录")
	logger.WithField("folder", "bad").Error("处理失败")
	if err := closer.Close(); err != nil {
		t.Fatalf("关闭日志文件失败：%v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取日志失败：%v", err)
	}
	s := string(b)
	if !strings.Contains(s, "level=warning") || !strings.Contains(s, "folder=sku123") {
		t.Fatalf("WARNING 应带 folder 上下文：\n%s", s)
	}
	if !strings.Contains(s, "level=error") || !strings.Contains(s, "folder=bad") {
		t.Fatalf("ERROR 应带 folder 上下文：\n%s", s)
	}
}

func TestNew_TruncatesPreviousRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	if err := os.WriteFile(path, []byte("stale stale stale\n"), 0o644); err != nil {
		t.Fatalf("写入旧日志失败：%v", err)
	}

	_, closer, err := New(path)
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	_ = closer.Close()

	b, _ := os.ReadFile(path)
	if strings.Contains(string(b), "stale") {
		t.Fatalf("每次 run 应覆盖上一次日志：%q", b)
	}
}

func TestNew_UnwritablePath(t *testing.T) {
	if _, _, err := New(filepath.Join(t.TempDir(), "no", "such", "dir", "log.txt")); err == nil {
		t.Fatalf("日志文件打不开必须报错")
	}
}
