package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestZipFile_SingleEntryRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "google_product_feed.xml")
	body := `<?xml version="1.0" encoding="UTF-8"?>` + "\n<rss/>\n"
	if err := os.WriteFile(src, []byte(body), 0o644); err != nil {
		t.Fatalf("写入源文件失败：%v", err)
	}

	dst := filepath.Join(dir, "product_feed.zip")
	if err := ZipFile(src, dst); err != nil {
		t.Fatalf("不期望错误：%v", err)
	}

	zr, err := zip.OpenReader(dst)
	if err != nil {
		t.Fatalf("打开压缩包失败：%v", err)
	}
	defer zr.Close()

	if len(zr.File) != 1 {
		t.Fatalf("期望单条目压缩包，实际 %d 条", len(zr.File))
	}
	f := zr.File[0]
	if f.Name != "google_product_feed.xml" {
		t.Fatalf("条目名应为源文件名（不带目录），实际 %q", f.Name)
	}
	if f.Method != zip.Deflate {
		t.Fatalf("条目应使用 deflate 压缩，实际 method=%d", f.Method)
	}

	rc, err := f.Open()
	if err != nil {
		t.Fatalf("打开条目失败：%v", err)
	}
	defer rc.Close()
	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("读取条目失败：%v", err)
	}
	if string(got) != body {
		t.Fatalf("内容不一致：%q", got)
	}
}

func TestZipFile_MissingSource(t *testing.T) {
	dir := t.TempDir()
	err := ZipFile(filepath.Join(dir, "nope.xml"), filepath.Join(dir, "out.zip"))
	if err == nil {
		t.Fatalf("源文件不存在必须报错")
	}
}

func TestZipFile_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "feed.xml")
	if err := os.WriteFile(src, []byte("v2"), 0o644); err != nil {
		t.Fatalf("写入源文件失败：%v", err)
	}
	dst := filepath.Join(dir, "feed.zip")
	if err := os.WriteFile(dst, []byte("stale"), 0o644); err != nil {
		t.Fatalf("写入旧压缩包失败：%v", err)
	}

	if err := ZipFile(src, dst); err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	zr, err := zip.OpenReader(dst)
	if err != nil {
		t.Fatalf("覆盖后的压缩包应可打开：%v", err)
	}
	defer zr.Close()
	if len(zr.File) != 1 || zr.File[0].Name != "feed.xml" {
		t.Fatalf("覆盖后的压缩包内容不一致：%v", zr.File)
	}
}
