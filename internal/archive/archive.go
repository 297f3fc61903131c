// Package archive 把渲染完成的 feed 文档打包为单条目压缩包。
package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
)

// ZipFile 把 src 压缩为单条目 zip 写入 dst；条目名取 src 的文件名（不带目录）。
// dst 已存在则覆盖。纯副作用步骤：失败不影响已生成的 feed 文档。
func ZipFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	zw := zip.NewWriter(out)
	w, err := zw.Create(filepath.Base(src))
	if err != nil {
		return err
	}
	if _, err = io.Copy(w, in); err != nil {
		return err
	}
	return zw.Close()
}
