// Package scan 负责发现商品目录并对目录内文件做扩展名分类。
package scan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/John-Robertt/MFeed/internal/domain"
)

// ScanFolders 返回 root 的直接子目录名；非目录条目一律忽略。
//
// 顺序固定为名字字典序（os.ReadDir 已排序）：目录处理顺序即条目输出顺序，
// 跨平台必须确定，不依赖文件系统的枚举行为。
func ScanFolders(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Classify 把一个商品目录内的文件分类为数据文件与图片。
//
// 规则（硬约束）：
// - 扩展名判定大小写不敏感；目录内的子目录忽略
// - 数据文件最多取一个（.csv/.txt/.xlsx）；出现多个时取字典序最后一个，
//   其余文件名记录到 Ignored，由上层发 WARNING
// - 图片只收 .jpg，且按字典序排序：首图即主图，这个顺序就是契约
func Classify(root, folder string) (domain.ProductFolder, error) {
	dir := filepath.Join(root, folder)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return domain.ProductFolder{}, err
	}

	pf := domain.ProductFolder{Name: folder}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		switch strings.ToLower(filepath.Ext(name)) {
		case ".csv", ".txt", ".xlsx":
			if pf.DataFile != "" {
				pf.Ignored = append(pf.Ignored, filepath.Base(pf.DataFile))
			}
			pf.DataFile = filepath.Join(dir, name)
		case ".jpg":
			pf.Images = append(pf.Images, name)
		}
	}

	sort.Strings(pf.Images)
	return pf, nil
}
