// Package tabular 把单个商品数据文件（分隔文本或工作簿）解析为统一的记录序列。
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/John-Robertt/MFeed/internal/domain"
)

// Error 表示数据文件无法打开或结构损坏（缺表头、编码错误等）。
// 该错误按目录粒度恢复：跳过所在目录，不终止整个 run。
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("数据文件解析失败：%q：%v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsParseError 判断 err 是否为数据文件解析错误。
func IsParseError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// ReadRecords 把一个数据文件解析为有序的记录序列。
//
// 规则（硬约束）：
// - .csv/.txt：首行是表头；后续每行与表头按位配对成一条记录
// - .xlsx：首行是表头；空单元格补空串，其余值一律取字符串表示
// - 不认识的扩展名返回空序列且不报错：Scanner 的预过滤应当避免这种情况
//
// 文件句柄只在本次读取内持有，解析结束（无论成败）立即释放。
func ReadRecords(path string) ([]domain.Record, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return readDelimited(path)
	case ".xlsx":
		return readWorkbook(path)
	default:
		return nil, nil
	}
}

func readDelimited(path string) ([]domain.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	// 行宽允许参差：短行缺口补空串，长行多余列忽略（配对交给 zipRow）。
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &Error{Path: path, Err: errors.New("缺少表头行")}
		}
		return nil, &Error{Path: path, Err: err}
	}

	out := make([]domain.Record, 0, 16)
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &Error{Path: path, Err: err}
		}
		out = append(out, zipRow(header, row))
	}
	return out, nil
}

func readWorkbook(path string) ([]domain.Record, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	defer wb.Close()

	// 与分隔文本一致：只读活动工作表。
	sheet := wb.GetSheetName(wb.GetActiveSheetIndex())
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	if len(rows) == 0 {
		return nil, &Error{Path: path, Err: errors.New("缺少表头行")}
	}

	header := rows[0]
	out := make([]domain.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		out = append(out, zipRow(header, row))
	}
	return out, nil
}

// zipRow 把一行按表头配对成 Record；行比表头短时缺口补空串。
func zipRow(header, row []string) domain.Record {
	rec := make(domain.Record, len(header))
	for i, key := range header {
		v := ""
		if i < len(row) {
			v = row[i]
		}
		rec[key] = v
	}
	return rec
}
