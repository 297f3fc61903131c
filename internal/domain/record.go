package domain

import (
	"strconv"
	"strings"
)

// Record 是数据文件的一行：表头字段名 -> 字符串值。
// 键由源文件的表头行决定；除必填子集外不约定固定 schema。
type Record map[string]string

// DefaultRequiredFields 返回构建一条目录条目所需的最小键集合。
func DefaultRequiredFields() []string {
	return []string{"sku", "name", "price", "quantity", "shipping"}
}

// HasFields 判断记录是否“可用”：required 中的每个键都出现在 r 的键集合里。
//
// 注意（刻意保留的宽松语义）：只看键是否存在，不看值是否为空。
// 必填键存在但值为空串的记录依然通过；空值的后果由字段映射层承担。
func (r Record) HasFields(required []string) bool {
	for _, key := range required {
		if _, ok := r[key]; !ok {
			return false
		}
	}
	return true
}

// ParseQuantity 把库存数量字符串解析为 int。
//
// 这是显式的 parse-or-default：值缺失、为空或不是整数时一律返回 0（按缺货处理），
// 不报错。坏输入等同缺货是产品契约，调用方不要再做二次判断。
func ParseQuantity(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
