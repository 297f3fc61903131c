package domain

// ProductFolder 描述产品根目录下的一个商品目录（发现后不再变更，处理完即丢弃）。
//
// 不变量（实现必须遵守）：
// - DataFile 要么为空，要么是 clean + absolute 路径
// - Images 只存文件名且已按字典序排序：首图即主图，这个顺序就是契约
type ProductFolder struct {
	Name     string
	DataFile string   // 识别出的数据文件；未找到时为空
	Ignored  []string // 存在多个数据文件时被覆盖的文件名（用于 WARNING）
	Images   []string
}
