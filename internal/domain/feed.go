package domain

// Feed 是整份目录文档的信封：频道描述 + 有序条目。
// 条目顺序 = 目录处理顺序（子目录名字典序，跨平台确定）。
type Feed struct {
	Title       string
	Link        string
	Description string

	Items []Item
}
