package domain

const (
	AvailabilityInStock    = "in stock"
	AvailabilityOutOfStock = "out of stock"
)

// Item 是映射完成的一条商品条目（构建后只读，交由序列化层独占直至渲染）。
//
// 可选字段（Condition/Brand/GTIN/MPN）为空时不渲染对应元素：
// 宁可省略，也不输出空标签。
type Item struct {
	ID          string
	Title       string
	Description string
	Link        string

	Price        string // "9.99 USD"：数值 + 单个空格 + 货币代码
	Availability string // AvailabilityInStock | AvailabilityOutOfStock
	Condition    string

	Brand string
	GTIN  string
	MPN   string

	// ImageURLs 有序且非空：[0] 是主图，其余按序成为附加图。
	ImageURLs []string

	ShippingPrice string
}
