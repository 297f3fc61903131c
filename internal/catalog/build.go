// Package catalog 把已校验的记录映射为目录条目（纯构造，无 I/O、无副作用）。
package catalog

import (
	"strings"

	"github.com/John-Robertt/MFeed/internal/config"
	"github.com/John-Robertt/MFeed/internal/domain"
)

// BuildItem 把一条已通过校验的记录与有序、非空的图片地址列表映射为一个条目。
//
// 映射规则（固定，不做“修复”）：
// - description 复用 name：下游目录系统按此消费，属刻意简化
// - link = LinkBase + sku（sku 作为最后一个路径段）
// - 价格/运费 = 数值 + 单个空格 + 货币代码
// - quantity 走 domain.ParseQuantity 的 parse-or-default：坏值等同 0（缺货），不报错
// - condition：键缺失时取字面量 "new"；键存在但值为空则保持为空（序列化时省略元素）
// - brand/gtin/mpn 仅在非空时透传；空值不产生空元素
func BuildItem(rec domain.Record, imageURLs []string, eff config.EffectiveConfig) domain.Item {
	sku := strings.TrimSpace(rec["sku"])

	it := domain.Item{
		ID:          sku,
		Title:       rec["name"],
		Description: rec["name"],
		Link:        eff.LinkBase + sku,

		Price:         money(rec["price"], eff.Currency),
		ShippingPrice: money(rec["shipping"], eff.Currency),

		ImageURLs: append([]string(nil), imageURLs...),
	}

	if domain.ParseQuantity(rec["quantity"]) > 0 {
		it.Availability = domain.AvailabilityInStock
	} else {
		it.Availability = domain.AvailabilityOutOfStock
	}

	cond, ok := rec["condition"]
	if !ok {
		cond = "new"
	}
	it.Condition = strings.TrimSpace(cond)

	if v := strings.TrimSpace(rec["brand"]); v != "" {
		it.Brand = v
	}
	if v := strings.TrimSpace(rec["gtin"]); v != "" {
		it.GTIN = v
	}
	if v := strings.TrimSpace(rec["mpn"]); v != "" {
		it.MPN = v
	}

	return it
}

// ImageURLs 按“前缀 + 目录名 + '/' + 文件名”构造完整图片地址。
// images 必须已按字典序排序（scan.Classify 的契约）；顺序原样保留。
func ImageURLs(prefix, folder string, images []string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		out = append(out, prefix+folder+"/"+img)
	}
	return out
}

func money(value, currency string) string {
	return strings.TrimSpace(value) + " " + currency
}
