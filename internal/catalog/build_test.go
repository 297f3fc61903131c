package catalog

import (
	"testing"

	"github.com/John-Robertt/MFeed/internal/config"
	"github.com/John-Robertt/MFeed/internal/domain"
)

func testConfig() config.EffectiveConfig {
	return config.EffectiveConfig{
		ImageURLPrefix: "https://yourdomain.com/images/",
		LinkBase:       "https://yourdomain.com/product/",
		Currency:       "USD",
	}
}

func TestBuildItem_FieldMapping(t *testing.T) {
	rec := domain.Record{
		"sku": "sku123", "name": "Widget", "price": "9.99",
		"quantity": "3", "shipping": "4.99",
		"brand": "Acme", "gtin": "0123456789012", "mpn": "W-1",
	}
	urls := []string{
		"https://yourdomain.com/images/sku123/a.jpg",
		"https://yourdomain.com/images/sku123/b.jpg",
	}

	it := BuildItem(rec, urls, testConfig())

	if it.ID != "sku123" || it.Title != "Widget" {
		t.Fatalf("id/title 不一致：%+v", it)
	}
	// description 刻意复用 name。
	if it.Description != "Widget" {
		t.Fatalf("description 应复用 name，实际 %q", it.Description)
	}
	if it.Link != "https://yourdomain.com/product/sku123" {
		t.Fatalf("link 不一致：%q", it.Link)
	}
	if it.Price != "9.99 USD" || it.ShippingPrice != "4.99 USD" {
		t.Fatalf("价格格式不一致：%q %q", it.Price, it.ShippingPrice)
	}
	if it.Availability != domain.AvailabilityInStock {
		t.Fatalf("quantity=3 应为 in stock，实际 %q", it.Availability)
	}
	if it.Brand != "Acme" || it.GTIN != "0123456789012" || it.MPN != "W-1" {
		t.Fatalf("可选字段透传不一致：%+v", it)
	}
	if len(it.ImageURLs) != 2 || it.ImageURLs[0] != urls[0] {
		t.Fatalf("图片顺序必须原样保留：%v", it.ImageURLs)
	}
}

func TestBuildItem_AvailabilityMapping(t *testing.T) {
	cases := []struct {
		quantity string
		want     string
	}{
		{"5", domain.AvailabilityInStock},
		{"0", domain.AvailabilityOutOfStock},
		{"", domain.AvailabilityOutOfStock},
		{"abc", domain.AvailabilityOutOfStock}, // 坏值等同 0：不报错
	}
	for _, c := range cases {
		rec := domain.Record{"sku": "s", "name": "n", "price": "1", "shipping": "1"}
		if c.quantity != "" {
			rec["quantity"] = c.quantity
		}
		it := BuildItem(rec, []string{"https://x/i.jpg"}, testConfig())
		if it.Availability != c.want {
			t.Fatalf("quantity=%q：期望 %q，实际 %q", c.quantity, c.want, it.Availability)
		}
	}
}

func TestBuildItem_ConditionDefault(t *testing.T) {
	cfg := testConfig()
	base := domain.Record{"sku": "s", "name": "n", "price": "1", "quantity": "1", "shipping": "1"}

	// 键缺失：默认 "new"。
	it := BuildItem(base, []string{"https://x/i.jpg"}, cfg)
	if it.Condition != "new" {
		t.Fatalf("condition 缺失应默认 new，实际 %q", it.Condition)
	}

	// 键存在但值为空：保持为空（序列化时整个元素省略）。
	rec := domain.Record{"sku": "s", "name": "n", "price": "1", "quantity": "1", "shipping": "1", "condition": ""}
	it = BuildItem(rec, []string{"https://x/i.jpg"}, cfg)
	if it.Condition != "" {
		t.Fatalf("condition 为空串时不应回退到 new，实际 %q", it.Condition)
	}

	rec["condition"] = "refurbished"
	it = BuildItem(rec, []string{"https://x/i.jpg"}, cfg)
	if it.Condition != "refurbished" {
		t.Fatalf("condition 应透传，实际 %q", it.Condition)
	}
}

func TestBuildItem_OptionalFieldsOmitted(t *testing.T) {
	rec := domain.Record{"sku": "s", "name": "n", "price": "1", "quantity": "1", "shipping": "1", "brand": "  "}
	it := BuildItem(rec, []string{"https://x/i.jpg"}, testConfig())
	if it.Brand != "" || it.GTIN != "" || it.MPN != "" {
		t.Fatalf("缺失/空白的可选字段不应透传：%+v", it)
	}
}

func TestImageURLs(t *testing.T) {
	got := ImageURLs("https://cdn.example.com/img/", "sku123", []string{"a.jpg", "b.jpg"})
	want := []string{
		"https://cdn.example.com/img/sku123/a.jpg",
		"https://cdn.example.com/img/sku123/b.jpg",
	}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("图片地址拼接不一致：%v", got)
	}
}
