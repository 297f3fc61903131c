// Package feed 把装配完成的 Feed 渲染为商品目录 XML 文档。
package feed

import (
	"encoding/xml"

	"github.com/John-Robertt/MFeed/internal/domain"
)

// NamespaceG 是目录条目字段所在的 feed schema 命名空间。
const NamespaceG = "http://base.google.com/ns/1.0"

type rss struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	XMLNSG  string   `xml:"xmlns:g,attr"`
	Channel channel  `xml:"channel"`
}

type channel struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Items       []item `xml:"item"`
}

type item struct {
	ID          string `xml:"g:id"`
	Title       string `xml:"g:title"`
	Description string `xml:"g:description"`
	Link        string `xml:"g:link"`

	Price        string `xml:"g:price"`
	Availability string `xml:"g:availability"`
	Condition    string `xml:"g:condition,omitempty"`

	Brand string `xml:"g:brand,omitempty"`
	GTIN  string `xml:"g:gtin,omitempty"`
	MPN   string `xml:"g:mpn,omitempty"`

	ImageLink            string   `xml:"g:image_link,omitempty"`
	AdditionalImageLinks []string `xml:"g:additional_image_link,omitempty"`

	Shipping shipping `xml:"g:shipping"`
}

type shipping struct {
	Price string `xml:"g:price"`
}

// Encode 把 Feed 渲染为完整的 XML 文档（纯函数，不做任何 I/O；落盘是上层的事）。
//
// 规则：
// - 根元素 rss 携带 version="2.0" 与 xmlns:g 命名空间声明
// - 两空格缩进、UTF-8 声明头；同一 Feed 两次 Encode 的结果逐字节一致
// - 空频道（零条目）也是合法文档
func Encode(f domain.Feed) ([]byte, error) {
	doc := rss{
		Version: "2.0",
		XMLNSG:  NamespaceG,
		Channel: channel{
			Title:       f.Title,
			Link:        f.Link,
			Description: f.Description,
		},
	}
	for i := range f.Items {
		doc.Channel.Items = append(doc.Channel.Items, fromDomain(f.Items[i]))
	}

	b, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(xml.Header)+len(b)+1)
	out = append(out, xml.Header...)
	out = append(out, b...)
	out = append(out, '\n')
	return out, nil
}

func fromDomain(it domain.Item) item {
	x := item{
		ID:          it.ID,
		Title:       it.Title,
		Description: it.Description,
		Link:        it.Link,

		Price:        it.Price,
		Availability: it.Availability,
		Condition:    it.Condition,

		Brand: it.Brand,
		GTIN:  it.GTIN,
		MPN:   it.MPN,

		Shipping: shipping{Price: it.ShippingPrice},
	}
	if len(it.ImageURLs) > 0 {
		x.ImageLink = it.ImageURLs[0]
		x.AdditionalImageLinks = append([]string(nil), it.ImageURLs[1:]...)
	}
	return x
}
