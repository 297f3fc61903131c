package domain

import "testing"

func TestHasFields_KeyPresenceOnly(t *testing.T) {
	required := DefaultRequiredFields()

	rec := Record{
		"sku": "sku123", "name": "Widget", "price": "9.99",
		"quantity": "3", "shipping": "4.99",
	}
	if !rec.HasFields(required) {
		t.Fatalf("必填键齐全的记录应当可用：%v", rec)
	}

	// 宽松语义：键存在但值为空，依然通过。
	rec["price"] = ""
	if !rec.HasFields(required) {
		t.Fatalf("必填键存在但值为空时必须通过（只看键，不看值）")
	}

	delete(rec, "shipping")
	if rec.HasFields(required) {
		t.Fatalf("缺少必填键 shipping 的记录不应通过")
	}
}

func TestHasFields_EmptyRequiredSet(t *testing.T) {
	if !(Record{}).HasFields(nil) {
		t.Fatalf("空必填集合下任何记录都应通过")
	}
}

func TestParseQuantity_ParseOrDefault(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"5", 5},
		{"0", 0},
		{" 7 ", 7},
		{"-2", -2},
		{"", 0},
		{"abc", 0},
		{"3.5", 0},
	}
	for _, c := range cases {
		if got := ParseQuantity(c.in); got != c.want {
			t.Fatalf("ParseQuantity(%q)：期望 %d，实际 %d", c.in, c.want, got)
		}
	}
}
