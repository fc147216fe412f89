package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TaxLine 화면 표시용 세금 항목
type TaxLine struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// TaxSummary 0보다 큰 세금 항목만 라벨과 함께 반환
func TaxSummary(tb TaxBreakdown, isInterState bool) []TaxLine {
	lines := make([]TaxLine, 0, 3)
	if !isInterState {
		if tb.CGST > 0 {
			lines = append(lines, TaxLine{Label: "CGST (1.5%)", Amount: tb.CGST})
		}
		if tb.SGST > 0 {
			lines = append(lines, TaxLine{Label: "SGST (1.5%)", Amount: tb.SGST})
		}
	} else if tb.IGST > 0 {
		lines = append(lines, TaxLine{Label: "IGST (3%)", Amount: tb.IGST})
	}
	if tb.Cess > 0 {
		lines = append(lines, TaxLine{Label: "Cess", Amount: tb.Cess})
	}
	return lines
}

// FormatINR 인도식 자릿수 구분(마지막 3자리, 이후 2자리씩)으로 금액 표시
// 예: 123456.7 → "₹1,23,456.70"
func FormatINR(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	fixed := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	return sign + "₹" + groupIndian(intPart) + "." + frac
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}
