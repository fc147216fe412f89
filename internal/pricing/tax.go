package pricing

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidTaxInput = errors.New("invalid tax input")

// 귀금속 GST 세율 (%)
var (
	bullionGSTPercent = decimal.NewFromInt(3)
	makingGSTPercent  = decimal.NewFromInt(18)
	cessPercent       = decimal.Zero
	hundred           = decimal.NewFromInt(100)
	two               = decimal.NewFromInt(2)
)

// TaxRates 현재 적용 세율
type TaxRates struct {
	GST              float64 `json:"gst"`
	MakingChargesTax float64 `json:"making_charges_tax"`
	CGST             float64 `json:"cgst"`
	SGST             float64 `json:"sgst"`
	IGST             float64 `json:"igst"`
	Cess             float64 `json:"cess"`
	LastUpdated      string  `json:"last_updated"`
}

// CurrentTaxRates 현재 세율 조회. LastUpdated는 now 기준 날짜
func CurrentTaxRates(now time.Time) TaxRates {
	gst := bullionGSTPercent.InexactFloat64()
	return TaxRates{
		GST:              gst,
		MakingChargesTax: makingGSTPercent.InexactFloat64(),
		CGST:             gst / 2,
		SGST:             gst / 2,
		IGST:             gst,
		Cess:             cessPercent.InexactFloat64(),
		LastUpdated:      now.Format("2006-01-02"),
	}
}

// TaxBreakdown 세금 내역. 각 항목은 정확한 값에서 개별적으로
// 소수 둘째 자리까지 반올림된다.
type TaxBreakdown struct {
	Subtotal      float64 `json:"subtotal"`
	CGST          float64 `json:"cgst"`
	SGST          float64 `json:"sgst"`
	IGST          float64 `json:"igst"`
	TotalGST      float64 `json:"total_gst"`
	Cess          float64 `json:"cess"`
	TotalTax      float64 `json:"total_tax"`
	GrandTotal    float64 `json:"grand_total"`
	TaxableAmount float64 `json:"taxable_amount"`
}

// CalculateTax 금속 가액 3%, 공임 18% GST 계산.
// 주 간 거래는 IGST, 주 내 거래는 CGST/SGST 반반
func CalculateTax(subtotal, makingCharges float64, isInterState bool) (TaxBreakdown, error) {
	if subtotal < 0 || makingCharges < 0 || makingCharges > subtotal {
		return TaxBreakdown{}, ErrInvalidTaxInput
	}

	sub := decimal.NewFromFloat(subtotal)
	making := decimal.NewFromFloat(makingCharges)

	goldValue := sub.Sub(making)
	goldGST := goldValue.Mul(bullionGSTPercent).Div(hundred)
	makingGST := making.Mul(makingGSTPercent).Div(hundred)
	gst := goldGST.Add(makingGST)

	cgst, sgst, igst := decimal.Zero, decimal.Zero, decimal.Zero
	if isInterState {
		igst = gst
	} else {
		cgst = gst.Div(two)
		sgst = gst.Div(two)
	}

	totalGST := cgst.Add(sgst).Add(igst)
	cess := sub.Mul(cessPercent).Div(hundred)
	totalTax := totalGST.Add(cess)
	grandTotal := sub.Add(totalTax)

	return TaxBreakdown{
		Subtotal:      subtotal,
		CGST:          round2(cgst),
		SGST:          round2(sgst),
		IGST:          round2(igst),
		TotalGST:      round2(totalGST),
		Cess:          round2(cess),
		TotalTax:      round2(totalTax),
		GrandTotal:    round2(grandTotal),
		TaxableAmount: subtotal,
	}, nil
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
