package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jrbgold/jrb-backend/internal/app/model"
	"github.com/jrbgold/jrb-backend/internal/app/repository"
	"github.com/jrbgold/jrb-backend/internal/pricing"
	"github.com/jrbgold/jrb-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

const (
	PriceListContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	priceListKeyPrefix   = "price-lists"

	productsSheet = "Products"
	ratesSheet    = "Rates"
)

var (
	ErrPriceListUnavailable = errors.New("price list storage is not configured")
)

// ObjectStore 가격표 업로드 대상 (S3)
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, body []byte) (string, error)
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// PublishedPriceList 업로드된 가격표 정보
type PublishedPriceList struct {
	Key         string    `json:"key"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
	AsOf        time.Time `json:"as_of"`
}

type PriceListService interface {
	Export() ([]byte, error)
	Publish(ctx context.Context) (*PublishedPriceList, error)
}

type priceListService struct {
	productRepo repository.ProductRepository
	rates       RateSnapshotSource
	store       ObjectStore
	linkExpiry  time.Duration
	now         func() time.Time
}

// NewPriceListService store가 nil이면 Publish는 ErrPriceListUnavailable을 반환한다
func NewPriceListService(
	productRepo repository.ProductRepository,
	rates RateSnapshotSource,
	store ObjectStore,
	linkExpiry time.Duration,
) PriceListService {
	return &priceListService{
		productRepo: productRepo,
		rates:       rates,
		store:       store,
		linkExpiry:  linkExpiry,
		now:         time.Now,
	}
}

func (s *priceListService) build() ([]byte, pricing.MetalRateSnapshot, error) {
	products, err := s.productRepo.FindWithFilter(repository.ProductFilter{})
	if err != nil {
		logger.Error("Failed to load products for price list", err)
		return nil, pricing.MetalRateSnapshot{}, err
	}

	snap := s.rates.Snapshot()
	data, err := BuildPriceListWorkbook(priceAll(products, snap), snap)
	if err != nil {
		logger.Error("Failed to build price list workbook", err)
		return nil, snap, err
	}
	return data, snap, nil
}

func (s *priceListService) Export() ([]byte, error) {
	data, _, err := s.build()
	return data, err
}

// Publish 가격표를 업로드하고 만료 시간이 있는 다운로드 링크를 반환
func (s *priceListService) Publish(ctx context.Context) (*PublishedPriceList, error) {
	if s.store == nil {
		return nil, ErrPriceListUnavailable
	}

	data, snap, err := s.build()
	if err != nil {
		return nil, err
	}

	now := s.now()
	key := fmt.Sprintf("%s/%s/%s.xlsx", priceListKeyPrefix, now.UTC().Format("2006-01-02"), uuid.NewString())
	if _, err := s.store.Upload(ctx, key, PriceListContentType, data); err != nil {
		return nil, err
	}

	url, err := s.store.PresignGet(ctx, key, s.linkExpiry)
	if err != nil {
		logger.Error("Failed to presign price list", err, map[string]interface{}{
			"key": key,
		})
		return nil, err
	}

	logger.Info("Price list published", map[string]interface{}{
		"key":   key,
		"bytes": len(data),
	})
	return &PublishedPriceList{
		Key:         key,
		DownloadURL: url,
		ExpiresAt:   now.Add(s.linkExpiry),
		AsOf:        snap.AsOf(),
	}, nil
}

// BuildPriceListWorkbook 상품 시트와 시세 시트로 된 xlsx를 만든다
func BuildPriceListWorkbook(products []model.PricedProduct, snap pricing.MetalRateSnapshot) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", productsSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(ratesSheet); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, err
	}

	headers := []string{"Product", "Category", "Metal", "Tier", "Weight (g)", "Making %", "Rate/g (INR)", "Rate Source", "Price (INR)", "Compare At (INR)"}
	if err := writeRow(f, productsSheet, 1, toCells(headers)); err != nil {
		return nil, err
	}
	for i, p := range products {
		var compareAt interface{} = ""
		if p.CompareAtPrice != nil {
			compareAt = *p.CompareAtPrice
		}
		metal, tier := string(p.Pricing.Metal), p.Pricing.Tier
		if p.Pricing.UsedBasePrice {
			metal, tier = "-", "-"
		}
		row := []interface{}{
			p.Name,
			p.Category,
			metal,
			tier,
			p.Weight,
			p.MakingChargesPercent,
			p.Pricing.RatePerGram,
			string(p.Pricing.RateSource),
			p.Price,
			compareAt,
		}
		if err := writeRow(f, productsSheet, i+2, row); err != nil {
			return nil, err
		}
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(productsSheet, "A1", lastCol+"1", bold); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(productsSheet, "A", "A", 36); err != nil {
		return nil, err
	}

	if err := writeRow(f, ratesSheet, 1, toCells([]string{"Metal", "Tier", "Rate/g (INR)", "Source"})); err != nil {
		return nil, err
	}
	row := 2
	for _, m := range pricing.Metals {
		for _, tier := range pricing.Tiers(m) {
			rate, ok := snap.Rate(m, tier)
			if !ok {
				continue
			}
			if err := writeRow(f, ratesSheet, row, []interface{}{string(m), tier, rate, string(snap.Source(m))}); err != nil {
				return nil, err
			}
			row++
		}
	}
	if !snap.AsOf().IsZero() {
		asOf := []interface{}{"As Of", snap.AsOf().UTC().Format(time.RFC3339)}
		if err := writeRow(f, ratesSheet, row+1, asOf); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(ratesSheet, "A1", "D1", bold); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}
