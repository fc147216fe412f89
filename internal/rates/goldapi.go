package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jrbgold/jrb-backend/internal/pricing"
)

var (
	ErrQuotaExceeded  = errors.New("metal rate api quota exceeded")
	ErrMalformedQuote = errors.New("malformed metal rate quote")
)

// StatusError 2xx 가 아닌 응답
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("metal rate api returned status %d: %s", e.StatusCode, e.Body)
}

// QuoteSource 금속별 시세 공급처
type QuoteSource interface {
	FetchGold(ctx context.Context) (pricing.GoldRates, error)
	FetchSilver(ctx context.Context) (pricing.SilverRates, error)
	FetchPlatinum(ctx context.Context) (pricing.PlatinumRates, error)
}

// GoldAPIResponse GOLDAPI 응답 구조체 (사용하는 필드만)
type GoldAPIResponse struct {
	Timestamp    int64   `json:"timestamp"`
	Metal        string  `json:"metal"`
	Currency     string  `json:"currency"`
	Price        float64 `json:"price"` // 트로이 온스당
	PriceGram24K float64 `json:"price_gram_24k"`
	PriceGram22K float64 `json:"price_gram_22k"`
	PriceGram18K float64 `json:"price_gram_18k"`
}

// GoldAPIClient goldapi.io 시세 클라이언트
type GoldAPIClient struct {
	baseURL    string
	apiKey     string
	currency   string
	httpClient *http.Client
}

// NewGoldAPIClient 시세 클라이언트 생성
func NewGoldAPIClient(baseURL, apiKey, currency string) *GoldAPIClient {
	if currency == "" {
		currency = "INR"
	}
	return &GoldAPIClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		currency: currency,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchGold XAU 시세 조회. g당 22k/18k 값이 없으면 24k에서 산출
func (c *GoldAPIClient) FetchGold(ctx context.Context) (pricing.GoldRates, error) {
	resp, err := c.quote(ctx, "XAU")
	if err != nil {
		return pricing.GoldRates{}, err
	}

	gram24k := resp.PriceGram24K
	if gram24k <= 0 && resp.Price > 0 {
		gram24k = pricing.PerGram(resp.Price)
	}
	if gram24k <= 0 {
		return pricing.GoldRates{}, fmt.Errorf("%w: missing gold price", ErrMalformedQuote)
	}

	rates := pricing.DeriveGoldRates(gram24k, resp.PriceGram22K, resp.PriceGram18K)
	if err := rates.Validate(); err != nil {
		return pricing.GoldRates{}, fmt.Errorf("%w: %v", ErrMalformedQuote, err)
	}
	return rates, nil
}

// FetchSilver XAG 시세 조회
func (c *GoldAPIClient) FetchSilver(ctx context.Context) (pricing.SilverRates, error) {
	resp, err := c.quote(ctx, "XAG")
	if err != nil {
		return pricing.SilverRates{}, err
	}
	if resp.Price <= 0 {
		return pricing.SilverRates{}, fmt.Errorf("%w: missing silver price", ErrMalformedQuote)
	}

	rates := pricing.DeriveSilverRates(resp.Price)
	if err := rates.Validate(); err != nil {
		return pricing.SilverRates{}, fmt.Errorf("%w: %v", ErrMalformedQuote, err)
	}
	return rates, nil
}

// FetchPlatinum XPT 시세 조회
func (c *GoldAPIClient) FetchPlatinum(ctx context.Context) (pricing.PlatinumRates, error) {
	resp, err := c.quote(ctx, "XPT")
	if err != nil {
		return pricing.PlatinumRates{}, err
	}
	if resp.Price <= 0 {
		return pricing.PlatinumRates{}, fmt.Errorf("%w: missing platinum price", ErrMalformedQuote)
	}

	rates := pricing.DerivePlatinumRates(resp.Price)
	if err := rates.Validate(); err != nil {
		return pricing.PlatinumRates{}, fmt.Errorf("%w: %v", ErrMalformedQuote, err)
	}
	return rates, nil
}

func (c *GoldAPIClient) quote(ctx context.Context, symbol string) (*GoldAPIResponse, error) {
	url := fmt.Sprintf("%s/%s/%s", c.baseURL, symbol, c.currency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// GOLDAPI는 헤더에 API 키를 전달
	if c.apiKey != "" {
		req.Header.Set("x-access-token", c.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call metal rate api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w: %s", ErrQuotaExceeded, symbol)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var out GoldAPIResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedQuote, err)
	}
	return &out, nil
}
