// Package rakuten клиент Ichiba Item Search API.
package rakuten

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"winedeck/internal/config"
	"winedeck/internal/domain"
	"winedeck/pkg/errcodes"
	"winedeck/pkg/httpx"
	"winedeck/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	searchEndpoint = "https://openapi.rakuten.co.jp/ichibams/api/IchibaItem/Search/20220601"
	formatVersion  = "2"

	// MaxHits потолок hits на страницу у самого API.
	MaxHits = 30

	maxAttempts    = 6
	baseBackoff    = 700 * time.Millisecond
	requestTimeout = 30 * time.Second
	logFieldMaxLen = 2048
)

// affiliateRate в elements приводит к 400, поэтому его здесь нет.
//
//nolint:gochecknoglobals
var elements = strings.Join([]string{
	"itemCode",
	"itemName",
	"itemPrice",
	"itemUrl",
	"affiliateUrl",
	"mediumImageUrls",
	"reviewCount",
	"reviewAverage",
	"genreId",
	"shopName",
	"shopCode",
	"tagIds",
}, ",")

// Item товар из выдачи поиска.
type Item struct {
	ItemCode      string   `json:"itemCode"`
	ItemName      string   `json:"itemName"`
	ItemPrice     *int64   `json:"itemPrice"`
	ItemURL       string   `json:"itemUrl"`
	AffiliateURL  string   `json:"affiliateUrl"`
	ReviewCount   *int     `json:"reviewCount"`
	ReviewAverage *float64 `json:"reviewAverage"`
	ShopCode      string   `json:"shopCode"`
}

// staticToken ключ API как bearer-токен: выдан заранее, не обновляется.
type staticToken string

func (staticToken) Authenticate(context.Context) error { return nil }

func (t staticToken) BearerToken() string { return string(t) }

// PurchaseURL предпочитает партнёрскую ссылку прямой.
func (i Item) PurchaseURL() string {
	if i.AffiliateURL != "" {
		return i.AffiliateURL
	}
	return i.ItemURL
}

type searchResponse struct {
	Items []Item `json:"items"`
	Count int    `json:"count"`
	Hits  int    `json:"hits"`

	// Поля ошибок API (присутствуют и при HTTP 200).
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// SearchParams один запрос к поиску; нулевые Min/MaxPrice не передаются.
type SearchParams struct {
	Keyword  string
	Sort     string
	Page     int
	Hits     int
	MinPrice *int
	MaxPrice *int
}

// SearchResult страница выдачи плюс счётчики для постраничного обхода.
type SearchResult struct {
	Items []Item
	Count int
	Hits  int
}

type Client struct {
	cfg         config.Rakuten
	httpClient  *http.Client
	endpoint    string
	baseBackoff time.Duration
}

func NewClient(cfg config.Rakuten) *Client {
	var transport http.RoundTripper = httpx.NewLoggingRoundTripper(
		http.DefaultTransport,
		httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
		httpx.WithLogFieldMaxLen(logFieldMaxLen),
	)

	transport = httpx.NewAuthBearerRoundTripper(transport, staticToken(cfg.AccessKey))

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout:   requestTimeout,
			Transport: transport,
		},
		endpoint:    searchEndpoint,
		baseBackoff: baseBackoff,
	}
}

// WithEndpoint подменяет адрес API (тестовые стенды).
func (c *Client) WithEndpoint(endpoint string) *Client {
	c.endpoint = endpoint
	return c
}

// WithBaseBackoff меняет стартовую паузу ретраев.
func (c *Client) WithBaseBackoff(backoff time.Duration) *Client {
	c.baseBackoff = backoff
	return c
}

// Search выполняет один запрос с ретраями: 429 и 5xx отступают
// экспоненциально с джиттером, остальные ошибки не повторяются.
func (c *Client) Search(ctx context.Context, params SearchParams) (SearchResult, error) {
	endpoint := c.endpoint + "?" + c.queryValues(params).Encode()

	backoff := c.baseBackoff

	var lastStatus int

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, status, err := c.doSearch(ctx, endpoint)
		if err == nil {
			return result, nil
		}

		lastStatus = status

		if !retryable(status) {
			return SearchResult{}, err
		}

		wait := backoff + time.Duration(rand.Int63n(int64(250*time.Millisecond))) //nolint:gosec // jitter
		backoff *= 2

		logger(ctx).Warn("rakuten retryable status",
			"status", status,
			"attempt", attempt,
			"wait", wait,
		)

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return SearchResult{}, ctx.Err()
		}
	}

	return SearchResult{}, domain.NewError(
		errcodes.RakutenAPIError,
		fmt.Sprintf("retries exhausted, last status %d", lastStatus),
	)
}

func (c *Client) doSearch(ctx context.Context, endpoint string) (SearchResult, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return SearchResult{}, 0, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Origin", c.cfg.Origin)
	req.Header.Set("Referer", c.cfg.Referer)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return SearchResult{}, 0, domain.WrapError(err, errcodes.RakutenAPIError, "request failed")
	}

	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, logFieldMaxLen))

		return SearchResult{}, resp.StatusCode, domain.NewError(
			errcodes.RakutenAPIError,
			fmt.Sprintf("http %d: %s", resp.StatusCode, body),
		)
	}

	var parsed searchResponse

	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return SearchResult{}, resp.StatusCode, domain.WrapError(err, errcodes.RakutenAPIError, "decode response")
	}

	if parsed.Error != "" {
		return SearchResult{}, resp.StatusCode, domain.NewError(
			errcodes.RakutenAPIError,
			fmt.Sprintf("%s: %s", parsed.Error, parsed.ErrorDescription),
		)
	}

	return SearchResult{
		Items: parsed.Items,
		Count: parsed.Count,
		Hits:  parsed.Hits,
	}, resp.StatusCode, nil
}

func (c *Client) queryValues(params SearchParams) url.Values {
	values := url.Values{}

	values.Set("applicationId", c.cfg.ApplicationID)
	values.Set("accessKey", c.cfg.AccessKey) // gatekeeper workaround
	values.Set("format", "json")
	values.Set("formatVersion", formatVersion)
	values.Set("elements", elements)

	if c.cfg.AffiliateID != "" {
		values.Set("affiliateId", c.cfg.AffiliateID)
	}

	values.Set("keyword", params.Keyword)
	values.Set("page", strconv.Itoa(params.Page))
	values.Set("hits", strconv.Itoa(params.Hits))

	if params.Sort != "" {
		values.Set("sort", params.Sort)
	}

	if params.MinPrice != nil {
		values.Set("minPrice", strconv.Itoa(*params.MinPrice))
	}

	if params.MaxPrice != nil {
		values.Set("maxPrice", strconv.Itoa(*params.MaxPrice))
	}

	return values
}

func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}

	return false
}
