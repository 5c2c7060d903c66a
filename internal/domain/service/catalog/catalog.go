// Package catalog наполняет каталог винами из Rakuten Ichiba:
// стратифицированный сбор по сегментам keyword × ценовой диапазон,
// выравнивающее сэмплирование и запись в Postgres.
package catalog

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"winedeck/internal/domain"
	"winedeck/internal/domain/entity"
	"winedeck/internal/infrastructure/rakuten"
	"winedeck/pkg/errcodes"
)

const (
	// DefaultTarget размер каталога после сэмплирования.
	DefaultTarget = 300

	// candidatesPerSegment сколько кандидатов собирать на сегмент
	// (sort-ы крутятся, чтобы выборка не зависела от одного ранжирования).
	candidatesPerSegment = 24

	maxPagesPerSegment = 100
	maxDisplayNameLen  = 255

	// requestInterval пауза между запросами к API (бережём rate limit).
	requestInterval = 220 * time.Millisecond

	processedTTL = time.Hour

	defaultMerchant = "rakuten"
)

//nolint:gochecknoglobals
var defaultKeywords = []string{
	"赤ワイン 750ml",
	"白ワイン 750ml",
	"スパークリングワイン 750ml",
	"ロゼワイン 750ml",
	"フランス ワイン 750ml",
	"イタリア ワイン 750ml",
}

// sorts только разносят способ выборки, осью выравнивания не являются.
//
//nolint:gochecknoglobals
var defaultSorts = []string{"-reviewCount", "-reviewAverage", "-affiliateRate", "standard"}

// PriceRange сегмент цены; nil-границы открыты.
type PriceRange struct {
	Min *int
	Max *int
}

//nolint:gochecknoglobals
var defaultPriceRanges = []PriceRange{
	{Min: intPtr(0), Max: intPtr(2000)},
	{Min: intPtr(2000), Max: intPtr(5000)},
	{Min: intPtr(5000), Max: intPtr(10000)},
	{Min: intPtr(10000), Max: nil},
}

func intPtr(v int) *int { return &v }

type SearchClient interface {
	Search(ctx context.Context, params rakuten.SearchParams) (rakuten.SearchResult, error)
}

type WineRepository interface {
	UpsertBatch(ctx context.Context, merchant string, wines []entity.Wine) (int, error)
	Count(ctx context.Context) (int, error)
}

type Service struct {
	wineRepo    WineRepository
	client      SearchClient
	merchant    string
	keywords    []string
	sorts       []string
	priceRanges []PriceRange
	target      int

	requestInterval time.Duration
	lastRequest     time.Time
	requestMu       sync.Mutex

	// processedCache коды товаров, уже взятые в текущем окне сбора:
	// сегменты и сортировки сильно пересекаются.
	processedCache *cache.Cache

	randomMu sync.Mutex
	random   *rand.Rand
}

func NewService(wineRepo WineRepository, client SearchClient) *Service {
	return &Service{
		wineRepo:        wineRepo,
		client:          client,
		merchant:        defaultMerchant,
		keywords:        defaultKeywords,
		sorts:           defaultSorts,
		priceRanges:     defaultPriceRanges,
		target:          DefaultTarget,
		requestInterval: requestInterval,
		processedCache:  cache.New(processedTTL, processedTTL),
		random:          rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // not crypto
	}
}

func (s *Service) WithTarget(target int) *Service {
	if target > 0 {
		s.target = target
	}
	return s
}

func (s *Service) WithKeywords(keywords ...string) *Service {
	if len(keywords) > 0 {
		s.keywords = keywords
	}
	return s
}

// WithRandom подменяет источник случайности (детерминизм в тестах).
func (s *Service) WithRandom(random *rand.Rand) *Service {
	s.random = random
	return s
}

// WithRequestInterval меняет паузу между запросами к API.
func (s *Service) WithRequestInterval(interval time.Duration) *Service {
	s.requestInterval = interval
	return s
}

// SeedParams переопределения на один прогон; нулевые поля — значения
// по умолчанию.
type SeedParams struct {
	Target   int
	Keywords []string
}

type SeedResult struct {
	Collected int `json:"collected"`
	Sampled   int `json:"sampled"`
	Upserted  int `json:"upserted"`
	Errors    int `json:"errors"`
}

// Seed делает полный прогон: обходит все сегменты, выравнивает выборку
// до целевого размера и заливает результат в каталог. При нуле собранных
// товаров в БД не пишет.
func (s *Service) Seed(ctx context.Context, params SeedParams) (SeedResult, error) {
	target := params.Target
	if target <= 0 {
		target = s.target
	}

	keywords := params.Keywords
	if len(keywords) == 0 {
		keywords = s.keywords
	}

	var result SeedResult

	segments := make(map[string][]rakuten.Item, len(keywords)*len(s.priceRanges))

	for _, keyword := range keywords {
		for _, priceRange := range s.priceRanges {
			key := segmentKey(keyword, priceRange)

			items, errCount := s.collectSegment(ctx, keyword, priceRange)
			result.Errors += errCount

			if ctx.Err() != nil {
				return result, ctx.Err()
			}

			segments[key] = items
			result.Collected += len(items)

			logger(ctx).Info("segment collected",
				"segment", key,
				"candidates", len(items),
			)
		}
	}

	sampled := s.stratifiedSample(segments, target)
	result.Sampled = len(sampled)

	if len(sampled) == 0 {
		return result, domain.NewError(errcodes.UpstreamFetchError, "no items collected, nothing to seed")
	}

	wines := make([]entity.Wine, 0, len(sampled))
	for _, item := range sampled {
		wines = append(wines, s.itemToWine(item))
	}

	upserted, err := s.wineRepo.UpsertBatch(ctx, s.merchant, wines)
	if err != nil {
		return result, fmt.Errorf("wineRepo.UpsertBatch: %w", err)
	}

	result.Upserted = upserted

	logger(ctx).Info("seed finished",
		"collected", result.Collected,
		"sampled", result.Sampled,
		"upserted", result.Upserted,
		"errors", result.Errors,
	)

	return result, nil
}

// collectSegment собирает кандидатов одного сегмента, прокручивая все
// сортировки. Ошибки отдельных запросов не валят прогон целиком.
func (s *Service) collectSegment(ctx context.Context, keyword string, priceRange PriceRange) ([]rakuten.Item, int) {
	perSort := candidatesPerSegment / len(s.sorts)
	if perSort < 1 {
		perSort = 1
	}

	var (
		items    []rakuten.Item
		errCount int
	)

	for _, sort := range s.sorts {
		got, err := s.fetchSorted(ctx, keyword, sort, priceRange, perSort)
		if err != nil {
			if ctx.Err() != nil {
				return items, errCount
			}

			logger(ctx).Error("segment fetch failed",
				"keyword", keyword,
				"sort", sort,
				"error", err,
			)
			errCount++

			continue
		}

		for _, item := range got {
			if item.ItemCode == "" {
				continue
			}

			if _, seen := s.processedCache.Get(item.ItemCode); seen {
				continue
			}

			s.processedCache.Set(item.ItemCode, true, cache.DefaultExpiration)
			items = append(items, item)
		}
	}

	return items, errCount
}

// fetchSorted постраничный обход одной сортировки до target товаров.
func (s *Service) fetchSorted(ctx context.Context, keyword, sort string, priceRange PriceRange, target int) ([]rakuten.Item, error) {
	var items []rakuten.Item

	seen := make(map[string]struct{}, target)

	for page := 1; page <= maxPagesPerSegment && len(items) < target; page++ {
		if err := s.waitForNextSlot(ctx); err != nil {
			return items, err
		}

		result, err := s.client.Search(ctx, rakuten.SearchParams{
			Keyword:  keyword,
			Sort:     sort,
			Page:     page,
			Hits:     rakuten.MaxHits,
			MinPrice: priceRange.Min,
			MaxPrice: priceRange.Max,
		})
		if err != nil {
			return items, err
		}

		if len(result.Items) == 0 {
			break
		}

		for _, item := range result.Items {
			if item.ItemCode == "" {
				continue
			}

			if _, ok := seen[item.ItemCode]; ok {
				continue
			}

			seen[item.ItemCode] = struct{}{}
			items = append(items, item)

			if len(items) >= target {
				break
			}
		}

		if page >= lastPage(result, page) {
			break
		}
	}

	return items, nil
}

func lastPage(result rakuten.SearchResult, fallback int) int {
	if result.Count <= 0 || result.Hits <= 0 {
		return fallback
	}

	return int(math.Ceil(float64(result.Count) / float64(result.Hits)))
}

// waitForNextSlot выдерживает минимальный интервал между запросами.
func (s *Service) waitForNextSlot(ctx context.Context) error {
	s.requestMu.Lock()
	defer s.requestMu.Unlock()

	if s.lastRequest.IsZero() {
		s.lastRequest = time.Now()
		return nil
	}

	elapsed := time.Since(s.lastRequest)
	if elapsed >= s.requestInterval {
		s.lastRequest = time.Now()
		return nil
	}

	select {
	case <-time.After(s.requestInterval - elapsed):
		s.lastRequest = time.Now()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// stratifiedSample выравнивает выборку по сегментам: базовая доля с
// каждого, затем остаток, затем добор из общего пула при пустых сегментах.
func (s *Service) stratifiedSample(segments map[string][]rakuten.Item, target int) []rakuten.Item {
	if len(segments) == 0 {
		return nil
	}

	keys := make([]string, 0, len(segments))
	for key := range segments {
		keys = append(keys, key)
	}

	s.randomMu.Lock()
	defer s.randomMu.Unlock()

	s.shuffleStringsLocked(keys)

	per := target / len(keys)
	remainder := target - per*len(keys)

	picked := make(map[string]rakuten.Item, target)

	for _, key := range keys {
		pool := append([]rakuten.Item(nil), segments[key]...)
		s.shuffleItemsLocked(pool)

		for i := 0; i < per && i < len(pool); i++ {
			if _, ok := picked[pool[i].ItemCode]; !ok {
				picked[pool[i].ItemCode] = pool[i]
			}
		}
	}

	for _, key := range keys {
		if remainder <= 0 {
			break
		}

		pool := append([]rakuten.Item(nil), segments[key]...)
		s.shuffleItemsLocked(pool)

		for _, item := range pool {
			if _, ok := picked[item.ItemCode]; !ok {
				picked[item.ItemCode] = item
				remainder--
				break
			}
		}
	}

	if len(picked) < target {
		var globalPool []rakuten.Item
		for _, key := range keys {
			globalPool = append(globalPool, segments[key]...)
		}

		s.shuffleItemsLocked(globalPool)

		for _, item := range globalPool {
			if len(picked) >= target {
				break
			}

			if _, ok := picked[item.ItemCode]; !ok {
				picked[item.ItemCode] = item
			}
		}
	}

	result := make([]rakuten.Item, 0, len(picked))
	for _, item := range picked {
		result = append(result, item)
		if len(result) >= target {
			break
		}
	}

	return result
}

func (s *Service) shuffleItemsLocked(items []rakuten.Item) {
	for i := len(items) - 1; i >= 1; i-- {
		j := s.random.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

func (s *Service) shuffleStringsLocked(keys []string) {
	for i := len(keys) - 1; i >= 1; i-- {
		j := s.random.Intn(i + 1)
		keys[i], keys[j] = keys[j], keys[i]
	}
}

func (s *Service) itemToWine(item rakuten.Item) entity.Wine {
	name := item.ItemName
	if runes := []rune(name); len(runes) > maxDisplayNameLen {
		name = string(runes[:maxDisplayNameLen])
	}

	return entity.Wine{
		Source:         s.merchant,
		SourceItemCode: item.ItemCode,
		DisplayName:    name,
		Style:          ClassifyStyle(item.ItemName),
		Tags:           ExtractTags(item.ItemName),
		Offers: []entity.Offer{{
			Merchant:      s.merchant,
			URL:           item.PurchaseURL(),
			PriceYen:      item.ItemPrice,
			ReviewAverage: item.ReviewAverage,
			ReviewCount:   item.ReviewCount,
		}},
	}
}

func segmentKey(keyword string, priceRange PriceRange) string {
	low, high := "0", "inf"

	if priceRange.Min != nil {
		low = fmt.Sprint(*priceRange.Min)
	}

	if priceRange.Max != nil {
		high = fmt.Sprint(*priceRange.Max)
	}

	return fmt.Sprintf("%s|%s-%s", keyword, low, high)
}

// CatalogSize текущий размер каталога.
func (s *Service) CatalogSize(ctx context.Context) (int, error) {
	return s.wineRepo.Count(ctx)
}
