package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"winedeck/internal/domain/entity"
	"winedeck/internal/domain/service/catalog"
	"winedeck/internal/infrastructure/rakuten"
)

// fakeSearchClient раздаёт товары по ценовым сегментам одной страницей.
// Каждая сортировка видит пул со своим сдвигом — как разные ранжирования
// одной и той же выдачи.
type fakeSearchClient struct {
	itemsByRange map[string][]rakuten.Item
	sortOrder    map[string]int
	err          error
	calls        int
}

func (f *fakeSearchClient) Search(_ context.Context, params rakuten.SearchParams) (rakuten.SearchResult, error) {
	f.calls++

	if f.err != nil {
		return rakuten.SearchResult{}, f.err
	}

	if f.sortOrder == nil {
		f.sortOrder = map[string]int{}
	}

	idx, ok := f.sortOrder[params.Sort]
	if !ok {
		idx = len(f.sortOrder)
		f.sortOrder[params.Sort] = idx
	}

	items := f.itemsByRange[rangeKey(params.MinPrice, params.MaxPrice)]
	if len(items) > 0 {
		rot := (idx * 6) % len(items)
		items = append(append([]rakuten.Item{}, items[rot:]...), items[:rot]...)
	}

	return rakuten.SearchResult{
		Items: items,
		Count: len(items),
		Hits:  rakuten.MaxHits,
	}, nil
}

func rangeKey(minPrice, maxPrice *int) string {
	key := "open"
	if minPrice != nil {
		key = fmt.Sprint(*minPrice)
	}
	if maxPrice != nil {
		key += "-" + fmt.Sprint(*maxPrice)
	}
	return key
}

type fakeCatalogRepo struct {
	upserted []entity.Wine
	merchant string
	count    int
	err      error
}

func (f *fakeCatalogRepo) UpsertBatch(_ context.Context, merchant string, wines []entity.Wine) (int, error) {
	if f.err != nil {
		return 0, f.err
	}

	f.merchant = merchant
	f.upserted = wines

	return len(wines), nil
}

func (f *fakeCatalogRepo) Count(context.Context) (int, error) {
	return f.count, f.err
}

func segmentItems(prefix string, n int) []rakuten.Item {
	items := make([]rakuten.Item, 0, n)
	for i := range n {
		code := fmt.Sprintf("%s:%04d", prefix, i)
		items = append(items, rakuten.Item{
			ItemCode:  code,
			ItemName:  "赤ワイン フルボディ " + code,
			ItemPrice: lo.ToPtr[int64](1500),
			ItemURL:   "https://item.rakuten.co.jp/" + code,
		})
	}
	return items
}

func TestSeed(t *testing.T) {
	rq := require.New(t)

	client := &fakeSearchClient{itemsByRange: map[string][]rakuten.Item{
		"0-2000":     segmentItems("low", 10),
		"2000-5000":  segmentItems("mid", 10),
		"5000-10000": segmentItems("high", 10),
		"10000":      segmentItems("top", 10),
	}}
	repo := &fakeCatalogRepo{}

	service := catalog.NewService(repo, client).
		WithKeywords("赤ワイン 750ml").
		WithTarget(20).
		WithRequestInterval(0).
		WithRandom(rand.New(rand.NewSource(11))) //nolint:gosec // deterministic

	result, err := service.Seed(context.Background(), catalog.SeedParams{})
	rq.NoError(err)

	rq.Equal(40, result.Collected)
	rq.Equal(20, result.Sampled)
	rq.Equal(20, result.Upserted)
	rq.Zero(result.Errors)

	rq.Equal("rakuten", repo.merchant)
	rq.Len(repo.upserted, 20)

	// стратификация: каждый ценовой сегмент представлен поровну
	perPrefix := map[string]int{}
	for _, wine := range repo.upserted {
		rq.NotEmpty(wine.SourceItemCode)
		rq.Len(wine.Offers, 1)
		rq.Equal("rakuten", wine.Offers[0].Merchant)

		perPrefix[wine.SourceItemCode[:3]]++
	}
	rq.Equal(map[string]int{"low": 5, "mid": 5, "hig": 5, "top": 5}, perPrefix)
}

func TestSeedParamsOverride(t *testing.T) {
	rq := require.New(t)

	client := &fakeSearchClient{itemsByRange: map[string][]rakuten.Item{
		"0-2000": segmentItems("low", 30),
	}}
	repo := &fakeCatalogRepo{}

	service := catalog.NewService(repo, client).
		WithRequestInterval(0).
		WithRandom(rand.New(rand.NewSource(2))) //nolint:gosec // deterministic

	result, err := service.Seed(context.Background(), catalog.SeedParams{
		Target:   8,
		Keywords: []string{"白ワイン"},
	})
	rq.NoError(err)
	rq.Equal(8, result.Sampled)
	rq.Equal(8, result.Upserted)
}

func TestSeedNothingCollected(t *testing.T) {
	rq := require.New(t)

	client := &fakeSearchClient{err: errors.New("rakuten down")}
	repo := &fakeCatalogRepo{}

	service := catalog.NewService(repo, client).
		WithKeywords("赤ワイン").
		WithRequestInterval(0)

	result, err := service.Seed(context.Background(), catalog.SeedParams{})
	rq.Error(err)
	rq.Zero(result.Sampled)
	rq.Positive(result.Errors)
	rq.Empty(repo.upserted)
}

func TestCatalogSize(t *testing.T) {
	rq := require.New(t)

	service := catalog.NewService(&fakeCatalogRepo{count: 287}, &fakeSearchClient{})

	count, err := service.CatalogSize(context.Background())
	rq.NoError(err)
	rq.Equal(287, count)
}
