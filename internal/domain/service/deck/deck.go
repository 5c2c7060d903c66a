// Package deck собирает колоду карточек из каталога: выбор оффера,
// нормализация заголовка, отбраковка карточек без ссылки, перемешивание
// и обрезка до запрошенного размера.
package deck

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"winedeck/internal/domain"
	"winedeck/internal/domain/entity"
	"winedeck/pkg/errcodes"
)

const (
	// DefaultLimit размер колоды, если клиент не попросил иного.
	DefaultLimit = 30
	// MaxLimit потолок размера ответа независимо от запроса.
	MaxLimit = 80

	// fetchLimit запас строк из каталога: после фильтрации и
	// перемешивания должно хватать на любую колоду.
	fetchLimit = 800

	supportedMerchant = "rakuten"
)

type titleNormalizer interface {
	Normalize(raw string) string
}

type WineRepository interface {
	ListWithOffers(ctx context.Context, limit int) ([]entity.Wine, error)
}

type Service struct {
	wineRepo   WineRepository
	normalizer titleNormalizer
	merchant   string

	// random защищён мьютексом: Assemble зовётся из конкурентных
	// HTTP-хэндлеров, а *rand.Rand не потокобезопасен.
	randomMu sync.Mutex
	random   *rand.Rand
}

func NewService(wineRepo WineRepository, normalizer titleNormalizer) *Service {
	return &Service{
		wineRepo:   wineRepo,
		normalizer: normalizer,
		merchant:   supportedMerchant,
		random:     rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // not crypto
	}
}

// WithRandom подменяет источник случайности (детерминизм в тестах).
func (s *Service) WithRandom(random *rand.Rand) *Service {
	s.random = random
	return s
}

func (s *Service) WithMerchant(merchant string) *Service {
	s.merchant = merchant
	return s
}

// Assemble строит свежую колоду. Каждый вызов независим: каталог читается
// заново, состояние между запросами не разделяется.
func (s *Service) Assemble(ctx context.Context, limit int) (entity.Deck, error) {
	limit = ClampLimit(limit)

	wines, err := s.wineRepo.ListWithOffers(ctx, fetchLimit)
	if err != nil {
		return nil, domain.WrapError(
			fmt.Errorf("wineRepo.ListWithOffers: %w", err),
			errcodes.UpstreamFetchError,
			"failed to fetch catalog",
		)
	}

	cards := make(entity.Deck, 0, len(wines))

	for _, wine := range wines {
		card := s.buildCard(wine)
		if !card.Valid() {
			cardsDropped.Inc()
			continue
		}

		cards = append(cards, card)
	}

	s.shuffle(cards)

	if len(cards) > limit {
		cards = cards[:limit]
	}

	decksAssembled.Inc()

	return cards, nil
}

// buildCard всегда возвращает карточку; без пригодного оффера она остаётся
// без URL, и колода её отбросит.
func (s *Service) buildCard(wine entity.Wine) entity.Card {
	card := entity.Card{
		ID:    wine.ID,
		Name:  s.normalizer.Normalize(wine.DisplayName),
		Style: wine.Style,
		Tags:  wine.Tags,
	}

	offers := make([]entity.Offer, 0, len(wine.Offers))

	for _, offer := range wine.Offers {
		if offer.Merchant == s.merchant {
			offers = append(offers, offer)
		}
	}

	chosen := SelectBestOffer(offers)
	if chosen == nil {
		return card
	}

	card.URL = chosen.URL
	card.PriceYen = chosen.PriceYen
	card.ReviewAverage = chosen.ReviewAverage
	card.ReviewCount = chosen.ReviewCount

	return card
}

// shuffle — Фишер–Йетс: равномерная перестановка при равномерном источнике.
func (s *Service) shuffle(cards entity.Deck) {
	s.randomMu.Lock()
	defer s.randomMu.Unlock()

	for i := len(cards) - 1; i >= 1; i-- {
		j := s.random.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// ClampLimit приводит запрошенный лимит к контракту [1, MaxLimit]:
// всё, что меньше единицы, трактуется как "не указан".
func ClampLimit(limit int) int {
	if limit < 1 {
		return DefaultLimit
	}

	if limit > MaxLimit {
		return MaxLimit
	}

	return limit
}
