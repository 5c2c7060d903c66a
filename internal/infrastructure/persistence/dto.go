package persistence

import (
	"encoding/json"
	"time"

	"winedeck/internal/domain/entity"
	"winedeck/internal/domain/value"
)

// wineSchema представление таблицы wine в БД.
type wineSchema struct {
	ID             string    `db:"id"`
	Source         string    `db:"source"`
	SourceItemCode string    `db:"source_item_code"`
	DisplayName    string    `db:"display_name"`
	Style          string    `db:"style"`
	Tags           []byte    `db:"tags"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (s *wineSchema) toDomain() (entity.Wine, error) {
	var tags []string
	if len(s.Tags) > 0 {
		if err := json.Unmarshal(s.Tags, &tags); err != nil {
			return entity.Wine{}, err
		}
	}

	return entity.Wine{
		ID:             s.ID,
		Source:         s.Source,
		SourceItemCode: s.SourceItemCode,
		DisplayName:    s.DisplayName,
		Style:          value.Style(s.Style),
		Tags:           tags,
		UpdatedAt:      s.UpdatedAt,
	}, nil
}

// offerSchema представление таблицы offer.
type offerSchema struct {
	WineID        string    `db:"wine_id"`
	Merchant      string    `db:"merchant"`
	URL           string    `db:"url"`
	PriceYen      *int64    `db:"price_yen"`
	ReviewCount   *int      `db:"review_count"`
	ReviewAverage *float64  `db:"review_average"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (s *offerSchema) toDomain() entity.Offer {
	return entity.Offer{
		Merchant:      s.Merchant,
		URL:           s.URL,
		PriceYen:      s.PriceYen,
		ReviewAverage: s.ReviewAverage,
		ReviewCount:   s.ReviewCount,
	}
}
