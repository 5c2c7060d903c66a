package entity

import (
	"time"

	"winedeck/internal/domain/value"
)

// Wine строка каталога вместе с офферами. Читается из БД, ядро её не мутирует.
type Wine struct {
	ID             string      `json:"id"`
	Source         string      `json:"source"`
	SourceItemCode string      `json:"source_item_code"`
	DisplayName    string      `json:"display_name"`
	Style          value.Style `json:"style"`
	Tags           []string    `json:"tags"`
	Offers         []Offer     `json:"offers,omitempty"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// Offer вариант покупки у конкретного мерчанта. Цена, рейтинг и количество
// отзывов независимо опциональны: ссылка без цены — валидный оффер.
type Offer struct {
	Merchant      string   `json:"merchant"`
	URL           string   `json:"url"`
	PriceYen      *int64   `json:"price_yen"`
	ReviewAverage *float64 `json:"review_average"`
	ReviewCount   *int     `json:"review_count"`
}
