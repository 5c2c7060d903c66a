package entity

import "winedeck/internal/domain/value"

// Card отображаемая карточка: одно вино плюс не более одного выбранного
// оффера. Карточка без URL невалидна и отбрасывается при сборке колоды.
type Card struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Style         value.Style `json:"style"`
	Tags          []string    `json:"tags"`
	PriceYen      *int64      `json:"price_yen"`
	URL           string      `json:"url"`
	ReviewAverage *float64    `json:"review_average"`
	ReviewCount   *int        `json:"review_count"`
}

// Valid сообщает, можно ли показывать карточку (есть куда вести покупку).
func (c Card) Valid() bool {
	return c.URL != ""
}

// Deck упорядоченная колода карточек, front-to-back.
type Deck []Card
