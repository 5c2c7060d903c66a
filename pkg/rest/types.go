// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

// Card карточка вина для свайпа.
type Card struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Style         string   `json:"style"`
	Tags          []string `json:"tags"`
	PriceYen      *int64   `json:"price_yen"`
	URL           string   `json:"url"`
	ReviewAverage *float64 `json:"review_average"`
	ReviewCount   *int     `json:"review_count"`
}

// Deck ответ GET /wines.
type Deck struct {
	Items []Card `json:"items"`
}

// SyncRequest запрос на пересборку каталога.
type SyncRequest struct {
	Target   int      `json:"target" validate:"omitempty,min=1,max=1000"`
	Keywords []string `json:"keywords" validate:"omitempty,dive,min=1"`
}

// SyncStatus статус последнего прогона сидера.
type SyncStatus struct {
	State      string `json:"state"`
	Sampled    int    `json:"sampled"`
	Upserted   int    `json:"upserted"`
	Errors     int    `json:"errors"`
	FinishedAt string `json:"finished_at,omitempty"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`
}

// ErrorCode Код ошибки
type ErrorCode string
