package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"winedeck/internal/domain/entity"
	"winedeck/internal/domain/service/deck"
	"winedeck/pkg/httpx/reply"
)

type deckService interface {
	Assemble(ctx context.Context, limit int) (entity.Deck, error)
}

type WineServer struct {
	deckService deckService
}

func NewWineServer(deckService deckService) WineServer {
	return WineServer{
		deckService: deckService,
	}
}

// getWines собирает перемешанную колоду карточек. Параметр limit
// необязателен; кривые значения молча приводятся к допустимым.
func (s WineServer) getWines(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	limit := deck.DefaultLimit

	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil {
			limit = parsed
		}
	}

	cards, err := s.deckService.Assemble(ctx, limit)
	if err != nil {
		return fmt.Errorf("deckService.Assemble: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTDeck(cards))

	return nil
}
