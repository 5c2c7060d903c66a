package server

import (
	"winedeck/internal/domain/entity"
	"winedeck/internal/worker"
	"winedeck/pkg/lox"
	"winedeck/pkg/rest"
)

func newRESTCard(card entity.Card) rest.Card {
	return rest.Card{
		ID:            card.ID,
		Name:          card.Name,
		Style:         card.Style.String(),
		Tags:          card.Tags,
		PriceYen:      card.PriceYen,
		URL:           card.URL,
		ReviewAverage: card.ReviewAverage,
		ReviewCount:   card.ReviewCount,
	}
}

func newRESTDeck(deck entity.Deck) rest.Deck {
	return rest.Deck{
		Items: lox.Map(deck, newRESTCard),
	}
}

func newRESTSyncStatus(status worker.SeedStatus) rest.SyncStatus {
	out := rest.SyncStatus{
		State:    status.State,
		Sampled:  status.Result.Sampled,
		Upserted: status.Result.Upserted,
		Errors:   status.Result.Errors,
	}

	if !status.FinishedAt.IsZero() {
		out.FinishedAt = status.FinishedAt.Format("2006-01-02T15:04:05Z07:00")
	}

	return out
}
