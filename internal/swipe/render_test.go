package swipe_test

import (
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"winedeck/internal/domain/entity"
	"winedeck/internal/domain/service/reason"
	"winedeck/internal/domain/service/title"
	"winedeck/internal/domain/value"
	"winedeck/internal/swipe"
)

func TestNewCardView(t *testing.T) {
	rq := require.New(t)

	card := entity.Card{
		ID:            "w1",
		Name:          "ギフト " + strings.Repeat("あ", title.PreviewMaxLen+5),
		Style:         value.StyleRed,
		URL:           "https://item/w1",
		PriceYen:      lo.ToPtr[int64](1500),
		ReviewAverage: lo.ToPtr(4.2),
	}

	view := swipe.NewCardView(card)

	rq.Equal("w1", view.CardID)
	rq.Equal(strings.Repeat("あ", title.PreviewMaxLen)+"…", view.Title)
	rq.Len(view.Reasons, 3)
}

func TestNewCardViewPlaceholder(t *testing.T) {
	rq := require.New(t)

	view := swipe.NewCardView(entity.Card{ID: "w2", Name: "白ワイン", URL: "https://item/w2"})

	rq.Equal([]string{reason.Placeholder}, view.Reasons)
}
