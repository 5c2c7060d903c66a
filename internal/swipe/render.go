package swipe

import (
	"winedeck/internal/domain/entity"
	"winedeck/internal/domain/service/reason"
	"winedeck/internal/domain/service/title"
)

//nolint:gochecknoglobals
var previewNormalizer = title.NewPreviewNormalizer()

// CardView то, что рисуется на лицевой стороне карточки.
type CardView struct {
	CardID  string
	Title   string
	Reasons []string
}

// NewCardView готовит карточку к отрисовке: укороченный заголовок превью
// и до трёх причин; при нуле кандидатов — фиксированная заглушка.
func NewCardView(card entity.Card) CardView {
	reasons := reason.Compose(card)
	if len(reasons) == 0 {
		reasons = []string{reason.Placeholder}
	}

	return CardView{
		CardID:  card.ID,
		Title:   previewNormalizer.Normalize(card.Name),
		Reasons: reasons,
	}
}
