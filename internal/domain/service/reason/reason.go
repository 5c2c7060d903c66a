// Package reason подбирает короткие объяснения "почему эта карточка".
// Детерминированно: одна и та же карточка даёт один и тот же список.
package reason

import (
	"fmt"

	"winedeck/internal/domain/entity"
	"winedeck/internal/domain/value"
)

// MaxReasons максимум фраз на карточку.
const MaxReasons = 3

// Placeholder показывается, когда ни один кандидат не применим.
const Placeholder = "今日の気分で選んでみて"

// Пороги ценовых ярусов, иены.
const (
	lowPriceTier = 2000
	midPriceTier = 5000
)

//nolint:gochecknoglobals
var stylePhrases = map[value.Style]string{
	value.StyleRed:       "しっかり赤ワイン派に",
	value.StyleWhite:     "すっきり白ワイン派に",
	value.StyleSparkling: "乾杯が似合う泡もの",
	value.StyleRose:      "気分が上がるロゼ",
	value.StyleOther:     "ジャンルにとらわれない一本",
}

// Compose возвращает до трёх фраз в фиксированном порядке приоритета:
// рейтинг, число отзывов, ценовой ярус, стиль. Пустой список — сигнал
// вызывающему отрисовать Placeholder.
func Compose(card entity.Card) []string {
	reasons := make([]string, 0, MaxReasons)

	if card.ReviewAverage != nil {
		reasons = append(reasons, fmt.Sprintf("レビュー平均 %.1f の高評価", *card.ReviewAverage))
	}

	if card.ReviewCount != nil && *card.ReviewCount > 0 {
		reasons = append(reasons, fmt.Sprintf("%d件のレビューで支持", *card.ReviewCount))
	}

	if card.PriceYen != nil && len(reasons) < MaxReasons {
		reasons = append(reasons, priceTierPhrase(*card.PriceYen))
	}

	if phrase, ok := stylePhrases[card.Style]; ok && card.Style != "" && len(reasons) < MaxReasons {
		reasons = append(reasons, phrase)
	}

	return reasons
}

func priceTierPhrase(priceYen int64) string {
	switch {
	case priceYen <= lowPriceTier:
		return "デイリーに開けやすい価格"
	case priceYen <= midPriceTier:
		return "ちょっと特別な日の価格帯"
	default:
		return "贈り物にも使える本格派"
	}
}
