package deck

import "winedeck/internal/domain/entity"

// SelectBestOffer выбирает оффер для карточки: минимальная цена среди
// офферов с ценой, при равенстве — первый по порядку. Если цены нет ни у
// кого, берём первый оффер как есть. Фильтрация по мерчанту — забота
// вызывающего, здесь мерчант не проверяется.
func SelectBestOffer(offers []entity.Offer) *entity.Offer {
	if len(offers) == 0 {
		return nil
	}

	var best *entity.Offer

	for i := range offers {
		offer := &offers[i]
		if offer.PriceYen == nil {
			continue
		}

		if best == nil || *offer.PriceYen < *best.PriceYen {
			best = offer
		}
	}

	if best == nil {
		return &offers[0]
	}

	return best
}
