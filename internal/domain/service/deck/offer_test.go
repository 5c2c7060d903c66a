package deck_test

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"winedeck/internal/domain/entity"
	"winedeck/internal/domain/service/deck"
)

func TestSelectBestOffer(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name   string
		offers []entity.Offer
		want   *entity.Offer
	}{
		{
			name:   "Empty",
			offers: nil,
			want:   nil,
		},
		{
			name: "Cheapest wins",
			offers: []entity.Offer{
				{URL: "a", PriceYen: lo.ToPtr[int64](3000)},
				{URL: "b", PriceYen: lo.ToPtr[int64](1200)},
				{URL: "c", PriceYen: lo.ToPtr[int64](5000)},
			},
			want: &entity.Offer{URL: "b", PriceYen: lo.ToPtr[int64](1200)},
		},
		{
			name: "Tie keeps earliest",
			offers: []entity.Offer{
				{URL: "a", PriceYen: lo.ToPtr[int64](1200)},
				{URL: "b", PriceYen: lo.ToPtr[int64](1200)},
			},
			want: &entity.Offer{URL: "a", PriceYen: lo.ToPtr[int64](1200)},
		},
		{
			name: "Priced beats unpriced",
			offers: []entity.Offer{
				{URL: "a"},
				{URL: "b", PriceYen: lo.ToPtr[int64](9800)},
			},
			want: &entity.Offer{URL: "b", PriceYen: lo.ToPtr[int64](9800)},
		},
		{
			name: "No prices falls back to first",
			offers: []entity.Offer{
				{URL: "a"},
				{URL: "b"},
			},
			want: &entity.Offer{URL: "a"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			got := deck.SelectBestOffer(tc.offers)

			if tc.want == nil {
				rq.Nil(got)
				return
			}

			rq.NotNil(got)
			rq.Equal(*tc.want, *got)
		})
	}
}
