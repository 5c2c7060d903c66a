package reason_test

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"winedeck/internal/domain/entity"
	"winedeck/internal/domain/service/reason"
	"winedeck/internal/domain/value"
)

func TestCompose(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name string
		card entity.Card
		want []string
	}{
		{
			name: "Nothing applicable",
			card: entity.Card{},
			want: []string{},
		},
		{
			name: "Full card caps at three",
			card: entity.Card{
				Style:         value.StyleRed,
				PriceYen:      lo.ToPtr[int64](1280),
				ReviewAverage: lo.ToPtr(4.5),
				ReviewCount:   lo.ToPtr(213),
			},
			want: []string{
				"レビュー平均 4.5 の高評価",
				"213件のレビューで支持",
				"デイリーに開けやすい価格",
			},
		},
		{
			name: "Zero reviews skipped",
			card: entity.Card{
				Style:       value.StyleWhite,
				PriceYen:    lo.ToPtr[int64](3500),
				ReviewCount: lo.ToPtr(0),
			},
			want: []string{
				"ちょっと特別な日の価格帯",
				"すっきり白ワイン派に",
			},
		},
		{
			name: "Expensive sparkling",
			card: entity.Card{
				Style:    value.StyleSparkling,
				PriceYen: lo.ToPtr[int64](12000),
			},
			want: []string{
				"贈り物にも使える本格派",
				"乾杯が似合う泡もの",
			},
		},
		{
			name: "Style only",
			card: entity.Card{Style: value.StyleRose},
			want: []string{"気分が上がるロゼ"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			got := reason.Compose(tc.card)

			rq.Equal(tc.want, got)
			rq.LessOrEqual(len(got), reason.MaxReasons)
		})
	}
}

func TestComposeDeterministic(t *testing.T) {
	rq := require.New(t)

	card := entity.Card{
		Style:         value.StyleRed,
		PriceYen:      lo.ToPtr[int64](4200),
		ReviewAverage: lo.ToPtr(4.1),
	}

	first := reason.Compose(card)

	for range 10 {
		rq.Equal(first, reason.Compose(card))
	}
}
