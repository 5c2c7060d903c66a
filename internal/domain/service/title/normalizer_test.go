package title_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"winedeck/internal/domain/service/title"
)

func TestNormalize(t *testing.T) {
	rq := require.New(t)

	normalizer := title.NewNormalizer()

	testCases := []struct {
		name   string
		input  string
		output string
	}{
		{
			name:   "Empty input",
			input:  "",
			output: "",
		},
		{
			name:   "Brackets and separator tail",
			input:  "【送料無料】赤ワイン フルボディ｜750ml",
			output: "赤ワイン フルボディ",
		},
		{
			name:   "All four bracket kinds",
			input:  "【あす楽】（正規品）[箱付](限定) シャブリ",
			output: "シャブリ",
		},
		{
			name:   "Promo vocabulary outside brackets",
			input:  "ギフト プレゼント 白ワイン 辛口",
			output: "白ワイン 辛口",
		},
		{
			name:   "Whitespace collapse with ideographic space",
			input:  "赤ワイン　　フルボディ  重口",
			output: "赤ワイン フルボディ 重口",
		},
		{
			name:   "Cut at earliest separator",
			input:  "スペイン産 赤／白 セット｜飲み比べ",
			output: "スペイン産 赤",
		},
		{
			name:   "Ascii slash separator",
			input:  "Chateau Margaux 2015/parker 99",
			output: "Chateau Margaux 2015",
		},
		{
			name:   "Already clean",
			input:  "ボルドー 赤ワイン",
			output: "ボルドー 赤ワイン",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			rq.Equal(tc.output, normalizer.Normalize(tc.input))
		})
	}
}

func TestNormalizeTruncation(t *testing.T) {
	rq := require.New(t)

	long := strings.Repeat("あ", title.ServerMaxLen+10)

	got := title.NewNormalizer().Normalize(long)

	rq.Equal(title.ServerMaxLen+1, utf8.RuneCountInString(got))
	rq.Equal(strings.Repeat("あ", title.ServerMaxLen)+"…", got)

	// ровно maxLen рун — без многоточия
	exact := strings.Repeat("あ", title.ServerMaxLen)
	rq.Equal(exact, title.NewNormalizer().Normalize(exact))
}

func TestPreviewNormalizer(t *testing.T) {
	rq := require.New(t)

	normalizer := title.NewPreviewNormalizer()

	long := strings.Repeat("ワ", title.PreviewMaxLen+1)
	got := normalizer.Normalize(long)
	rq.Equal(strings.Repeat("ワ", title.PreviewMaxLen)+"…", got)

	// 贈り物 есть только в серверном словаре
	rq.Equal("贈り物 赤ワイン", normalizer.Normalize("贈り物 赤ワイン ギフト"))
}
