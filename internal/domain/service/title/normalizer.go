// Package title чистит SEO-замусоренные названия товаров Rakuten до
// читаемого имени продукта. Один нормализатор обслуживает и серверную
// сборку колоды, и клиентское превью — отличаются только конфигурацией.
package title

import (
	"regexp"
	"strings"
)

const (
	// ServerMaxLen длина заголовка в ответе API.
	ServerMaxLen = 38
	// PreviewMaxLen длина заголовка в превью карточки.
	PreviewMaxLen = 34

	ellipsis = "…"
)

// Скобки всех четырёх видов вычищаются вместе с содержимым:
// ключевые слова для поисковой выдачи, не имя продукта.
//
//nolint:gochecknoglobals
var bracketPatterns = []*regexp.Regexp{
	regexp.MustCompile(`【.*?】`),
	regexp.MustCompile(`（.*?）`),
	regexp.MustCompile(`\[.*?\]`),
	regexp.MustCompile(`\(.*?\)`),
}

//nolint:gochecknoglobals
var whitespaceRun = regexp.MustCompile(`[\s　]+`)

// separators отделяют название от хвоста листинга ("｜750ml" и т.п.).
//nolint:gochecknoglobals
var separators = []string{"｜", "|", "／", "/"}

// ServerVocabulary полный словарь промо-слов для серверной нормализации.
//
//nolint:gochecknoglobals
var ServerVocabulary = []string{
	"送料無料",
	"ギフト",
	"プレゼント",
	"贈り物",
	"ラッピング",
	"のし対応",
	"母の日",
	"父の日",
	"お中元",
	"お歳暮",
	"敬老の日",
	"クリスマス",
	"バレンタイン",
	"ホワイトデー",
	"お祝い",
	"内祝い",
}

// PreviewVocabulary сокращённый словарь клиентского превью.
//
//nolint:gochecknoglobals
var PreviewVocabulary = []string{
	"送料無料",
	"ギフト",
	"プレゼント",
	"ラッピング",
	"母の日",
	"父の日",
	"クリスマス",
}

type Normalizer struct {
	maxLen     int
	vocabulary []string
}

type Option func(*Normalizer)

func WithMaxLen(maxLen int) Option {
	return func(n *Normalizer) {
		n.maxLen = maxLen
	}
}

func WithVocabulary(vocabulary []string) Option {
	return func(n *Normalizer) {
		n.vocabulary = vocabulary
	}
}

// NewNormalizer возвращает серверную конфигурацию по умолчанию.
func NewNormalizer(opts ...Option) Normalizer {
	n := Normalizer{
		maxLen:     ServerMaxLen,
		vocabulary: ServerVocabulary,
	}

	for _, opt := range opts {
		opt(&n)
	}

	return n
}

// NewPreviewNormalizer конфигурация клиентского превью карточки.
func NewPreviewNormalizer() Normalizer {
	return NewNormalizer(
		WithMaxLen(PreviewMaxLen),
		WithVocabulary(PreviewVocabulary),
	)
}

// Normalize никогда не возвращает ошибку: пустой вход даёт пустую строку.
// Порядок шагов важен — каждый работает по результату предыдущего.
func (n Normalizer) Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	result := raw

	for _, pattern := range bracketPatterns {
		result = pattern.ReplaceAllString(result, "")
	}

	for _, word := range n.vocabulary {
		result = strings.ReplaceAll(result, word, "")
	}

	result = strings.TrimSpace(whitespaceRun.ReplaceAllString(result, " "))

	if idx := indexAnySeparator(result); idx >= 0 {
		result = strings.TrimSpace(result[:idx])
	}

	if runes := []rune(result); len(runes) > n.maxLen {
		result = string(runes[:n.maxLen]) + ellipsis
	}

	return result
}

func indexAnySeparator(s string) int {
	idx := -1

	for _, sep := range separators {
		if i := strings.Index(s, sep); i >= 0 && (idx < 0 || i < idx) {
			idx = i
		}
	}

	return idx
}
