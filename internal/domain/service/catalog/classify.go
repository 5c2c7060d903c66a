package catalog

import (
	"strings"

	"winedeck/internal/domain/value"
)

// tagVocabulary вкусовые теги, которые ищем прямо в названии товара.
//
//nolint:gochecknoglobals
var tagVocabulary = []string{
	"スモーキー",
	"ミネラル",
	"果実味",
	"樽香",
	"ビター",
	"フローラル",
	"すっきり",
	"濃厚",
	"軽やか",
	"辛口",
	"甘口",
}

// ExtractTags возвращает теги из фиксированного словаря, встречающиеся в
// названии, в порядке словаря.
func ExtractTags(itemName string) []string {
	if itemName == "" {
		return nil
	}

	var tags []string

	for _, tag := range tagVocabulary {
		if strings.Contains(itemName, tag) {
			tags = append(tags, tag)
		}
	}

	return tags
}

// ClassifyStyle см. value.StyleFromName; здесь только точка входа сидера.
func ClassifyStyle(itemName string) value.Style {
	return value.StyleFromName(itemName)
}
