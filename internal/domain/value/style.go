package value

import "strings"

// Style закрытый набор категорий вина.
type Style string

const (
	StyleRed       Style = "red"
	StyleWhite     Style = "white"
	StyleSparkling Style = "sparkling"
	StyleRose      Style = "rose"
	StyleOther     Style = "other"
)

func (s Style) String() string {
	return string(s)
}

func (s Style) Valid() bool {
	switch s {
	case StyleRed, StyleWhite, StyleSparkling, StyleRose, StyleOther:
		return true
	}
	return false
}

// StyleFromName определяет стиль по названию товара. Порядок проверок
// важен: "スパークリングロゼ" должен попасть в sparkling.
func StyleFromName(itemName string) Style {
	lower := strings.ToLower(itemName)

	switch {
	case strings.Contains(itemName, "スパークリング"),
		strings.Contains(itemName, "シャンパン"),
		strings.Contains(lower, "sparkling"):
		return StyleSparkling
	case strings.Contains(itemName, "ロゼ"), strings.Contains(lower, "rose"):
		return StyleRose
	case strings.Contains(itemName, "白"), strings.Contains(itemName, "ホワイト"):
		return StyleWhite
	case strings.Contains(itemName, "赤"), strings.Contains(itemName, "レッド"):
		return StyleRed
	}

	return StyleOther
}
