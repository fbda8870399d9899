package geometry

import "strings"

// ============================================================
// Roman numerals
// ============================================================

var romanValues = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// Roman переводит положительное число в римскую запись.
// Для нуля и отрицательных возвращает пустую строку.
func Roman(n int) string {
	if n <= 0 {
		return ""
	}

	var b strings.Builder
	for _, rv := range romanValues {
		for n >= rv.value {
			b.WriteString(rv.symbol)
			n -= rv.value
		}
	}
	return b.String()
}
