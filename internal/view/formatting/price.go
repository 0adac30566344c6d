package formatting

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const currencySign = "₹"

// FormatPrice форматирует сумму в рупиях, дробная часть только если есть
func FormatPrice(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	whole := math.Floor(amount)
	fraction := math.Round((amount - whole) * 100)
	if fraction >= 100 {
		whole++
		fraction = 0
	}

	text := groupThousands(strconv.FormatInt(int64(whole), 10))
	if fraction > 0 {
		text = fmt.Sprintf("%s.%02d", text, int(fraction))
	}
	return sign + currencySign + text
}

// FormatPricePerNight форматирует цену за ночь
func FormatPricePerNight(amount float64) string {
	return FormatPrice(amount) + " / ночь"
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
