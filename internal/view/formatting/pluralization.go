package formatting

// plural выбирает форму слова для числа: одна, несколько, много
func plural(count int, one, few, many string) string {
	if count < 0 {
		count = -count
	}
	if count%10 == 1 && count%100 != 11 {
		return one
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return few
	}
	return many
}

// PluralizeNights возвращает правильное склонение слова "ночь"
func PluralizeNights(count int) string {
	return plural(count, "ночь", "ночи", "ночей")
}

// PluralizeGuests возвращает правильное склонение слова "гость"
func PluralizeGuests(count int) string {
	return plural(count, "гость", "гостя", "гостей")
}

// PluralizeRooms возвращает правильное склонение слова "номер"
func PluralizeRooms(count int) string {
	return plural(count, "номер", "номера", "номеров")
}

// PluralizeBookings возвращает правильное склонение слова "бронь"
func PluralizeBookings(count int) string {
	return plural(count, "бронь", "брони", "броней")
}
