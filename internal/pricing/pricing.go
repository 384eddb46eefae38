// Package pricing детерминированный расчет стоимости размещения рекламы.
// Цена фиксируется в момент создания бронирования; подтверждение оплаты
// сверяет сумму с тем же расчетом, поэтому функция обязана быть стабильной.
package pricing

import "github.com/meonjeo/ad-booking-service/internal/domain"

// Базовые дневные ставки в KRW по типам слотов.
// Откалиброваны так, чтобы недельный пакет примерно совпадал с прайсом
// из продуктовой витрины (MAIN_ROLLING 7 дней ~ 15 000 KRW и т.д.).
var baseDailyRate = map[domain.SlotType]int64{
	domain.SlotMainRolling:   2100,
	domain.SlotMainSide:      1700,
	domain.SlotCategoryTop:   1150,
	domain.SlotOrderComplete: 700,
}

// Надбавка за первую позицию главных баннеров: +50%.
// Первая позиция видна без прокрутки карусели.
const premiumNumerator, premiumDenominator = 3, 2

// Price возвращает стоимость размещения в KRW.
// Для неизвестного типа или неположительной длительности возвращает 0,
// валидность слота проверяется каталогом до расчета цены.
func Price(slotType domain.SlotType, position int, durationDays int) int64 {
	rate, ok := baseDailyRate[slotType]
	if !ok || durationDays <= 0 {
		return 0
	}

	daily := rate
	if position == 1 && (slotType == domain.SlotMainRolling || slotType == domain.SlotMainSide) {
		daily = daily * premiumNumerator / premiumDenominator
	}

	return daily * int64(durationDays)
}
