package get_availability

import (
	"time"

	"github.com/meonjeo/ad-booking-service/internal/domain"
)

// Максимальная ширина запрашиваемого периода (календарь на квартал)
const maxRangeDays = 92

// Request модель запроса доступности слотов
type Request struct {
	SlotType domain.SlotType
	Category string // обязательна для CATEGORY_TOP
	From     time.Time
	To       time.Time
}

// DayAvailability доступность одной позиции на один день
type DayAvailability struct {
	Date      time.Time
	Available bool
}

// PositionAvailability доступность одной позиции на весь период
type PositionAvailability struct {
	Position int
	Days     []DayAvailability
}

// Response модель ответа с доступностью по позициям.
// DisabledDates - дни, в которые не свободна ни одна позиция
// (для календаря на витрине).
type Response struct {
	SlotType      domain.SlotType
	Category      string
	From          time.Time
	To            time.Time
	Positions     []PositionAvailability
	DisabledDates []time.Time
}
