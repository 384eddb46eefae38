package get_availability

import (
	"time"

	"github.com/meonjeo/ad-booking-service/internal/domain"
)

// buildAvailability раскладывает блокирующие бронирования по позициям
// и проходит диапазон день за днем. Бронирования уже отфильтрованы
// запросом по пересечению с [from, to].
func buildAvailability(slotType domain.SlotType, bookings []*domain.Booking, from, to time.Time) ([]PositionAvailability, []time.Time) {
	capacity := domain.Capacity(slotType)

	byPosition := make(map[int][]*domain.Booking, capacity)
	for _, b := range bookings {
		byPosition[b.Slot.Position] = append(byPosition[b.Slot.Position], b)
	}

	days := int(to.Sub(from).Hours()/24) + 1

	positions := make([]PositionAvailability, 0, capacity)
	// freeCount[i] - сколько позиций свободно в i-й день диапазона
	freeCount := make([]int, days)

	for pos := 1; pos <= capacity; pos++ {
		pa := PositionAvailability{
			Position: pos,
			Days:     make([]DayAvailability, 0, days),
		}

		for i := 0; i < days; i++ {
			day := from.AddDate(0, 0, i)
			available := true
			for _, b := range byPosition[pos] {
				if b.CoversDay(day) {
					available = false
					break
				}
			}
			if available {
				freeCount[i]++
			}
			pa.Days = append(pa.Days, DayAvailability{Date: day, Available: available})
		}

		positions = append(positions, pa)
	}

	disabled := make([]time.Time, 0)
	for i := 0; i < days; i++ {
		if freeCount[i] == 0 {
			disabled = append(disabled, from.AddDate(0, 0, i))
		}
	}

	return positions, disabled
}
