package get_availability

import (
	"github.com/meonjeo/ad-booking-service/internal/domain"
	getAvailability "github.com/meonjeo/ad-booking-service/internal/usecase/get_availability"
)

// DayAvailability HTTP модель доступности позиции на день
type DayAvailability struct {
	Date      string `json:"date"`
	Available bool   `json:"available"`
}

// PositionAvailability HTTP модель доступности позиции на период
type PositionAvailability struct {
	Position int               `json:"position"`
	Days     []DayAvailability `json:"days"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	SlotType      string                 `json:"slotType"`
	Category      string                 `json:"category,omitempty"`
	From          string                 `json:"from"`
	To            string                 `json:"to"`
	Positions     []PositionAvailability `json:"positions"`
	DisabledDates []string               `json:"disabledDates"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		SlotType:      string(resp.SlotType),
		Category:      resp.Category,
		From:          resp.From.Format(domain.DateFormat),
		To:            resp.To.Format(domain.DateFormat),
		Positions:     make([]PositionAvailability, 0, len(resp.Positions)),
		DisabledDates: make([]string, 0, len(resp.DisabledDates)),
	}

	for _, pos := range resp.Positions {
		days := make([]DayAvailability, 0, len(pos.Days))
		for _, day := range pos.Days {
			days = append(days, DayAvailability{
				Date:      day.Date.Format(domain.DateFormat),
				Available: day.Available,
			})
		}
		out.Positions = append(out.Positions, PositionAvailability{
			Position: pos.Position,
			Days:     days,
		})
	}

	for _, date := range resp.DisabledDates {
		out.DisabledDates = append(out.DisabledDates, date.Format(domain.DateFormat))
	}

	return out
}
