package serving

import (
	"time"

	"github.com/meonjeo/ad-booking-service/internal/domain"
)

// Сколько объявлений на категорию отдаётся по умолчанию в общей подборке
const defaultPerCategory = 2

// ServeRequest запрос рекламы для одной позиции слота.
// Day опционален, по умолчанию берётся текущая дата.
type ServeRequest struct {
	SlotType domain.SlotType
	Position int
	Category string
	Day      *time.Time
}

// ServeFilledRequest запрос всех позиций типа слота с заполнением пустых
type ServeFilledRequest struct {
	SlotType domain.SlotType
	Category string
	Day      *time.Time
}

// ServedAd одно объявление на витрине.
// House=true означает заполняющий баннер без продавца за ним.
type ServedAd struct {
	Position    int     `json:"position"`
	House       bool    `json:"house"`
	BookingID   *int64  `json:"bookingId,omitempty"`
	ProductID   *int64  `json:"productId,omitempty"`
	Category    string  `json:"category,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ServeResponse все позиции одного типа слота на день
type ServeResponse struct {
	SlotType string     `json:"slotType"`
	Category string     `json:"category,omitempty"`
	Day      string     `json:"day"`
	Ads      []ServedAd `json:"ads"`
}

// CategorySample подборка объявлений одной категории
type CategorySample struct {
	Category string     `json:"category"`
	Ads      []ServedAd `json:"ads"`
}

// OverallSample случайная подборка по всем категориям для главной страницы
type OverallSample struct {
	Day        string           `json:"day"`
	Categories []CategorySample `json:"categories"`
}

// fromBooking конвертирует активное бронирование в объявление
func fromBooking(b *domain.Booking) ServedAd {
	ad := ServedAd{
		Position:    b.Slot.Position,
		House:       false,
		BookingID:   &b.ID,
		ProductID:   &b.ProductID,
		Category:    b.Slot.Category,
		Title:       b.Title,
		Description: b.Description,
	}
	if domain.UsesBanner(b.Slot.Type) {
		ad.ImageURL = b.BannerImageURL
	}
	return ad
}

// houseAd строит заполняющее объявление для позиции
func houseAd(position int, category string, imageURL string) ServedAd {
	ad := ServedAd{
		Position: position,
		House:    true,
		Category: category,
	}
	if imageURL != "" {
		ad.ImageURL = &imageURL
	}
	return ad
}
