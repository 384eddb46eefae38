package models

import (
	"errors"
	"time"

	"github.com/meonjeo/ad-booking-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ConfirmPaymentRequest уведомление об оплате от платёжного шлюза
type ConfirmPaymentRequest struct {
	BookingID int64 `json:"bookingId"`
	Amount    int64 `json:"amount"`
}

// CancelBookingRequest запрос на отмену бронирования селлером
type CancelBookingRequest struct {
	SellerID           int64  `json:"sellerId"`
	CancellationReason string `json:"cancellationReason"`
}

// AdminCancelRequest запрос на отмену бронирования администратором
type AdminCancelRequest struct {
	Note string `json:"note"`
}

// UpdateBookingRequest запрос на изменение неоплаченного бронирования
type UpdateBookingRequest struct {
	SellerID       int64   `json:"sellerId"`
	ProductID      *int64  `json:"productId,omitempty"`
	BannerImageURL *string `json:"bannerImageUrl,omitempty"`
	ClearBanner    bool    `json:"clearBanner,omitempty"`
}

// RelistRequest запрос администратора на перенос дат бронирования
type RelistRequest struct {
	NewStartDate time.Time `json:"newStartDate"`
	NewEndDate   time.Time `json:"newEndDate"`
}

// GetSellerBookingsRequest запрос на получение бронирований селлера
type GetSellerBookingsRequest struct {
	SellerID int64      `json:"sellerId"`
	Status   *string    `json:"status,omitempty"`
	From     *time.Time `json:"from,omitempty"`
	To       *time.Time `json:"to,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetSellerBookingsRequest) ToDomainFilter() (domain.SellerBookingsFilter, error) {
	filter := domain.SellerBookingsFilter{
		SellerID: r.SellerID,
		From:     r.From,
		To:       r.To,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// AdminListRequest запрос администратора на список бронирований
type AdminListRequest struct {
	Status   *string `json:"status,omitempty"`
	SlotType *string `json:"slotType,omitempty"`
	Category *string `json:"category,omitempty"`
	SellerID *int64  `json:"sellerId,omitempty"`
	Limit    int     `json:"limit,omitempty"`
	Offset   int     `json:"offset,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр.
// Лимит страницы ограничивается сверху, нулевой лимит заменяется дефолтным.
func (r *AdminListRequest) ToDomainFilter() (domain.AdminBookingsFilter, error) {
	filter := domain.AdminBookingsFilter{
		SellerID: r.SellerID,
		Category: r.Category,
		Limit:    r.Limit,
		Offset:   r.Offset,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if r.SlotType != nil {
		slotType, err := domain.ParseSlotType(*r.SlotType)
		if err != nil {
			return filter, err
		}
		filter.SlotType = &slotType
	}

	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultAdminPageSize
	}
	if filter.Limit > domain.MaxAdminPageSize {
		filter.Limit = domain.MaxAdminPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        int64  `json:"id"`
	SellerID  int64  `json:"sellerId"`
	ProductID int64  `json:"productId"`
	SlotType  string `json:"slotType"`
	Position  int    `json:"position"`
	Category  string `json:"category,omitempty"`
	StartDate string `json:"startDate"` // "2025-09-01"
	EndDate   string `json:"endDate"`
	Price     int64  `json:"price"`
	Status    string `json:"status"`

	BannerImageURL *string `json:"bannerImageUrl,omitempty"`
	Title          *string `json:"title,omitempty"`
	Description    *string `json:"description,omitempty"`

	// Производные поля для личного кабинета селлера
	Editable       bool `json:"editable"`
	DaysUntilStart int  `json:"daysUntilStart"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO.
// today нужен для расчёта DaysUntilStart.
func FromDomainBooking(b *domain.Booking, today time.Time) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		SellerID:           b.SellerID,
		ProductID:          b.ProductID,
		SlotType:           string(b.Slot.Type),
		Position:           b.Slot.Position,
		Category:           b.Slot.Category,
		StartDate:          b.StartDate.Format(domain.DateFormat),
		EndDate:            b.EndDate.Format(domain.DateFormat),
		Price:              b.Price,
		Status:             string(b.Status),
		BannerImageURL:     b.BannerImageURL,
		Title:              b.Title,
		Description:        b.Description,
		Editable:           b.Editable(),
		DaysUntilStart:     b.DaysUntilStart(today),
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, today time.Time) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, today); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusReservedUnpaid,
		domain.StatusReservedPaid,
		domain.StatusActive,
		domain.StatusCompleted,
		domain.StatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
