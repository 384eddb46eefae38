package create_booking

import (
	"time"

	"github.com/meonjeo/ad-booking-service/internal/domain"
	createBooking "github.com/meonjeo/ad-booking-service/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ProductID int64  `json:"productId"`
	SlotType  string `json:"slotType"`
	Position  int    `json:"position"`
	Category  string `json:"category,omitempty"`
	StartDate string `json:"startDate"` // "2025-09-01"
	EndDate   string `json:"endDate"`   // "2025-09-07"

	BannerImageURL *string `json:"bannerImageUrl,omitempty"`
	Title          *string `json:"title,omitempty"`
	Description    *string `json:"description,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        int64  `json:"id"`
	SellerID  int64  `json:"sellerId"`
	ProductID int64  `json:"productId"`
	SlotType  string `json:"slotType"`
	Position  int    `json:"position"`
	Category  string `json:"category,omitempty"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Price     int64  `json:"price"`
	Status    string `json:"status"`

	BannerImageURL *string `json:"bannerImageUrl,omitempty"`
	Title          *string `json:"title,omitempty"`
	Description    *string `json:"description,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(sellerID int64) (*createBooking.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		SellerID:       sellerID,
		ProductID:      r.ProductID,
		SlotType:       domain.SlotType(r.SlotType),
		Position:       r.Position,
		Category:       r.Category,
		StartDate:      startDate,
		EndDate:        endDate,
		BannerImageURL: r.BannerImageURL,
		Title:          r.Title,
		Description:    r.Description,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:             resp.ID,
		SellerID:       resp.SellerID,
		ProductID:      resp.ProductID,
		SlotType:       string(resp.SlotType),
		Position:       resp.Position,
		Category:       resp.Category,
		StartDate:      resp.StartDate.Format(domain.DateFormat),
		EndDate:        resp.EndDate.Format(domain.DateFormat),
		Price:          resp.Price,
		Status:         resp.Status,
		BannerImageURL: resp.BannerImageURL,
		Title:          resp.Title,
		Description:    resp.Description,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
