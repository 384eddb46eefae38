package create_booking

import (
	"time"

	"github.com/meonjeo/ad-booking-service/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	SellerID  int64           // ID селлера (из заголовка аутентификации)
	ProductID int64           // ID рекламируемого товара
	SlotType  domain.SlotType // Тип слота
	Position  int             // Позиция внутри типа
	Category  string          // Категория (только для CATEGORY_TOP)
	StartDate time.Time       // Первый день показа (включительно)
	EndDate   time.Time       // Последний день показа (включительно)

	BannerImageURL *string // Баннер (только MAIN_* слоты)
	Title          *string // Заголовок (опционально)
	Description    *string // Описание (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64     // ID созданного бронирования
	SellerID  int64     // ID селлера
	ProductID int64     // ID товара
	SlotType  domain.SlotType
	Position  int
	Category  string
	StartDate time.Time
	EndDate   time.Time
	Price     int64  // Стоимость размещения, KRW
	Status    string // Статус (всегда RESERVED_UNPAID для нового бронирования)

	BannerImageURL *string
	Title          *string
	Description    *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
