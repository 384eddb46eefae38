package serving

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/meonjeo/ad-booking-service/internal/domain"
)

// Service отдаёт рекламу на витрину.
// Пустые позиции всегда заполняются собственными баннерами,
// витрина никогда не видит дыру в слоте.
type Service struct {
	bookingRepo  BookingRepository
	houseAds     HouseAdProvider
	categories   []string
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса выдачи.
// categories - список категорий витрины для общей подборки.
func NewService(
	bookingRepo BookingRepository,
	houseAds HouseAdProvider,
	categories []string,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		houseAds:     houseAds,
		categories:   categories,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider заменяет провайдер времени (для тестирования)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Serve возвращает объявление для одной позиции слота.
// Если позиция не продана на запрошенный день, возвращается заполняющий баннер.
func (s *Service) Serve(ctx context.Context, req *ServeRequest) (*ServedAd, error) {
	slot := domain.SlotID{Type: req.SlotType, Position: req.Position, Category: req.Category}
	if err := slot.Validate(); err != nil {
		s.logger.Warn("Serve: invalid slot %s: %v", slot, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSlotKind, err)
	}

	day := s.resolveDay(req.Day)

	bookings, err := s.servable(ctx, req.SlotType, req.Category, day)
	if err != nil {
		return nil, err
	}

	for _, b := range bookings {
		if b.Slot.Position == req.Position {
			ad := fromBooking(b)
			return &ad, nil
		}
	}

	ad := houseAd(req.Position, req.Category, s.houseFor(req.SlotType, req.Category))
	return &ad, nil
}

// ServeFilled возвращает все позиции типа слота на день,
// заполняя непроданные позиции собственными баннерами
func (s *Service) ServeFilled(ctx context.Context, req *ServeFilledRequest) (*ServeResponse, error) {
	if _, err := domain.ParseSlotType(string(req.SlotType)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSlotKind, err)
	}
	if domain.RequiresCategory(req.SlotType) && req.Category == "" {
		return nil, fmt.Errorf("%w: %s requires a category", ErrInvalidSlotKind, req.SlotType)
	}
	if !domain.RequiresCategory(req.SlotType) && req.Category != "" {
		return nil, fmt.Errorf("%w: %s does not take a category", ErrInvalidSlotKind, req.SlotType)
	}

	day := s.resolveDay(req.Day)

	bookings, err := s.servable(ctx, req.SlotType, req.Category, day)
	if err != nil {
		return nil, err
	}

	byPosition := make(map[int]*domain.Booking, len(bookings))
	for _, b := range bookings {
		byPosition[b.Slot.Position] = b
	}

	capacity := domain.Capacity(req.SlotType)
	ads := make([]ServedAd, 0, capacity)
	for pos := 1; pos <= capacity; pos++ {
		if b, ok := byPosition[pos]; ok {
			ads = append(ads, fromBooking(b))
			continue
		}
		ads = append(ads, houseAd(pos, req.Category, s.houseFor(req.SlotType, req.Category)))
	}

	return &ServeResponse{
		SlotType: string(req.SlotType),
		Category: req.Category,
		Day:      day.Format(domain.DateFormat),
		Ads:      ads,
	}, nil
}

// SampleOverall собирает случайную подборку категорийной рекламы
// для главной страницы: perCategory объявлений из каждой категории,
// недостающие добираются собственными баннерами
func (s *Service) SampleOverall(ctx context.Context, perCategory int) (*OverallSample, error) {
	if perCategory <= 0 {
		perCategory = defaultPerCategory
	}

	day := s.resolveDay(nil)

	sample := &OverallSample{
		Day:        day.Format(domain.DateFormat),
		Categories: make([]CategorySample, 0, len(s.categories)),
	}

	for _, category := range s.categories {
		bookings, err := s.servable(ctx, domain.SlotCategoryTop, category, day)
		if err != nil {
			return nil, err
		}

		rand.Shuffle(len(bookings), func(i, j int) {
			bookings[i], bookings[j] = bookings[j], bookings[i]
		})
		if len(bookings) > perCategory {
			bookings = bookings[:perCategory]
		}

		ads := make([]ServedAd, 0, perCategory)
		for _, b := range bookings {
			ads = append(ads, fromBooking(b))
		}
		for pos := len(ads) + 1; len(ads) < perCategory; pos++ {
			ads = append(ads, houseAd(pos, category, s.houseAds.HouseForCategory(category)))
		}

		sample.Categories = append(sample.Categories, CategorySample{Category: category, Ads: ads})
	}

	return sample, nil
}

// servable загружает бронирования, показываемые в слоте в заданный день
func (s *Service) servable(ctx context.Context, slotType domain.SlotType, category string, day time.Time) ([]*domain.Booking, error) {
	var categoryFilter *string
	if category != "" {
		categoryFilter = &category
	}

	bookings, err := s.bookingRepo.FindServableFor(ctx, slotType, categoryFilter, day)
	if err != nil {
		s.logger.Error("serving: failed to load servable bookings for %s: %v", slotType, err)
		return nil, fmt.Errorf("%w: failed to load bookings: %v", ErrInternal, err)
	}
	return bookings, nil
}

func (s *Service) houseFor(slotType domain.SlotType, category string) string {
	if slotType == domain.SlotCategoryTop && category != "" {
		if url := s.houseAds.HouseForCategory(category); url != "" {
			return url
		}
	}
	return s.houseAds.HouseFor(slotType)
}

func (s *Service) resolveDay(day *time.Time) time.Time {
	if day != nil && !day.IsZero() {
		return domain.DateOnly(*day)
	}
	return domain.DateOnly(s.timeProvider.Now())
}
