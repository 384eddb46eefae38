package serving

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meonjeo/ad-booking-service/internal/domain"
	"github.com/meonjeo/ad-booking-service/internal/houseads"
	"github.com/meonjeo/ad-booking-service/pkg/ptr"
)

type fakeRepo struct {
	bookings []*domain.Booking
}

func (r *fakeRepo) FindServableFor(_ context.Context, slotType domain.SlotType, category *string, day time.Time) ([]*domain.Booking, error) {
	var found []*domain.Booking
	for _, b := range r.bookings {
		if b.Slot.Type != slotType {
			continue
		}
		if category != nil && b.Slot.Category != *category {
			continue
		}
		servable := b.Status == domain.StatusActive || b.Status == domain.StatusReservedPaid
		if servable && b.CoversDay(day) {
			found = append(found, b)
		}
	}
	return found, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func day(s string) time.Time {
	d, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return d
}

func activeBooking(id int64, slot domain.SlotID, banner *string) *domain.Booking {
	return &domain.Booking{
		ID:             id,
		Slot:           slot,
		SellerID:       1,
		ProductID:      id * 100,
		StartDate:      day("2025-09-01"),
		EndDate:        day("2025-09-07"),
		Status:         domain.StatusActive,
		BannerImageURL: banner,
	}
}

func newTestService(repo *fakeRepo) *Service {
	house := houseads.New(
		[]string{"https://cdn.example/house/rolling.png"},
		[]string{"https://cdn.example/house/side.png"},
		[]string{"https://cdn.example/house/category.png"},
		[]string{"https://cdn.example/house/order.png"},
	)
	svc := NewService(repo, house, []string{"beauty", "electronics"}, nopLogger{})
	return svc.WithTimeProvider(&fakeClock{now: day("2025-09-03")})
}

func TestServe_ReturnsActiveAd(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.Booking{
		activeBooking(1, domain.SlotID{Type: domain.SlotMainRolling, Position: 3}, ptr.Ptr("https://cdn.example/ad.png")),
	}}
	svc := newTestService(repo)

	ad, err := svc.Serve(context.Background(), &ServeRequest{SlotType: domain.SlotMainRolling, Position: 3})
	require.NoError(t, err)

	assert.False(t, ad.House)
	require.NotNil(t, ad.BookingID)
	assert.Equal(t, int64(1), *ad.BookingID)
	require.NotNil(t, ad.ImageURL)
	assert.Equal(t, "https://cdn.example/ad.png", *ad.ImageURL)
}

func TestServe_EmptyPositionGetsHouseAd(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	ad, err := svc.Serve(context.Background(), &ServeRequest{SlotType: domain.SlotMainRolling, Position: 5})
	require.NoError(t, err)

	assert.True(t, ad.House)
	assert.Nil(t, ad.BookingID)
	require.NotNil(t, ad.ImageURL)
	assert.Equal(t, "https://cdn.example/house/rolling.png", *ad.ImageURL)
}

func TestServe_ExpiredAdNotServed(t *testing.T) {
	expired := activeBooking(1, domain.SlotID{Type: domain.SlotMainRolling, Position: 3}, ptr.Ptr("https://cdn.example/ad.png"))
	expired.EndDate = day("2025-09-02")
	svc := newTestService(&fakeRepo{bookings: []*domain.Booking{expired}})

	ad, err := svc.Serve(context.Background(), &ServeRequest{SlotType: domain.SlotMainRolling, Position: 3})
	require.NoError(t, err)
	assert.True(t, ad.House)
}

func TestServe_InvalidSlot(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	_, err := svc.Serve(context.Background(), &ServeRequest{SlotType: domain.SlotMainRolling, Position: 11})
	assert.ErrorIs(t, err, ErrInvalidSlotKind)

	_, err = svc.Serve(context.Background(), &ServeRequest{SlotType: domain.SlotCategoryTop, Position: 1})
	assert.ErrorIs(t, err, ErrInvalidSlotKind)
}

func TestServeFilled_BackfillsEveryPosition(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.Booking{
		activeBooking(1, domain.SlotID{Type: domain.SlotMainSide, Position: 2}, ptr.Ptr("https://cdn.example/ad.png")),
	}}
	svc := newTestService(repo)

	resp, err := svc.ServeFilled(context.Background(), &ServeFilledRequest{SlotType: domain.SlotMainSide})
	require.NoError(t, err)

	require.Len(t, resp.Ads, domain.Capacity(domain.SlotMainSide))
	assert.True(t, resp.Ads[0].House)
	assert.False(t, resp.Ads[1].House)
	assert.True(t, resp.Ads[2].House)
	assert.Equal(t, 1, resp.Ads[0].Position)
	assert.Equal(t, 2, resp.Ads[1].Position)
	assert.Equal(t, 3, resp.Ads[2].Position)
	assert.Equal(t, "2025-09-03", resp.Day)
}

func TestServeFilled_CategoryPartition(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.Booking{
		activeBooking(1, domain.SlotID{Type: domain.SlotCategoryTop, Position: 1, Category: "beauty"}, nil),
		activeBooking(2, domain.SlotID{Type: domain.SlotCategoryTop, Position: 1, Category: "electronics"}, nil),
	}}
	svc := newTestService(repo)

	resp, err := svc.ServeFilled(context.Background(), &ServeFilledRequest{SlotType: domain.SlotCategoryTop, Category: "beauty"})
	require.NoError(t, err)

	require.Len(t, resp.Ads, domain.Capacity(domain.SlotCategoryTop))
	assert.False(t, resp.Ads[0].House)
	require.NotNil(t, resp.Ads[0].BookingID)
	assert.Equal(t, int64(1), *resp.Ads[0].BookingID)
	for _, ad := range resp.Ads[1:] {
		assert.True(t, ad.House)
	}
}

func TestSampleOverall_BackfillsWithHouseAds(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.Booking{
		activeBooking(1, domain.SlotID{Type: domain.SlotCategoryTop, Position: 1, Category: "beauty"}, nil),
	}}
	svc := newTestService(repo)

	sample, err := svc.SampleOverall(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, sample.Categories, 2)

	beauty := sample.Categories[0]
	assert.Equal(t, "beauty", beauty.Category)
	require.Len(t, beauty.Ads, 2)

	var real, house int
	for _, ad := range beauty.Ads {
		if ad.House {
			house++
		} else {
			real++
		}
	}
	assert.Equal(t, 1, real)
	assert.Equal(t, 1, house)

	// пустая категория целиком добивается хаус-баннерами
	electronics := sample.Categories[1]
	require.Len(t, electronics.Ads, 2)
	for _, ad := range electronics.Ads {
		assert.True(t, ad.House)
	}
}

func TestSampleOverall_RespectsPerCategoryLimit(t *testing.T) {
	repo := &fakeRepo{}
	for i := int64(1); i <= 5; i++ {
		repo.bookings = append(repo.bookings,
			activeBooking(i, domain.SlotID{Type: domain.SlotCategoryTop, Position: int(i), Category: "beauty"}, nil))
	}
	svc := newTestService(repo)

	sample, err := svc.SampleOverall(context.Background(), 3)
	require.NoError(t, err)

	beauty := sample.Categories[0]
	require.Len(t, beauty.Ads, 3)
	for _, ad := range beauty.Ads {
		assert.False(t, ad.House)
	}
}
