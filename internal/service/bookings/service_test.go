package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meonjeo/ad-booking-service/internal/domain"
	storage "github.com/meonjeo/ad-booking-service/internal/infra/storage/booking"
	"github.com/meonjeo/ad-booking-service/internal/integrations/productservice"
	"github.com/meonjeo/ad-booking-service/internal/service/bookings/models"
)

// in-memory реализация BookingRepository
type fakeRepo struct {
	bookings map[int64]*domain.Booking
	nextID   int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[int64]*domain.Booking)}
}

func (r *fakeRepo) add(b *domain.Booking) *domain.Booking {
	r.nextID++
	stored := *b
	stored.ID = r.nextID
	r.bookings[stored.ID] = &stored
	return &stored
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, storage.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) FindOverlapping(_ context.Context, slot domain.SlotID, start, end time.Time, excludeID int64) ([]*domain.Booking, error) {
	var found []*domain.Booking
	for _, b := range r.bookings {
		if b.Slot != slot || b.ID == excludeID || !b.IsBlocking() {
			continue
		}
		if b.Overlaps(start, end) {
			found = append(found, b)
		}
	}
	return found, nil
}

func (r *fakeRepo) GetBySellerWithFilter(_ context.Context, filter domain.SellerBookingsFilter) ([]*domain.Booking, error) {
	var found []*domain.Booking
	for _, b := range r.bookings {
		if b.SellerID != filter.SellerID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		found = append(found, b)
	}
	return found, nil
}

func (r *fakeRepo) GetWithFilter(_ context.Context, filter domain.AdminBookingsFilter) ([]*domain.Booking, error) {
	var found []*domain.Booking
	for _, b := range r.bookings {
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.SlotType != nil && b.Slot.Type != *filter.SlotType {
			continue
		}
		if filter.SellerID != nil && b.SellerID != *filter.SellerID {
			continue
		}
		found = append(found, b)
	}
	if filter.Limit > 0 && len(found) > filter.Limit {
		found = found[:filter.Limit]
	}
	return found, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := r.bookings[id]
	if !ok {
		return storage.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (r *fakeRepo) Cancel(_ context.Context, id int64, reason string) error {
	b, ok := r.bookings[id]
	if !ok {
		return storage.ErrBookingNotFound
	}
	now := time.Now()
	b.Status = domain.StatusCancelled
	b.CancellationReason = &reason
	b.CancelledAt = &now
	return nil
}

func (r *fakeRepo) UpdateContent(_ context.Context, id int64, productID *int64, bannerImageURL *string, clearBanner bool) error {
	b, ok := r.bookings[id]
	if !ok {
		return storage.ErrBookingNotFound
	}
	if productID != nil {
		b.ProductID = *productID
	}
	if bannerImageURL != nil {
		b.BannerImageURL = bannerImageURL
	}
	if clearBanner {
		b.BannerImageURL = nil
	}
	return nil
}

func (r *fakeRepo) UpdateDates(_ context.Context, id int64, start, end time.Time) error {
	b, ok := r.bookings[id]
	if !ok {
		return storage.ErrBookingNotFound
	}
	b.StartDate = start
	b.EndDate = end
	return nil
}

func (r *fakeRepo) ActivateDue(_ context.Context, today time.Time) (int64, error) {
	var n int64
	for _, b := range r.bookings {
		if b.Status == domain.StatusReservedPaid && b.CoversDay(today) {
			b.Status = domain.StatusActive
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) CompleteDue(_ context.Context, today time.Time) (int64, error) {
	var n int64
	for _, b := range r.bookings {
		if b.Status == domain.StatusActive && domain.DateOnly(b.EndDate).Before(domain.DateOnly(today)) {
			b.Status = domain.StatusCompleted
			n++
		}
	}
	return n, nil
}

type fakeProductClient struct {
	products map[int64]*productservice.Product
}

func (c *fakeProductClient) GetProduct(_ context.Context, productID int64) (*productservice.Product, error) {
	product, ok := c.products[productID]
	if !ok {
		return nil, productservice.ErrProductNotFound
	}
	return product, nil
}

type fakeTxManager struct{}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

func newTestService(repo *fakeRepo, clock *fakeClock, policy Policy) *Service {
	products := &fakeProductClient{products: map[int64]*productservice.Product{
		100: {ID: 100, SellerID: 1, Name: "Serum", Category: "beauty"},
		101: {ID: 101, SellerID: 1, Name: "Toner", Category: "beauty"},
		200: {ID: 200, SellerID: 2, Name: "Headphones", Category: "electronics"},
	}}
	svc := NewService(repo, products, &fakeTxManager{}, policy, nopLogger{})
	return svc.WithTimeProvider(clock)
}

func unpaidBooking(repo *fakeRepo) *domain.Booking {
	return repo.add(&domain.Booking{
		Slot:      domain.SlotID{Type: domain.SlotMainRolling, Position: 3},
		SellerID:  1,
		ProductID: 100,
		StartDate: day("2025-09-01"),
		EndDate:   day("2025-09-07"),
		Price:     3000,
		Status:    domain.StatusReservedUnpaid,
	})
}

func TestConfirmPayment_Success(t *testing.T) {
	repo := newFakeRepo()
	clock := &fakeClock{now: day("2025-08-20")}
	svc := newTestService(repo, clock, Policy{})
	b := unpaidBooking(repo)

	err := svc.ConfirmPayment(context.Background(), &models.ConfirmPaymentRequest{BookingID: b.ID, Amount: 3000})
	require.NoError(t, err)

	stored, _ := repo.GetByID(context.Background(), b.ID)
	assert.Equal(t, domain.StatusReservedPaid, stored.Status)
}

func TestConfirmPayment_AmountMismatch(t *testing.T) {
	repo := newFakeRepo()
	clock := &fakeClock{now: day("2025-08-20")}
	svc := newTestService(repo, clock, Policy{})
	b := unpaidBooking(repo)

	err := svc.ConfirmPayment(context.Background(), &models.ConfirmPaymentRequest{BookingID: b.ID, Amount: 2500})
	assert.ErrorIs(t, err, ErrAmountMismatch)

	// статус не тронут
	stored, _ := repo.GetByID(context.Background(), b.ID)
	assert.Equal(t, domain.StatusReservedUnpaid, stored.Status)
}

func TestConfirmPayment_Idempotent(t *testing.T) {
	repo := newFakeRepo()
	clock := &fakeClock{now: day("2025-08-20")}
	svc := newTestService(repo, clock, Policy{})
	b := unpaidBooking(repo)

	req := &models.ConfirmPaymentRequest{BookingID: b.ID, Amount: 3000}
	require.NoError(t, svc.ConfirmPayment(context.Background(), req))
	// повторное уведомление не ошибка и ничего не меняет
	require.NoError(t, svc.ConfirmPayment(context.Background(), req))

	stored, _ := repo.GetByID(context.Background(), b.ID)
	assert.Equal(t, domain.StatusReservedPaid, stored.Status)
}

func TestConfirmPayment_ActivatesWhenPeriodStarted(t *testing.T) {
	repo := newFakeRepo()
	clock := &fakeClock{now: day("2025-09-03")}
	svc := newTestService(repo, clock, Policy{})
	b := unpaidBooking(repo)

	err := svc.ConfirmPayment(context.Background(), &models.ConfirmPaymentRequest{BookingID: b.ID, Amount: 3000})
	require.NoError(t, err)

	stored, _ := repo.GetByID(context.Background(), b.ID)
	assert.Equal(t, domain.StatusActive, stored.Status)
}

func TestConfirmPayment_RejectsCancelled(t *testing.T) {
	repo := newFakeRepo()
	clock := &fakeClock{now: day("2025-08-20")}
	svc := newTestService(repo, clock, Policy{})
	b := unpaidBooking(repo)
	repo.bookings[b.ID].Status = domain.StatusCancelled

	err := svc.ConfirmPayment(context.Background(), &models.ConfirmPaymentRequest{BookingID: b.ID, Amount: 3000})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestConfirmPayment_NotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeClock{now: day("2025-08-20")}, Policy{})

	err := svc.ConfirmPayment(context.Background(), &models.ConfirmPaymentRequest{BookingID: 42, Amount: 3000})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_BySeller(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeClock{now: day("2025-08-20")}, Policy{})
	b := unpaidBooking(repo)

	err := svc.Cancel(context.Background(), b.ID, &models.CancelBookingRequest{SellerID: 1, CancellationReason: "changed plans"})
	require.NoError(t, err)

	stored, _ := repo.GetByID(context.Background(), b.ID)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
	require.NotNil(t, stored.CancellationReason)
	assert.Equal(t, "changed plans", *stored.CancellationReason)
}

func TestCancel_ForeignBookingDenied(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeClock{now: day("2025-08-20")}, Policy{})
	b := unpaidBooking(repo)

	err := svc.Cancel(context.Background(), b.ID, &models.CancelBookingRequest{SellerID: 2})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_ActiveRejectedForSeller(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeClock{now: day("2025-09-03")}, Policy{})
	b := unpaidBooking(repo)
	repo.bookings[b.ID].Status = domain.StatusActive

	err := svc.Cancel(context.Background(), b.ID, &models.CancelBookingRequest{SellerID: 1})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAdminCancel_ActiveControlledByPolicy(t *testing.T) {
	repo := newFakeRepo()

	svc := newTestService(repo, &fakeClock{now: day("2025-09-03")}, Policy{AllowAdminCancelActive: false})
	b := unpaidBooking(repo)
	repo.bookings[b.ID].Status = domain.StatusActive

	err := svc.AdminCancel(context.Background(), b.ID, &models.AdminCancelRequest{Note: "policy violation"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	allowed := newTestService(repo, &fakeClock{now: day("2025-09-03")}, Policy{AllowAdminCancelActive: true})
	err = allowed.AdminCancel(context.Background(), b.ID, &models.AdminCancelRequest{Note: "policy violation"})
	require.NoError(t, err)

	stored, _ := repo.GetByID(context.Background(), b.ID)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
}

func TestAdminCancel_TerminalRejected(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeClock{now: day("2025-08-20")}, Policy{AllowAdminCancelActive: true})
	b := unpaidBooking(repo)
	repo.bookings[b.ID].Status = domain.StatusCompleted

	err := svc.AdminCancel(context.Background(), b.ID, &models.AdminCancelRequest{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdate_EditableOnly(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeClock{now: day("2025-08-20")}, Policy{})
	b := unpaidBooking(repo)

	newProduct := int64(101)
	resp, err := svc.Update(context.Background(), b.ID, &models.UpdateBookingRequest{SellerID: 1, ProductID: &newProduct})
	require.NoError(t, err)
	assert.Equal(t, int64(101), resp.ProductID)
	assert.True(t, resp.Editable)

	// после оплаты бронирование заморожено
	require.NoError(t, svc.ConfirmPayment(context.Background(), &models.ConfirmPaymentRequest{BookingID: b.ID, Amount: 3000}))

	_, err = svc.Update(context.Background(), b.ID, &models.UpdateBookingRequest{SellerID: 1, ProductID: &newProduct})
	assert.ErrorIs(t, err, ErrNotEditable)
}

func TestUpdate_ProductOwnershipRechecked(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeClock{now: day("2025-08-20")}, Policy{})
	b := unpaidBooking(repo)

	foreign := int64(200)
	_, err := svc.Update(context.Background(), b.ID, &models.UpdateBookingRequest{SellerID: 1, ProductID: &foreign})
	assert.ErrorIs(t, err, ErrNotOwner)

	missing := int64(999)
	_, err = svc.Update(context.Background(), b.ID, &models.UpdateBookingRequest{SellerID: 1, ProductID: &missing})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdate_BannerRules(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeClock{now: day("2025-08-20")}, Policy{})

	noBanner := repo.add(&domain.Booking{
		Slot:      domain.SlotID{Type: domain.SlotOrderComplete, Position: 1},
		SellerID:  1,
		ProductID: 100,
		StartDate: day("2025-09-01"),
		EndDate:   day("2025-09-07"),
		Status:    domain.StatusReservedUnpaid,
	})

	banner := "https://cdn.example/banner.png"
	_, err := svc.Update(context.Background(), noBanner.ID, &models.UpdateBookingRequest{SellerID: 1, BannerImageURL: &banner})
	assert.ErrorIs(t, err, ErrInvalidInput)

	withBanner := unpaidBooking(repo)
	resp, err := svc.Update(context.Background(), withBanner.ID, &models.UpdateBookingRequest{SellerID: 1, BannerImageURL: &banner})
	require.NoError(t, err)
	require.NotNil(t, resp.BannerImageURL)
	assert.Equal(t, banner, *resp.BannerImageURL)
}

func TestRelist_MovesToFreeRange(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeClock{now: day("2025-08-20")}, Policy{})
	b := unpaidBooking(repo)

	err := svc.Relist(context.Background(), b.ID, &models.RelistRequest{
		NewStartDate: day("2025-10-01"),
		NewEndDate:   day("2025-10-07"),
	})
	require.NoError(t, err)

	stored, _ := repo.GetByID(context.Background(), b.ID)
	assert.Equal(t, day("2025-10-01"), stored.StartDate)
	assert.Equal(t, day("2025-10-07"), stored.EndDate)
}

func TestRelist_ConflictRejected(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeClock{now: day("2025-08-20")}, Policy{})
	b := unpaidBooking(repo)

	// другое бронирование занимает октябрь на том же слоте
	repo.add(&domain.Booking{
		Slot:      b.Slot,
		SellerID:  2,
		ProductID: 200,
		StartDate: day("2025-10-01"),
		EndDate:   day("2025-10-07"),
		Status:    domain.StatusReservedPaid,
	})

	err := svc.Relist(context.Background(), b.ID, &models.RelistRequest{
		NewStartDate: day("2025-10-05"),
		NewEndDate:   day("2025-10-12"),
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestRelist_OwnRangeAllowed(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeClock{now: day("2025-08-20")}, Policy{})
	b := unpaidBooking(repo)

	// сдвиг на диапазон, пересекающийся со старым собственным - не конфликт
	err := svc.Relist(context.Background(), b.ID, &models.RelistRequest{
		NewStartDate: day("2025-09-03"),
		NewEndDate:   day("2025-09-09"),
	})
	assert.NoError(t, err)
}

func TestGetByID_AccessControl(t *testing.T) {
	repo := newFakeRepo()
	clock := &fakeClock{now: day("2025-08-25")}
	svc := newTestService(repo, clock, Policy{})
	b := unpaidBooking(repo)

	resp, err := svc.GetByID(context.Background(), b.ID, 1, false)
	require.NoError(t, err)
	assert.Equal(t, 7, resp.DaysUntilStart)
	assert.True(t, resp.Editable)

	_, err = svc.GetByID(context.Background(), b.ID, 2, false)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// администратор видит чужое бронирование
	_, err = svc.GetByID(context.Background(), b.ID, 2, true)
	assert.NoError(t, err)
}

func TestSweep_Converges(t *testing.T) {
	repo := newFakeRepo()
	clock := &fakeClock{now: day("2025-09-01")}
	svc := newTestService(repo, clock, Policy{})

	paid := repo.add(&domain.Booking{
		Slot:      domain.SlotID{Type: domain.SlotMainRolling, Position: 1},
		SellerID:  1,
		ProductID: 100,
		StartDate: day("2025-09-01"),
		EndDate:   day("2025-09-03"),
		Status:    domain.StatusReservedPaid,
	})

	activated, completed, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), activated)
	assert.Equal(t, int64(0), completed)

	stored, _ := repo.GetByID(context.Background(), paid.ID)
	assert.Equal(t, domain.StatusActive, stored.Status)

	// повторный проход ничего не меняет
	activated, completed, err = svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, activated)
	assert.Zero(t, completed)

	// период закончился - бронирование завершается
	clock.now = day("2025-09-04")
	activated, completed, err = svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), activated)
	assert.Equal(t, int64(1), completed)

	stored, _ = repo.GetByID(context.Background(), paid.ID)
	assert.Equal(t, domain.StatusCompleted, stored.Status)
}

func TestAdminList_ClampsPageSize(t *testing.T) {
	req := &models.AdminListRequest{Limit: 1000, Offset: -5}
	filter, err := req.ToDomainFilter()
	require.NoError(t, err)
	assert.Equal(t, domain.MaxAdminPageSize, filter.Limit)
	assert.Equal(t, 0, filter.Offset)

	req = &models.AdminListRequest{}
	filter, err = req.ToDomainFilter()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAdminPageSize, filter.Limit)
}
