package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/meonjeo/ad-booking-service/internal/domain"
	"github.com/meonjeo/ad-booking-service/pkg/dbmetrics"
	"github.com/meonjeo/ad-booking-service/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL для нарушения exclusion constraint
const pgExclusionViolation = "23P01"

var bookingColumns = []string{
	"id",
	"slot_type",
	"position",
	"category",
	"seller_id",
	"product_id",
	"start_date",
	"end_date",
	"price",
	"status",
	"banner_image_url",
	"title",
	"description",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований рекламных слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её:
// проверка пересечений и вставка должны выполняться в одной транзакции
// (см. usecase create_booking). Дополнительной страховкой служит
// exclusion constraint в БД: его срабатывание мапится в ErrSlotNotAvailable.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("ad_bookings").
		Columns(
			"slot_type",
			"position",
			"category",
			"seller_id",
			"product_id",
			"start_date",
			"end_date",
			"price",
			"status",
			"banner_image_url",
			"title",
			"description",
		).
		Values(
			b.Slot.Type,
			b.Slot.Position,
			b.Slot.Category,
			b.SellerID,
			b.ProductID,
			domain.DateOnly(b.StartDate),
			domain.DateOnly(b.EndDate),
			b.Price,
			b.Status,
			b.BannerImageURL,
			b.Title,
			b.Description,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isSlotConflict(err) {
			return nil, ErrSlotNotAvailable
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("ad_bookings").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку: подтверждение оплаты, отмена
	// и relist выполняют read-modify-write по одному бронированию
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// FindOverlapping возвращает все блокирующие бронирования слота,
// чей диапазон пересекается с [start, end] (границы включительно).
// excludeID > 0 исключает из проверки само бронирование (для relist).
// Внутри транзакции строки блокируются FOR UPDATE, чтобы конкурирующее
// создание на тот же слот дождалось завершения текущего.
func (r *Repository) FindOverlapping(ctx context.Context, slot domain.SlotID, start, end time.Time, excludeID int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("ad_bookings").
		Where(squirrel.Eq{
			"slot_type": slot.Type,
			"position":  slot.Position,
			"category":  slot.Category,
			"status":    statusStrings(domain.BlockingStatuses),
		}).
		Where(squirrel.LtOrEq{"start_date": domain.DateOnly(end)}).
		Where(squirrel.GtOrEq{"end_date": domain.DateOnly(start)}).
		OrderBy("start_date ASC")

	if excludeID > 0 {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// FindBlockingForRange возвращает блокирующие бронирования всех позиций
// типа слота (и категории), пересекающиеся с [from, to].
// Используется расчетом доступности: один запрос на весь диапазон
// вместо запроса на каждую пару (позиция, день).
func (r *Repository) FindBlockingForRange(ctx context.Context, slotType domain.SlotType, category string, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("ad_bookings").
		Where(squirrel.Eq{
			"slot_type": slotType,
			"category":  category,
			"status":    statusStrings(domain.BlockingStatuses),
		}).
		Where(squirrel.LtOrEq{"start_date": domain.DateOnly(to)}).
		Where(squirrel.GtOrEq{"end_date": domain.DateOnly(from)}).
		OrderBy("position ASC, start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindBlockingForRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindBlockingForRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// FindServableFor возвращает бронирования, которые должны показываться
// в указанный день для типа слота (category=nil значит все категории).
// Помимо ACTIVE учитывается RESERVED_PAID, чей диапазон покрывает день:
// sweep лишь оптимизация, выдача не должна от него зависеть.
func (r *Repository) FindServableFor(ctx context.Context, slotType domain.SlotType, category *string, day time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("ad_bookings").
		Where(squirrel.Eq{
			"slot_type": slotType,
			"status":    statusStrings(domain.ServableStatuses),
		}).
		Where(squirrel.LtOrEq{"start_date": domain.DateOnly(day)}).
		Where(squirrel.GtOrEq{"end_date": domain.DateOnly(day)}).
		OrderBy("position ASC")

	if category != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category": *category})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindServableFor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindServableFor - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetBySellerWithFilter возвращает историю бронирований селлера.
// Опциональные фильтры: статус, пересечение с периодом [From, To].
func (r *Repository) GetBySellerWithFilter(ctx context.Context, filter domain.SellerBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("ad_bookings").
		Where(squirrel.Eq{"seller_id": filter.SellerID}).
		OrderBy("id DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"end_date": domain.DateOnly(*filter.From)})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"start_date": domain.DateOnly(*filter.To)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySellerWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySellerWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetWithFilter возвращает бронирования для админского списка
// с фильтрацией по статусу, типу слота, категории и селлеру
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.AdminBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("ad_bookings").
		OrderBy("id DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.SlotType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"slot_type": *filter.SlotType})
	}
	if filter.Category != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category": *filter.Category})
	}
	if filter.SellerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"seller_id": *filter.SellerID})
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(filter.Offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("ad_bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// Cancel отменяет бронирование с указанием причины.
// Снятый статус сразу выводит диапазон дат из-под ограничения пересечений.
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("ad_bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return execExpectingRow(ctx, executor, query, args, "Cancel")
}

// UpdateContent обновляет продукт и/или баннер бронирования.
// nil означает «не трогать поле»; clearBanner сбрасывает баннер в NULL
// (слоты без баннера не должны хранить URL).
func (r *Repository) UpdateContent(ctx context.Context, id int64, productID *int64, bannerImageURL *string, clearBanner bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("ad_bookings").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if productID != nil {
		updateBuilder = updateBuilder.Set("product_id", *productID)
	}
	if clearBanner {
		updateBuilder = updateBuilder.Set("banner_image_url", nil)
	} else if bannerImageURL != nil {
		updateBuilder = updateBuilder.Set("banner_image_url", *bannerImageURL)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateContent - build update query: %v", ErrBuildQuery, err)
	}

	return execExpectingRow(ctx, executor, query, args, "UpdateContent")
}

// UpdateDates переносит диапазон дат бронирования (админский relist).
// Exclusion constraint БД отлавливает гонку с конкурентной вставкой.
func (r *Repository) UpdateDates(ctx context.Context, id int64, start, end time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("ad_bookings").
		Set("start_date", domain.DateOnly(start)).
		Set("end_date", domain.DateOnly(end)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateDates - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isSlotConflict(err) {
			return ErrSlotNotAvailable
		}
		return fmt.Errorf("%w: UpdateDates - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateDates - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// ActivateDue переводит RESERVED_PAID -> ACTIVE для бронирований,
// чей диапазон покрывает today. Возвращает число обновленных строк.
func (r *Repository) ActivateDue(ctx context.Context, today time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("ad_bookings").
		Set("status", domain.StatusActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusReservedPaid}).
		Where(squirrel.LtOrEq{"start_date": domain.DateOnly(today)}).
		Where(squirrel.GtOrEq{"end_date": domain.DateOnly(today)}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ActivateDue - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ActivateDue - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ActivateDue - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// CompleteDue переводит ACTIVE -> COMPLETED для бронирований,
// чей диапазон закончился до today. Возвращает число обновленных строк.
func (r *Repository) CompleteDue(ctx context.Context, today time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("ad_bookings").
		Set("status", domain.StatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusActive}).
		Where(squirrel.Lt{"end_date": domain.DateOnly(today)}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CompleteDue - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteDue - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteDue - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.Slot.Type,
		&b.Slot.Position,
		&b.Slot.Category,
		&b.SellerID,
		&b.ProductID,
		&b.StartDate,
		&b.EndDate,
		&b.Price,
		&b.Status,
		&b.BannerImageURL,
		&b.Title,
		&b.Description,
		&b.CancellationReason,
		&b.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func isSlotConflict(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgExclusionViolation
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
