// Package dbmetrics обёртка над *sql.DB со сбором prometheus-метрик
// и передачей активной транзакции через context.
package dbmetrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/meonjeo/ad-booking-service/pkg/metrics"
)

// DBExecutor интерфейс для выполнения запросов (БД или транзакция)
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor интерфейс транзакции
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

type ctxKey struct{}

var txKey = ctxKey{}

// ContextWithTx кладет транзакцию в context.
// Используется transaction manager'ами; репозитории достают её через GetExecutor.
func ContextWithTx(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// GetExecutor возвращает транзакцию из context, если она там есть,
// иначе переданный по умолчанию executor
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txKey).(TxExecutor); ok {
		return tx
	}
	return fallback
}

// IsInTransaction сообщает, выполняется ли запрос внутри транзакции
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey).(TxExecutor)
	return ok
}

// DB *sql.DB с метриками на каждый запрос
type DB struct {
	db        *sql.DB
	collector *metrics.Metrics
	name      string
}

// WrapWithDefault оборачивает db, запускает сбор статистики connection pool
// и останавливает его при закрытии stopCh
func WrapWithDefault(db *sql.DB, collector *metrics.Metrics, name string, stopCh <-chan struct{}) *DB {
	wrapped := &DB{db: db, collector: collector, name: name}
	go wrapped.collectPoolStats(stopCh)
	return wrapped
}

// ExecContext выполняет запрос с измерением длительности
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.collector.ObserveDBQuery("exec", time.Since(start).Seconds())
	return res, err
}

// QueryContext выполняет запрос с измерением длительности
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.collector.ObserveDBQuery("query", time.Since(start).Seconds())
	return rows, err
}

// QueryRowContext выполняет запрос с измерением длительности
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.collector.ObserveDBQuery("query_row", time.Since(start).Seconds())
	return row
}

// BeginTx начинает транзакцию
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	return d.db.BeginTx(ctx, opts)
}

func (d *DB) collectPoolStats(stopCh <-chan struct{}) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.collector.DBOpenConnections.WithLabelValues(d.name).Set(float64(stats.OpenConnections))
			d.collector.DBIdleConnections.WithLabelValues(d.name).Set(float64(stats.Idle))
			d.collector.DBWaitCount.WithLabelValues(d.name).Set(float64(stats.WaitCount))
		}
	}
}
