// Package houseads выдает хаус-баннеры платформы для незаполненных слотов.
// Баннеры ротируются по кругу, чтобы витрина не показывала один и тот же
// баннер во всех пустых позициях.
package houseads

import (
	"sync/atomic"

	"github.com/meonjeo/ad-booking-service/internal/domain"
)

// Provider провайдер хаус-баннеров с независимой ротацией по типам слотов
type Provider struct {
	rolling       rotation
	side          rotation
	categoryTop   rotation
	orderComplete rotation
}

type rotation struct {
	urls []string
	idx  atomic.Int64
}

func (r *rotation) next() string {
	if len(r.urls) == 0 {
		return ""
	}
	i := r.idx.Add(1) - 1
	return r.urls[int(i%int64(len(r.urls)))]
}

// New создает провайдер из списков баннеров (обычно из конфигурации)
func New(rolling, side, categoryTop, orderComplete []string) *Provider {
	return &Provider{
		rolling:       rotation{urls: rolling},
		side:          rotation{urls: side},
		categoryTop:   rotation{urls: categoryTop},
		orderComplete: rotation{urls: orderComplete},
	}
}

// HouseFor возвращает следующий хаус-баннер для типа слота.
// Пустая строка означает, что баннеры для типа не сконфигурированы.
func (p *Provider) HouseFor(t domain.SlotType) string {
	switch t {
	case domain.SlotMainRolling:
		return p.rolling.next()
	case domain.SlotMainSide:
		return p.side.next()
	case domain.SlotCategoryTop:
		return p.categoryTop.next()
	case domain.SlotOrderComplete:
		return p.orderComplete.next()
	default:
		return ""
	}
}

// HouseForCategory возвращает хаус-баннер для категорийного слота.
// Сейчас используется общий набор для всех категорий.
func (p *Provider) HouseForCategory(category string) string {
	return p.HouseFor(domain.SlotCategoryTop)
}
