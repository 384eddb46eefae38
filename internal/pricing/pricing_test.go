package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meonjeo/ad-booking-service/internal/domain"
)

func TestPrice(t *testing.T) {
	// недельные пакеты по базовым ставкам
	assert.Equal(t, int64(14700), Price(domain.SlotMainRolling, 3, 7))
	assert.Equal(t, int64(11900), Price(domain.SlotMainSide, 2, 7))
	assert.Equal(t, int64(8050), Price(domain.SlotCategoryTop, 1, 7))
	assert.Equal(t, int64(4900), Price(domain.SlotOrderComplete, 1, 7))
}

func TestPriceFirstPositionPremium(t *testing.T) {
	// первая позиция главных слотов дороже на 50%
	assert.Equal(t, int64(3150), Price(domain.SlotMainRolling, 1, 1))
	assert.Equal(t, int64(2550), Price(domain.SlotMainSide, 1, 1))

	// на категорийные слоты надбавка не распространяется
	assert.Equal(t, int64(1150), Price(domain.SlotCategoryTop, 1, 1))
	assert.Equal(t, int64(700), Price(domain.SlotOrderComplete, 1, 1))
}

func TestPriceScalesWithDuration(t *testing.T) {
	oneDay := Price(domain.SlotMainRolling, 5, 1)
	month := Price(domain.SlotMainRolling, 5, 30)
	assert.Equal(t, oneDay*30, month)
}

func TestPriceInvalidInput(t *testing.T) {
	assert.Equal(t, int64(0), Price(domain.SlotType("SIDEBAR"), 1, 7))
	assert.Equal(t, int64(0), Price(domain.SlotMainRolling, 1, 0))
	assert.Equal(t, int64(0), Price(domain.SlotMainRolling, 1, -3))
}
