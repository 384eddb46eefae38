package houseads

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meonjeo/ad-booking-service/internal/domain"
)

func TestHouseForRotates(t *testing.T) {
	p := New([]string{"a.png", "b.png"}, nil, nil, nil)

	assert.Equal(t, "a.png", p.HouseFor(domain.SlotMainRolling))
	assert.Equal(t, "b.png", p.HouseFor(domain.SlotMainRolling))
	assert.Equal(t, "a.png", p.HouseFor(domain.SlotMainRolling))
}

func TestHouseForUnconfiguredType(t *testing.T) {
	p := New([]string{"a.png"}, nil, nil, nil)

	assert.Equal(t, "", p.HouseFor(domain.SlotMainSide))
	assert.Equal(t, "", p.HouseFor(domain.SlotType("SIDEBAR")))
}

func TestRotationsIndependentPerType(t *testing.T) {
	p := New([]string{"r1.png", "r2.png"}, []string{"s1.png"}, nil, nil)

	assert.Equal(t, "r1.png", p.HouseFor(domain.SlotMainRolling))
	assert.Equal(t, "s1.png", p.HouseFor(domain.SlotMainSide))
	assert.Equal(t, "r2.png", p.HouseFor(domain.SlotMainRolling))
	assert.Equal(t, "s1.png", p.HouseFor(domain.SlotMainSide))
}

func TestHouseForCategoryUsesCategoryTopPool(t *testing.T) {
	p := New(nil, nil, []string{"c1.png", "c2.png"}, nil)

	assert.Equal(t, "c1.png", p.HouseForCategory("beauty"))
	assert.Equal(t, "c2.png", p.HouseForCategory("electronics"))
}
