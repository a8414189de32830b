package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleSalesManager, RoleProductManager, RoleUser} {
		assert.True(t, r.Valid(), r)
	}
	assert.False(t, Role("owner").Valid())
	assert.False(t, Role("").Valid())
}

func TestProductDiscounted(t *testing.T) {
	p := Product{Price: decimal.NewFromInt(20)}
	assert.False(t, p.Discounted())
	p.DiscountRate = decimal.NewFromInt(10)
	assert.True(t, p.Discounted())
}
