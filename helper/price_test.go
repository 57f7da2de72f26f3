package helper

import (
	"testing"

	"theater_manager/model"

	"github.com/stretchr/testify/assert"
)

func TestPriceForAge(t *testing.T) {
	assert.Equal(t, 10.0, PriceForAge(model.AgeAdult))
	assert.Equal(t, 8.0, PriceForAge(model.AgeKid))
	assert.Equal(t, 6.0, PriceForAge(model.AgeSenior))
}
