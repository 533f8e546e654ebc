package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional(t *testing.T) {
	v, ok := Some(3).Get()
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = None[int]().Get()
	assert.False(t, ok)
	assert.Equal(t, -3, None[int]().Or(-3))
	assert.Equal(t, 2, Some(2).Or(-3))

	var zero Optional[float64]
	assert.False(t, zero.Valid(), "zero value is missing")
}

func TestOptional_JSON(t *testing.T) {
	type payload struct {
		Wind     Optional[float64] `json:"wind"`
		Category Optional[int]     `json:"category"`
	}

	data, err := json.Marshal(payload{Wind: Some(115.0)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"wind":115,"category":null}`, string(data))

	var back payload
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, Some(115.0), back.Wind)
	assert.False(t, back.Category.Valid())
}

func TestMaxOf(t *testing.T) {
	assert.Equal(t, Some(3), maxOf([]Optional[int]{Some(0), None[int](), Some(3), Some(-1)}))
	assert.Equal(t, Some(-2), maxOf([]Optional[int]{Some(-3), Some(-2)}))
	assert.False(t, maxOf([]Optional[float64]{None[float64](), None[float64]()}).Valid())
	assert.False(t, maxOf[int](nil).Valid())
}
