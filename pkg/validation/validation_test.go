package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string `koanf:"name" validate:"required"`
	Limit  int    `koanf:"limit" validate:"gte=0"`
	Device string `koanf:"device" validate:"omitempty,device"`
}

func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, Struct(&sample{Name: "ok", Limit: 3, Device: "cuda:1"}))
	})

	t.Run("empty device allowed", func(t *testing.T) {
		assert.NoError(t, Struct(&sample{Name: "ok"}))
	})

	t.Run("collects failures under koanf keys", func(t *testing.T) {
		err := Struct(&sample{Limit: -1, Device: "tpu"})
		require.Error(t, err)

		verrs, ok := err.(ValidationErrors)
		require.True(t, ok)
		require.Len(t, verrs, 3)

		fields := make([]string, len(verrs))
		for i, ve := range verrs {
			fields[i] = ve.Field
		}
		assert.ElementsMatch(t, []string{"name", "limit", "device"}, fields)
		assert.Contains(t, err.Error(), "device spec")
	})
}
