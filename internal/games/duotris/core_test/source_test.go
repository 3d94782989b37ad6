package core_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/duotris/internal/games/duotris/core"
)

func TestSequenceSource(t *testing.T) {
	src := core.NewSlotSequenceSource(
		[]core.Kind{core.KindO, core.KindT},
		[]core.Kind{core.KindI},
	)

	assert.Equal(t, core.KindO, src.Next(0))
	assert.Equal(t, core.KindI, src.Next(1))
	assert.Equal(t, core.KindT, src.Next(0))
	assert.Equal(t, core.KindO, src.Next(0))
	assert.Equal(t, core.KindI, src.Next(5), "extra slots share the last cycle")

	shared := core.NewSequenceSource(core.KindS, core.KindZ)
	assert.Equal(t, core.KindS, shared.Next(0))
	assert.Equal(t, core.KindZ, shared.Next(1))

	assert.Panics(t, func() { core.NewSlotSequenceSource() })
	assert.Panics(t, func() { core.NewSequenceSource() })
}

func TestRandomSourceDeterministic(t *testing.T) {
	a := core.NewRandomSource(rand.New(rand.NewSource(42)))
	b := core.NewRandomSource(rand.New(rand.NewSource(42)))
	for i := range 50 {
		ka, kb := a.Next(0), b.Next(1)
		assert.Equal(t, ka, kb, "draw %d", i)
		assert.True(t, ka < core.KindCount)
	}
}
