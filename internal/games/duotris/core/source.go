package core

import "math/rand"

// PieceSource decides which kind each slot receives next.
type PieceSource interface {
	Next(slot SlotID) Kind
}

// RandomSource draws kinds uniformly from a seeded generator.
type RandomSource struct {
	rng *rand.Rand
}

// NewRandomSource wraps rng as a uniform piece source.
func NewRandomSource(rng *rand.Rand) *RandomSource {
	return &RandomSource{rng: rng}
}

// Next returns a uniformly chosen kind. The slot is ignored.
func (s *RandomSource) Next(SlotID) Kind {
	return Kind(s.rng.Intn(int(KindCount)))
}

// SequenceSource replays fixed cycles of kinds, one cycle per slot.
type SequenceSource struct {
	seqs [][]Kind
	pos  []int
}

// NewSequenceSource cycles kinds for every slot in call order.
func NewSequenceSource(kinds ...Kind) *SequenceSource {
	return NewSlotSequenceSource(kinds)
}

// NewSlotSequenceSource gives slot i its own cycle perSlot[i].
// Slots beyond the list share the last cycle. Panics on an empty cycle.
func NewSlotSequenceSource(perSlot ...[]Kind) *SequenceSource {
	if len(perSlot) == 0 {
		panic("core: sequence source needs at least one cycle")
	}
	for _, seq := range perSlot {
		if len(seq) == 0 {
			panic("core: sequence source cycle is empty")
		}
	}
	return &SequenceSource{
		seqs: perSlot,
		pos:  make([]int, len(perSlot)),
	}
}

// Next returns the next kind in the slot's cycle.
func (s *SequenceSource) Next(slot SlotID) Kind {
	i := min(max(int(slot), 0), len(s.seqs)-1)
	seq := s.seqs[i]
	k := seq[s.pos[i]%len(seq)]
	s.pos[i]++
	return k
}
