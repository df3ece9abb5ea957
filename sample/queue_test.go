package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeSamples(n int) []Sample {
	samples := make([]Sample, n)
	for i := range samples {
		samples[i] = Sample{Data: byte(i)}
	}
	return samples
}

func TestQueueFillRespectsDepth(t *testing.T) {
	src := NewSliceSource(makeSamples(100))
	q := NewQueue(src)
	q.Fill()
	assert.Equal(t, Depth, q.Len())
}

func TestQueueFillShortSource(t *testing.T) {
	src := NewSliceSource(makeSamples(5))
	q := NewQueue(src)
	q.Fill()
	assert.Equal(t, 5, q.Len())
	assert.Equal(t, Last, q.Head(5)[4].Kind)
}

func TestQueuePopShiftsLeft(t *testing.T) {
	src := NewSliceSource(makeSamples(10))
	q := NewQueue(src)
	q.Fill()
	q.Pop(3)
	head := q.Head(1)
	assert.Equal(t, byte(3), head[0].Data)
}

func TestQueueNeverPopsPastLast(t *testing.T) {
	src := NewSliceSource(makeSamples(2))
	q := NewQueue(src)
	q.Fill()
	q.Pop(1)
	assert.Equal(t, 1, q.Len())
	q.Pop(5)
	assert.Equal(t, 0, q.Len())
	assert.True(t, q.Exhausted())
}

func TestQueueRefillsAfterPop(t *testing.T) {
	src := NewSliceSource(makeSamples(50))
	q := NewQueue(src)
	q.Fill()
	q.Pop(10)
	q.Fill()
	assert.Equal(t, Depth, q.Len())
}
