package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignExtend5(t *testing.T) {
	assert.Equal(t, int16(0), SignExtend5(0b00000))
	assert.Equal(t, int16(15), SignExtend5(0b01111))
	assert.Equal(t, int16(-16), SignExtend5(0b10000))
	assert.Equal(t, int16(-1), SignExtend5(0b11111))
}

func TestSignExtend8(t *testing.T) {
	assert.Equal(t, int16(127), SignExtend8(0x7f))
	assert.Equal(t, int16(-128), SignExtend8(0x80))
	assert.Equal(t, int16(-1), SignExtend8(0xff))
}
