package capture

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"decoder6809/sample"
)

func TestReaderParsesWellFormedRecords(t *testing.T) {
	in := strings.NewReader(strings.Join([]string{
		"# a comment line, ignored",
		"0 86 1 0 1 1 -",
		"1 2a 1 1 1 1 0",
		"",
	}, "\n"))
	r := NewReader(in)

	sm, ok := r.Next()
	require.True(t, ok)
	assert.Equal(t, byte(0x86), sm.Data)
	assert.True(t, sm.Rnw.Known)
	assert.True(t, sm.Rnw.Value)
	assert.True(t, sm.Lic.Known)
	assert.False(t, sm.Lic.Value)
	assert.False(t, sm.AddrLsb.Known)

	sm2, ok := r.Next()
	require.True(t, ok)
	assert.Equal(t, byte(0x2a), sm2.Data)
	assert.True(t, sm2.Lic.Value)

	_, ok = r.Next()
	assert.False(t, ok)
	assert.NoError(t, r.Err())
}

func TestReaderReportsMalformedRecord(t *testing.T) {
	in := strings.NewReader("0 86 1 0 1\n") // missing two fields
	r := NewReader(in)

	_, ok := r.Next()
	assert.False(t, ok)
	assert.Error(t, r.Err())
}

func TestReaderReportsBadBitToken(t *testing.T) {
	in := strings.NewReader("0 86 1 2 1 1 -\n") // "2" is not a valid tri-state token
	r := NewReader(in)

	_, ok := r.Next()
	assert.False(t, ok)
	assert.Error(t, r.Err())
}

func TestReaderImplementsSampleSource(t *testing.T) {
	var _ sample.Source = (*Reader)(nil)
}
