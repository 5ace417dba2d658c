package backend

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7blacky7/cudashim/cuda"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		name    string
		buf     []byte
		want    string
		wantErr bool
	}{
		{"gfx", append([]byte("gfx1100"), make([]byte, 249)...), "gfx1100", false},
		{"stops at first nul", []byte("gfx90a:sramecc+\x00garbage\x00"), "gfx90a:sramecc+", false},
		{"empty", make([]byte, 16), "", false},
		{"exact fit", []byte("abc\x00"), "abc", false},
		{"unterminated", []byte("Intel(R) Arc(TM)"), "", true},
		{"nil", nil, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseName(tt.buf)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, cuda.ErrUnknown, cuda.ResultOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseUUID(t *testing.T) {
	raw := []byte{0x86, 0x80, 0xa0, 0x56, 0x08, 0x00, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01}
	id, err := ParseUUID(raw)
	require.NoError(t, err)
	assert.Equal(t, "8680a056-0800-0000-0300-000000000001", id.String())

	id, err = ParseUUID(make([]byte, 16))
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, id)

	_, err = ParseUUID(raw[:8])
	assert.Equal(t, cuda.ErrUnknown, cuda.ResultOf(err))
}

func TestHandle(t *testing.T) {
	h := Handle(0x55d0c0ffee)
	assert.Equal(t, "0x55d0c0ffee", h.String())

	got, err := ParseHandle(h.String())
	require.NoError(t, err)
	assert.Equal(t, h, got)

	got, err = ParseHandle("3")
	require.NoError(t, err)
	assert.Equal(t, Handle(3), got)

	_, err = ParseHandle("device-0")
	assert.Error(t, err)
}

func TestUnavailable(t *testing.T) {
	a := Unavailable(cuda.ErrNoDevice)
	assert.Equal(t, cuda.ErrNoDevice, cuda.ResultOf(a.Initialize(0)))

	_, err := a.Enumerate()
	assert.Equal(t, cuda.ErrNoDevice, cuda.ResultOf(err))

	a = Unavailable(errors.New("manifest missing"))
	_, err = a.NewContext(0)
	assert.Equal(t, cuda.ErrUnknown, cuda.ResultOf(err))

	a = Unavailable(nil)
	assert.Equal(t, cuda.ErrUnknown, cuda.ResultOf(a.Initialize(0)))
}
