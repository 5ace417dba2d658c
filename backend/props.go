package backend

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"

	"github.com/7blacky7/cudashim/cuda"
)

// ParseName extracts the NUL-terminated string at the start of a fixed-size
// vendor name buffer. A buffer without a terminator is malformed and fails
// with cuda.ErrUnknown rather than being truncated.
func ParseName(buf []byte) (string, error) {
	i := bytes.IndexByte(buf, 0)
	if i < 0 {
		return "", fmt.Errorf("device name not terminated within %d bytes: %w", len(buf), cuda.ErrUnknown)
	}
	return string(buf[:i]), nil
}

// ParseUUID converts a vendor 16 byte UUID field. An all-zero field means the
// runtime does not report UUIDs and yields uuid.Nil.
func ParseUUID(b []byte) (uuid.UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return uuid.Nil, fmt.Errorf("device uuid: %v: %w", err, cuda.ErrUnknown)
	}
	return id, nil
}

// unavailable fails every call with the same error.
type unavailable struct {
	err error
}

// Unavailable returns an Adapter that fails every operation with err. It
// stands in for a runtime that could not be loaded.
func Unavailable(err error) Adapter {
	if cuda.ResultOf(err) == cuda.Success {
		err = cuda.ErrUnknown
	}
	return unavailable{err: err}
}

func (u unavailable) Name() string                          { return "unavailable" }
func (u unavailable) Addressing() Addressing                { return Ordinal }
func (u unavailable) Initialize(uint32) error               { return u.err }
func (u unavailable) Enumerate() ([]Handle, error)          { return nil, u.err }
func (u unavailable) Properties(Handle) (Properties, error) { return Properties{}, u.err }
func (u unavailable) NewContext(Handle) (Context, error)    { return nil, u.err }
