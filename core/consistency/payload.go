package consistency

import (
	"bytes"
	"fmt"
	"io"
)

const compareChunk = 32 * 1024

// Payload is an immutable byte sequence of a fixed length where every byte holds
// the same fill value. Its content is generated on demand and never held in memory.
type Payload struct {
	fill byte
	size int64
}

// NewPayload returns a payload of size bytes, each equal to fill.
func NewPayload(fill byte, size int64) (Payload, error) {
	if size < 0 {
		return Payload{}, fmt.Errorf("%w: object size must be at least zero, was: %d", ErrInvalidConfig, size)
	}
	return Payload{fill: fill, size: size}, nil
}

// Size returns the payload length in bytes.
func (p Payload) Size() int64 { return p.size }

// Open returns a fresh reader over the payload content.
func (p Payload) Open() io.Reader {
	return io.LimitReader(repeatReader(p.fill), p.size)
}

// Bytes materializes the payload. Intended for small payloads and tests.
func (p Payload) Bytes() []byte {
	return bytes.Repeat([]byte{p.fill}, int(p.size))
}

// Matches reads r to EOF and reports whether it carried exactly the payload's bytes.
// The stream is always drained, even after the first differing byte.
func (p Payload) Matches(r io.Reader) (bool, error) {
	buf := make([]byte, compareChunk)
	var total int64
	match := true
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if match {
				for _, b := range buf[:n] {
					if b != p.fill {
						match = false
						break
					}
				}
			}
			total += int64(n)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return false, err
		}
	}
	return match && total == p.size, nil
}

// repeatReader is an endless stream of a single byte.
type repeatReader byte

func (r repeatReader) Read(b []byte) (int, error) {
	for i := range b {
		b[i] = byte(r)
	}
	return len(b), nil
}
