package um

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// LoadImage reads r as a sequence of 4-byte, big-endian 32-bit words and
// returns them as the freshly allocated array that becomes array 0. A
// trailing partial group of fewer than 4 bytes is a MalformedImage
// error.
func LoadImage(r io.Reader) ([]platter, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fault(IOError, 0, errors.Wrap(err, "reading program image"))
	}
	if len(raw)%4 != 0 {
		return nil, faultf(MalformedImage, 0, "image length %d is not a multiple of 4", len(raw))
	}

	words := make([]platter, len(raw)/4)
	if err := binary.Read(bytes.NewReader(raw), binary.BigEndian, &words); err != nil {
		return nil, fault(MalformedImage, 0, errors.Wrap(err, "decoding big-endian words"))
	}
	return words, nil
}
