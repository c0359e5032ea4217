package ttylog

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"google.golang.org/protobuf/encoding/protowire"
)

// WireFileExt is the suggested file extension for recordings in the native
// format.
const WireFileExt = "ttylog"

// Field numbers of an entry message.
const (
	fieldTimestampMicros protowire.Number = 1
	fieldFD              protowire.Number = 2
	fieldData            protowire.Number = 3
)

// maxEntrySize bounds the length prefix accepted by WireLogSource.
const maxEntrySize = 16 << 20

// MarshalEntry encodes e as a protobuf message.
func MarshalEntry(e *Entry) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldTimestampMicros, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(e.TimestampMicros))
	b = protowire.AppendTag(b, fieldFD, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(e.FD))
	b = protowire.AppendTag(b, fieldData, protowire.BytesType)
	b = protowire.AppendBytes(b, e.Data)
	return b
}

// UnmarshalEntry decodes a protobuf message written by MarshalEntry. Unknown
// fields are skipped.
func UnmarshalEntry(b []byte) (*Entry, error) {
	entry := &Entry{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]

		switch {
		case num == fieldTimestampMicros && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			entry.TimestampMicros = int64(v)
			b = b[n:]
		case num == fieldFD && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			entry.FD = FD(v)
			b = b[n:]
		case num == fieldData && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			entry.Data = append([]byte(nil), v...)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return entry, nil
}

// NewWireLogSink writes entries as varint length delimited protobuf
// messages.
func NewWireLogSink(w io.Writer) LogSink {
	return func(entry *Entry) error {
		msg := MarshalEntry(entry)
		_, err := w.Write(protowire.AppendBytes(nil, msg))
		return err
	}
}

// WireLogSource reads entries written by NewWireLogSink.
type WireLogSource struct {
	r *bufio.Reader
}

var _ LogSource = (*WireLogSource)(nil)

func NewWireLogSource(r io.Reader) *WireLogSource {
	return &WireLogSource{r: bufio.NewReader(r)}
}

// Next gets the next log entry, it returns io.EOF if there are no more.
func (log *WireLogSource) Next() (*Entry, error) {
	size, err := readUvarint(log.r)
	if err != nil {
		return nil, err
	}
	if size > maxEntrySize {
		return nil, fmt.Errorf("entry of %d bytes is too large", size)
	}

	msg := make([]byte, size)
	if _, err := io.ReadFull(log.r, msg); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return UnmarshalEntry(msg)
}

// readUvarint reads a length prefix, io.EOF is only returned if the reader
// was empty.
func readUvarint(r io.ByteReader) (uint64, error) {
	var buf []byte
	for i := 0; i < protowire.SizeVarint(^uint64(0)); i++ {
		c, err := r.ReadByte()
		switch {
		case err == io.EOF && i == 0:
			return 0, io.EOF
		case err == io.EOF:
			return 0, io.ErrUnexpectedEOF
		case err != nil:
			return 0, err
		}

		buf = append(buf, c)
		if c < 0x80 {
			v, n := protowire.ConsumeVarint(buf)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			return v, nil
		}
	}
	return 0, errors.New("malformed length prefix")
}
