package ttylog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

// AsciicastFileExt holds the suggested file extension for asciicast files.
const AsciicastFileExt = "cast"

const asciicastVersion = 2

// AsciicastHeader holds the settings of a recording.
type AsciicastHeader struct {
	Title  string
	Width  int
	Height int
}

// asciicastFileHeader is the first line of a v2 file.
type asciicastFileHeader struct {
	Version   int               `json:"version"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Timestamp int64             `json:"timestamp,omitempty"`
	Title     string            `json:"title,omitempty"`
	Env       map[string]string `json:"env,omitempty"`
}

// NewAsciicastLogSink creates a LogSink compatible with the asciicast v2
// format.
//
// Players don't show input events and ezh doesn't echo instructions, so
// stdin entries are written as output.
//
// See: https://github.com/asciinema/asciinema/blob/develop/doc/asciicast-v2.md
func NewAsciicastLogSink(w io.Writer, header AsciicastHeader) LogSink {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	var (
		started     bool
		startMicros int64
	)

	return func(entry *Entry) error {
		if !started {
			if err := enc.Encode(newAsciicastFileHeader(header, entry.Time())); err != nil {
				return err
			}
			started, startMicros = true, entry.TimestampMicros
		}

		offset := microsecondsToSeconds(entry.TimestampMicros - startMicros)
		return enc.Encode([]interface{}{offset, "o", crlf.ReplaceAllString(string(entry.Data), "\r\n")})
	}
}

func newAsciicastFileHeader(header AsciicastHeader, start time.Time) *asciicastFileHeader {
	out := &asciicastFileHeader{
		Version:   asciicastVersion,
		Width:     header.Width,
		Height:    header.Height,
		Timestamp: start.Unix(),
		Title:     header.Title,
		Env: map[string]string{
			"TERM":  "xterm-256color",
			"SHELL": "ezh",
		},
	}
	if out.Width <= 0 {
		out.Width = 80
	}
	if out.Height <= 0 {
		out.Height = 24
	}
	return out
}

// AsciicastLogSource reads entries from an asciicast v2 stream.
type AsciicastLogSource struct {
	dec        *json.Decoder
	readHeader bool
}

var _ LogSource = (*AsciicastLogSource)(nil)

// NewAsciicastLogSource reads log events from an Asciicast formatted file.
func NewAsciicastLogSource(r io.Reader) *AsciicastLogSource {
	return &AsciicastLogSource{dec: json.NewDecoder(r)}
}

// Next gets the next log entry, it returns io.EOF if there are no more.
//
// asciicast has no stderr stream, everything written comes back as stdout.
// Events other than input and output are skipped.
func (src *AsciicastLogSource) Next() (*Entry, error) {
	if !src.readHeader {
		var header asciicastFileHeader
		if err := src.dec.Decode(&header); err != nil {
			return nil, fmt.Errorf("reading asciicast header: %w", err)
		}
		if header.Version != asciicastVersion {
			return nil, fmt.Errorf("unsupported asciicast version %d", header.Version)
		}
		src.readHeader = true
	}

	for {
		var event []json.RawMessage
		if err := src.dec.Decode(&event); err != nil {
			return nil, err
		}

		offset, kind, data, err := parseAsciicastEvent(event)
		if err != nil {
			return nil, err
		}

		var fd FD
		switch kind {
		case "o":
			fd = FDStdout
		case "i":
			fd = FDStdin
		default:
			continue
		}

		return &Entry{
			TimestampMicros: secondsToMicroseconds(offset),
			FD:              fd,
			Data:            []byte(data),
		}, nil
	}
}

var errMalformedEvent = errors.New("malformed asciicast event")

func parseAsciicastEvent(event []json.RawMessage) (offset float64, kind, data string, err error) {
	if len(event) != 3 {
		return 0, "", "", fmt.Errorf("%w: expected 3 entries got %d", errMalformedEvent, len(event))
	}
	for i, dest := range []interface{}{&offset, &kind, &data} {
		if err := json.Unmarshal(event[i], dest); err != nil {
			return 0, "", "", fmt.Errorf("%w: entry %d: %v", errMalformedEvent, i, err)
		}
	}
	return offset, kind, data, nil
}

func microsecondsToSeconds(microseconds int64) (seconds float64) {
	return (float64(microseconds) * float64(time.Microsecond)) / float64(time.Second)
}

func secondsToMicroseconds(seconds float64) (microseconds int64) {
	return int64(float64(seconds)*float64(time.Second)) / int64(time.Microsecond)
}
