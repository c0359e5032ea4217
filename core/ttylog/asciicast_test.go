package ttylog

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeConversions(t *testing.T) {
	cases := map[string]struct {
		microseconds int64
		seconds      float64
	}{
		"precision": {
			microseconds: 1,
			seconds:      1e-6,
		},
		"negative": {
			microseconds: -631119539e6,
			seconds:      -631119539,
		},
		"positive": {
			microseconds: 631119539e6,
			seconds:      631119539,
		},
		"bigprecise": {
			microseconds: 123456789987654,
			seconds:      123456789.987654,
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			s2m := secondsToMicroseconds(tc.seconds)
			m2s := microsecondsToSeconds(tc.microseconds)

			// Only allow delta to be to the NS
			assert.InDelta(t, m2s, tc.seconds, float64(time.Nanosecond)/float64(time.Second))
			assert.Equal(t, s2m, tc.microseconds)
		})
	}
}

func TestAsciicastLogSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewAsciicastLogSink(&buf, AsciicastHeader{Title: "demo"})

	assert.NoError(t, sink(&Entry{TimestampMicros: 1e6, FD: FDStdin, Data: []byte("echo hi\n")}))
	assert.NoError(t, sink(&Entry{TimestampMicros: 2500000, FD: FDStdout, Data: []byte("hi\n")}))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.JSONEq(t, `{
		"version": 2,
		"width": 80,
		"height": 24,
		"timestamp": 1,
		"title": "demo",
		"env": {"TERM": "xterm-256color", "SHELL": "ezh"}
	}`, lines[0])
	assert.JSONEq(t, `[0, "o", "echo hi\r\n"]`, lines[1])
	assert.JSONEq(t, `[1.5, "o", "hi\r\n"]`, lines[2])

	var got []*Entry
	err := Replay(NewAsciicastLogSource(&buf), func(e *Entry) error {
		got = append(got, e)
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, []*Entry{
		{TimestampMicros: 0, FD: FDStdout, Data: []byte("echo hi\r\n")},
		{TimestampMicros: 1500000, FD: FDStdout, Data: []byte("hi\r\n")},
	}, got)
}

func TestAsciicastLogSource_malformed(t *testing.T) {
	cases := map[string]string{
		"not json":    "header\nnope\n",
		"wrong arity": "{\"version\": 2}\n[1, \"o\"]\n",
		"wrong types": "{\"version\": 2}\n[\"1\", \"o\", \"x\"]\n",
		"bad version": "{\"version\": 1}\n[1, \"o\", \"x\"]\n",
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			err := Replay(NewAsciicastLogSource(strings.NewReader(tc)), func(*Entry) error {
				return nil
			})
			assert.Error(t, err)
		})
	}
}

func TestAsciicastLogSource_skipsUnknown(t *testing.T) {
	src := NewAsciicastLogSource(strings.NewReader("{\"version\": 2}\n\n[0.5, \"m\", \"marker\"]\n[1, \"i\", \"ls\"]\n"))

	entry, err := src.Next()
	assert.NoError(t, err)
	assert.Equal(t, &Entry{TimestampMicros: 1e6, FD: FDStdin, Data: []byte("ls")}, entry)

	_, err = src.Next()
	assert.Equal(t, io.EOF, err)
}
