// Package ttylog records what a terminal session showed and replays it.
package ttylog

import (
	"io"
	"regexp"
	"sync"
	"time"
)

var (
	crlf = regexp.MustCompile(`\r?\n`)
)

// FD identifies the stream an entry was written to.
type FD int32

const (
	FDStdin FD = iota
	FDStdout
	FDStderr
)

func (fd FD) String() string {
	switch fd {
	case FDStdin:
		return "stdin"
	case FDStdout:
		return "stdout"
	case FDStderr:
		return "stderr"
	default:
		return "unknown"
	}
}

// Entry is a chunk of terminal IO.
type Entry struct {
	TimestampMicros int64
	FD              FD
	Data            []byte
}

// Time converts the timestamp of the entry.
func (e *Entry) Time() time.Time {
	return time.UnixMicro(e.TimestampMicros)
}

// LogSink receives log entries.
type LogSink func(e *Entry) error

// LogSource adapts log readers.
type LogSource interface {
	// Next fetches the next available log entry. It returns io.EOF if the source
	// has no more log entries.
	Next() (*Entry, error)
}

// NewRealTimePlayback plays back the results in real-time.
// If maxSleep > 0, it's used as the maximum duration to pause.
func NewRealTimePlayback(maxSleep time.Duration, next LogSink) LogSink {
	var once sync.Once
	var prevTimeMicros int64

	return func(entry *Entry) error {
		once.Do(func() {
			prevTimeMicros = entry.TimestampMicros
		})

		delta := entry.TimestampMicros - prevTimeMicros
		prevTimeMicros = entry.TimestampMicros

		sleepDuration := time.Duration(delta) * time.Microsecond
		if maxSleep > 0 && sleepDuration > maxSleep {
			sleepDuration = maxSleep
		}
		if sleepDuration > 0 {
			time.Sleep(sleepDuration)
		}

		return next(entry)
	}
}

// NewClientOutput writes every entry to w the way a terminal would have shown
// it. Newlines become CRLF so the cursor returns to the first column.
func NewClientOutput(w io.Writer) LogSink {
	return func(entry *Entry) error {
		_, err := w.Write(crlf.ReplaceAll(entry.Data, []byte("\r\n")))
		return err
	}
}

// Replay reads a stream of events to a callback.
func Replay(recording LogSource, callback LogSink) (err error) {
	for {
		entry, err := recording.Next()
		switch {
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}

		if err := callback(entry); err != nil {
			return err
		}
	}
}

// Recorder timestamps terminal IO and forwards it to a sink. It's safe for
// concurrent use.
type Recorder struct {
	mutex sync.Mutex
	sink  LogSink
	err   error

	// Now is the clock entries are stamped with, time.Now if nil.
	Now func() time.Time
}

// NewRecorder creates a recorder writing to output.
func NewRecorder(output LogSink) *Recorder {
	return &Recorder{sink: output}
}

// Record logs a copy of data written to fd. After the first failure the
// recorder stops forwarding and Err reports the failure.
func (r *Recorder) Record(fd FD, data []byte) {
	if len(data) == 0 {
		return
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.err != nil {
		return
	}

	now := time.Now
	if r.Now != nil {
		now = r.Now
	}

	r.err = r.sink(&Entry{
		TimestampMicros: now().UnixMicro(),
		FD:              fd,
		Data:            append([]byte(nil), data...),
	})
}

// Err returns the first error from the sink.
func (r *Recorder) Err() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.err
}

// Writer wraps dest so everything successfully written to it is recorded as
// fd.
func (r *Recorder) Writer(fd FD, dest io.Writer) io.Writer {
	return &recorderWriter{recorder: r, fd: fd, dest: dest}
}

type recorderWriter struct {
	recorder *Recorder
	fd       FD
	dest     io.Writer
}

func (rw *recorderWriter) Write(p []byte) (int, error) {
	n, err := rw.dest.Write(p)
	rw.recorder.Record(rw.fd, p[:n])
	return n, err
}
