// Package replay records per-frame actor snapshots as a msgpack stream
// A stream is one Header followed by one Frame per simulated frame
package replay

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/lixenwraith/lizard-arena/core"
	"github.com/lixenwraith/lizard-arena/engine"
)

// FormatVersion is bumped whenever Header or Frame change incompatibly
const FormatVersion = 1

// ErrVersion reports a stream written by an incompatible recorder
var ErrVersion = errors.New("unsupported replay version")

// Header opens every stream
type Header struct {
	Version int    `msgpack:"v"`
	Session string `msgpack:"s"`
	Started int64  `msgpack:"t"` // Unix milliseconds
}

// Actor is one live actor in a frame
type Actor struct {
	ID     uint64     `msgpack:"id"`
	Kind   uint8      `msgpack:"k"`
	Pos    [3]float64 `msgpack:"p"`
	Visual uint8      `msgpack:"vs,omitempty"`
	Color  uint32     `msgpack:"c,omitempty"`
}

// Frame is the post-step state of one simulated frame
type Frame struct {
	Frame  int64   `msgpack:"f"`
	Now    int64   `msgpack:"t"` // Game time, nanoseconds
	Actors []Actor `msgpack:"a"`
}

// Snapshot captures every live actor ordered by id
func Snapshot(state *engine.GameState) Frame {
	reg := state.Registry
	ids := make([]core.Entity, 0, reg.Len())
	if p, ok := reg.Player(); ok {
		ids = append(ids, p.ID)
	}
	ids = append(ids, reg.Enemies()...)
	ids = append(ids, reg.Projectiles()...)
	slices.Sort(ids)

	f := Frame{
		Frame:  state.Frame,
		Now:    int64(state.Now),
		Actors: make([]Actor, 0, len(ids)),
	}
	for _, id := range ids {
		a, ok := reg.Get(id)
		if !ok {
			continue
		}
		actor := Actor{
			ID:     uint64(a.ID),
			Kind:   uint8(a.Kind),
			Pos:    [3]float64(a.Transform.Position),
			Visual: uint8(a.Visual),
		}
		if p, ok := reg.Projectile(id); ok {
			actor.Color = p.Color
		}
		f.Actors = append(f.Actors, actor)
	}
	return f
}

// Recorder writes a replay stream
type Recorder struct {
	buf    *bufio.Writer
	enc    *msgpack.Encoder
	closer io.Closer
	frames int
}

// NewRecorder writes the header to w and returns a recorder appending frames to it
func NewRecorder(w io.Writer, session ulid.ULID, started time.Time) (*Recorder, error) {
	buf := bufio.NewWriter(w)
	r := &Recorder{buf: buf, enc: msgpack.NewEncoder(buf)}
	h := Header{
		Version: FormatVersion,
		Session: session.String(),
		Started: started.UnixMilli(),
	}
	if err := r.enc.Encode(&h); err != nil {
		return nil, fmt.Errorf("writing replay header: %w", err)
	}
	return r, nil
}

// Create opens path for writing and starts a stream in it
func Create(path string, session ulid.ULID, started time.Time) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating replay: %w", err)
	}
	r, err := NewRecorder(f, session, started)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// RecordFrame appends the state's current frame
func (r *Recorder) RecordFrame(state *engine.GameState) error {
	f := Snapshot(state)
	if err := r.enc.Encode(&f); err != nil {
		return fmt.Errorf("writing frame %d: %w", f.Frame, err)
	}
	r.frames++
	return nil
}

// Frames returns the number of frames written
func (r *Recorder) Frames() int {
	return r.frames
}

// Close flushes buffered frames and closes the underlying file, if any
func (r *Recorder) Close() error {
	err := r.buf.Flush()
	if r.closer != nil {
		if cerr := r.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Reader decodes a replay stream
type Reader struct {
	dec    *msgpack.Decoder
	Header Header
}

// NewReader reads and checks the header
func NewReader(rd io.Reader) (*Reader, error) {
	r := &Reader{dec: msgpack.NewDecoder(bufio.NewReader(rd))}
	if err := r.dec.Decode(&r.Header); err != nil {
		return nil, fmt.Errorf("reading replay header: %w", err)
	}
	if r.Header.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrVersion, r.Header.Version)
	}
	return r, nil
}

// Session parses the recording session id
func (r *Reader) Session() (ulid.ULID, error) {
	return ulid.Parse(r.Header.Session)
}

// Next returns the next frame, io.EOF after the last one
func (r *Reader) Next() (Frame, error) {
	var f Frame
	if err := r.dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return Frame{}, io.EOF
		}
		return Frame{}, fmt.Errorf("reading frame: %w", err)
	}
	return f, nil
}
