package replay

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/1siamBot/tankarena/engine/core"
)

// Recorder writes the commands of a session as it is played. Idle steps
// are not written; playback fills them in.
type Recorder struct {
	Header Header
	step   uint64
	file   *os.File
	writer *bufio.Writer
}

// NewRecorder writes h to w and returns a recorder appending to it
func NewRecorder(w io.Writer, h Header) (*Recorder, error) {
	bw := bufio.NewWriter(w)
	if err := h.Encode(bw); err != nil {
		return nil, fmt.Errorf("write replay header: %w", err)
	}
	return &Recorder{Header: h, writer: bw}, nil
}

// CreateRecorder creates a replay file for recording
func CreateRecorder(path string, h Header) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	r, err := NewRecorder(f, h)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.file = f
	return r, nil
}

// Record stores the command consumed on the next step
func (r *Recorder) Record(cmd core.Command) error {
	step := r.step
	r.step++
	if cmd == core.Idle {
		return nil
	}
	f := Frame{Step: step, Command: cmd}
	return f.Encode(r.writer)
}

// Steps returns how many steps were recorded
func (r *Recorder) Steps() uint64 { return r.step }

// Close flushes and closes the replay file
func (r *Recorder) Close() error {
	err := r.writer.Flush()
	if r.file != nil {
		if cerr := r.file.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Replay is a loaded recording
type Replay struct {
	Header Header
	Frames []Frame
	byStep map[uint64]core.Command
}

// Read decodes a whole replay from r
func Read(r io.Reader) (*Replay, error) {
	br := bufio.NewReader(r)
	rp := &Replay{byStep: make(map[uint64]core.Command)}
	if err := rp.Header.Decode(br); err != nil {
		return nil, err
	}
	for {
		var f Frame
		err := f.Decode(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("replay frame %d: %w", len(rp.Frames), err)
		}
		rp.Frames = append(rp.Frames, f)
		rp.byStep[f.Step] = f.Command
	}
	return rp, nil
}

// Load loads a replay file
func Load(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// CommandFor returns the command recorded for step, Idle if none
func (r *Replay) CommandFor(step uint64) core.Command {
	if cmd, ok := r.byStep[step]; ok {
		return cmd
	}
	return core.Idle
}

// LastStep returns the highest recorded step, or 0 for an empty replay
func (r *Replay) LastStep() uint64 {
	if len(r.Frames) == 0 {
		return 0
	}
	return r.Frames[len(r.Frames)-1].Step
}
