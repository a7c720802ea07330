package replay

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/1siamBot/tankarena/engine/core"
)

// magic opens every replay file
var magic = [4]byte{'T', 'K', 'R', 'P'}

const version uint8 = 1

// ErrBadHeader is returned for files that are not replays of this version
var ErrBadHeader = errors.New("replay: bad header")

// Header carries what a replay needs to rebuild the same session
type Header struct {
	Seed     int64
	Lives    int32
	TickRate float64
}

// Encode writes the header
func (h *Header) Encode(w io.Writer) error {
	if _, err := w.Write(magic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, version); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, h.Seed); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, h.Lives); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, h.TickRate)
}

// Decode reads the header
func (h *Header) Decode(r io.Reader) error {
	var m [4]byte
	if _, err := io.ReadFull(r, m[:]); err != nil {
		return err
	}
	var v uint8
	if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
		return err
	}
	if m != magic || v != version {
		return ErrBadHeader
	}
	if err := binary.Read(r, binary.LittleEndian, &h.Seed); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &h.Lives); err != nil {
		return err
	}
	return binary.Read(r, binary.LittleEndian, &h.TickRate)
}

const (
	flagFire uint8 = 1 << iota
	flagRestart
)

// Frame is the command the session consumed on one step
type Frame struct {
	Step    uint64
	Command core.Command
}

// Encode writes a frame to binary
func (f *Frame) Encode(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, f.Step); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, int8(f.Command.Move)); err != nil {
		return err
	}
	var flags uint8
	if f.Command.Fire {
		flags |= flagFire
	}
	if f.Command.Restart {
		flags |= flagRestart
	}
	return binary.Write(w, binary.LittleEndian, flags)
}

// Decode reads a frame from binary
func (f *Frame) Decode(r io.Reader) error {
	if err := binary.Read(r, binary.LittleEndian, &f.Step); err != nil {
		return err
	}
	var move int8
	if err := binary.Read(r, binary.LittleEndian, &move); err != nil {
		return unexpected(err)
	}
	var flags uint8
	if err := binary.Read(r, binary.LittleEndian, &flags); err != nil {
		return unexpected(err)
	}
	f.Command = core.Command{
		Move:    core.Direction(move),
		Fire:    flags&flagFire != 0,
		Restart: flags&flagRestart != 0,
	}
	return nil
}

// unexpected turns a clean EOF inside a frame into a truncation error
func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
