package replay

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/1siamBot/tankarena/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndRead(t *testing.T) {
	var buf bytes.Buffer
	h := Header{Seed: 99, Lives: 3, TickRate: 60}
	rec, err := NewRecorder(&buf, h)
	require.NoError(t, err)

	require.NoError(t, rec.Record(core.Command{Move: core.DirLeft}))
	require.NoError(t, rec.Record(core.Idle))
	require.NoError(t, rec.Record(core.Command{Move: core.DirNone, Fire: true}))
	require.NoError(t, rec.Record(core.Command{Move: core.DirUp, Restart: true}))
	require.NoError(t, rec.Close())
	assert.Equal(t, uint64(4), rec.Steps())

	rp, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, h, rp.Header)
	assert.Len(t, rp.Frames, 3, "idle steps are not stored")
	assert.Equal(t, core.DirLeft, rp.CommandFor(0).Move)
	assert.Equal(t, core.Idle, rp.CommandFor(1))
	assert.True(t, rp.CommandFor(2).Fire)
	assert.True(t, rp.CommandFor(3).Restart)
	assert.Equal(t, uint64(3), rp.LastStep())
}

func TestReadRejectsForeignData(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("NOPE\x01aaaaaaaaaaaaaaaaaaaa")))
	assert.ErrorIs(t, err, ErrBadHeader)
}

func TestReadReportsTruncatedFrame(t *testing.T) {
	var buf bytes.Buffer
	rec, err := NewRecorder(&buf, Header{Seed: 1})
	require.NoError(t, err)
	require.NoError(t, rec.Record(core.Command{Move: core.DirDown}))
	require.NoError(t, rec.Close())

	data := buf.Bytes()[:buf.Len()-1]
	_, err = Read(bytes.NewReader(data))
	assert.Error(t, err)
}

func TestFileRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.tkr")
	rec, err := CreateRecorder(path, Header{Seed: 5, Lives: 2, TickRate: 30})
	require.NoError(t, err)
	require.NoError(t, rec.Record(core.Command{Move: core.DirRight, Fire: true}))
	require.NoError(t, rec.Close())

	rp, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), rp.Header.Seed)
	assert.Equal(t, core.Command{Move: core.DirRight, Fire: true}, rp.CommandFor(0))
}
