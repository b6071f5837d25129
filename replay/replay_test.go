package replay_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/replay"
)

var script = []replay.Action{
	replay.TranslateLeft, replay.RotateClockwise, replay.FastFall,
	replay.Hold, replay.TranslateRight, replay.TranslateRight, replay.FastFall,
	replay.RotateCounterClockwise, replay.Fall, replay.Fall, replay.FastFall,
}

func record(t *testing.T, name string) *replay.Recorder {
	t.Helper()
	cfg := driver.DefaultConfig()
	cfg.Seed = []byte("replay-" + name)
	r, err := replay.NewRecorder(name, cfg)
	require.NoError(t, err)

	for i := 0; i < 400 && !r.Driver().GameOver(); i++ {
		if i%7 == 0 {
			r.Do(script[(i/7)%len(script)])
		}
		r.NextFrame()
	}
	r.Do(replay.Hold)
	return r
}

func TestActionText(t *testing.T) {
	for a := replay.TranslateLeft; a.Valid(); a++ {
		text, err := a.MarshalText()
		require.NoError(t, err)
		var back replay.Action
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, a, back)
	}

	_, err := replay.ParseAction("jump")
	assert.Error(t, err)
	assert.Equal(t, "action(42)", replay.Action(42).String())
}

func TestPlayerReproducesRecording(t *testing.T) {
	for _, name := range []string{"classic", "cascade", "sticky", "fusion"} {
		t.Run(name, func(t *testing.T) {
			r := record(t, name)
			s := r.Session()
			require.NotEmpty(t, s.Actions)

			p, err := replay.NewPlayer(s, driver.Config{})
			require.NoError(t, err)
			assert.False(t, p.Input(replay.TranslateLeft), "live input waits for the recording")
			p.Run()

			assert.True(t, p.Done())
			assert.Equal(t, r.Driver().Snapshot(), p.Driver().Snapshot())
			assert.False(t, p.Step())
		})
	}
}

func TestRecorderSessionIsACopy(t *testing.T) {
	r := record(t, "classic")
	s := r.Session()
	n := len(s.Actions)
	r.Do(replay.TranslateLeft)
	assert.Len(t, s.Actions, n)
	assert.Len(t, r.Session().Actions, n+1)
}

func TestUnknownVariant(t *testing.T) {
	_, err := replay.NewRecorder("nope", driver.DefaultConfig())
	assert.Error(t, err)

	_, err = replay.NewPlayer(&replay.Session{Variant: "nope"}, driver.Config{})
	assert.Error(t, err)
}

func TestCodecs(t *testing.T) {
	original := record(t, "sticky").Session()

	for _, codec := range []replay.Codec{replay.Binary, replay.JSON} {
		t.Run(codec.Ext(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, codec.Encode(&buf, original))
			decoded, err := codec.Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, original, decoded)
		})
	}
}

func TestBinaryRejectsGarbage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, replay.Binary.Encode(&buf, &replay.Session{Variant: "classic"}))
	data := buf.Bytes()

	bad := bytes.Clone(data)
	copy(bad, "NOPE")
	_, err := replay.Binary.Decode(bytes.NewReader(bad))
	assert.ErrorIs(t, err, replay.ErrBadMagic)

	bad = bytes.Clone(data)
	bad[4] = 9
	_, err = replay.Binary.Decode(bytes.NewReader(bad))
	assert.ErrorIs(t, err, replay.ErrUnsupportedVersion)

	_, err = replay.Binary.Decode(bytes.NewReader(data[:10]))
	assert.Error(t, err)

	s := &replay.Session{Variant: "classic", Actions: []replay.Entry{{Frame: 1, Action: replay.Action(200)}}}
	buf.Reset()
	require.NoError(t, replay.Binary.Encode(&buf, s))
	_, err = replay.Binary.Decode(&buf)
	assert.ErrorIs(t, err, replay.ErrCorrupt)
}

func testStore(t *testing.T, st replay.Store) {
	ctx := context.Background()
	s := record(t, "classic").Session()
	s.ID = replay.NewID("classic", time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC))
	assert.Equal(t, "classic-20261014T093000.000000000", s.ID)

	require.NoError(t, st.Save(ctx, s))
	loaded, err := st.Load(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)

	ids, err := st.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, s.ID)

	_, err = st.Load(ctx, "missing")
	assert.True(t, errors.Is(err, replay.ErrNotFound))

	s.ID = "../escape"
	assert.Error(t, st.Save(ctx, s))
}

func TestFileStore(t *testing.T) {
	for _, codec := range []replay.Codec{replay.Binary, replay.JSON} {
		t.Run(codec.Ext(), func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "replays")
			st, err := replay.NewFileStore(dir, codec)
			require.NoError(t, err)
			testStore(t, st)

			require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
			ids, err := st.List(context.Background())
			require.NoError(t, err)
			assert.Len(t, ids, 1)
		})
	}
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("BLOCKFALL_TEST_REDIS")
	if url == "" {
		t.Skip("BLOCKFALL_TEST_REDIS not set")
	}
	client, err := replay.ConnectRedis(context.Background(), url)
	require.NoError(t, err)
	defer client.Close()

	prefix := "blockfall-test:" + t.Name() + ":"
	t.Cleanup(func() {
		ctx := context.Background()
		keys, _ := client.Keys(ctx, prefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
	})
	testStore(t, replay.NewRedisStore(client, prefix))
}

func TestConnectRedisBadURL(t *testing.T) {
	_, err := replay.ConnectRedis(context.Background(), "not a url")
	assert.Error(t, err)
}
