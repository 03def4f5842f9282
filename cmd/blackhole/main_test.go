package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blackhole/internal/blackhole"
	"blackhole/internal/config"
	"blackhole/internal/engine3D"
	"blackhole/internal/gpu/gputest"
)

func newTestControls(t *testing.T) *controls {
	t.Helper()
	opts := blackhole.DefaultOptions()
	opts.Desktop = engine3D.Counts{Debris: 300, Stars: 30}
	opts.Constrained = opts.Desktop

	d, err := blackhole.New(gputest.NewDevice(1280, 720, 1), opts)
	require.NoError(t, err)
	t.Cleanup(func() { d.Dispose() })
	return newControls(d, config.Default())
}

func TestCommandValidate(t *testing.T) {
	tests := []struct {
		cmd  Command
		fail bool
	}{
		{Command{Type: CommandParams}, false},
		{Command{Type: CommandReset}, false},
		{Command{Type: CommandView, View: "top"}, false},
		{Command{Type: CommandView}, true},
		{Command{Type: CommandMove, Position: &[3]float64{1, 2, 3}}, false},
		{Command{Type: CommandMove}, true},
		{Command{Type: CommandAutoRotate, Enabled: ptr(true)}, false},
		{Command{Type: CommandCinematic}, true},
		{Command{Type: "explode"}, true},
	}
	for _, tt := range tests {
		err := tt.cmd.Validate()
		if tt.fail {
			assert.Error(t, err, "%+v", tt.cmd)
		} else {
			assert.NoError(t, err, "%+v", tt.cmd)
		}
	}
	assert.ErrorIs(t, Command{Type: "explode"}.Validate(), errUnknownCommand)
}

func TestControlsParams(t *testing.T) {
	c := newTestControls(t)

	require.NoError(t, c.apply(Command{Type: CommandParams, RotationSpeed: ptr(2.0), LightMode: ptr(true)}))
	assert.Equal(t, 2.0, c.params.RotationSpeed)
	assert.True(t, c.params.LightMode)
	assert.Equal(t, 1.2, c.params.BloomIntensity, "absent fields are unchanged")

	require.NoError(t, c.apply(Command{Type: CommandParams, BloomIntensity: ptr(50.0)}))
	assert.Equal(t, blackhole.BloomIntensityRange.Max, c.params.BloomIntensity)
}

func TestControlsCamera(t *testing.T) {
	c := newTestControls(t)
	cam := c.driver.Camera()

	require.NoError(t, c.apply(Command{Type: CommandView, View: "top"}))
	assert.Equal(t, mgl64.Vec3{0, 100, 5}, cam.Goal())
	assert.True(t, cam.IsTransitioning())

	err := c.apply(Command{Type: CommandView, View: "nowhere"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orbit, top, side")

	require.NoError(t, c.apply(Command{Type: CommandMove, Position: &[3]float64{10, 20, 30}}))
	assert.Equal(t, mgl64.Vec3{10, 20, 30}, cam.Goal())

	require.NoError(t, c.apply(Command{Type: CommandReset}))
	assert.Equal(t, cam.Options().Home, cam.Goal())

	require.NoError(t, c.apply(Command{Type: CommandAutoRotate, Enabled: ptr(true)}))
	assert.True(t, cam.AutoRotate())

	require.NoError(t, c.apply(Command{Type: CommandCinematic, Enabled: ptr(false)}))
	assert.False(t, c.cinematic)
	assert.False(t, cam.AutoRotate())
}

func TestControlsScreenshotRequest(t *testing.T) {
	c := newTestControls(t)
	assert.False(t, c.takeScreenshot())

	require.NoError(t, c.apply(Command{Type: CommandScreenshot}))
	assert.True(t, c.takeScreenshot())
	assert.False(t, c.takeScreenshot())
}

func TestRemoteServer(t *testing.T) {
	r, err := StartRemote("127.0.0.1:0")
	require.NoError(t, err)
	defer r.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+r.Addr()+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(Command{Type: CommandView, View: "side"}))
	var res reply
	require.NoError(t, conn.ReadJSON(&res))
	assert.True(t, res.OK)

	select {
	case cmd := <-r.Commands():
		assert.Equal(t, CommandView, cmd.Type)
		assert.Equal(t, "side", cmd.View)
	case <-time.After(2 * time.Second):
		t.Fatal("command was not queued")
	}

	require.NoError(t, conn.WriteJSON(Command{Type: "explode"}))
	require.NoError(t, conn.ReadJSON(&res))
	assert.False(t, res.OK)
	assert.Contains(t, res.Error, "unknown command")
	assert.Empty(t, r.Commands())
}

func TestFlashedMessageExpires(t *testing.T) {
	w := &Window{}
	w.flash("Saved %s", "shot.png")
	assert.Equal(t, "Saved shot.png", w.activeMessage(time.Now()))

	assert.Empty(t, w.activeMessage(time.Now().Add(flashDuration+time.Millisecond)))
	assert.Empty(t, w.message, "an expired message is cleared")
	assert.Empty(t, w.activeMessage(time.Now()))
}

func TestScreenshotPath(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 250e6, time.UTC)
	path, err := screenshotPath("shots", false, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("shots", "blackhole-20240309-140507.250.png"), path)
}

func TestWriteScreenshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "shot.png")
	require.NoError(t, writeScreenshot(path, []byte("png")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)
}
