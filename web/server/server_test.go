package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-matcap-loop/pkg/config"
	"github.com/df07/go-matcap-loop/pkg/core"
	"github.com/df07/go-matcap-loop/pkg/material"
	"github.com/df07/go-matcap-loop/pkg/scene"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Width = 32
	cfg.Height = 24
	cfg.SamplesPerPixel = 1
	cfg.TileSize = 16
	cfg.Workers = 2
	cfg.FPS = 100
	cfg.MatcapSize = 16
	return cfg
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	return newConfiguredServer(t, testConfig())
}

func newConfiguredServer(t *testing.T, cfg config.Config) (*Server, *httptest.Server) {
	t.Helper()

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<html>loop</html>"), 0644))

	s, err := NewServer(cfg, staticDir, nil)
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		s.Close()
	})
	return s, ts
}

func getBody(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t)
	resp, body := getBody(t, ts.URL+"/api/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestConfigEndpoint(t *testing.T) {
	_, ts := newTestServer(t)
	resp, body := getBody(t, ts.URL+"/api/config")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, 32.0, got["width"])
	assert.Equal(t, 24.0, got["height"])
	assert.Equal(t, 25.0, got["meshes"])
	assert.Equal(t, 3000.0, got["loopDurationMs"])
}

func TestStaticFiles(t *testing.T) {
	_, ts := newTestServer(t)
	resp, body := getBody(t, ts.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "loop")
}

func TestFrame(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := getBody(t, ts.URL+"/api/frame?t=1.5")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Equal(t, "0.500000", resp.Header.Get("X-Loop-Phase"))

	img, err := png.Decode(bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 24, img.Bounds().Dy())

	// Live frame without t
	resp, _ = getBody(t, ts.URL+"/api/frame")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestFrameRepeatsEveryLoop(t *testing.T) {
	_, ts := newTestServer(t)

	_, first := getBody(t, ts.URL+"/api/frame?t=1")
	_, again := getBody(t, ts.URL+"/api/frame?t=1")
	_, nextLoop := getBody(t, ts.URL+"/api/frame?t=4")
	assert.Equal(t, first, again)
	assert.Equal(t, first, nextLoop)
}

func TestFrameRejectsBadTime(t *testing.T) {
	_, ts := newTestServer(t)
	for _, query := range []string{"t=abc", "t=-1", "t=NaN"} {
		resp, body := getBody(t, ts.URL+"/api/frame?"+query)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, query)
		assert.Contains(t, string(body), "error", query)
	}
}

func TestStream(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := getBody(t, ts.URL+"/api/stream?frames=2")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := string(body)
	assert.Equal(t, 2, strings.Count(events, "event: frame\n"))
	assert.Contains(t, events, "event: complete\n")

	// Every frame event carries a decodable PNG
	for _, block := range strings.Split(events, "\n\n") {
		if !strings.HasPrefix(block, "event: frame\n") {
			continue
		}
		var update FrameUpdate
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(block, "event: frame\ndata: ")), &update))
		assert.GreaterOrEqual(t, update.Phase, 0.0)
		assert.Less(t, update.Phase, 1.0)
		assert.Equal(t, 32*24, update.Stats.TotalPixels)
		assert.NotEmpty(t, update.ImageData)
	}
}

func TestStreamRejectsBadFrameCount(t *testing.T) {
	_, ts := newTestServer(t)
	_, body := getBody(t, ts.URL+"/api/stream?frames=-3")
	assert.Contains(t, string(body), "event: error\n")
}

func TestWebSocket(t *testing.T) {
	_, ts := newTestServer(t)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/ws?frames=2"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	for i := 0; i < 2; i++ {
		typ, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Equal(t, websocket.BinaryMessage, typ)

		img, err := png.Decode(bytes.NewReader(msg))
		require.NoError(t, err)
		assert.Equal(t, 32, img.Bounds().Dx())
	}

	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}

func TestInspect(t *testing.T) {
	_, ts := newTestServer(t)

	for _, query := range []string{"x=a&y=1", "x=1", "x=32&y=0", "x=0&y=-1", "x=1&y=1&t=zz"} {
		resp, _ := getBody(t, ts.URL+"/api/inspect?"+query)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, query)
	}

	resp, body := getBody(t, ts.URL+"/api/inspect?x=16&y=12&t=0")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got InspectResponse
	require.NoError(t, json.Unmarshal(body, &got))
	if got.Hit {
		assert.GreaterOrEqual(t, got.Group, 0)
		assert.Less(t, got.Group, scene.GroupCount)
		assert.GreaterOrEqual(t, got.Mesh, 0)
		assert.LessOrEqual(t, got.Mesh, scene.SatellitesPerGroup)
		assert.Equal(t, "matcap", got.MaterialType)
	} else {
		assert.Equal(t, -1, got.Group)
		assert.Equal(t, -1, got.Mesh)
	}
}

func TestInspectLeavesStreamedFramesAlone(t *testing.T) {
	cfg := testConfig()
	cfg.EnableJitter = true
	cfg.EnableOrbitDrift = true
	cfg.Seed = 3

	inspected, ts := newConfiguredServer(t, cfg)
	untouched, _ := newConfiguredServer(t, cfg)

	_, err := inspected.RenderFrame(0)
	require.NoError(t, err)
	_, err = untouched.RenderFrame(0)
	require.NoError(t, err)

	lights := inspected.loop.Scene.Directional[0].Position
	offset := inspected.loop.Scene.Position
	for _, x := range []int{4, 16, 28} {
		resp, _ := getBody(t, ts.URL+"/api/inspect?x="+strconv.Itoa(x)+"&y=12&t=1.25")
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, lights, inspected.loop.Scene.Directional[0].Position)
	assert.Equal(t, offset, inspected.loop.Scene.Position)

	got, err := inspected.RenderFrame(500 * time.Millisecond)
	require.NoError(t, err)
	want, err := untouched.RenderFrame(500 * time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, want.PNG, got.PNG)
}

func TestExtractMaterialInfo(t *testing.T) {
	texture := material.NewStudioMatcap(8)
	kind, props := extractMaterialInfo(material.NewMatcap(core.NewColorHex(0x808080), 0.5, texture))
	assert.Equal(t, "matcap", kind)
	assert.Equal(t, 0.1, props["metalness"])
	assert.Equal(t, 0.5, props["roughness"])
	assert.Equal(t, 8, props["matcapWidth"])

	kind, _ = extractMaterialInfo(material.NewStandard(core.NewVec3(1, 1, 1), 0, 1))
	assert.Equal(t, "standard", kind)

	kind, _ = extractMaterialInfo(nil)
	assert.Equal(t, "unknown", kind)
}
