package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo"

	"github.com/sglre6355/sgrplayer/internal/app"
	"github.com/sglre6355/sgrplayer/internal/modules/music_player/application/usecases"
	"github.com/sglre6355/sgrplayer/internal/modules/music_player/domain"
	"github.com/sglre6355/sgrplayer/internal/modules/music_player/infrastructure"
)

const (
	testPassword = "hunter2"
	testCapacity = 2
)

var testSecret = []byte("test-jwt-secret")

// recordingSynth is a test double for ports.ToneSynth
type recordingSynth struct {
	mu    sync.Mutex
	tones []domain.Tone
}

func (s *recordingSynth) PlayTone(tone domain.Tone) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tones = append(s.tones, tone)
	return nil
}

type testServer struct {
	echo     *echo.Echo
	handlers *Handlers
	synth    *recordingSynth
}

// newTestServer wires real services onto an in-memory catalog, a temporary
// asset directory and a silent audio output.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()

	bus := infrastructure.NewChannelEventBus(16)
	t.Cleanup(bus.Close)

	db, err := infrastructure.OpenDatabase("sqlite://:memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	repo, err := infrastructure.NewSQLCatalogRepository(ctx, db)
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	storage, err := infrastructure.NewFileStorage(t.TempDir(), "/assets", usecases.DefaultMaxAudioBytes)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	store := infrastructure.NewMemoryStore()
	settings := usecases.NewSettingsService(store)
	output := infrastructure.NewSilentOutput(storage, nil, bus)
	player := usecases.NewPlayerService(output, settings, bus)
	t.Cleanup(func() { player.Close() })

	catalog := usecases.NewCatalogService(repo, storage, nil, nil, bus, usecases.CatalogLimits{
		MaxCoverBytes: 1024,
	})
	playlist := usecases.NewPlaylistService(testCapacity, store, repo, bus)
	library := usecases.NewLibraryService(catalog, playlist, player)
	auth := usecases.NewAuthService(testPassword, testSecret, time.Hour)
	synth := &recordingSynth{}
	effects := usecases.NewSoundEffectsService(synth, settings)

	h := NewHandlers(catalog, playlist, player, library, settings, auth, effects)

	e := echo.New()
	e.HTTPErrorHandler = app.HTTPErrorHandler
	h.Register(e.Group("/api"))

	return &testServer{echo: e, handlers: h, synth: synth}
}

func (s *testServer) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) doJSON(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return s.do(t, req)
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()

	rec := s.doJSON(t, http.MethodPost, "/api/admin/login", map[string]string{"password": testPassword})
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Token string `json:"token"`
	}
	decode(t, rec, &body)
	return body.Token
}

type uploadForm struct {
	fields map[string]string
	files  map[string]string // field name to file contents
}

func newMultipartRequest(t *testing.T, method, target string, form uploadForm) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, value := range form.fields {
		if err := w.WriteField(name, value); err != nil {
			t.Fatalf("failed to write field: %v", err)
		}
	}
	for name, content := range form.files {
		part, err := w.CreateFormFile(name, name+".bin")
		if err != nil {
			t.Fatalf("failed to create file part: %v", err)
		}
		if _, err := io.Copy(part, strings.NewReader(content)); err != nil {
			t.Fatalf("failed to write file part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close form: %v", err)
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

// uploadSong creates a song through the admin API and returns it.
func (s *testServer) uploadSong(t *testing.T, token, title string) trackResponse {
	t.Helper()

	req := newMultipartRequest(t, http.MethodPost, "/api/admin/songs", uploadForm{
		fields: map[string]string{
			"title":    title,
			"artist":   "Kavinsky",
			"category": "Synthwave",
			"duration": "200",
		},
		files: map[string]string{
			"audio": "ID3 fake audio for " + title,
			"cover": "PNG fake cover",
		},
	})
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)

	rec := s.do(t, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload failed with status %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Song trackResponse `json:"song"`
	}
	decode(t, rec, &body)
	return body.Song
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode body %q: %v", rec.Body.String(), err)
	}
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) app.StatusEnvelope {
	t.Helper()
	var env app.StatusEnvelope
	decode(t, rec, &env)
	return env
}
