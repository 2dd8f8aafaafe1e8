package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func decodeState(t *testing.T, s *testServer, method, target string, body any) playbackStateResponse {
	t.Helper()

	rec := s.doJSON(t, method, target, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("%s %s: expected status 200, got %d: %s", method, target, rec.Code, rec.Body.String())
	}

	var state playbackStateResponse
	decode(t, rec, &state)
	return state
}

func TestPlayer_PlayWithoutMedia(t *testing.T) {
	s := newTestServer(t)

	rec := s.doJSON(t, http.MethodPost, "/api/player/play", nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Message != "No songs loaded" {
		t.Errorf("unexpected envelope %+v", env)
	}
}

func TestPlayer_Transport(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)
	s.uploadSong(t, token, "Nightcall")
	second := s.uploadSong(t, token, "Odd Look")

	state := decodeState(t, s, http.MethodPost, "/api/player/source", map[string]string{"source": "all"})
	if state.TrackCount != 2 || state.Source != "all" {
		t.Fatalf("expected 2 tracks from all, got %+v", state)
	}
	// Newest first.
	if state.CurrentTrack == nil || state.CurrentTrack.ID != second.ID {
		t.Fatalf("expected newest track to be current, got %+v", state.CurrentTrack)
	}

	state = decodeState(t, s, http.MethodPost, "/api/player/play", nil)
	if !state.IsPlaying {
		t.Error("expected player to be playing")
	}

	state = decodeState(t, s, http.MethodPost, "/api/player/next", nil)
	if state.CurrentIndex != 1 || !state.IsPlaying {
		t.Errorf("expected index 1 and playing, got %+v", state)
	}

	state = decodeState(t, s, http.MethodPost, "/api/player/next", nil)
	if state.CurrentIndex != 0 {
		t.Errorf("expected next to wrap to 0, got %d", state.CurrentIndex)
	}

	state = decodeState(t, s, http.MethodPost, "/api/player/prev", nil)
	if state.CurrentIndex != 1 {
		t.Errorf("expected prev to wrap to 1, got %d", state.CurrentIndex)
	}

	state = decodeState(t, s, http.MethodPost, "/api/player/pause", nil)
	if state.IsPlaying {
		t.Error("expected player to be paused")
	}

	state = decodeState(t, s, http.MethodPost, "/api/player/select", map[string]int{"index": 0})
	if state.CurrentIndex != 0 || !state.IsPlaying {
		t.Errorf("expected index 0 and playing, got %+v", state)
	}

	rec := s.doJSON(t, http.MethodPost, "/api/player/select", map[string]int{"index": 5})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for out of range index, got %d", rec.Code)
	}
}

func TestPlayer_Toggles(t *testing.T) {
	s := newTestServer(t)

	state := decodeState(t, s, http.MethodPost, "/api/player/volume", map[string]int{"volume": 150})
	if state.Volume != 100 {
		t.Errorf("expected volume clamped to 100, got %d", state.Volume)
	}

	state = decodeState(t, s, http.MethodPost, "/api/player/mute", nil)
	if !state.IsMuted || state.Volume != 0 {
		t.Errorf("expected muted at 0, got %+v", state)
	}

	state = decodeState(t, s, http.MethodPost, "/api/player/mute", nil)
	if state.IsMuted || state.Volume != 100 {
		t.Errorf("expected volume restored to 100, got %+v", state)
	}

	state = decodeState(t, s, http.MethodPost, "/api/player/shuffle", nil)
	if !state.Shuffle {
		t.Error("expected shuffle on")
	}

	wantModes := []string{"all", "one", "off"}
	for _, want := range wantModes {
		state = decodeState(t, s, http.MethodPost, "/api/player/repeat", nil)
		if state.RepeatMode != want {
			t.Errorf("expected repeat mode %q, got %q", want, state.RepeatMode)
		}
	}
}

func TestPlayer_BadRequests(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		target string
		body   any
	}{
		{name: "seek without percent", target: "/api/player/seek", body: map[string]string{}},
		{name: "select without index", target: "/api/player/select", body: map[string]string{}},
		{name: "volume without value", target: "/api/player/volume", body: map[string]string{}},
		{name: "unknown source", target: "/api/player/source", body: map[string]string{"source": "radio"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.doJSON(t, http.MethodPost, tt.target, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", rec.Code)
			}
		})
	}
}

func TestPlayer_Analyser(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		query      string
		wantStatus int
		wantKind   string
		wantLen    int
	}{
		{query: "", wantStatus: http.StatusOK, wantKind: "frequency", wantLen: 128},
		{query: "?kind=time", wantStatus: http.StatusOK, wantKind: "time", wantLen: 256},
		{query: "?kind=spectrogram", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run("kind"+tt.query, func(t *testing.T) {
			rec := s.do(t, httptest.NewRequest(http.MethodGet, "/api/player/analyser"+tt.query, nil))
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp analyserResponse
			decode(t, rec, &resp)
			if resp.Kind != tt.wantKind || resp.FFTSize != 256 || len(resp.Data) != tt.wantLen {
				t.Errorf("unexpected analyser response kind=%q size=%d len=%d", resp.Kind, resp.FFTSize, len(resp.Data))
			}
		})
	}
}
