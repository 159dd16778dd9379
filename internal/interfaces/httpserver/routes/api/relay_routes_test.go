package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/n8nvoice/voice-gateway/internal/domain/relay"
	"github.com/n8nvoice/voice-gateway/internal/domain/session"
	"github.com/n8nvoice/voice-gateway/internal/infrastructure/store"
	"github.com/n8nvoice/voice-gateway/internal/interfaces/httpserver/handlers"
	"github.com/n8nvoice/voice-gateway/internal/interfaces/httpserver/routes/api"
)

// MockRelayService is a mock implementation of relay.Service for testing.
type MockRelayService struct {
	CreateSessionFunc        func(ctx context.Context, webhookURL, modelType string) (json.RawMessage, error)
	ForwardTranscriptionFunc func(ctx context.Context, sessionID, transcription string) (relay.Reply, error)
	HandleWebhookReplyFunc   func(ctx context.Context, sessionID, text string) (relay.RealtimeEvent, error)
	ListSessionsFunc         func(ctx context.Context) ([]*session.Session, error)
}

func (m *MockRelayService) CreateSession(ctx context.Context, webhookURL, modelType string) (json.RawMessage, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, webhookURL, modelType)
	}
	return json.RawMessage(`{}`), nil
}

func (m *MockRelayService) ForwardTranscription(ctx context.Context, sessionID, transcription string) (relay.Reply, error) {
	if m.ForwardTranscriptionFunc != nil {
		return m.ForwardTranscriptionFunc(ctx, sessionID, transcription)
	}
	return relay.Reply{"text": ""}, nil
}

func (m *MockRelayService) HandleWebhookReply(ctx context.Context, sessionID, text string) (relay.RealtimeEvent, error) {
	if m.HandleWebhookReplyFunc != nil {
		return m.HandleWebhookReplyFunc(ctx, sessionID, text)
	}
	return relay.AssistantEvent(text), nil
}

func (m *MockRelayService) FormatResponse(ctx context.Context, text, sessionID string) relay.RealtimeEvent {
	return relay.AssistantEvent(text)
}

func (m *MockRelayService) ListSessions(ctx context.Context) ([]*session.Session, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(ctx)
	}
	return nil, nil
}

func setupRouter(mock *MockRelayService, authMiddleware gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	api.NewRoutes(handlers.NewProvider(mock)).Register(engine, authMiddleware)
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeDetail(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return resp.Detail
}

func TestCreateSessionRoute(t *testing.T) {
	upstream := `{"id":"sess_1","client_secret":{"value":"ek_test"}}`
	mock := &MockRelayService{
		CreateSessionFunc: func(ctx context.Context, webhookURL, modelType string) (json.RawMessage, error) {
			if webhookURL != "https://n8n.example/hook" {
				t.Errorf("webhookURL = %q", webhookURL)
			}
			if modelType != "mini" {
				t.Errorf("modelType = %q", modelType)
			}
			return json.RawMessage(upstream), nil
		},
	}
	engine := setupRouter(mock, nil)

	w := doJSON(t, engine, http.MethodPost, "/api/realtime/session",
		`{"webhook_url":"https://n8n.example/hook","model_type":"mini"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	if w.Body.String() != upstream {
		t.Errorf("body = %s, want verbatim upstream JSON", w.Body)
	}
}

func TestCreateSessionRouteValidation(t *testing.T) {
	engine := setupRouter(&MockRelayService{}, nil)

	tests := []struct {
		name       string
		body       string
		wantDetail string
	}{
		{"missing webhook_url", `{"model_type":"standard"}`, "webhook_url is required"},
		{"empty webhook_url", `{"webhook_url":""}`, "webhook_url is required"},
		{"invalid JSON", `{not json`, "invalid JSON body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, engine, http.MethodPost, "/api/realtime/session", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", w.Code)
			}
			if got := decodeDetail(t, w); got != tt.wantDetail {
				t.Errorf("detail = %q, want %q", got, tt.wantDetail)
			}
		})
	}
}

func TestAutomationResponseRoute(t *testing.T) {
	engine := setupRouter(&MockRelayService{}, nil)

	w := doJSON(t, engine, http.MethodPost, "/api/realtime/n8n-response",
		`{"text":"done","session_id":"sess_1"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	var event relay.RealtimeEvent
	if err := json.Unmarshal(w.Body.Bytes(), &event); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if event.Type != "conversation.item.create" || event.Item.Content[0].Text != "done" {
		t.Errorf("event = %+v", event)
	}
}

func TestAutomationResponseRouteMissingSessionID(t *testing.T) {
	engine := setupRouter(&MockRelayService{}, nil)

	w := doJSON(t, engine, http.MethodPost, "/api/realtime/n8n-response", `{"text":"done"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if got := decodeDetail(t, w); got != "Session ID is required" {
		t.Errorf("detail = %q", got)
	}
}

func TestAutomationResponseRouteMissingText(t *testing.T) {
	engine := setupRouter(&MockRelayService{}, nil)

	w := doJSON(t, engine, http.MethodPost, "/api/realtime/n8n-response", `{"session_id":"sess_1"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if got := decodeDetail(t, w); got != "text is required" {
		t.Errorf("detail = %q", got)
	}
}

func TestAutomationResponseRouteEmptyTextAllowed(t *testing.T) {
	engine := setupRouter(&MockRelayService{}, nil)

	w := doJSON(t, engine, http.MethodPost, "/api/realtime/n8n-response",
		`{"text":"","session_id":"sess_1"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	var event relay.RealtimeEvent
	if err := json.Unmarshal(w.Body.Bytes(), &event); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if event.Item.Content[0].Text != "" {
		t.Errorf("event text = %q, want empty", event.Item.Content[0].Text)
	}
}

func TestWebhookReceiverRoute(t *testing.T) {
	mock := &MockRelayService{
		HandleWebhookReplyFunc: func(ctx context.Context, sessionID, text string) (relay.RealtimeEvent, error) {
			if sessionID != "sess_1" {
				t.Errorf("sessionID = %q", sessionID)
			}
			return relay.AssistantEvent(text), nil
		},
	}
	engine := setupRouter(mock, nil)

	w := doJSON(t, engine, http.MethodPost, "/api/webhook/sess_1", `{"text":"reply"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	var event relay.RealtimeEvent
	if err := json.Unmarshal(w.Body.Bytes(), &event); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if event.Item.Content[0].Text != "reply" {
		t.Errorf("event text = %q", event.Item.Content[0].Text)
	}
}

func TestWebhookReceiverRouteUnknownSession(t *testing.T) {
	mock := &MockRelayService{
		HandleWebhookReplyFunc: func(ctx context.Context, sessionID, text string) (relay.RealtimeEvent, error) {
			return relay.RealtimeEvent{}, store.ErrSessionNotFound
		},
	}
	engine := setupRouter(mock, nil)

	w := doJSON(t, engine, http.MethodPost, "/api/webhook/missing", `{"text":"reply"}`)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	if got := decodeDetail(t, w); got != "Session not found" {
		t.Errorf("detail = %q", got)
	}
}

func TestWebhookReceiverRouteUnknownSessionMalformedBody(t *testing.T) {
	mock := &MockRelayService{
		HandleWebhookReplyFunc: func(ctx context.Context, sessionID, text string) (relay.RealtimeEvent, error) {
			return relay.RealtimeEvent{}, store.ErrSessionNotFound
		},
	}
	engine := setupRouter(mock, nil)

	// The unknown session wins over the malformed body.
	w := doJSON(t, engine, http.MethodPost, "/api/webhook/missing", `not json`)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if got := decodeDetail(t, w); got != "Session not found" {
		t.Errorf("detail = %q", got)
	}
}

func TestWebhookReceiverRouteInvalidJSON(t *testing.T) {
	engine := setupRouter(&MockRelayService{}, nil)

	w := doJSON(t, engine, http.MethodPost, "/api/webhook/sess_1", `not json`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestWebhookReceiverRouteMissingTextDefaultsEmpty(t *testing.T) {
	var gotText = "sentinel"
	mock := &MockRelayService{
		HandleWebhookReplyFunc: func(ctx context.Context, sessionID, text string) (relay.RealtimeEvent, error) {
			gotText = text
			return relay.AssistantEvent(text), nil
		},
	}
	engine := setupRouter(mock, nil)

	w := doJSON(t, engine, http.MethodPost, "/api/webhook/sess_1", `{"other":"keys"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if gotText != "" {
		t.Errorf("text = %q, want empty default", gotText)
	}
}

func TestForwardTranscriptionRoute(t *testing.T) {
	mock := &MockRelayService{
		ForwardTranscriptionFunc: func(ctx context.Context, sessionID, transcription string) (relay.Reply, error) {
			if sessionID != "sess_1" || transcription != "hello" {
				t.Errorf("args = %q %q", sessionID, transcription)
			}
			return relay.Reply{"text": "workflow reply"}, nil
		},
	}
	engine := setupRouter(mock, nil)

	w := doJSON(t, engine, http.MethodPost, "/api/forward-to-n8n",
		`{"transcription":"hello","session_id":"sess_1"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	var reply map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if reply["text"] != "workflow reply" {
		t.Errorf("reply = %v", reply)
	}
}

func TestForwardTranscriptionRouteUnknownSession(t *testing.T) {
	mock := &MockRelayService{
		ForwardTranscriptionFunc: func(ctx context.Context, sessionID, transcription string) (relay.Reply, error) {
			return nil, store.ErrSessionNotFound
		},
	}
	engine := setupRouter(mock, nil)

	w := doJSON(t, engine, http.MethodPost, "/api/forward-to-n8n",
		`{"transcription":"hello","session_id":"missing"}`)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	if got := decodeDetail(t, w); got != "Session not found" {
		t.Errorf("detail = %q", got)
	}
}

func TestForwardTranscriptionRouteMissingSessionID(t *testing.T) {
	engine := setupRouter(&MockRelayService{}, nil)

	w := doJSON(t, engine, http.MethodPost, "/api/forward-to-n8n", `{"transcription":"hello"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if got := decodeDetail(t, w); got != "session_id is required" {
		t.Errorf("detail = %q", got)
	}
}

func TestForwardTranscriptionRouteMissingTranscription(t *testing.T) {
	var forwarded bool
	mock := &MockRelayService{
		ForwardTranscriptionFunc: func(ctx context.Context, sessionID, transcription string) (relay.Reply, error) {
			forwarded = true
			return relay.Reply{"text": ""}, nil
		},
	}
	engine := setupRouter(mock, nil)

	w := doJSON(t, engine, http.MethodPost, "/api/forward-to-n8n", `{"session_id":"sess_1"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	if got := decodeDetail(t, w); got != "transcription is required" {
		t.Errorf("detail = %q", got)
	}
	if forwarded {
		t.Error("transcription was forwarded despite missing field")
	}
}

func TestForwardTranscriptionRouteEmptyTranscriptionAllowed(t *testing.T) {
	mock := &MockRelayService{
		ForwardTranscriptionFunc: func(ctx context.Context, sessionID, transcription string) (relay.Reply, error) {
			if transcription != "" {
				t.Errorf("transcription = %q, want empty", transcription)
			}
			return relay.Reply{"text": "ok"}, nil
		},
	}
	engine := setupRouter(mock, nil)

	w := doJSON(t, engine, http.MethodPost, "/api/forward-to-n8n",
		`{"transcription":"","session_id":"sess_1"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
}

func TestConfigRoute(t *testing.T) {
	engine := setupRouter(&MockRelayService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/config", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		RealtimeAPIEnabled bool     `json:"realtime_api_enabled"`
		Version            string   `json:"version"`
		AvailableModels    []string `json:"available_models"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.RealtimeAPIEnabled {
		t.Error("realtime_api_enabled = false")
	}
	if resp.Version != "2.0.0" {
		t.Errorf("version = %q", resp.Version)
	}
	if len(resp.AvailableModels) != 2 {
		t.Errorf("available_models = %v", resp.AvailableModels)
	}
}

func TestHealthRoute(t *testing.T) {
	engine := setupRouter(&MockRelayService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Body.String() != `{"status":"ok"}` {
		t.Errorf("body = %s", w.Body)
	}
}

func TestAuthMiddlewareScope(t *testing.T) {
	deny := func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "missing token"})
	}
	engine := setupRouter(&MockRelayService{}, deny)

	// Protected routes reject without credentials.
	w := doJSON(t, engine, http.MethodPost, "/api/forward-to-n8n",
		`{"transcription":"x","session_id":"sess_1"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("forward-to-n8n status = %d, want 401", w.Code)
	}

	// Config and the webhook receiver stay public.
	req := httptest.NewRequest(http.MethodGet, "/api/config", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("config status = %d, want 200", rec.Code)
	}

	w = doJSON(t, engine, http.MethodPost, "/api/webhook/sess_1", `{"text":"reply"}`)
	if w.Code != http.StatusOK {
		t.Errorf("webhook receiver status = %d, want 200", w.Code)
	}
}
