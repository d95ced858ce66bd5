package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"tastepost-core/internal/adapter/store"
	"tastepost-core/internal/domain/entity"
	"tastepost-core/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stubChatModel struct {
	text string
	err  error
}

func (s *stubChatModel) Complete(_ context.Context, req entity.ChatRequest) (*entity.ChatResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &entity.ChatResponse{
		Text:  s.text,
		Usage: entity.Usage{InputTokens: 10, OutputTokens: 20, TotalTokens: 30, ModelID: req.ModelID},
	}, nil
}

type stubUsageTracker struct {
	mu    sync.Mutex
	added int
}

func (s *stubUsageTracker) Add(_ context.Context, _ string, _ entity.Usage, _ float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.added++
	return nil
}

func (s *stubUsageTracker) Totals(_ context.Context, _ string) (entity.BotUsage, error) {
	return entity.BotUsage{TotalTokens: 30, CostUSD: 0.001}, nil
}

func newTestApp(t *testing.T, model *stubChatModel, alerts *store.MemoryAlertStore) *fiber.App {
	log := zaptest.NewLogger(t)
	generator := usecase.NewGenerator(model, entity.NewCatalog(), log)
	extractor := usecase.NewExtractor(model, "gemini-2.5-flash-lite", log)

	app := fiber.New()
	SetupRouter(app, NewHandler(generator, extractor, alerts, &stubUsageTracker{}, log))
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func TestGeneratePost_Success(t *testing.T) {
	model := &stubChatModel{text: "TITLE: Hidden Gems This Week\nCONTENT: Go eat."}
	app := newTestApp(t, model, store.NewMemoryAlertStore())

	resp := postJSON(t, app, "/v1/posts/generate", map[string]any{
		"bot":         map[string]string{"id": "bot-1", "model": "gemini-2.5-flash"},
		"user_prompt": "weekly roundup",
	})

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var post entity.Post
	decodeBody(t, resp, &post)
	assert.Equal(t, "Hidden Gems This Week", post.Title)
	assert.Equal(t, "<p>Go eat.</p>", post.BodyHTML)
	assert.Equal(t, 30, post.Usage.TotalTokens)
}

func TestGeneratePost_FailureEscalatesAlert(t *testing.T) {
	model := &stubChatModel{err: errors.New("quota exceeded")}
	alerts := store.NewMemoryAlertStore()
	app := newTestApp(t, model, alerts)

	resp := postJSON(t, app, "/v1/posts/generate", map[string]any{
		"bot":         map[string]string{"id": "bot-1", "model": "gemini-2.5-flash"},
		"user_prompt": "weekly roundup",
	})

	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	count, err := alerts.UnreadCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	recent, err := alerts.Recent(context.Background(), 1, true)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, entity.AlertTypeBotFailure, recent[0].Type)
	assert.Equal(t, "bot-1", recent[0].SourceBotID)
}

func TestGeneratePost_MissingModelID(t *testing.T) {
	app := newTestApp(t, &stubChatModel{}, store.NewMemoryAlertStore())

	resp := postJSON(t, app, "/v1/posts/generate", map[string]any{
		"bot":         map[string]string{"id": "bot-1"},
		"user_prompt": "weekly roundup",
	})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestExtractMenu_FiltersGenericItems(t *testing.T) {
	model := &stubChatModel{text: `[
		{"name": "Funghi Pizza", "mentions": 2, "sentiment": "positive", "score": 80},
		{"name": "food", "mentions": 5, "sentiment": "positive", "score": 95}
	]`}
	app := newTestApp(t, model, store.NewMemoryAlertStore())

	resp := postJSON(t, app, "/v1/menu/extract", map[string]any{
		"restaurant_name": "Luigi's",
		"cuisine_type":    "italian",
		"reviews":         []map[string]any{{"text": "Funghi Pizza rules", "rating": 5}},
	})

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Items []entity.MenuItem `json:"items"`
	}
	decodeBody(t, resp, &body)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "Funghi Pizza", body.Items[0].Name)
}

func TestExtractMenu_RequiresRestaurantName(t *testing.T) {
	app := newTestApp(t, &stubChatModel{}, store.NewMemoryAlertStore())

	resp := postJSON(t, app, "/v1/menu/extract", map[string]any{"reviews": []any{}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestMarkAlertRead_UnknownID(t *testing.T) {
	app := newTestApp(t, &stubChatModel{}, store.NewMemoryAlertStore())

	resp := postJSON(t, app, "/v1/alerts/no-such-id/read", map[string]any{"user_id": "admin-1"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAlertReadFlow(t *testing.T) {
	alerts := store.NewMemoryAlertStore()
	app := newTestApp(t, &stubChatModel{}, alerts)

	id, err := alerts.Record(context.Background(), &entity.Alert{
		Type:     entity.AlertTypeSystemAlert,
		Severity: entity.SeverityLow,
		Title:    "t",
		Message:  "m",
	})
	require.NoError(t, err)

	resp := postJSON(t, app, "/v1/alerts/"+id+"/read", map[string]any{"user_id": "admin-1"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var alert entity.Alert
	decodeBody(t, resp, &alert)
	assert.True(t, alert.IsRead)
	assert.Equal(t, "admin-1", alert.ReadBy)

	req := httptest.NewRequest(fiber.MethodGet, "/v1/alerts/unread-count", nil)
	countResp, err := app.Test(req, -1)
	require.NoError(t, err)

	var body struct {
		Unread int `json:"unread"`
	}
	decodeBody(t, countResp, &body)
	assert.Equal(t, 0, body.Unread)
}
