package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/interview-assistant/internal/ai"
	"github.com/terra-clan/interview-assistant/internal/models"
	"github.com/terra-clan/interview-assistant/internal/questions"
	"github.com/terra-clan/interview-assistant/pkg/client"
)

type failingService struct{}

func (failingService) GenerateQuestions(ctx context.Context) ([]models.Question, error) {
	return nil, errors.New("model unavailable")
}

func (failingService) Score(ctx context.Context, req models.ScoreRequest) (int, error) {
	return 0, errors.New("model unavailable")
}

func (failingService) Finalize(ctx context.Context, candidateID string) (string, error) {
	return "", errors.New("model unavailable")
}

const testAPIKey = "sk-test"

func newAIServer(t *testing.T, svc QuestionService) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewAIServer(svc, testAPIKey, nil).Router())
	t.Cleanup(srv.Close)
	return srv
}

func rawRequest(t *testing.T, srv *httptest.Server, method, path, body string) (int, string) {
	t.Helper()
	return rawRequestWithHeaders(t, srv, method, path, body, map[string]string{"Authorization": "Bearer " + testAPIKey})
}

func rawRequestWithHeaders(t *testing.T, srv *httptest.Server, method, path, body string, headers map[string]string) (int, string) {
	t.Helper()

	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, strings.TrimSpace(string(data))
}

func TestAIServer_Endpoints(t *testing.T) {
	srv := newAIServer(t, ai.NewService(questions.NewBank(), nil))

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{name: "score answered", method: http.MethodPost, path: "/ai/score", body: `{"answer":"A library"}`, wantStatus: 200, wantBody: `{"score":10}`},
		{name: "score blank", method: http.MethodPost, path: "/ai/score", body: `{"answer":"   "}`, wantStatus: 200, wantBody: `{"score":0}`},
		{name: "score bad json", method: http.MethodPost, path: "/ai/score", body: `{`, wantStatus: 400, wantBody: `{"error":"Invalid JSON body"}`},
		{name: "finalize", method: http.MethodPost, path: "/ai/finalize", body: `{"candidateId":"c1"}`, wantStatus: 200, wantBody: `{"summary":"Candidate answered all questions."}`},
		{name: "finalize bad json", method: http.MethodPost, path: "/ai/finalize", body: `nope`, wantStatus: 400, wantBody: `{"error":"Invalid JSON body"}`},
		{name: "health", method: http.MethodGet, path: "/health", wantStatus: 200, wantBody: `{"status":"ok"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := rawRequest(t, srv, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, status)
			assert.JSONEq(t, tt.wantBody, body)
		})
	}
}

func TestAIServer_GenerateQuestions(t *testing.T) {
	srv := newAIServer(t, ai.NewService(questions.NewBank(), nil))

	status, body := rawRequest(t, srv, http.MethodGet, "/ai/generate-questions", "")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, strings.HasPrefix(body, `[{"level":"Easy","time":20,"question":"What is React?"}`))
}

func TestAIServer_Failures(t *testing.T) {
	srv := newAIServer(t, failingService{})

	status, body := rawRequest(t, srv, http.MethodGet, "/ai/generate-questions", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.JSONEq(t, `{"error":"Failed to generate questions"}`, body)

	status, _ = rawRequest(t, srv, http.MethodPost, "/ai/score", `{"answer":"x"}`)
	assert.Equal(t, http.StatusInternalServerError, status)

	status, _ = rawRequest(t, srv, http.MethodPost, "/ai/finalize", `{"candidateId":"c1"}`)
	assert.Equal(t, http.StatusInternalServerError, status)
}

func TestAIServer_APIKey(t *testing.T) {
	srv := newAIServer(t, ai.NewService(questions.NewBank(), nil))

	tests := []struct {
		name       string
		headers    map[string]string
		wantStatus int
		wantError  string
	}{
		{name: "missing key", headers: nil, wantStatus: 401, wantError: "missing api key"},
		{name: "wrong bearer key", headers: map[string]string{"Authorization": "Bearer sk-wrong"}, wantStatus: 401, wantError: "invalid api key"},
		{name: "wrong x-api-key", headers: map[string]string{"X-API-Key": "sk-wrong"}, wantStatus: 401, wantError: "invalid api key"},
		{name: "key prefix only", headers: map[string]string{"Authorization": "Bearer sk-tes"}, wantStatus: 401, wantError: "invalid api key"},
		{name: "bearer key", headers: map[string]string{"Authorization": "Bearer " + testAPIKey}, wantStatus: 200},
		{name: "raw authorization key", headers: map[string]string{"Authorization": testAPIKey}, wantStatus: 200},
		{name: "x-api-key", headers: map[string]string{"X-API-Key": testAPIKey}, wantStatus: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := rawRequestWithHeaders(t, srv, http.MethodPost, "/ai/score", `{"answer":"x"}`, tt.headers)
			assert.Equal(t, tt.wantStatus, status)
			if tt.wantError != "" {
				assert.Contains(t, body, `"error":"`+tt.wantError+`"`)
			}
		})
	}

	t.Run("health is public", func(t *testing.T) {
		status, _ := rawRequestWithHeaders(t, srv, http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusOK, status)
	})
}

func TestAIServer_EmptyKeyRejectsAll(t *testing.T) {
	srv := httptest.NewServer(NewAIServer(ai.NewService(questions.NewBank(), nil), "  ", nil).Router())
	t.Cleanup(srv.Close)

	status, _ := rawRequestWithHeaders(t, srv, http.MethodGet, "/ai/generate-questions", "", map[string]string{"Authorization": "Bearer anything"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAIServer_OversizedBody(t *testing.T) {
	srv := newAIServer(t, ai.NewService(questions.NewBank(), nil))

	body := `{"answer":"` + strings.Repeat("a", maxJSONBody) + `"}`
	status, resp := rawRequest(t, srv, http.MethodPost, "/ai/score", body)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"Invalid JSON body"}`, resp)
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "***", maskKey("short"))
	assert.Equal(t, "sk-live-...", maskKey("sk-live-1234567890"))
}

func TestAIServer_WithClient(t *testing.T) {
	srv := newAIServer(t, ai.NewService(questions.NewBank(), nil))
	c := client.NewClient(srv.URL, testAPIKey, client.WithHTTPClient(srv.Client()))
	ctx := context.Background()

	qs, err := c.GenerateQuestions(ctx)
	require.NoError(t, err)
	assert.Equal(t, questions.Defaults(), qs)

	score, err := c.Score(ctx, models.ScoreRequest{CandidateID: "c1", Answer: "hooks"})
	require.NoError(t, err)
	assert.Equal(t, ai.AnsweredScore, score)

	summary, err := c.Finalize(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, ai.FinalSummary, summary)

	require.NoError(t, c.Ping(ctx))

	var apiErr *client.APIError
	_, err = client.NewClient(srv.URL, "sk-wrong", client.WithHTTPClient(srv.Client())).GenerateQuestions(ctx)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	_, err = client.NewClient(newAIServer(t, failingService{}).URL, testAPIKey).GenerateQuestions(ctx)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Failed to generate questions", apiErr.Message)
}
