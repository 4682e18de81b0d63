package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/careerpath/internal/app"
	"github.com/abhisek/careerpath/internal/career"
	"github.com/abhisek/careerpath/internal/config"
	"github.com/abhisek/careerpath/internal/llm"
	"github.com/abhisek/careerpath/internal/store"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T, p llm.Provider) *Server {
	t.Helper()
	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: "test"},
		Database: store.Config{Driver: store.DriverSQLite, DSN: filepath.Join(t.TempDir(), "api.db")},
		LLM:      llm.DefaultConfig(),
		Pipeline: config.PipelineConfig{ChatHistoryLimit: 20},
	}
	a, err := app.New(t.Context(), app.Options{Config: cfg, Provider: p})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return New(a, cfg.Server, "careerpath-test", nil)
}

func do(t *testing.T, s *Server, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, llm.NewMockProvider())

	w, env := do(t, s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusOK, env.Code)
	assert.Contains(t, string(env.Data), `"database":"up"`)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestResumeRoutes(t *testing.T) {
	s := newTestServer(t, llm.NewMockProvider())

	w, _ := do(t, s, http.MethodGet, "/api/v1/users/u1/resume", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env := do(t, s, http.MethodPut, "/api/v1/users/u1/resume", map[string]any{
		"userId": "someone-else",
		"parsed": map[string]any{"technicalSkills": []string{"golang", "js"}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var r store.Resume
	require.NoError(t, json.Unmarshal(env.Data, &r))
	assert.Equal(t, "u1", r.UserID, "path wins over body")
	assert.Equal(t, []string{"Go", "JavaScript"}, r.Parsed.TechnicalSkills)

	w, _ = do(t, s, http.MethodGet, "/api/v1/users/u1/resume", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBadRequests(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"malformed json", http.MethodPut, "/api/v1/users/u1/resume", "{not json"},
		{"empty resume", http.MethodPut, "/api/v1/users/u1/resume", map[string]any{}},
		{"quiz score out of range", http.MethodPost, "/api/v1/users/u1/quizzes", map[string]any{"course": "Go", "score": 150}},
		{"quiz without course", http.MethodPost, "/api/v1/users/u1/quizzes", map[string]any{"score": 50}},
		{"negative minutes", http.MethodPut, "/api/v1/users/u1/progress", map[string]any{"studyMinutesLastWeek": -1}},
		{"unknown level", http.MethodPost, "/api/v1/users/u1/learning-plan", map[string]any{"experienceLevel": "Guru"}},
		{"blank chat", http.MethodPost, "/api/v1/users/u1/chat", map[string]any{"message": "  "}},
		{"compare same role", http.MethodPost, "/api/v1/users/u1/career/compare", map[string]any{"roleA": "SRE", "roleB": "sre"}},
		{"compare missing role", http.MethodPost, "/api/v1/users/u1/career/compare", map[string]any{"roleA": "SRE"}},
	}
	s := newTestServer(t, llm.NewMockProvider())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := do(t, s, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, http.StatusBadRequest, env.Code)
		})
	}
}

func TestLearningPlanRequiresProfile(t *testing.T) {
	s := newTestServer(t, llm.NewMockProvider())

	w, env := do(t, s, http.MethodPost, "/api/v1/users/u1/learning-plan", nil)
	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
	assert.Contains(t, env.Message, "skill profile")
}

func TestChatUnavailableWithoutProvider(t *testing.T) {
	s := newTestServer(t, llm.Unconfigured("openai"))

	w, env := do(t, s, http.MethodPost, "/api/v1/users/u1/chat", map[string]any{"message": "hi"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, http.StatusServiceUnavailable, env.Code)
}

func TestPipelineOverHTTP(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderRequest{Provider: "mock", StatusCode: 500}},
		llm.MockResponse{Text: `{"learningPath": [{"week": "Week 1", "topics": ["Docker"]}]}`},
		llm.MockResponse{Text: `{"milestones": [{"month": 1, "title": "Linux"}], "readinessScore": 20}`},
		llm.MockResponse{Text: `{"learningPath": [{"week": "Week 1", "topics": ["Kubernetes"]}]}`},
		llm.MockResponse{Text: "Keep going!"},
	)
	s := newTestServer(t, mock)
	base := "/api/v1/users/u1"

	w, env := do(t, s, http.MethodPost, base+"/skill-gaps", map[string]any{"targetRole": "DevOps Engineer"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var profile store.SkillProfile
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.True(t, profile.Fallback)
	assert.Equal(t, "DevOps Engineer", profile.TargetRole)

	w, _ = do(t, s, http.MethodGet, base+"/skill-gaps", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, s, http.MethodPost, base+"/learning-plan", map[string]any{"experienceLevel": "Fresher"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env = do(t, s, http.MethodPost, base+"/roadmaps", map[string]any{"targetRole": "DevOps Engineer"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, _ = do(t, s, http.MethodGet, base+"/roadmaps/DevOps%20Engineer", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, s, http.MethodGet, base+"/roadmaps/Data%20Engineer", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = do(t, s, http.MethodGet, base+"/roadmaps", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var roadmaps []store.CareerRoadmap
	require.NoError(t, json.Unmarshal(env.Data, &roadmaps))
	assert.Len(t, roadmaps, 1)

	w, _ = do(t, s, http.MethodPost, base+"/quizzes", map[string]any{"course": "Docker", "score": 30, "difficulty": "easy"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w, _ = do(t, s, http.MethodPut, base+"/progress", map[string]any{"studyMinutesLastWeek": 700})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env = do(t, s, http.MethodPost, base+"/recalculate", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res struct {
		Difficulty  string `json:"difficulty"`
		SpeedLabel  string `json:"speedLabel"`
		Delta       int    `json:"delta"`
		Regenerated bool   `json:"regenerated"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "easy", res.Difficulty)
	assert.Equal(t, "fast", res.SpeedLabel)
	assert.Equal(t, -5, res.Delta)
	assert.True(t, res.Regenerated)

	w, env = do(t, s, http.MethodPost, base+"/chat", map[string]any{"message": "am I on track?"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, string(env.Data), "Keep going!")

	w, env = do(t, s, http.MethodGet, base+"/chat", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "am I on track?")

	w, _ = do(t, s, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "careerpath_http_requests_total")
}

func TestCareerRoutes(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: `{"comparison": [{"criteria": "Salary Growth", "winner": "B"}], "verdict": {"role": "B", "reason": "Pays more"}}`},
		llm.MockResponse{Text: `{"confidence": 72, "reason": "Close fit", "readinessScore": 64}`},
	)
	s := newTestServer(t, mock)

	w, env := do(t, s, http.MethodPost, "/api/v1/users/u1/career/compare", map[string]any{
		"roleA": "Backend Developer",
		"roleB": "Data Engineer",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var cmp career.RoleComparison
	require.NoError(t, json.Unmarshal(env.Data, &cmp))
	assert.Equal(t, "Data Engineer", cmp.Verdict.Role)
	assert.Equal(t, career.WinnerB, cmp.Criteria[0].Winner)

	w, env = do(t, s, http.MethodPost, "/api/v1/users/u1/career/match", map[string]any{"targetRole": "Backend Developer"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var m career.RoleMatch
	require.NoError(t, json.Unmarshal(env.Data, &m))
	assert.Equal(t, 72, m.Confidence)
	assert.False(t, m.Fallback)

	// The queue is empty now, so both calls degrade to their fallbacks.
	w, env = do(t, s, http.MethodPost, "/api/v1/users/u1/career/risk", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var r career.RiskReport
	require.NoError(t, json.Unmarshal(env.Data, &r))
	assert.True(t, r.Fallback)
	assert.Equal(t, career.DefaultTargetRole, r.TargetRole)

	w, env = do(t, s, http.MethodPost, "/api/v1/users/u1/career/hiring-signal", map[string]any{"targetRole": "SRE"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var h career.HiringSignal
	require.NoError(t, json.Unmarshal(env.Data, &h))
	assert.True(t, h.Fallback)
	assert.Equal(t, career.VerdictBorderline, h.Verdict)
}
