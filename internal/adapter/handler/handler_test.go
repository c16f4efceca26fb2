package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/customer-pulse/internal/domain/entities"
	"github.com/johnquangdev/customer-pulse/internal/usecase/entity"
	"github.com/johnquangdev/customer-pulse/internal/usecase/nextstep"
	"github.com/johnquangdev/customer-pulse/internal/usecase/recovery"
	"github.com/johnquangdev/customer-pulse/pkg/config"
	"github.com/johnquangdev/customer-pulse/pkg/jwt"
	pkgvalidator "github.com/johnquangdev/customer-pulse/pkg/validator"
	"github.com/johnquangdev/customer-pulse/pkg/webhook"

	httpmw "github.com/johnquangdev/customer-pulse/internal/infrastructure/http/middleware"
)

const testWebhookSecret = "whsec_test"

type fakeRecovery struct {
	lastSweep recovery.SweepRequest
	lastBotID string
	result    *recovery.SweepResult
	err       error
}

func (f *fakeRecovery) Sweep(_ context.Context, req recovery.SweepRequest) (*recovery.SweepResult, error) {
	f.lastSweep = req
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &recovery.SweepResult{Mode: req.Mode}, nil
}

func (f *fakeRecovery) HandleBotEvent(_ context.Context, botID string) (*recovery.SweepResult, error) {
	f.lastBotID = botID
	if f.err != nil {
		return nil, f.err
	}
	return &recovery.SweepResult{Mode: recovery.ModeTestOne, Processed: 1}, nil
}

func (f *fakeRecovery) StartScheduler(context.Context, time.Duration, int) error { return nil }
func (f *fakeRecovery) StopScheduler() error                                      { return nil }

type fakeNextStep struct {
	lastReq nextstep.ExtractRequest
	result  *nextstep.ExtractResult
	err     error
}

func (f *fakeNextStep) Extract(_ context.Context, req nextstep.ExtractRequest) (*nextstep.ExtractResult, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeEntity struct {
	lastUser   uuid.UUID
	lastThread string
	err        error
}

func (f *fakeEntity) ResolveThreadEntities(_ context.Context, userID uuid.UUID, threadID string) (*entity.ResolveResult, error) {
	f.lastUser = userID
	f.lastThread = threadID
	if f.err != nil {
		return nil, f.err
	}
	return &entity.ResolveResult{ThreadID: threadID, RunID: "run_1"}, nil
}

type testServer struct {
	e        *echo.Echo
	recovery *fakeRecovery
	nextStep *fakeNextStep
	entity   *fakeEntity
}

func newTestServer(t *testing.T, authMW echo.MiddlewareFunc) *testServer {
	t.Helper()
	ts := &testServer{
		e:        echo.New(),
		recovery: &fakeRecovery{},
		nextStep: &fakeNextStep{},
		entity:   &fakeEntity{},
	}
	ts.e.Validator = pkgvalidator.New()

	logger := zap.NewNop()
	cfg := &config.Config{Server: config.ServerConfig{Environment: "test"}}
	NewRouter(
		cfg,
		NewRecoveryHandler(ts.recovery, logger),
		NewNextStepHandler(ts.nextStep, logger),
		NewEntityHandler(ts.entity, logger),
		NewRecallWebhookHandler(ts.recovery, testWebhookSecret, logger),
		authMW,
	).Setup(ts.e)
	return ts
}

func (ts *testServer) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil)
	rec := ts.do(http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := decode(t, rec); body["status"] != "ok" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestSweep_Validation(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"missing mode", `{}`},
		{"unknown mode", `{"mode":"all"}`},
		{"negative limit", `{"mode":"batch","limit":-1}`},
		{"bad meeting id", `{"mode":"test-one","meeting_id":"nope"}`},
		{"not json", `mode=batch`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(http.MethodPost, "/v1/recovery/sweep", tt.body, nil)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestSweep_DryRunShape(t *testing.T) {
	ts := newTestServer(t, nil)
	id := uuid.New()
	ts.recovery.result = &recovery.SweepResult{
		Mode:         recovery.ModeDryRun,
		Count:        1,
		CandidateIDs: []uuid.UUID{id},
	}

	rec := ts.do(http.MethodPost, "/v1/recovery/sweep", `{"mode":"dry-run"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decode(t, rec)
	if body["mode"] != "dry-run" || body["count"].(float64) != 1 {
		t.Fatalf("unexpected body %v", body)
	}
	ids := body["candidate_ids"].([]interface{})
	if len(ids) != 1 || ids[0] != id.String() {
		t.Fatalf("unexpected candidate ids %v", ids)
	}
	if _, ok := body["processed"]; ok {
		t.Fatalf("dry-run body should not carry processed")
	}
}

func TestSweep_PassesRequest(t *testing.T) {
	ts := newTestServer(t, nil)
	id := uuid.New()
	ts.recovery.result = &recovery.SweepResult{
		Mode:       recovery.ModeBatch,
		SweepID:    uuid.New(),
		Processed:  2,
		Successful: []recovery.ItemResult{{MeetingID: id, Outcome: recovery.OutcomeHandedOff, RunID: "run_1"}},
		Failed:     []uuid.UUID{uuid.New()},
		Errors:     []recovery.ItemError{{MeetingID: uuid.New(), Error: "boom"}},
	}

	body := fmt.Sprintf(`{"mode":"batch","limit":3,"debug":true,"meeting_id":%q}`, id)
	rec := ts.do(http.MethodPost, "/v1/recovery/sweep", body, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	got := ts.recovery.lastSweep
	if got.Mode != recovery.ModeBatch || got.Limit != 3 || !got.Debug {
		t.Fatalf("unexpected sweep request %+v", got)
	}
	if got.MeetingID == nil || *got.MeetingID != id {
		t.Fatalf("meeting id not forwarded: %v", got.MeetingID)
	}

	resp := decode(t, rec)
	if resp["processed"].(float64) != 2 {
		t.Fatalf("unexpected processed %v", resp["processed"])
	}
	if len(resp["successful"].([]interface{})) != 1 || len(resp["failed"].([]interface{})) != 1 {
		t.Fatalf("unexpected body %v", resp)
	}
}

func TestSweep_LargeLimitIsAccepted(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.recovery.result = &recovery.SweepResult{Mode: recovery.ModeBatch, SweepID: uuid.New()}

	rec := ts.do(http.MethodPost, "/v1/recovery/sweep", `{"mode":"batch","limit":500}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ts.recovery.lastSweep.Limit != 500 {
		t.Fatalf("limit not forwarded: %d", ts.recovery.lastSweep.Limit)
	}
}

func TestSweep_ServiceErrorMapping(t *testing.T) {
	ts := newTestServer(t, nil)

	ts.recovery.err = entities.ErrInvalidSweepMode
	if rec := ts.do(http.MethodPost, "/v1/recovery/sweep", `{"mode":"batch"}`, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	ts.recovery.err = fmt.Errorf("list candidates: connection refused")
	rec := ts.do(http.MethodPost, "/v1/recovery/sweep", `{"mode":"batch"}`, nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body := decode(t, rec); body["code"] != "INTERNAL" {
		t.Fatalf("unexpected code %v", body["code"])
	}
}

func TestSweep_RequiresServiceToken(t *testing.T) {
	manager := jwt.NewManager("secret", time.Minute, "")
	ts := newTestServer(t, httpmw.EchoServiceAuth(manager, false))

	rec := ts.do(http.MethodPost, "/v1/recovery/sweep", `{"mode":"dry-run"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	token, err := manager.GenerateServiceToken("cron", jwt.RoleService)
	if err != nil {
		t.Fatalf("GenerateServiceToken: %v", err)
	}
	rec = ts.do(http.MethodPost, "/v1/recovery/sweep", `{"mode":"dry-run"}`, map[string]string{
		echo.HeaderAuthorization: "Bearer " + token,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		result     *nextstep.ExtractResult
		err        error
		wantStatus int
		check      func(t *testing.T, body map[string]interface{})
	}{
		{
			name:       "success",
			body:       `{"source_type":"thread","source_id":"thr_1"}`,
			result:     &nextstep.ExtractResult{NextStepsCount: 2, CompaniesCount: 1, AssignmentsCount: 2, FeatureRequestsCount: 1},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]interface{}) {
				if body["success"] != true || body["next_steps_count"].(float64) != 2 || body["feature_requests_count"].(float64) != 1 {
					t.Fatalf("unexpected body %v", body)
				}
			},
		},
		{
			name:       "no company",
			body:       `{"source_type":"meeting","source_id":"` + uuid.NewString() + `"}`,
			result:     &nextstep.ExtractResult{NoCompany: true},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]interface{}) {
				if body["next_steps_count"].(float64) != 0 || body["message"] == "" {
					t.Fatalf("unexpected body %v", body)
				}
			},
		},
		{name: "bad source type", body: `{"source_type":"email","source_id":"x"}`, wantStatus: http.StatusBadRequest},
		{name: "missing source id", body: `{"source_type":"thread"}`, wantStatus: http.StatusBadRequest},
		{name: "thread not found", body: `{"source_type":"thread","source_id":"x"}`, err: entities.ErrThreadNotFound, wantStatus: http.StatusNotFound},
		{name: "meeting not found", body: `{"source_type":"meeting","source_id":"x"}`, err: entities.ErrMeetingNotFound, wantStatus: http.StatusNotFound},
		{name: "missing owner", body: `{"source_type":"thread","source_id":"x"}`, err: entities.ErrMissingOwner, wantStatus: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, nil)
			ts.nextStep.result = tt.result
			ts.nextStep.err = tt.err

			rec := ts.do(http.MethodPost, "/v1/next-steps/extract", tt.body, nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.check != nil {
				tt.check(t, decode(t, rec))
			}
		})
	}
}

func TestResolveEntities(t *testing.T) {
	ts := newTestServer(t, nil)
	userID := uuid.New()

	rec := ts.do(http.MethodPost, "/v1/threads/thr_9/resolve-entities", fmt.Sprintf(`{"user_id":%q}`, userID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ts.entity.lastThread != "thr_9" || ts.entity.lastUser != userID {
		t.Fatalf("unexpected call %s %s", ts.entity.lastThread, ts.entity.lastUser)
	}

	rec = ts.do(http.MethodPost, "/v1/threads/thr_9/resolve-entities", `{"user_id":"nope"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad user id, got %d", rec.Code)
	}

	ts.entity.err = entities.ErrThreadNotFound
	rec = ts.do(http.MethodPost, "/v1/threads/thr_x/resolve-entities", fmt.Sprintf(`{"user_id":%q}`, userID), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRecallWebhook(t *testing.T) {
	signed := func(body string) map[string]string {
		return map[string]string{RecallSignatureHeader: webhook.Sign(testWebhookSecret, []byte(body))}
	}

	t.Run("bad signature", func(t *testing.T) {
		ts := newTestServer(t, nil)
		body := `{"event":"bot.done","data":{"bot_id":"bot_1"}}`
		rec := ts.do(http.MethodPost, "/v1/webhooks/recall", body, map[string]string{RecallSignatureHeader: "deadbeef"})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if ts.recovery.lastBotID != "" {
			t.Fatalf("recovery should not run on a bad signature")
		}
	})

	t.Run("ignored event", func(t *testing.T) {
		ts := newTestServer(t, nil)
		body := `{"event":"bot.joining_call","data":{"bot_id":"bot_1"}}`
		rec := ts.do(http.MethodPost, "/v1/webhooks/recall", body, signed(body))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if resp := decode(t, rec); resp["status"] != "ignored" {
			t.Fatalf("unexpected body %v", resp)
		}
		if ts.recovery.lastBotID != "" {
			t.Fatalf("recovery should not run for %s", "bot.joining_call")
		}
	})

	t.Run("bot done runs recovery", func(t *testing.T) {
		ts := newTestServer(t, nil)
		body := `{"event":"bot.done","data":{"bot":{"id":"bot_7"}}}`
		rec := ts.do(http.MethodPost, "/v1/webhooks/recall", body, signed(body))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if ts.recovery.lastBotID != "bot_7" {
			t.Fatalf("expected recovery for bot_7, got %q", ts.recovery.lastBotID)
		}
		if resp := decode(t, rec); resp["status"] != "processed" || resp["bot_id"] != "bot_7" {
			t.Fatalf("unexpected body %v", resp)
		}
	})

	t.Run("unknown bot", func(t *testing.T) {
		ts := newTestServer(t, nil)
		ts.recovery.err = entities.ErrMeetingNotFound
		body := `{"event":"transcript.done","data":{"bot_id":"bot_x"}}`
		rec := ts.do(http.MethodPost, "/v1/webhooks/recall", body, signed(body))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if resp := decode(t, rec); resp["status"] != "ignored" {
			t.Fatalf("unexpected body %v", resp)
		}
	})

	t.Run("missing bot id", func(t *testing.T) {
		ts := newTestServer(t, nil)
		body := `{"event":"bot.done","data":{}}`
		rec := ts.do(http.MethodPost, "/v1/webhooks/recall", body, signed(body))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
