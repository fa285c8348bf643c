package router

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/db"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/model"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/pkg/alert"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/pkg/provider"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/service"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/webserver/controller"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/webserver/templates"
	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_test"

type fixture struct {
	engine   *gin.Engine
	store    *db.BoltStore
	provider *httptest.Server
	calls    int32
}

func newFixture(t *testing.T, providerHandler http.HandlerFunc, opt Options) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	f := &fixture{}

	store, err := db.OpenBolt(filepath.Join(t.TempDir(), "bolt.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	f.store = store

	f.provider = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.calls, 1)
		providerHandler(w, r)
	}))
	t.Cleanup(f.provider.Close)

	feed := alert.NewFeed(store, "")
	services := service.New(service.Env{
		Store:         store,
		Provider:      provider.New(f.provider.URL, "key", f.provider.Client()),
		WebhookSecret: testSecret,
		Alerts:        feed,
		AlertTimeout:  time.Second,
	})
	c := controller.New(services, feed, templates.Page{Company: "StreamAlphaX", Logo: "https://streamalphax.com/logo.png", Message: "Welcome"})
	if opt.AllowedOrigins == nil {
		opt.AllowedOrigins = []string{"https://streamalphax.com", "https://app.streamalphax.com"}
		opt.DefaultOrigin = "https://streamalphax.com"
	}
	f.engine, err = New(c, opt)
	require.NoError(t, err)
	return f
}

func (f *fixture) do(method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func providerOK(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, `{"reference":"R1","url":"https://provider/R1","qrCode":"data:image/png;base64,AA=="}`)
}

func TestCreateSession_EndToEnd(t *testing.T) {
	f := newFixture(t, providerOK, Options{})

	w := f.do(http.MethodPost, "/api/kyc/create-session", `{"userId":"user_1"}`, map[string]string{"Content-Type": "application/json"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"reference":"R1","url":"https://provider/R1","qrCode":"data:image/png;base64,AA=="}`, w.Body.String())

	var record model.SessionRecord
	require.NoError(t, f.store.Get(context.Background(), "session:R1", &record))
	assert.Equal(t, model.SessionPending, record.Status)
	assert.Equal(t, "user_1", record.UserID)
}

func TestCreateSession_MissingUserID(t *testing.T) {
	f := newFixture(t, providerOK, Options{})

	for _, body := range []string{`{}`, ``, `{"userId":""}`} {
		w := f.do(http.MethodPost, "/api/kyc/create-session", body, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"error"`)
	}
	assert.Zero(t, atomic.LoadInt32(&f.calls))

	w := f.do(http.MethodPost, "/api/kyc/create-session", `{"userId":`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSession_ProviderRejected(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"message":"invalid profile"}}`)
	}, Options{})

	w := f.do(http.MethodPost, "/api/kyc/create-session", `{"userId":"user_1"}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body map[string]string
	require.NoError(t, jsoniter.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
	assert.Equal(t, `{"error":{"message":"invalid profile"}}`, body["detail"])
}

func TestCreateSession_ProviderDown(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}, Options{})

	w := f.do(http.MethodPost, "/api/kyc/create-session", `{"userId":"user_1"}`, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func signedWebhook(f *fixture, body string) *httptest.ResponseRecorder {
	return f.do(http.MethodPost, "/api/kyc/webhook", body, map[string]string{
		"Content-Type": "application/json",
		"X-Signature":  "sig=" + service.SignBody([]byte(body), testSecret),
	})
}

func TestWebhookThenStatus(t *testing.T) {
	f := newFixture(t, providerOK, Options{})

	body := `{"transactionId":"T1","decision":"reject","customData":"user_1","warning":[{"code":"AML_PEP","description":"Politically exposed"}]}`
	w := signedWebhook(f, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"status":"processed","userId":"user_1","transactionId":"T1","decision":"reject"}`, w.Body.String())

	w = f.do(http.MethodGet, "/api/kyc/status?userId=user_1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var report map[string]interface{}
	require.NoError(t, jsoniter.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "FOUND", report["status"])
	assert.Equal(t, "reject", report["decision"])
	assert.Len(t, report["warnings"], 1)

	w = f.do(http.MethodGet, "/api/kyc/alerts.rss", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "[CRITICAL]")
	assert.Equal(t, "application/rss+xml", w.Header().Get("Content-Type"))
}

func TestWebhook_Rejections(t *testing.T) {
	f := newFixture(t, providerOK, Options{})

	body := `{"transactionId":"T1","decision":"accept","customData":"user_1"}`
	w := f.do(http.MethodPost, "/api/kyc/webhook", body, map[string]string{"X-Signature": "deadbeef"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = f.do(http.MethodPost, "/api/kyc/webhook", body, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = signedWebhook(f, `{"transactionId":"T1","customData":"user_1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var record model.VerificationRecord
	assert.ErrorIs(t, f.store.Get(context.Background(), "user:user_1", &record), db.ErrKeyNotFound)
}

func TestWebhook_SourceGuard(t *testing.T) {
	f := newFixture(t, providerOK, Options{WebhookCIDRs: []string{"10.0.0.0/8"}})

	// httptest requests come from 192.0.2.1
	w := signedWebhook(f, `{"transactionId":"T1","decision":"accept","customData":"user_1"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestStatus(t *testing.T) {
	f := newFixture(t, providerOK, Options{})

	w := f.do(http.MethodGet, "/api/kyc/status?userId=nobody", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"NOT_FOUND"}`, w.Body.String())

	w = f.do(http.MethodGet, "/api/kyc/status", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORS(t *testing.T) {
	f := newFixture(t, providerOK, Options{})

	w := f.do(http.MethodOptions, "/api/kyc/create-session", "", map[string]string{"Origin": "https://app.streamalphax.com"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.streamalphax.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, X-Signature", w.Header().Get("Access-Control-Allow-Headers"))

	w = f.do(http.MethodGet, "/api/kyc/start", "", map[string]string{"Origin": "https://evil.example.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://streamalphax.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = f.do(http.MethodOptions, "/anything", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestPagesAndFallback(t *testing.T) {
	f := newFixture(t, providerOK, Options{})

	for _, p := range []string{"/kyc/start", "/kyc/upload", "/kyc/success", "/kyc/review", "/kyc/rejected"} {
		w := f.do(http.MethodGet, p, "", nil)
		assert.Equal(t, http.StatusOK, w.Code, p)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html", p)
		assert.Contains(t, w.Body.String(), "StreamAlphaX", p)
	}

	w := f.do(http.MethodGet, "/api/kyc/start", "", nil)
	assert.JSONEq(t, `{"status":"ready","message":"Welcome","company":"StreamAlphaX","logo":"https://streamalphax.com/logo.png"}`, w.Body.String())

	w = f.do(http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not Found", w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestSourceGuard_BadNetwork(t *testing.T) {
	_, err := SourceGuard([]string{"not-a-network"})
	assert.Error(t, err)
}
