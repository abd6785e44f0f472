package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"zap-feed-service/internal/core/domain"
	"zap-feed-service/internal/core/ports"
	"zap-feed-service/internal/core/ports/mocks"
	"zap-feed-service/pkg/apperror"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type routerTestDeps struct {
	router      *gin.Engine
	feedSvc     *mocks.MockFeedService
	transferSvc *mocks.MockTransferService
	authSvc     *mocks.MockAuthService
	tokenSvc    *mocks.MockTokenService
}

func setupRouter(t *testing.T) *routerTestDeps {
	ctrl := gomock.NewController(t)
	d := &routerTestDeps{
		feedSvc:     mocks.NewMockFeedService(ctrl),
		transferSvc: mocks.NewMockTransferService(ctrl),
		authSvc:     mocks.NewMockAuthService(ctrl),
		tokenSvc:    mocks.NewMockTokenService(ctrl),
	}
	d.router = SetupRouter(RouterDeps{
		FeedSvc:     d.feedSvc,
		TransferSvc: d.transferSvc,
		AuthSvc:     d.authSvc,
		TokenSvc:    d.tokenSvc,
		Logger:      zerolog.Nop(),
	})
	return d
}

// authorize primes the token mock so requests carrying "Bearer tok" run as
// the given user.
func (d *routerTestDeps) authorize(userID string) {
	d.tokenSvc.EXPECT().Validate("tok").Return(&ports.TokenClaims{
		UserID:      userID,
		DisplayName: "Alice",
	}, nil).AnyTimes()
}

func doJSON(r *gin.Engine, method, path, body string, authed bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authed {
		req.Header.Set("Authorization", "Bearer tok")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// envelope mirrors the standard response wrapper.
type envelope struct {
	Data      json.RawMessage `json:"data"`
	ErrorCode string          `json:"error_code"`
	Message   string          `json:"message"`
	RequestID string          `json:"request_id"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

// ==================== Auth ====================

func TestStartSession_Success(t *testing.T) {
	d := setupRouter(t)

	user := &domain.User{ID: "u-alice", DisplayName: "Alice", Email: "alice@example.com"}
	expiry := time.Now().Add(24 * time.Hour)
	d.authSvc.EXPECT().StartSession(gomock.Any(), "aad-1").Return("tok", expiry, user, nil)

	w := doJSON(d.router, http.MethodPost, "/api/v1/auth/session", `{"aad_object_id":"aad-1"}`, false)
	require.Equal(t, http.StatusCreated, w.Code)

	env := decodeEnvelope(t, w)
	assert.NotEmpty(t, env.RequestID)

	var res struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "tok", res.Token)
	assert.Equal(t, "u-alice", res.User.ID)
}

func TestStartSession_ValidationError(t *testing.T) {
	d := setupRouter(t)

	w := doJSON(d.router, http.MethodPost, "/api/v1/auth/session", `{}`, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "FEED_002", decodeEnvelope(t, w).ErrorCode)
}

func TestStartSession_UnknownIdentity(t *testing.T) {
	d := setupRouter(t)

	d.authSvc.EXPECT().StartSession(gomock.Any(), "aad-x").
		Return("", time.Time{}, nil, apperror.ErrUnknownIdentity())

	w := doJSON(d.router, http.MethodPost, "/api/v1/auth/session", `{"aad_object_id":"aad-x"}`, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_002", decodeEnvelope(t, w).ErrorCode)
}

func TestEndSession_RequiresAuth(t *testing.T) {
	d := setupRouter(t)

	w := doJSON(d.router, http.MethodPost, "/api/v1/auth/logout", "", false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEndSession_Success(t *testing.T) {
	d := setupRouter(t)
	d.authorize("u-alice")
	d.authSvc.EXPECT().EndSession(gomock.Any()).Return(nil)

	w := doJSON(d.router, http.MethodPost, "/api/v1/auth/logout", "", true)
	assert.Equal(t, http.StatusOK, w.Code)
}

// ==================== Feed ====================

func TestGetFeed_Success(t *testing.T) {
	d := setupRouter(t)
	d.authorize("u-alice")

	alice := domain.User{ID: "u-alice", DisplayName: "Alice"}
	bob := domain.User{ID: "u-bob", DisplayName: "Bob"}
	page := &ports.FeedPage{
		Events: []domain.ZapEvent{
			{Sender: &alice, Recipient: &bob, Payment: domain.LedgerPayment{Amount: -21000, Memo: "gg", Time: 1700000000}},
		},
		Page:      1,
		PageCount: 1,
		Total:     1,
	}
	d.feedSvc.EXPECT().LoadFeed(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q ports.FeedQuery) (*ports.FeedPage, error) {
			assert.Equal(t, "u-alice", q.CurrentUserID)
			assert.Equal(t, ports.SortByAmount, q.SortField)
			assert.Equal(t, ports.SortAsc, q.SortOrder)
			assert.Equal(t, int64(1690000000), q.Since)
			return page, nil
		})

	w := doJSON(d.router, http.MethodGet, "/api/v1/feed?sort=amount&order=asc&since=1690000000", "", true)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Events []struct {
			From      *struct{ ID string } `json:"from"`
			AmountSat int64                `json:"amount_sat"`
		} `json:"events"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &res))
	require.Len(t, res.Events, 1)
	assert.Equal(t, int64(21), res.Events[0].AmountSat)
	assert.Equal(t, 1, res.Total)
}

func TestGetFeed_RequiresAuth(t *testing.T) {
	d := setupRouter(t)

	w := doJSON(d.router, http.MethodGet, "/api/v1/feed", "", false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetFeed_InvalidSortField(t *testing.T) {
	d := setupRouter(t)
	d.authorize("u-alice")

	w := doJSON(d.router, http.MethodGet, "/api/v1/feed?sort=bogus", "", true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetFeed_UpstreamUnavailable(t *testing.T) {
	d := setupRouter(t)
	d.authorize("u-alice")

	d.feedSvc.EXPECT().LoadFeed(gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrUpstreamUnavailable(errors.New("connection refused")))

	w := doJSON(d.router, http.MethodGet, "/api/v1/feed", "", true)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "UPSTREAM_001", decodeEnvelope(t, w).ErrorCode)
}

func TestGetStats_Success(t *testing.T) {
	d := setupRouter(t)
	d.authorize("u-alice")

	d.feedSvc.EXPECT().FeedStats(gomock.Any(), int64(0)).Return(&ports.FeedStats{
		TotalZappedSat: 126,
		EventCount:     3,
		SenderCount:    2,
		BiggestZapSat:  100,
		AveragePerDay:  63,
	}, nil)

	w := doJSON(d.router, http.MethodGet, "/api/v1/feed/stats", "", true)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		TotalZappedSat int64 `json:"total_zapped_sat"`
		EventCount     int   `json:"event_count"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &res))
	assert.Equal(t, int64(126), res.TotalZappedSat)
	assert.Equal(t, 3, res.EventCount)
}

// ==================== Users & wallets ====================

func TestListUsers_Success(t *testing.T) {
	d := setupRouter(t)
	d.authorize("u-alice")

	d.feedSvc.EXPECT().ListUsers(gomock.Any()).Return([]domain.User{
		{ID: "u-alice", DisplayName: "Alice", Type: domain.UserTypeTeammate},
		{ID: "u-bot", DisplayName: "Bot", Type: domain.UserTypeCopilot},
	}, nil)

	w := doJSON(d.router, http.MethodGet, "/api/v1/users", "", true)
	require.Equal(t, http.StatusOK, w.Code)

	var res []struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &res))
	require.Len(t, res, 2)
	assert.Equal(t, "copilot", res[1].Type)
}

func TestGetBalance_Success(t *testing.T) {
	d := setupRouter(t)
	d.authorize("u-alice")

	d.feedSvc.EXPECT().AllowanceBalanceMsat(gomock.Any(), "u-alice").Return(int64(123456), nil)

	w := doJSON(d.router, http.MethodGet, "/api/v1/wallets/balance", "", true)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		BalanceMsat int64 `json:"balance_msat"`
		BalanceSat  int64 `json:"balance_sat"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &res))
	assert.Equal(t, int64(123456), res.BalanceMsat)
	assert.Equal(t, int64(123), res.BalanceSat)
}

// ==================== Zaps ====================

func TestSendZap_Success(t *testing.T) {
	d := setupRouter(t)
	d.authorize("u-alice")

	d.transferSvc.EXPECT().SendZap(gomock.Any(), ports.SendZapRequest{
		SenderID:    "u-alice",
		RecipientID: "u-bob",
		AmountSat:   21,
		Memo:        "gg",
	}).Return(&ports.SendZapResult{PaymentHash: "hash1", Bolt11: "lnbc21..."}, nil)

	w := doJSON(d.router, http.MethodPost, "/api/v1/zaps",
		`{"recipient_id":"u-bob","amount_sat":21,"memo":"gg"}`, true)
	require.Equal(t, http.StatusCreated, w.Code)

	var res struct {
		PaymentHash string `json:"payment_hash"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &res))
	assert.Equal(t, "hash1", res.PaymentHash)
}

func TestSendZap_SenderComesFromSession(t *testing.T) {
	d := setupRouter(t)
	d.authorize("u-alice")

	// A sender_id in the body must not override the session identity.
	d.transferSvc.EXPECT().SendZap(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req ports.SendZapRequest) (*ports.SendZapResult, error) {
			assert.Equal(t, "u-alice", req.SenderID)
			return &ports.SendZapResult{PaymentHash: "h"}, nil
		})

	w := doJSON(d.router, http.MethodPost, "/api/v1/zaps",
		`{"sender_id":"u-mallory","recipient_id":"u-bob","amount_sat":21}`, true)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestSendZap_ValidationErrors(t *testing.T) {
	d := setupRouter(t)
	d.authorize("u-alice")

	bodies := []string{
		`{}`,
		`{"recipient_id":"u-bob"}`,
		`{"recipient_id":"u-bob","amount_sat":-5}`,
		`{"recipient_id":"has space","amount_sat":21}`,
	}
	for _, body := range bodies {
		w := doJSON(d.router, http.MethodPost, "/api/v1/zaps", body, true)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestSendZap_InsufficientBalance(t *testing.T) {
	d := setupRouter(t)
	d.authorize("u-alice")

	d.transferSvc.EXPECT().SendZap(gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrInsufficientBalance())

	w := doJSON(d.router, http.MethodPost, "/api/v1/zaps",
		`{"recipient_id":"u-bob","amount_sat":21}`, true)
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, "ZAP_002", decodeEnvelope(t, w).ErrorCode)
}

// ==================== Health ====================

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Ping(context.Context) error { return s.err }
func (s stubChecker) Name() string               { return s.name }

func TestHealthCheck(t *testing.T) {
	r := gin.New()
	r.GET("/health", HealthCheck(
		stubChecker{name: "lnbits"},
		stubChecker{name: "redis"},
	))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}

func TestHealthCheck_Degraded(t *testing.T) {
	r := gin.New()
	r.GET("/health", HealthCheck(
		stubChecker{name: "lnbits"},
		stubChecker{name: "redis", err: errors.New("connection refused")},
	))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"degraded"`)
	assert.Contains(t, w.Body.String(), "connection refused")
}
