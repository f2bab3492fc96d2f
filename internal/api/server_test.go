package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/cashheal/internal/charts"
	"github.com/Veraticus/cashheal/internal/common"
	"github.com/Veraticus/cashheal/internal/i18n"
	"github.com/Veraticus/cashheal/internal/model"
	"github.com/Veraticus/cashheal/internal/storage"
	"github.com/Veraticus/cashheal/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) (http.Handler, *testutil.TestDB, *testutil.Clock) {
	t.Helper()

	clock := testutil.NewClock(time.Date(2024, 5, 8, 12, 0, 0, 0, time.Local))
	db := testutil.SetupTestDB(t, testutil.BackendSQLite, storage.WithClock(clock.Now))

	srv, err := NewServer(Deps{
		Storage: db.Storage,
		Plans:   db.Plans,
		Charts:  charts.NewGenerator("EUR", i18n.NewTranslator("en")),
		Now:     clock.Now,
	})
	require.NoError(t, err)
	return srv.Handler(), db, clock
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestNewServerRequiresDeps(t *testing.T) {
	_, err := NewServer(Deps{})
	assert.Error(t, err)
}

func TestHealthAndRequestID(t *testing.T) {
	h, _, _ := newTestServer(t)

	w := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestServerErrorIsLogged(t *testing.T) {
	h, db, _ := newTestServer(t)
	require.NoError(t, db.Storage.Close())

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	req := httptest.NewRequest(http.MethodGet, "/api/balance", nil)
	req.Header.Set(requestIDHeader, "req-500")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, buf.String(), `"msg":"Request failed"`)
	assert.Contains(t, buf.String(), `"path":"/api/balance"`)
	assert.Contains(t, buf.String(), `"request_id":"req-500"`)
}

func TestGetBalanceAndCategories(t *testing.T) {
	h, _, _ := newTestServer(t)

	w := do(t, h, http.MethodGet, "/api/balance", "")
	require.Equal(t, http.StatusOK, w.Code)
	balance := decode[model.Balance](t, w)
	assert.True(t, balance.Total.Equal(decimal.NewFromInt(350)))
	assert.True(t, balance.Current.Equal(decimal.NewFromInt(150)))

	w = do(t, h, http.MethodGet, "/api/categories", "")
	require.Equal(t, http.StatusOK, w.Code)
	categories := decode[[]model.Category](t, w)
	require.Len(t, categories, 4)
	assert.Equal(t, "food", categories[0].Key)
}

func TestAddTransaction(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "expense", body: `{"type":"expense","amount":30,"categoryKey":"food"}`, wantStatus: http.StatusCreated},
		{name: "income as string amount", body: `{"type":"income","amount":"12.50"}`, wantStatus: http.StatusCreated},
		{name: "expense without category", body: `{"type":"expense","amount":10}`, wantStatus: http.StatusBadRequest},
		{name: "unknown category", body: `{"type":"expense","amount":10,"categoryKey":"rent"}`, wantStatus: http.StatusNotFound},
		{name: "zero amount", body: `{"type":"income","amount":0}`, wantStatus: http.StatusBadRequest},
		{name: "unknown type", body: `{"type":"refund","amount":5}`, wantStatus: http.StatusBadRequest},
		{name: "malformed body", body: `{"type":`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, _ := newTestServer(t)
			w := do(t, h, http.MethodPost, "/api/transactions", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}

func TestAddExpenseReturnsSnapshot(t *testing.T) {
	h, db, clock := newTestServer(t)

	w := do(t, h, http.MethodPost, "/api/transactions", `{"type":"expense","amount":30,"categoryKey":"food"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	resp := decode[struct {
		Transaction transactionView `json:"transaction"`
		Snapshot    snapshotView    `json:"snapshot"`
	}](t, w)

	assert.Equal(t, model.TransactionExpense, resp.Transaction.Type)
	assert.Equal(t, clock.Now().UnixMilli(), resp.Transaction.CreatedAt)
	assert.True(t, resp.Snapshot.Balance.Current.Equal(decimal.NewFromInt(120)))
	require.Len(t, resp.Snapshot.Transactions, 1)
	assert.True(t, db.MustCategory("food").Amount.Equal(decimal.NewFromInt(50)))
}

func TestGetTransactionsFilter(t *testing.T) {
	h, _, clock := newTestServer(t)

	start := clock.Now()
	for i := 0; i < 3; i++ {
		clock.Set(start.Add(time.Duration(i) * time.Hour))
		w := do(t, h, http.MethodPost, "/api/transactions", `{"type":"income","amount":10}`)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := do(t, h, http.MethodGet, "/api/transactions", "")
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[[]transactionView](t, w)
	require.Len(t, all, 3)
	assert.Greater(t, all[0].CreatedAt, all[2].CreatedAt)

	from := start.Add(30 * time.Minute).UnixMilli()
	w = do(t, h, http.MethodGet, "/api/transactions?limit=1&from="+strconv.FormatInt(from, 10), "")
	require.Equal(t, http.StatusOK, w.Code)
	limited := decode[[]transactionView](t, w)
	require.Len(t, limited, 1)
	assert.Equal(t, all[0].ID, limited[0].ID)

	w = do(t, h, http.MethodGet, "/api/transactions?from=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodGet, "/api/transactions?limit=-2", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTransactionsEmptyIsArray(t *testing.T) {
	h, _, _ := newTestServer(t)

	w := do(t, h, http.MethodGet, "/api/transactions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestAdjustBalance(t *testing.T) {
	h, _, _ := newTestServer(t)

	w := do(t, h, http.MethodPost, "/api/balance/adjust", `{"delta":-500}`)
	require.Equal(t, http.StatusOK, w.Code)
	balance := decode[model.Balance](t, w)
	assert.True(t, balance.Current.IsZero())
	assert.True(t, balance.Total.Equal(decimal.NewFromInt(350)))

	w = do(t, h, http.MethodPost, "/api/balance/adjust", `{"delta":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBudgetPlanLifecycle(t *testing.T) {
	h, _, clock := newTestServer(t)

	w := do(t, h, http.MethodGet, "/api/budget/plan", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	body := `{"monthlyIncome":3000,"rent":1000,"dailySpending":50,"strategy":"balanced"}`
	w = do(t, h, http.MethodPost, "/api/budget/plan", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[planView](t, w)
	assert.True(t, created.AvailableForSpending.Equal(decimal.NewFromInt(1100)))
	assert.Equal(t, clock.Now().UnixMilli(), created.SavedAt)

	w = do(t, h, http.MethodGet, "/api/budget/plan", "")
	require.Equal(t, http.StatusOK, w.Code)
	loaded := decode[planView](t, w)
	assert.True(t, loaded.FixedCharges.Equal(decimal.NewFromInt(1300)))
	assert.Equal(t, model.StrategyBalanced, loaded.SavingsStrategy)

	w = do(t, h, http.MethodDelete, "/api/budget/plan", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, "/api/budget/plan", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreatePlanValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "zero income", body: `{"monthlyIncome":0,"rent":0,"dailySpending":0}`},
		{name: "negative rent", body: `{"monthlyIncome":100,"rent":-1,"dailySpending":0}`},
		{name: "unknown strategy", body: `{"monthlyIncome":100,"rent":0,"dailySpending":0,"strategy":"yolo"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, _ := newTestServer(t)
			w := do(t, h, http.MethodPost, "/api/budget/plan", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestBudgetTargets(t *testing.T) {
	h, _, _ := newTestServer(t)

	w := do(t, h, http.MethodPut, "/api/budget/targets/day", `{"value":45}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodPut, "/api/budget/targets/year", `{"value":45}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPut, "/api/budget/targets/month", `{"value":-1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodGet, "/api/budget/targets", "")
	require.Equal(t, http.StatusOK, w.Code)
	targets := decode[map[model.Period]decimal.Decimal](t, w)
	assert.True(t, targets[model.PeriodDay].Equal(decimal.NewFromInt(45)))
	assert.True(t, targets[model.PeriodMonth].Equal(decimal.NewFromInt(900)))
}

func TestBudgetStatus(t *testing.T) {
	h, _, _ := newTestServer(t)

	w := do(t, h, http.MethodPost, "/api/transactions", `{"type":"expense","amount":90,"categoryKey":"fun"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, h, http.MethodGet, "/api/budget/status", "")
	require.Equal(t, http.StatusOK, w.Code)

	var status []struct {
		Period model.Period    `json:"period"`
		Spent  decimal.Decimal `json:"spent"`
		Over   bool            `json:"over"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	require.Len(t, status, 3)
	assert.Equal(t, model.PeriodDay, status[0].Period)
	assert.True(t, status[0].Spent.Equal(decimal.NewFromInt(90)))
	assert.True(t, status[0].Over)
	assert.False(t, status[2].Over)
}

func TestCategoryChart(t *testing.T) {
	h, _, _ := newTestServer(t)

	w := do(t, h, http.MethodGet, "/api/charts/categories.png", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "\x89PNG", w.Body.String()[:4])
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "category not found", err: fmt.Errorf("expense: %w", common.ErrCategoryNotFound), want: http.StatusNotFound},
		{name: "nothing to chart", err: charts.ErrNoData, want: http.StatusNotFound},
		{name: "no saved plan", err: fmt.Errorf("%w: no saved budget plan", common.ErrNotFound), want: http.StatusNotFound},
		{name: "invalid amount", err: fmt.Errorf("income: %w", common.ErrInvalidAmount), want: http.StatusBadRequest},
		{name: "storage failure", err: common.StorageError("get balance", errors.New("disk full")), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
