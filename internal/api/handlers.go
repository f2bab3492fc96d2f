package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Veraticus/cashheal/internal/budget"
	"github.com/Veraticus/cashheal/internal/common"
	"github.com/Veraticus/cashheal/internal/ledger"
	"github.com/Veraticus/cashheal/internal/model"
	"github.com/Veraticus/cashheal/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// transactionView is the wire form of a transaction; createdAt is epoch ms.
type transactionView struct {
	CategoryKey *string               `json:"categoryKey"`
	Type        model.TransactionType `json:"type"`
	Amount      decimal.Decimal       `json:"amount"`
	ID          int64                 `json:"id"`
	CreatedAt   int64                 `json:"createdAt"`
}

func viewTransaction(t model.Transaction) transactionView {
	return transactionView{
		ID:          t.ID,
		Type:        t.Type,
		CategoryKey: t.CategoryKey,
		Amount:      t.Amount,
		CreatedAt:   t.CreatedAtMillis(),
	}
}

func viewTransactions(txns []model.Transaction) []transactionView {
	// ensure [] instead of null
	out := make([]transactionView, 0, len(txns))
	for _, t := range txns {
		out = append(out, viewTransaction(t))
	}
	return out
}

type snapshotView struct {
	Categories   []model.Category  `json:"categories"`
	Transactions []transactionView `json:"transactions"`
	Balance      model.Balance     `json:"balance"`
}

func viewSnapshot(s ledger.Snapshot) snapshotView {
	return snapshotView{
		Balance:      s.Balance,
		Categories:   s.Categories,
		Transactions: viewTransactions(s.Recent),
	}
}

type adjustRequest struct {
	Delta decimal.Decimal `json:"delta"`
}

type transactionRequest struct {
	Type        model.TransactionType `json:"type"`
	CategoryKey string                `json:"categoryKey"`
	Amount      decimal.Decimal       `json:"amount"`
}

type planRequest struct {
	Strategy      string          `json:"strategy"`
	MonthlyIncome decimal.Decimal `json:"monthlyIncome"`
	Rent          decimal.Decimal `json:"rent"`
	DailySpending decimal.Decimal `json:"dailySpending"`
}

type planView struct {
	model.BudgetPlan
	SavedAt int64 `json:"timestamp"`
}

type targetRequest struct {
	Value decimal.Decimal `json:"value"`
}

// statusFor maps ledger errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrCategoryNotFound), errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case common.IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		common.LogError(err, "Request failed", common.Fields{
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"request_id": c.GetString("requestID"),
		})
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (s *Server) healthCheck(c *gin.Context) {
	if _, err := s.storage.GetBalance(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "cashheal",
	})
}

func (s *Server) getBalance(c *gin.Context) {
	balance, err := s.storage.GetBalance(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, balance)
}

func (s *Server) adjustBalance(c *gin.Context) {
	var req adjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	balance, err := s.recorder.AdjustBalance(c.Request.Context(), req.Delta)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, balance)
}

func (s *Server) getCategories(c *gin.Context) {
	categories, err := s.storage.GetCategories(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (s *Server) getTransactions(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	txns, err := s.storage.GetTransactions(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, viewTransactions(txns))
}

func parseFilter(c *gin.Context) (service.TransactionFilter, error) {
	var filter service.TransactionFilter

	for _, bound := range []struct {
		dst  **time.Time
		name string
	}{
		{name: "from", dst: &filter.From},
		{name: "to", dst: &filter.To},
	} {
		raw := c.Query(bound.name)
		if raw == "" {
			continue
		}
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("%s must be epoch milliseconds: %w", bound.name, err)
		}
		t := time.UnixMilli(ms)
		*bound.dst = &t
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return filter, fmt.Errorf("limit must be a non-negative integer")
		}
		filter.Limit = limit
	}
	return filter, nil
}

func (s *Server) addTransaction(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	var (
		txn model.Transaction
		err error
	)
	switch req.Type {
	case model.TransactionIncome:
		txn, err = s.recorder.RecordIncome(ctx, req.Amount)
	case model.TransactionExpense:
		txn, err = s.recorder.RecordExpense(ctx, req.Amount, req.CategoryKey)
	default:
		badRequest(c, fmt.Errorf("unknown transaction type %q", req.Type))
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	snapshot, err := s.recorder.Snapshot(ctx, ledger.DefaultRecentLimit)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"transaction": viewTransaction(txn),
		"snapshot":    viewSnapshot(snapshot),
	})
}

func (s *Server) createPlan(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	strategy := model.StrategyBalanced
	if req.Strategy != "" {
		parsed, err := budget.ParseStrategy(req.Strategy)
		if err != nil {
			fail(c, err)
			return
		}
		strategy = parsed
	}

	input, err := budget.NewInput(req.MonthlyIncome, req.Rent, req.DailySpending, strategy)
	if err != nil {
		fail(c, err)
		return
	}

	plan := budget.Compute(input)
	savedAt := s.now()
	if err := s.plans.SavePlan(c.Request.Context(), plan, savedAt); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, planView{BudgetPlan: plan, SavedAt: savedAt.UnixMilli()})
}

func (s *Server) getPlan(c *gin.Context) {
	saved, err := s.plans.LoadPlan(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if saved == nil {
		fail(c, fmt.Errorf("%w: no saved budget plan", common.ErrNotFound))
		return
	}
	c.JSON(http.StatusOK, planView{BudgetPlan: saved.Plan, SavedAt: saved.SavedAt.UnixMilli()})
}

func (s *Server) deletePlan(c *gin.Context) {
	if err := s.plans.ClearPlan(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) getTargets(c *gin.Context) {
	targets, err := s.plans.GetBudgetTargets(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, targets)
}

func (s *Server) setTarget(c *gin.Context) {
	period := model.Period(c.Param("period"))

	var req targetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := s.plans.SetBudgetTarget(c.Request.Context(), period, req.Value); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"period": period, "value": req.Value})
}

func (s *Server) getStatus(c *gin.Context) {
	status, err := s.recorder.Status(c.Request.Context(), s.plans, s.now())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) categoryChart(c *gin.Context) {
	categories, err := s.storage.GetCategories(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	png, err := s.charts.CategoryPie(categories)
	if err != nil {
		fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
