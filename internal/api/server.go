// Package api exposes the services over a JSON HTTP surface.
// Route patterns use the standard mux; authentication is a Bearer
// token checked by middleware on everything except registration,
// login, health and metrics.
package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/divvy/internal/auth"
	"github.com/mmynk/divvy/internal/middleware"
	"github.com/mmynk/divvy/internal/service"
)

// Server bundles the services behind the HTTP handlers.
type Server struct {
	auth         *service.AuthService
	groups       *service.GroupService
	periods      *service.PeriodService
	transactions *service.TransactionService
	settlements  *service.SettlementService
	jwtManager   *auth.JWTManager
}

// NewServer creates a Server over the given services.
func NewServer(
	authSvc *service.AuthService,
	groups *service.GroupService,
	periods *service.PeriodService,
	transactions *service.TransactionService,
	settlements *service.SettlementService,
	jwtManager *auth.JWTManager,
) *Server {
	return &Server{
		auth:         authSvc,
		groups:       groups,
		periods:      periods,
		transactions: transactions,
		settlements:  settlements,
		jwtManager:   jwtManager,
	}
}

// Handler builds the full route table wrapped in logging, CORS and
// metrics middleware.
func (s *Server) Handler() http.Handler {
	public := http.NewServeMux()
	public.HandleFunc("POST /v1/auth/register", s.handleRegister)
	public.HandleFunc("POST /v1/auth/login", s.handleLogin)
	public.Handle("GET /metrics", promhttp.Handler())
	public.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	private := http.NewServeMux()
	private.HandleFunc("GET /v1/categories", s.handleListCategories)

	private.HandleFunc("POST /v1/groups", s.handleCreateGroup)
	private.HandleFunc("GET /v1/groups/{id}", s.handleGetGroup)
	private.HandleFunc("POST /v1/groups/{id}/members", s.handleAddMembers)
	private.HandleFunc("GET /v1/groups/{id}/periods", s.handleListPeriods)

	private.HandleFunc("POST /v1/periods", s.handleCreatePeriod)
	private.HandleFunc("GET /v1/periods/{id}", s.handleGetPeriod)
	private.HandleFunc("POST /v1/periods/{id}/close", s.handleClosePeriod)
	private.HandleFunc("DELETE /v1/periods/{id}", s.handleDeletePeriod)

	private.HandleFunc("GET /v1/periods/{id}/balances", s.handleBalances)
	private.HandleFunc("GET /v1/periods/{id}/settlement-plan", s.handleSettlementPlan)
	private.HandleFunc("POST /v1/periods/{id}/settlements", s.handleApplySettlement)
	private.HandleFunc("GET /v1/periods/{id}/settlements", s.handleListSettlements)

	private.HandleFunc("POST /v1/transactions", s.handleCreateTransaction)
	private.HandleFunc("GET /v1/transactions/{id}", s.handleGetTransaction)
	private.HandleFunc("GET /v1/periods/{id}/transactions", s.handleListTransactions)
	private.HandleFunc("PUT /v1/transactions/{id}", s.handleUpdateTransaction)
	private.HandleFunc("PATCH /v1/transactions/{id}/status", s.handleTransactionStatus)
	private.HandleFunc("DELETE /v1/transactions/{id}", s.handleDeleteTransaction)

	mux := http.NewServeMux()
	mux.Handle("/v1/auth/", public)
	mux.Handle("/metrics", public)
	mux.Handle("/healthz", public)
	mux.Handle("/", middleware.RequireAuth(s.jwtManager, private))

	return middleware.Logging(middleware.CORS(middleware.Metrics(mux)))
}
