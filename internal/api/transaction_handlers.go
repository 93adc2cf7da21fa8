package api

import (
	"net/http"

	"github.com/mmynk/divvy/internal/models"
)

type shareRequest struct {
	UserID          int64    `json:"user_id"`
	ShareAmount     *int64   `json:"share_amount,omitempty"`
	SharePercentage *float64 `json:"share_percentage,omitempty"`
}

type transactionRequest struct {
	PeriodID     int64          `json:"period_id"`
	PayerID      int64          `json:"payer_id"`
	CategoryID   int64          `json:"category_id"`
	Kind         string         `json:"kind"`
	SplitKind    string         `json:"split_kind"`
	Status       string         `json:"status"`
	Amount       int64          `json:"amount"`
	Description  string         `json:"description"`
	DateIncurred int64          `json:"date_incurred"`
	Shares       []shareRequest `json:"shares"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func (req *transactionRequest) toModel() *models.Transaction {
	shares := make([]models.ExpenseShare, len(req.Shares))
	for i, share := range req.Shares {
		shares[i] = models.ExpenseShare{
			UserID:          share.UserID,
			ShareAmount:     share.ShareAmount,
			SharePercentage: share.SharePercentage,
		}
	}
	return &models.Transaction{
		PeriodID:     req.PeriodID,
		PayerID:      req.PayerID,
		CategoryID:   req.CategoryID,
		Kind:         models.TransactionKind(req.Kind),
		SplitKind:    models.SplitKind(req.SplitKind),
		Status:       models.TransactionStatus(req.Status),
		Amount:       req.Amount,
		Description:  req.Description,
		DateIncurred: req.DateIncurred,
		Shares:       shares,
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	txn := req.toModel()
	if err := s.transactions.CreateTransaction(r.Context(), txn); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, txn)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	txn, err := s.transactions.GetTransaction(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txn)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	periodID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	txns, err := s.transactions.ListTransactions(r.Context(), periodID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txns)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	txn := req.toModel()
	txn.ID = id
	if err := s.transactions.UpdateTransaction(r.Context(), txn); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txn)
}

func (s *Server) handleTransactionStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := s.transactions.SetTransactionStatus(r.Context(), id, models.TransactionStatus(req.Status)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.transactions.DeleteTransaction(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
