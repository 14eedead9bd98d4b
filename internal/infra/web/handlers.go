package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"lucky-numbers-platform/internal/domain"
	"lucky-numbers-platform/internal/usecase"
)

type loginRequest struct {
	Passphrase string `json:"passphrase"`
}

// loginHandler exchanges the shared passphrase for an admin session cookie.
func (s *Server) loginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if !s.auth.CheckPassphrase(req.Passphrase) {
			s.log.Warn().Str("remote", r.RemoteAddr).Msg("admin login rejected")
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		token, err := s.auth.Mint(w)
		if err != nil {
			http.Error(w, "Failed to create session", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(struct {
			Token string `json:"token"`
		}{Token: token})
	}
}

func (s *Server) logoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.auth.Clear(w)
		w.WriteHeader(http.StatusNoContent)
	}
}

type customerCreateRequest struct {
	Email string `json:"email"`
}

type customerResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Code      string     `json:"code"`
	IsUsed    bool       `json:"is_used"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// customersCreateHandler runs the issuance flow and returns the generated code
// for the operator to copy and relay.
func customersCreateHandler(issuanceUC usecase.IssuanceUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req customerCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		customer, code, err := issuanceUC.Issue(ctx, req.Email)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidArgument) {
				http.Error(w, "Invalid email", http.StatusBadRequest)
				return
			}
			http.Error(w, "Failed to create customer", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(customerResponse{
			ID:        customer.ID,
			Email:     customer.Email,
			Code:      code.Code,
			IsUsed:    code.IsUsed,
			CreatedAt: customer.CreatedAt,
		})
	}
}

// customersListHandler returns customers with their codes, newest first.
// It accepts a 'limit' query parameter.
func customersListHandler(issuanceUC usecase.IssuanceUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit <= 0 {
			limit = 100
		}

		rows, err := issuanceUC.ListCustomers(ctx, limit)
		if err != nil {
			http.Error(w, "Failed to list customers", http.StatusInternalServerError)
			return
		}

		data := make([]customerResponse, 0, len(rows))
		for _, row := range rows {
			data = append(data, customerResponse{
				ID:        row.Customer.ID,
				Email:     row.Customer.Email,
				Code:      row.AccessCode.Code,
				IsUsed:    row.AccessCode.IsUsed,
				UsedAt:    row.AccessCode.UsedAt,
				CreatedAt: row.Customer.CreatedAt,
			})
		}

		response := struct {
			Data  []customerResponse `json:"data"`
			Limit int                `json:"limit"`
		}{Data: data, Limit: limit}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	}
}

// statsHandler serves issuance/redemption totals for the admin dashboard.
func statsHandler(statsUC usecase.StatsUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		customers, issued, redeemed, err := statsUC.Totals(ctx)
		if err != nil {
			http.Error(w, "Failed to get totals", http.StatusInternalServerError)
			return
		}

		response := struct {
			TotalCustomers int `json:"total_customers"`
			CodesIssued    int `json:"codes_issued"`
			CodesRedeemed  int `json:"codes_redeemed"`
		}{
			TotalCustomers: customers,
			CodesIssued:    issued,
			CodesRedeemed:  redeemed,
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	}
}
