package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pduartel/accounts-api/internal/api/shared"
	"github.com/pduartel/accounts-api/internal/service"
)

// AccountHandler handles the account API requests.
type AccountHandler struct {
	accountService service.AccountService
	logger         *slog.Logger
}

// NewAccountHandler creates a new AccountHandler with the given dependencies.
// If logger is nil, the default logger is used.
func NewAccountHandler(accountService service.AccountService, logger *slog.Logger) *AccountHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &AccountHandler{
		accountService: accountService,
		logger:         logger.With(slog.String("component", "account_handler")),
	}
}

// Signup handles POST /api/signup.
func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	token, err := h.accountService.Signup(r.Context(), service.SignupInput{
		FullName:   req.FullName,
		SocialName: req.SocialName,
		Email:      req.Email,
		Password:   req.Password,
	})
	if err != nil {
		status, message := MapServiceError(err)
		shared.RespondWithErrorAndLog(w, r, status, message, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{AccessToken: token})
}

// Login handles POST /api/login.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	token, err := h.accountService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		status, message := MapServiceError(err)
		shared.RespondWithErrorAndLog(w, r, status, message, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{AccessToken: token})
}

// Get handles GET /api/account?id=...|name=... — lookup by exactly one key.
// An absent account answers 200 with a null account, not 404.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	params := service.GetParams{
		ID:       r.URL.Query().Get("id"),
		FullName: r.URL.Query().Get("name"),
	}

	account, err := h.accountService.Get(r.Context(), params)
	if err != nil {
		status, message := MapServiceError(err)
		shared.RespondWithErrorAndLog(w, r, status, message, err)
		return
	}

	resp := GetAccountResponse{}
	if account != nil {
		converted := toAccountResponse(account)
		resp.Account = &converted
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// List handles GET /api/accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountService.List(r.Context())
	if err != nil {
		status, message := MapServiceError(err)
		shared.RespondWithErrorAndLog(w, r, status, message, err)
		return
	}

	resp := ListAccountsResponse{Accounts: make([]AccountResponse, 0, len(accounts))}
	for _, account := range accounts {
		resp.Accounts = append(resp.Accounts, toAccountResponse(account))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Update handles PUT /api/accounts/{id} with partial-update semantics.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateAccountRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	err := h.accountService.Update(r.Context(), id, service.UpdateOptions{
		FullName:   req.FullName,
		SocialName: req.SocialName,
		Email:      req.Email,
		Password:   req.Password,
	})
	if err != nil {
		status, message := MapServiceError(err)
		shared.RespondWithErrorAndLog(w, r, status, message, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UpdateAccountResponse{
		Message: "account updated successfully",
	})
}
