package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MomchilovP/peachtree/internal/authority"
	"github.com/MomchilovP/peachtree/internal/http/auth"
	"github.com/MomchilovP/peachtree/internal/http/render"
)

type Handler struct {
	svc *authority.Service
}

func NewHandler(svc *authority.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes expects auth.RequireUser to run before any of them.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
}

type createTransactionRequest struct {
	Contractor string           `json:"contractor"`
	Amount     *decimal.Decimal `json:"amount"`
	Type       authority.Type   `json:"type"`
}

func (req createTransactionRequest) validate() []render.Issue {
	var issues []render.Issue

	if n := utf8.RuneCountInString(req.Contractor); n < 1 || n > 100 {
		issues = append(issues, render.FieldIssue("contractor", "Contractor must be 1-100 characters"))
	}

	switch {
	case req.Amount == nil:
		issues = append(issues, render.FieldIssue("amount", "Field required"))
	case !req.Amount.IsPositive():
		issues = append(issues, render.FieldIssue("amount", "Amount must be greater than 0"))
	case !req.Amount.Equal(req.Amount.Truncate(2)):
		issues = append(issues, render.FieldIssue("amount", "Amount must have no more than 2 decimal places"))
	}

	if req.Type != "" && !req.Type.Valid() {
		issues = append(issues, render.FieldIssue("type", "Type must be one of sent, received, paid"))
	}

	return issues
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFrom(r.Context())

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if issues := req.validate(); len(issues) > 0 {
		render.ValidationError(w, issues...)
		return
	}

	tx, err := h.svc.CreateTransaction(r.Context(), user.ID, authority.CreateParams{
		Contractor: req.Contractor,
		Amount:     *req.Amount,
		Type:       req.Type,
	})
	if err != nil {
		var rejected *authority.RejectedError
		if errors.As(err, &rejected) {
			render.Error(w, http.StatusBadRequest, rejected.Reason)
			return
		}

		slog.Error("failed to create transaction", "error", err)
		render.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	render.JSON(w, http.StatusCreated, toResponse(tx))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFrom(r.Context())

	txs, err := h.svc.ListTransactions(r.Context(), user.ID)
	if err != nil {
		slog.Error("failed to list transactions", "error", err)
		render.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	render.JSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFrom(r.Context())

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	tx, err := h.svc.GetTransaction(r.Context(), user.ID, id)
	if err != nil {
		writeLookupError(w, err, "Not authorized to access this transaction")
		return
	}

	render.JSON(w, http.StatusOK, toResponse(tx))
}

type updateTransactionRequest struct {
	Type authority.Type `json:"type"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFrom(r.Context())

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if !req.Type.Valid() {
		render.ValidationError(w, render.FieldIssue("type", "Type must be one of sent, received, paid"))
		return
	}

	tx, err := h.svc.UpdateType(r.Context(), user.ID, id, req.Type)
	if err != nil {
		writeLookupError(w, err, "Not authorized to modify this transaction")
		return
	}

	render.JSON(w, http.StatusOK, toResponse(tx))
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		render.ValidationError(w, render.Issue{
			Loc:  []string{"path", "transaction_id"},
			Msg:  "Input should be a valid integer",
			Type: "int_parsing",
		})

		return 0, false
	}

	return id, true
}

func writeLookupError(w http.ResponseWriter, err error, forbidden string) {
	switch {
	case errors.Is(err, authority.ErrNotFound):
		render.Error(w, http.StatusNotFound, "Transaction not found")
	case errors.Is(err, authority.ErrForbidden):
		render.Error(w, http.StatusForbidden, forbidden)
	default:
		slog.Error("failed to load transaction", "error", err)
		render.Error(w, http.StatusInternalServerError, "internal error")
	}
}
