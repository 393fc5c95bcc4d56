package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/expensetracker/internal/logging"
	"github.com/dmitrijs2005/expensetracker/internal/server/auth"
	"github.com/dmitrijs2005/expensetracker/internal/server/services"
	"github.com/dmitrijs2005/expensetracker/internal/server/tenancy"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const meterName = "github.com/dmitrijs2005/expensetracker/internal/server/httpapi"

// Handlers serves the REST API on top of the services.
type Handlers struct {
	users        UserDirectory
	categories   CategoryStore
	transactions TransactionStore
	budgets      BudgetStore
	tokens       auth.TokenService
	authn        *auth.Authenticator
	logger       logging.Logger
	authRejected metric.Int64Counter
}

// Deps lists everything Handlers needs.
type Deps struct {
	Users        UserDirectory
	Categories   CategoryStore
	Transactions TransactionStore
	Budgets      BudgetStore
	Tokens       auth.TokenService
	Logger       logging.Logger
}

func NewHandlers(d Deps) *Handlers {
	rejected, err := otel.Meter(meterName).Int64Counter("expensetracker.auth.rejected",
		metric.WithDescription("Requests rejected by bearer authentication"))
	if err != nil {
		rejected = noop.Int64Counter{}
	}

	return &Handlers{
		authRejected: rejected,
		users:        d.Users,
		categories:   d.Categories,
		transactions: d.Transactions,
		budgets:      d.Budgets,
		tokens:       d.Tokens,
		authn:        auth.NewAuthenticator(d.Tokens),
		logger:       d.Logger.With("module", "http"),
	}
}

func (h *Handlers) ping(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.users.Register(r.Context(), services.RegisterRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.issueToken(w, r, user.ID, http.StatusCreated)
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.issueToken(w, r, user.ID, http.StatusOK)
}

func (h *Handlers) issueToken(w http.ResponseWriter, r *http.Request, userID int64, status int) {
	token, err := h.tokens.Issue(userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, status, tokenResponse{Token: token})
}

// guard returns the tenancy guard for the authenticated request or writes
// an error response and returns false.
func (h *Handlers) guard(w http.ResponseWriter, r *http.Request) (tenancy.Guard, bool) {
	g, err := tenancy.FromContext(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return tenancy.Guard{}, false
	}
	return g, true
}
