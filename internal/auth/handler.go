package auth

import (
	"github.com/ptcdevs/ghlogin/internal"
	"github.com/ptcdevs/ghlogin/pkg/oauth"
)

// Route paths.
const (
	LoginPath    = "/login"
	CallbackPath = "/callback"
	LogoutPath   = "/logout"
	CommitsPath  = "/commits"
)

// Handler serves the login flow.
type Handler struct {
	client oauth.Client
}

// NewHandler creates a Handler that talks to the provider through client.
func NewHandler(client oauth.Client) *Handler {
	return &Handler{client: client}
}

// Routes registers the login flow and the protected placeholder.
func (h *Handler) Routes(r internal.Router) {
	r.GET(LoginPath, h.login)
	r.GET(CallbackPath, h.callback)
	r.POST(LogoutPath, h.logout)
	r.GET(CommitsPath, h.commits, RequireCredential(LoginPath))
}

var _ internal.Handler = (*Handler)(nil)
