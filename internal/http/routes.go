package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/cryptlocker/cryptlocker-ui-api/internal/domain/auth"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/http/validation"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth      AuthServiceInterface
	Wallet    *service.WalletService
	Dashboard *service.DashboardService
	// Optional: nil switches the /api/db routes to 503.
	Cache   *service.CacheService
	Cookies CookieSettings
	// Optional: dependency probes reported by /healthz.
	HealthChecks map[string]HealthCheck
	Logger       *slog.Logger // Logger for handler errors (optional)
}

// NewRouter creates and configures the JSON API router.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()
	v := validation.New()
	errs := errorResponder{auth: services.Auth, cookies: services.Cookies, logger: logger}
	session := SessionConfig{Auth: services.Auth, CookieName: services.Cookies.Name}

	health := &HealthHandlers{Checks: services.HealthChecks}
	mux.Handle("GET /healthz", http.HandlerFunc(health.Health))
	mux.Handle("HEAD /healthz", http.HandlerFunc(health.Health))

	authHandlers := &AuthHandlers{Svc: services.Auth, Cookies: services.Cookies, Validator: v, Logger: logger}
	registerAuthRoutes(mux, authHandlers, session)

	dashboard := &DashboardHandlers{Svc: services.Dashboard, errs: errs}
	registerDashboardRoutes(mux, dashboard, session)

	wallet := &WalletHandlers{Svc: services.Wallet, Validator: v, errs: errs}
	registerWalletRoutes(mux, wallet, session)

	cache := &CacheHandlers{Svc: services.Cache, Validator: v, Logger: logger}
	registerCacheRoutes(mux, cache)

	return mux
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, session SessionConfig) {
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/register", h.Register)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
	mux.HandleFunc("GET /api/auth/status", h.Status)
	mux.HandleFunc("POST /api/auth/refresh", h.Refresh)
	mux.Handle("GET /api/auth/me", RequireSession(session)(http.HandlerFunc(h.Me)))
}

func registerDashboardRoutes(mux *http.ServeMux, h *DashboardHandlers, session SessionConfig) {
	mux.Handle("GET /api/navigation", RequireSession(session)(http.HandlerFunc(h.Navigation)))
	mux.Handle("GET /api/dashboard", guarded(session, service.RolesDashboard, h.Summary))
}

func registerWalletRoutes(mux *http.ServeMux, h *WalletHandlers, session SessionConfig) {
	creds := service.RolesCredentials
	mux.Handle("GET /api/credentials", guarded(session, creds, h.ListCredentials))
	mux.Handle("GET /api/credentials/offers", guarded(session, creds, h.ListOffers))
	mux.Handle("GET /api/credentials/{id}", guarded(session, creds, h.GetCredential))
	mux.Handle("DELETE /api/credentials/{id}", guarded(session, creds, h.DeleteCredential))
	mux.Handle("POST /api/credentials/{id}/accept", guarded(session, creds, h.AcceptOffer))

	conns := service.RolesConnections
	mux.Handle("GET /api/connections", guarded(session, conns, h.ListConnections))
	mux.Handle("POST /api/connections", guarded(session, conns, h.AcceptInvitation))
	mux.Handle("POST /api/connections/invitations", guarded(session, conns, h.CreateInvitation))
	mux.Handle("GET /api/connections/{id}", guarded(session, conns, h.GetConnection))
	mux.Handle("DELETE /api/connections/{id}", guarded(session, conns, h.DeleteConnection))

	proofs := service.RolesProofs
	mux.Handle("GET /api/proofs", guarded(session, proofs, h.ListProofRequests))
	mux.Handle("GET /api/proofs/{id}", guarded(session, proofs, h.GetProofRequest))
	mux.Handle("POST /api/proofs/{id}/present", guarded(session, proofs, h.SendPresentation))

	notes := service.RolesNotifications
	mux.Handle("GET /api/notifications", guarded(session, notes, h.ListNotifications))
	mux.Handle("PUT /api/notifications/read-all", guarded(session, notes, h.MarkAllNotificationsRead))
	mux.Handle("PUT /api/notifications/{id}/read", guarded(session, notes, h.MarkNotificationRead))

	mux.Handle("GET /api/wallet/info", RequireSession(session)(http.HandlerFunc(h.WalletInfo)))
	mux.Handle("GET /api/wallet/did", RequireSession(session)(http.HandlerFunc(h.WalletDID)))
}

func registerCacheRoutes(mux *http.ServeMux, h *CacheHandlers) {
	mux.Handle("POST /api/db/sync-user", h.bearer(h.SyncUser))
	mux.HandleFunc("POST /api/db/register", h.Register)
	mux.Handle("POST /api/db/upload", h.bearer(h.Upload))
	mux.Handle("GET /api/db/upload", h.bearer(h.ListDocuments))
	mux.Handle("GET /api/db/stats", h.bearer(h.Stats))
}

// guarded wraps fn with the role guard for roles.
func guarded(session SessionConfig, roles []domainauth.Role, fn http.HandlerFunc) http.Handler {
	return RequireRoles(session, roles...)(fn)
}
