package api

import (
	"net/http"

	"checkout-experience-layer/internal/application"

	"github.com/rs/zerolog"
)

// Install flow response messages.
const (
	MessageInstallSuccessful = "Shop installed successfully"
	MessageInstallFailed     = "Shop install failed"
)

// InstallHandler serves the OAuth install routes.
type InstallHandler struct {
	install   *application.InstallService
	responder *Responder
	logger    zerolog.Logger
}

// NewInstallHandler creates a new install handler.
func NewInstallHandler(install *application.InstallService, responder *Responder, logger zerolog.Logger) *InstallHandler {
	return &InstallHandler{install: install, responder: responder, logger: logger}
}

// Init handles GET /install, sending the merchant to the platform
// dashboard authorization page.
func (h *InstallHandler) Init(w http.ResponseWriter, r *http.Request) {
	redirectURL, err := h.install.DashboardRedirectURL()
	if err != nil {
		h.logger.Error().Err(err).Msg("Install environment incomplete")
		h.responder.JSON(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
		return
	}
	http.Redirect(w, r, redirectURL, http.StatusFound)
}

// Install handles GET /authorize, completing the handshake for the
// authorization code the dashboard sent back.
func (h *InstallHandler) Install(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")

	outcome, err := h.install.Install(r.Context(), code)
	if err != nil {
		h.logger.Error().Err(err).Msg("Error installing Shop")
		h.responder.JSON(w, http.StatusBadRequest, map[string]any{
			"message": MessageInstallFailed,
			"results": map[string]any{"successful_steps": outcome.Steps},
		})
		return
	}

	h.responder.JSON(w, http.StatusCreated, map[string]any{
		"message": MessageInstallSuccessful,
		"results": map[string]any{
			"shop":  outcome.Shop,
			"token": "[hidden]",
			"urls":  outcome.URLs,
			"asset": outcome.Asset,
		},
	})
}
