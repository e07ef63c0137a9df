package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"

	services "github.com/EO-DataHub/eodhp-users-dashboard/api/services"
	"github.com/EO-DataHub/eodhp-users-dashboard/api/views"
	"github.com/EO-DataHub/eodhp-users-dashboard/internal/dashboard"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Dashboard is the directory state machine driven by the handlers.
type Dashboard interface {
	Snapshot() dashboard.State
	View() (dashboard.State, dashboard.Overlay)
	SelectUser(userID int)
	CloseOverlay()
	Navigate(page int) bool
}

// DashboardState is the JSON form of the dashboard.
type DashboardState struct {
	dashboard.State
	Overlay dashboard.Overlay `json:"overlay"`
}

// GetDashboard renders the dashboard page.
func GetDashboard(d Dashboard, title, basePath string) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context())

		state, overlay := d.View()
		page := views.NewPage(title, basePath, state, overlay)

		var buf bytes.Buffer
		if err := views.RenderHTML(&buf, page); err != nil {
			logger.Error().Err(err).Msg("Failed to render dashboard")
			http.Error(w, "Failed to render dashboard", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "max-age=0")
		w.WriteHeader(http.StatusOK)
		if _, err := buf.WriteTo(w); err != nil {
			logger.Error().Err(err).Msg("Failed to write dashboard")
		}
	})
}

// GetDashboardState returns the dashboard state as JSON.
func GetDashboardState(d Dashboard) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state, overlay := d.View()
		services.HandleSuccessResponse(w, http.StatusOK, DashboardState{
			State:   state,
			Overlay: overlay,
		})
	})
}

// SelectUser selects a user and opens the posts overlay.
func SelectUser(d Dashboard, basePath string) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(mux.Vars(r)["user-id"])
		if err != nil {
			zerolog.Ctx(r.Context()).Debug().Err(err).Msg("Invalid user id")
			services.HandleErrResponse(w, http.StatusBadRequest, fmt.Errorf("invalid user id: %w", err))
			return
		}

		logger := zerolog.Ctx(r.Context()).With().Int("user", userID).Logger()
		logger.Debug().Msg("Selecting user")

		d.SelectUser(userID)
		redirectToDashboard(w, r, basePath)
	})
}

// CloseOverlay is the overlay's dismiss control.
func CloseOverlay(d Dashboard, basePath string) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d.CloseOverlay()
		redirectToDashboard(w, r, basePath)
	})
}

// Paginate moves to a page number, or to the "next"/"previous" page, when
// the pagination controls allow it. Disabled navigation is a no-op.
func Paginate(d Dashboard, basePath string) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested := mux.Vars(r)["page"]
		logger := zerolog.Ctx(r.Context()).With().Str("page", requested).Logger()

		controls := d.Snapshot().Controls

		var page int
		switch requested {
		case "next":
			if controls.NextDisabled {
				logger.Debug().Msg("Next page disabled")
				redirectToDashboard(w, r, basePath)
				return
			}
			page = controls.NextPage
		case "previous":
			if controls.PreviousDisabled {
				logger.Debug().Msg("Previous page disabled")
				redirectToDashboard(w, r, basePath)
				return
			}
			page = controls.PreviousPage
		default:
			var err error
			page, err = strconv.Atoi(requested)
			if err != nil {
				logger.Debug().Err(err).Msg("Invalid page")
				services.HandleErrResponse(w, http.StatusBadRequest, fmt.Errorf("invalid page: %w", err))
				return
			}
		}

		if !d.Navigate(page) {
			logger.Debug().Int("target", page).Msg("Navigation disabled")
		}
		redirectToDashboard(w, r, basePath)
	})
}

// DashboardPath is the URL of the dashboard page under basePath.
func DashboardPath(basePath string) string {
	return strings.TrimSuffix(path.Join("/", basePath), "/") + "/"
}

func redirectToDashboard(w http.ResponseWriter, r *http.Request, basePath string) {
	http.Redirect(w, r, DashboardPath(basePath), http.StatusSeeOther)
}
