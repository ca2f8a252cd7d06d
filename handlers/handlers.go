package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/icco/movierecs/handlers/templates"
	"github.com/icco/movierecs/lib/metrics"
	"github.com/icco/movierecs/lib/render"
	"github.com/icco/movierecs/lib/ui"
	"github.com/icco/movierecs/lib/validation"
	"github.com/icco/movierecs/models"
)

// Backend is the recommendation API as used by the web front end.
type Backend interface {
	Search(ctx context.Context, query string) ([]models.Movie, error)
	ListMovies(ctx context.Context) ([]models.Movie, error)
	RecommendByMovie(ctx context.Context, title string) ([]models.Movie, error)
	RecommendByPreferences(ctx context.Context, q models.PreferenceQuery) ([]models.Movie, error)
}

type tabData struct {
	Name   string
	Label  string
	Active bool
}

type pageData struct {
	Tab      string
	Tabs     []tabData
	Query    string
	Selected string
	Prefs    models.PreferenceQuery
	Browse   *render.View
	Results  *render.View
	Warning  string
}

func newPage(panel ui.Panel) pageData {
	tabs := make([]tabData, 0, len(ui.Panels))
	for _, p := range ui.Panels {
		tabs = append(tabs, tabData{Name: p.String(), Label: p.Label(), Active: p == panel})
	}
	return pageData{Tab: panel.String(), Tabs: tabs}
}

type candidatesData struct {
	Open   bool
	Movies []models.Movie
}

type errorData struct {
	Message string
}

func renderError(w http.ResponseWriter, message string, status int) {
	tmpl, err := templates.ParseTemplates("base.html", "error.html")
	if err != nil {
		slog.Error("Failed to parse error template", slog.Any("error", err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "base.html", errorData{Message: message}); err != nil {
		slog.Error("Failed to execute error template", slog.Any("error", err))
	}
}

func renderPage(w http.ResponseWriter, r *http.Request, data pageData, status int) {
	tmpl, err := templates.ParseTemplates("base.html", "home.html", "results.html")
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to parse template", slog.Any("error", err))
		renderError(w, "Something went wrong while loading the page.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Failed to execute template", slog.Any("error", err))
	}
}

// HandleNotFound renders the error page for unknown routes.
func HandleNotFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderError(w, "The page you are looking for does not exist.", http.StatusNotFound)
	}
}

// HandleHome renders the page with the tab named by ?tab= visible. The
// browse tab fetches the full listing on every request.
func HandleHome(backend Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		panel, _ := ui.ParsePanel(q.Get("tab"))

		data := newPage(panel)
		data.Selected = strings.TrimSpace(q.Get("title"))
		data.Query = data.Selected

		if panel == ui.PanelBrowse {
			movies, err := backend.ListMovies(r.Context())
			if err != nil {
				slog.ErrorContext(r.Context(), "Error loading movies", slog.Any("error", err))
				movies = nil
			}
			browse := render.RenderBrowse(movies)
			data.Browse = &browse
		}

		renderPage(w, r, data, http.StatusOK)
	}
}

// HandleSearch renders the candidate list for ?q=. Queries shorter than
// minLength produce an empty fragment without contacting the backend.
func HandleSearch(backend Backend, minLength int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var data candidatesData

		if query, ok := validation.SearchQuery(r.URL.Query().Get("q"), minLength); ok {
			movies, err := backend.Search(r.Context(), query)
			if err != nil {
				slog.ErrorContext(r.Context(), "Search error", slog.Any("error", err), slog.String("query", query))
			} else {
				data = candidatesData{Open: true, Movies: movies}
			}
		}

		tmpl, err := templates.ParseTemplates("candidates.html")
		if err != nil {
			slog.ErrorContext(r.Context(), "Failed to parse template", slog.Any("error", err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.ExecuteTemplate(w, "candidates.html", data); err != nil {
			slog.ErrorContext(r.Context(), "Failed to execute template", slog.Any("error", err))
		}
	}
}

// HandleRecommendMovie renders recommendations similar to ?title=.
func HandleRecommendMovie(backend Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := newPage(ui.PanelSearch)
		data.Selected = strings.TrimSpace(r.URL.Query().Get("title"))
		data.Query = data.Selected

		var selected *models.Movie
		if data.Selected != "" {
			selected = &models.Movie{Title: data.Selected}
		}
		if err := validation.ValidateSelection(selected); err != nil {
			metrics.PreconditionBlocks.WithLabelValues(ui.FlowMovie).Inc()
			data.Warning = ui.WarningFor(err)
			renderPage(w, r, data, http.StatusBadRequest)
			return
		}

		movies, err := backend.RecommendByMovie(r.Context(), data.Selected)
		if err != nil {
			slog.ErrorContext(r.Context(), "Error getting recommendations",
				slog.Any("error", err), slog.String("flow", ui.FlowMovie))
			data.Warning = ui.WarnRequestFailed
			renderPage(w, r, data, http.StatusBadGateway)
			return
		}

		results := render.Render(movies, ui.SimilarTitle(data.Selected))
		data.Results = &results
		renderPage(w, r, data, http.StatusOK)
	}
}

// HandleRecommendPreferences renders recommendations for the genres,
// director and keywords query parameters.
func HandleRecommendPreferences(backend Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		data := newPage(ui.PanelPreferences)
		data.Prefs = models.NewPreferenceQuery(q.Get("genres"), q.Get("director"), q.Get("keywords"))

		if err := validation.ValidatePreferences(data.Prefs); err != nil {
			metrics.PreconditionBlocks.WithLabelValues(ui.FlowPreferences).Inc()
			data.Warning = ui.WarningFor(err)
			renderPage(w, r, data, http.StatusBadRequest)
			return
		}

		movies, err := backend.RecommendByPreferences(r.Context(), data.Prefs)
		if err != nil {
			slog.ErrorContext(r.Context(), "Error getting recommendations",
				slog.Any("error", err), slog.String("flow", ui.FlowPreferences))
			data.Warning = ui.WarnRequestFailed
			renderPage(w, r, data, http.StatusBadGateway)
			return
		}

		results := render.Render(movies, ui.PreferencesTitle)
		data.Results = &results
		renderPage(w, r, data, http.StatusOK)
	}
}
