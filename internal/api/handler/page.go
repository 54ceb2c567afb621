package handler

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"sync"

	"github.com/vfg2006/cohort-roas-api/internal/domain"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/dashboard"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/sessioning"
	"github.com/vfg2006/cohort-roas-api/pkg/apiErrors"
	"github.com/vfg2006/cohort-roas-api/pkg/log"
	"github.com/vfg2006/cohort-roas-api/pkg/metrics"
)

const pagePath = "/dashboard"

var (
	pageTmplOnce sync.Once
	pageTmpl     *template.Template
)

func dashboardTemplate() *template.Template {
	pageTmplOnce.Do(func() {
		pageTmpl = template.Must(template.New("dashboard").Funcs(template.FuncMap{
			"json": func(v any) template.JS {
				b, _ := json.Marshal(v)
				return template.JS(b) //nolint:gosec // dados gerados pelo próprio servidor
			},
			"css": func(v string) template.CSS {
				return template.CSS(v) //nolint:gosec // cores fixas do domínio
			},
		}).Parse(pageTemplate))
	})
	return pageTmpl
}

// DashboardPage renderiza o dashboard em HTML.
// Sem o parâmetro session uma nova sessão é criada e o navegador é redirecionado para ela.
func DashboardPage(sessions sessioning.SessionManager, builder dashboard.Builder, recorder *metrics.Recorder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		filter, err := parseFilter(query)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		id := query.Get("session")
		if id == "" {
			openAndRedirect(w, r, sessions, query)
			return
		}

		session, err := sessions.Get(r.Context(), id)
		if err != nil {
			// sessão expirada recomeça com uma série nova
			if errors.Is(err, domain.ErrSessionNotFound) {
				openAndRedirect(w, r, sessions, query)
				return
			}
			writeDomainError(w, r, err)
			return
		}

		view, err := builder.Build(session, filter)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		recorder.DashboardBuilt(view.Filters.Period)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := dashboardTemplate().Execute(w, view); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("dashboard: erro ao renderizar página")
		}
	})
}

func openAndRedirect(w http.ResponseWriter, r *http.Request, sessions sessioning.SessionManager, query url.Values) {
	session, err := sessions.Open(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	next := url.Values{}
	for key, values := range query {
		next[key] = values
	}
	next.Set("session", session.ID)

	http.Redirect(w, r, pagePath+"?"+next.Encode(), http.StatusSeeOther)
}
