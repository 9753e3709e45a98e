package httphandler

import (
	"net/http"

	// Packages
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	openapi "github.com/mutablelogic/go-server/pkg/openapi/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
	manager "github.com/mutablelogic/go-weatherdeck/pkg/manager"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /health
func HealthHandler() (string, http.HandlerFunc, *openapi.PathItem) {
	return "/health", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), schema.Health{OK: true})
			default:
				_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
			}
		}, types.Ptr(openapi.PathItem{
			Get: &openapi.Operation{
				Description: "Health check",
			},
		})
}

// Path: /_diag/openweather
func DiagWeatherHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/_diag/openweather", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				diag := manager.DiagWeather(r.Context())
				_ = httpresponse.JSON(w, diagStatus(diag.OK), httprequest.Indent(r), diag)
			default:
				_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
			}
		}, types.Ptr(openapi.PathItem{
			Get: &openapi.Operation{
				Description: "Check the weather provider key",
			},
		})
}

// Path: /_diag/ai
func DiagModelHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/_diag/ai", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				diag := manager.DiagModel(r.Context())
				_ = httpresponse.JSON(w, diagStatus(diag.OK), httprequest.Indent(r), diag)
			default:
				_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
			}
		}, types.Ptr(openapi.PathItem{
			Get: &openapi.Operation{
				Description: "Check the model key with a short prompt",
			},
		})
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func diagStatus(ok bool) int {
	if ok {
		return http.StatusOK
	}
	return http.StatusInternalServerError
}
