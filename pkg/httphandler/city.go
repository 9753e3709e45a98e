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
// TYPES

// createCityRequest is a city with an optional caller identifier
type createCityRequest struct {
	schema.CityMeta
	UserID string `json:"userId,omitempty"`
}

type deleteCityRequest struct {
	ID string `json:"id"`
}

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /cities
func CityHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/cities", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				resp, err := manager.ListCities(r.Context(), caller(r, ""))
				if err != nil {
					_ = httpresponse.Error(w, httpErr(err))
					return
				}
				_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), resp)
			case http.MethodPost:
				var req createCityRequest
				if err := httprequest.Read(r, &req); err != nil {
					_ = httpresponse.Error(w, err)
					return
				}
				resp, err := manager.CreateCity(r.Context(), caller(r, req.UserID), req.CityMeta)
				if err != nil {
					_ = httpresponse.Error(w, httpErr(err))
					return
				}
				_ = httpresponse.JSON(w, http.StatusCreated, httprequest.Indent(r), resp)
			case http.MethodDelete:
				var req deleteCityRequest
				if err := httprequest.Query(r.URL.Query(), &req); err != nil {
					_ = httpresponse.Error(w, err)
					return
				} else if req.ID == "" {
					_ = httpresponse.Error(w, httpresponse.ErrBadRequest.With("id is required"))
					return
				}
				deleteCity(w, r, manager, req.ID)
			default:
				_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
			}
		}, types.Ptr(openapi.PathItem{
			Get: &openapi.Operation{
				Description: "List the caller's saved cities",
			},
			Post: &openapi.Operation{
				Description: "Save a city for the caller",
			},
			Delete: &openapi.Operation{
				Description: "Delete a saved city by the id query parameter",
			},
		})
}

// Path: /cities/{id}
func CityGetHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/cities/{id}", func(w http.ResponseWriter, r *http.Request) {
			id := r.PathValue("id")
			switch r.Method {
			case http.MethodGet:
				resp, err := manager.GetCity(r.Context(), caller(r, ""), id)
				if err != nil {
					_ = httpresponse.Error(w, httpErr(err))
					return
				}
				_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), resp)
			case http.MethodDelete:
				deleteCity(w, r, manager, id)
			default:
				_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
			}
		}, types.Ptr(openapi.PathItem{
			Get: &openapi.Operation{
				Description: "Get a saved city by id",
			},
			Delete: &openapi.Operation{
				Description: "Delete a saved city by id",
			},
		})
}

// deleteCity removes a city and responds with it
func deleteCity(w http.ResponseWriter, r *http.Request, manager *manager.Manager, id string) {
	resp, err := manager.DeleteCity(r.Context(), caller(r, ""), id)
	if err != nil {
		_ = httpresponse.Error(w, httpErr(err))
		return
	}
	_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), resp)
}
