package httphandler

import (
	"errors"
	"net/http"
	"strings"

	// Packages
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	openapi "github.com/mutablelogic/go-server/pkg/openapi/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
	assistant "github.com/mutablelogic/go-weatherdeck/pkg/assistant"
	manager "github.com/mutablelogic/go-weatherdeck/pkg/manager"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /ai/chat
func ChatHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/ai/chat", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				var req schema.ChatRequest
				if err := httprequest.Read(r, &req); err != nil {
					_ = httpresponse.Error(w, err)
					return
				}
				resp, err := manager.Chat(r.Context(), caller(r, req.UserID), req.Messages)
				if err != nil {
					chatError(w, r, err)
					return
				}
				_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), resp)
			default:
				_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
			}
		}, types.Ptr(openapi.PathItem{
			Post: &openapi.Operation{
				Description: "Answer the latest message of a conversation",
			},
		})
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// chatError responds with an error body the chat widget can show. Model
// failures carry a user-facing message and the upstream detail; a
// quota failure after fallback is 503, everything else is 500.
func chatError(w http.ResponseWriter, r *http.Request, err error) {
	var modelErr *assistant.ModelError
	if errors.As(err, &modelErr) {
		status := http.StatusInternalServerError
		if modelErr.Kind == weatherdeck.ErrQuotaExceeded {
			status = http.StatusServiceUnavailable
		}
		_ = httpresponse.JSON(w, status, httprequest.Indent(r), schema.ErrorResponse{
			Error:  modelErr.Message(),
			Detail: modelErr.Error(),
		})
		return
	}
	_ = httpresponse.JSON(w, http.StatusInternalServerError, httprequest.Indent(r), schema.ErrorResponse{
		Error: errorMessage(err),
	})
}

// errorMessage returns the error text without the error code prefix
func errorMessage(err error) string {
	var code weatherdeck.Err
	if errors.As(err, &code) {
		return strings.TrimPrefix(err.Error(), code.Error()+": ")
	}
	return err.Error()
}
