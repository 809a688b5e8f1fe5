package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/malexanderboyd/pwr9-draftboard/internal/draft"
)

type jsonResponse map[string]any

// CodeConfirmationRequired is returned when a removal arrives without an
// explicit confirmation.
const CodeConfirmationRequired draft.Code = "confirmation_required"

const maxBodyBytes = 64 << 10

func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBodyBytes)
		default:
			return err
		}
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		h.logger.Errorw("failed to encode response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	js = append(js, '\n')

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(js); err != nil {
		h.logger.Debugw("failed to write response", "error", err)
	}
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, code draft.Code, message string) {
	h.writeJSON(w, status, jsonResponse{"code": code, "error": message})
}

func (h *Handler) badRequestResponse(w http.ResponseWriter, err error) {
	h.errorResponse(w, http.StatusBadRequest, draft.CodeUnknown, err.Error())
}

func (h *Handler) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Errorw("internal server error", "method", r.Method, "path", r.URL.Path, "error", err)
	h.errorResponse(w, http.StatusInternalServerError, draft.CodeUnknown,
		"the server encountered a problem and could not process your request")
}

// statusFor maps a draft error code to its HTTP status.
func statusFor(code draft.Code) int {
	switch code {
	case draft.CodeMissingFields, draft.CodeInvalidPickNumber:
		return http.StatusBadRequest
	case draft.CodePickTaken, draft.CodeDuplicatePlayer, draft.CodeDraftComplete:
		return http.StatusConflict
	case draft.CodeNotFound:
		return http.StatusNotFound
	case draft.CodeMalformedSnapshot:
		return http.StatusUnprocessableEntity
	case CodeConfirmationRequired:
		return http.StatusPreconditionRequired
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) draftErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var de *draft.Error
	if !errors.As(err, &de) {
		h.serverErrorResponse(w, r, err)
		return
	}
	h.errorResponse(w, statusFor(de.Code), de.Code, de.Message)
}
