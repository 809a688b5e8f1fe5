package api

import (
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/malexanderboyd/pwr9-draftboard/internal/director"
	"github.com/malexanderboyd/pwr9-draftboard/internal/director/models"
	"github.com/malexanderboyd/pwr9-draftboard/internal/draft"
	"github.com/malexanderboyd/pwr9-draftboard/internal/game"
)

// ConfirmRemoveHeader is the header alternative to ?confirm=true on
// DELETE /api/picks/{pick}.
const ConfirmRemoveHeader = "X-Confirm-Remove"

type Handler struct {
	director *director.Director
	logger   *zap.SugaredLogger
}

func NewHandler(d *director.Director, logger *zap.SugaredLogger) *Handler {
	return &Handler{director: d, logger: logger}
}

func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	opts, err := director.Query(r.Context(), h.director, func(e *draft.Engine) (game.Options, error) {
		return e.Options(), nil
	})
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, jsonResponse{"config": opts, "totalPicks": opts.TotalPicks()})
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	board, err := director.Query(r.Context(), h.director, func(e *draft.Engine) (draft.Board, error) {
		return e.Board(), nil
	})
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, jsonResponse{"board": board})
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := director.Query(r.Context(), h.director, func(e *draft.Engine) (draft.Summary, error) {
		return e.Summary(), nil
	})
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, jsonResponse{"summary": summary})
}

func (h *Handler) ListPicks(w http.ResponseWriter, r *http.Request) {
	picks, err := director.Query(r.Context(), h.director, func(e *draft.Engine) ([]draft.Pick, error) {
		return e.Picks(), nil
	})
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, jsonResponse{"picks": picks})
}

func (h *Handler) SearchPicks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	matches, err := director.Query(r.Context(), h.director, func(e *draft.Engine) ([]draft.Pick, error) {
		return e.SearchPicks(query), nil
	})
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, models.SearchResultsPayload{
		Query:   strings.TrimSpace(query),
		Matches: matches,
	})
}

// AddPick accepts a JSON body or a submitted form with the same field names.
func (h *Handler) AddPick(w http.ResponseWriter, r *http.Request) {
	in, err := readAddPickInput(w, r)
	if err != nil {
		h.badRequestResponse(w, err)
		return
	}

	type result struct {
		pick    draft.Pick
		summary draft.Summary
	}
	res, err := director.Query(r.Context(), h.director, func(e *draft.Engine) (result, error) {
		p, err := e.AddPick(r.Context(), in)
		if err != nil {
			return result{}, err
		}
		return result{pick: p, summary: e.Summary()}, nil
	})
	if err != nil {
		h.draftErrorResponse(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, jsonResponse{"pick": res.pick, "summary": res.summary})
}

func readAddPickInput(w http.ResponseWriter, r *http.Request) (draft.AddPickInput, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var err error
		if mediaType == "multipart/form-data" {
			err = r.ParseMultipartForm(maxBodyBytes)
		} else {
			err = r.ParseForm()
		}
		if err != nil {
			return draft.AddPickInput{}, err
		}
		return draft.AddPickInput{
			Name:      r.PostFormValue("name"),
			Position:  r.PostFormValue("position"),
			NFLTeam:   r.PostFormValue("nflTeam"),
			DraftPick: draft.ParsePickNumber(r.PostFormValue("draftPick")),
		}, nil
	default:
		var req models.AddPickRequest
		if err := readJSON(w, r, &req); err != nil {
			return draft.AddPickInput{}, err
		}
		return req.Input(), nil
	}
}

func confirmed(r *http.Request) bool {
	if ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm")); ok {
		return true
	}
	ok, _ := strconv.ParseBool(r.Header.Get(ConfirmRemoveHeader))
	return ok
}

func (h *Handler) RemovePick(w http.ResponseWriter, r *http.Request) {
	number, err := pickParam(r)
	if err != nil {
		h.draftErrorResponse(w, r, err)
		return
	}
	if !confirmed(r) {
		h.errorResponse(w, http.StatusPreconditionRequired, CodeConfirmationRequired,
			"removal must be confirmed with ?confirm=true or the "+ConfirmRemoveHeader+" header")
		return
	}

	type result struct {
		removed draft.Pick
		summary draft.Summary
	}
	res, err := director.Query(r.Context(), h.director, func(e *draft.Engine) (result, error) {
		p, _ := e.PickAt(number)
		if err := e.RemovePick(r.Context(), number); err != nil {
			return result{}, err
		}
		return result{removed: p, summary: e.Summary()}, nil
	})
	if err != nil {
		h.draftErrorResponse(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, jsonResponse{"removed": res.removed, "summary": res.summary})
}

// ResetBoard drops every pick and the stored snapshot. Like RemovePick it
// needs explicit confirmation.
func (h *Handler) ResetBoard(w http.ResponseWriter, r *http.Request) {
	if !confirmed(r) {
		h.errorResponse(w, http.StatusPreconditionRequired, CodeConfirmationRequired,
			"reset must be confirmed with ?confirm=true or the "+ConfirmRemoveHeader+" header")
		return
	}

	type result struct {
		removed int
		summary draft.Summary
	}
	res, err := director.Query(r.Context(), h.director, func(e *draft.Engine) (result, error) {
		n := e.Reset(r.Context())
		return result{removed: n, summary: e.Summary()}, nil
	})
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, jsonResponse{"removed": res.removed, "summary": res.summary})
}

func (h *Handler) GetSlot(w http.ResponseWriter, r *http.Request) {
	number, err := pickParam(r)
	if err != nil {
		h.draftErrorResponse(w, r, err)
		return
	}
	cell, err := director.Query(r.Context(), h.director, func(e *draft.Engine) (draft.Cell, error) {
		return e.Slot(number)
	})
	if err != nil {
		h.draftErrorResponse(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, jsonResponse{"slot": cell})
}

func pickParam(r *http.Request) (int, error) {
	n, err := strconv.Atoi(chi.URLParam(r, "pick"))
	if err != nil {
		return 0, &draft.Error{
			Code:    draft.CodeInvalidPickNumber,
			Message: "pick number must be an integer",
			Cause:   err,
		}
	}
	return n, nil
}
