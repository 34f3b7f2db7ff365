package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-nxn/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-nxn/internal/entity"
)

type gameManager interface {
	CreateSession(ctx context.Context, mode entity.Mode, size int) (*entity.Session, error)
	GetSession(ctx context.Context, id string) (*entity.Session, error)
	MakeTurn(ctx context.Context, id string, cell entity.Cell) (*entity.Session, error)
	Reset(ctx context.Context, id string) (*entity.Session, error)
	ChangeSize(ctx context.Context, id string, size int) (*entity.Session, error)
	CloseSession(ctx context.Context, id string) error
}

type Handlers interface {
	CreateSession(w http.ResponseWriter, r *http.Request)
	GetSession(w http.ResponseWriter, r *http.Request)
	MakeTurn(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)
	ChangeSize(w http.ResponseWriter, r *http.Request)
	CloseSession(w http.ResponseWriter, r *http.Request)
}

type createSessionRequest struct {
	Mode string `json:"mode"`
	Size int    `json:"size"`
}

type changeSizeRequest struct {
	Size int `json:"size"`
}

type errorResponse struct {
	Error   string          `json:"error"`
	Session *entity.Session `json:"session,omitempty"`
}

type handlers struct {
	logger  *slog.Logger
	manager gameManager
}

func NewHandlers(logger *slog.Logger, manager gameManager) Handlers {
	return &handlers{
		logger:  logger.With("component", "rest"),
		manager: manager,
	}
}

func (that *handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	mode, err := entity.ParseMode(req.Mode)
	if err != nil {
		that.writeError(w, err, nil)
		return
	}

	session, err := that.manager.CreateSession(r.Context(), mode, req.Size)
	if err != nil {
		that.writeError(w, err, nil)
		return
	}

	that.writeJSON(w, http.StatusCreated, session)
}

func (that *handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.manager.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err, nil)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func (that *handlers) MakeTurn(w http.ResponseWriter, r *http.Request) {
	var cell entity.Cell
	if err := json.NewDecoder(r.Body).Decode(&cell); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	session, err := that.manager.MakeTurn(r.Context(), chi.URLParam(r, "id"), cell)
	if err != nil {
		that.writeError(w, err, session)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func (that *handlers) Reset(w http.ResponseWriter, r *http.Request) {
	session, err := that.manager.Reset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err, nil)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func (that *handlers) ChangeSize(w http.ResponseWriter, r *http.Request) {
	var req changeSizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	session, err := that.manager.ChangeSize(r.Context(), chi.URLParam(r, "id"), req.Size)
	if err != nil {
		that.writeError(w, err, nil)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func (that *handlers) CloseSession(w http.ResponseWriter, r *http.Request) {
	if err := that.manager.CloseSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, err, nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeError maps engine errors to statuses; the current session, when known,
// is echoed so the client can re-render.
func (that *handlers) writeError(w http.ResponseWriter, err error, session *entity.Session) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrGameOver),
		errors.Is(err, apperror.ErrNotYourTurn):
		status = http.StatusConflict
	case errors.Is(err, apperror.ErrOutOfBounds),
		errors.Is(err, apperror.ErrInvalidSize),
		errors.Is(err, apperror.ErrInvalidMode),
		errors.Is(err, apperror.ErrInvalidBotConfig):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error(), Session: session})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
