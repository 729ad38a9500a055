package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/gridironhq/gridiron/internal/platform/logging"
	"github.com/gridironhq/gridiron/internal/usecase"
)

type Handler struct {
	predictions *usecase.PredictionService
	sync        *usecase.ScoreSyncService
	profiles    *usecase.ProfileService
	teams       *usecase.TeamService
	logger      *logging.Logger
	validate    *validator.Validate
}

func NewHandler(
	predictions *usecase.PredictionService,
	sync *usecase.ScoreSyncService,
	profiles *usecase.ProfileService,
	teams *usecase.TeamService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		predictions: predictions,
		sync:        sync,
		profiles:    profiles,
		teams:       teams,
		logger:      logger,
		validate:    validator.New(),
	}
}

// decodeRequest parses a JSON body strictly; an empty body yields the zero
// request so POSTs with all-default parameters stay valid.
func decodeRequest(r *http.Request, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: decode request body: %s", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) validateRequest(r *http.Request, req any) error {
	if err := h.validate.StructCtx(r.Context(), req); err != nil {
		return fmt.Errorf("%w: %s", usecase.ErrInvalidInput, err)
	}
	return nil
}
