package selections

import (
	"context"
	"meetcue-service/internal/app/contracts"
	"meetcue-service/internal/pkg/constvars"
	"meetcue-service/internal/pkg/dto/requests"
	"meetcue-service/internal/pkg/exceptions"
	"meetcue-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type SelectionController struct {
	Log              *zap.Logger
	SelectionUsecase contracts.SelectionUsecase
}

func NewSelectionController(logger *zap.Logger, selectionUsecase contracts.SelectionUsecase) *SelectionController {
	return &SelectionController{
		Log:              logger,
		SelectionUsecase: selectionUsecase,
	}
}

func (ctrl *SelectionController) CreateSelection(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CreateSelection)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	userID := r.Context().Value(constvars.CONTEXT_USER_ID_KEY).(string)
	userName, _ := r.Context().Value(constvars.CONTEXT_USER_NAME_KEY).(string)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.SelectionUsecase.CreateSelection(ctx, userID, userName, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.SelectionCreatedSuccess, result)
}

func (ctrl *SelectionController) GetSelection(w http.ResponseWriter, r *http.Request) {
	selectionID := chi.URLParam(r, "selectionID")
	if selectionID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "selectionID"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.SelectionUsecase.GetSelectionByID(ctx, selectionID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SelectionGetSuccess, result)
}

func (ctrl *SelectionController) ListSelections(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(constvars.CONTEXT_USER_ID_KEY).(string)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.SelectionUsecase.ListSelectionsByUser(ctx, userID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SelectionListSuccess, result)
}

func (ctrl *SelectionController) UpdateSelection(w http.ResponseWriter, r *http.Request) {
	selectionID := chi.URLParam(r, "selectionID")
	if selectionID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "selectionID"))
		return
	}

	request := new(requests.UpdateSelection)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	userID := r.Context().Value(constvars.CONTEXT_USER_ID_KEY).(string)

	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	result, err := ctrl.SelectionUsecase.UpdateSelection(ctx, userID, selectionID, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SelectionUpdatedSuccess, result)
}

func (ctrl *SelectionController) DeleteSelection(w http.ResponseWriter, r *http.Request) {
	selectionID := chi.URLParam(r, "selectionID")
	if selectionID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "selectionID"))
		return
	}

	userID := r.Context().Value(constvars.CONTEXT_USER_ID_KEY).(string)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err := ctrl.SelectionUsecase.DeleteSelection(ctx, userID, selectionID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SelectionDeletedSuccess, nil)
}

func (ctrl *SelectionController) GetTimezoneOffset(w http.ResponseWriter, r *http.Request) {
	timezone := r.URL.Query().Get("tz")
	if timezone == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "tz"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := ctrl.SelectionUsecase.GetTimezoneOffset(ctx, timezone)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.TimezoneOffsetSuccess, result)
}
