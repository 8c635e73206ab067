package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/senyabanana/rfq-desk/internal/models"
	"github.com/senyabanana/rfq-desk/internal/services"
	"github.com/senyabanana/rfq-desk/internal/utils"

	"go.uber.org/zap"
)

// DeskHandler - структура для обработки HTTP-запросов рабочего места закупщика.
type DeskHandler struct {
	Service *services.DeskService
	Logger  *zap.Logger
	Timeout time.Duration
}

// NewDeskHandler создаёт новый экземпляр DeskHandler.
func NewDeskHandler(service *services.DeskService, logger *zap.Logger, timeout time.Duration) *DeskHandler {
	return &DeskHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

func (h *DeskHandler) sendError(w http.ResponseWriter, err error, fallback string) {
	if errorResponse, ok := models.AsErrorResponse(err); ok {
		h.Logger.Debug("request rejected",
			zap.Int("status", errorResponse.StatusCode),
			zap.String("reason", errorResponse.Message))
		utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
		return
	}
	h.Logger.Error(fallback, zap.Error(err))
	utils.SendErrorResponse(w, http.StatusInternalServerError, fallback)
}

func (h *DeskHandler) sendView(w http.ResponseWriter, statusCode int, view *services.SessionView, err error, fallback string) {
	if err != nil {
		h.sendError(w, err, fallback)
		return
	}
	if err := utils.SendJSON(w, statusCode, view); err != nil {
		h.Logger.Warn("failed to write response", zap.Error(err))
	}
}

// OpenSession обрабатывает запросы для открытия сессии по RFQ.
func (h *DeskHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	view, err := h.Service.OpenSession(ctx, r.PathValue("rfqId"))
	h.sendView(w, http.StatusCreated, view, err, "failed to open session")
}

// GetSession обрабатывает запросы для получения состояния сессии.
func (h *DeskHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.GetSession(r.PathValue("sessionId"))
	h.sendView(w, http.StatusOK, view, err, "failed to fetch session")
}

// CloseSession обрабатывает запросы для закрытия сессии.
func (h *DeskHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.CloseSession(r.PathValue("sessionId")); err != nil {
		h.sendError(w, err, "failed to close session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Refresh обрабатывает запросы для перезагрузки данных RFQ.
func (h *DeskHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	view, err := h.Service.Refresh(ctx, r.PathValue("sessionId"))
	h.sendView(w, http.StatusOK, view, err, "failed to refresh session")
}

// Navigate обрабатывает запросы для смены вкладки и строки поиска.
func (h *DeskHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	view, err := h.Service.Navigate(r.PathValue("sessionId"), query.Get("tab"), query.Get("search"))
	h.sendView(w, http.StatusOK, view, err, "failed to navigate")
}

// Next обрабатывает запросы для перехода к следующей позиции.
func (h *DeskHandler) Next(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.Next(r.PathValue("sessionId"))
	h.sendView(w, http.StatusOK, view, err, "failed to navigate")
}

// Previous обрабатывает запросы для перехода к предыдущей позиции.
func (h *DeskHandler) Previous(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.Previous(r.PathValue("sessionId"))
	h.sendView(w, http.StatusOK, view, err, "failed to navigate")
}

// SetOfferType обрабатывает запросы для смены режима ввода цены.
func (h *DeskHandler) SetOfferType(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.SetOfferType(r.PathValue("sessionId"), r.URL.Query().Get("type"))
	h.sendView(w, http.StatusOK, view, err, "failed to change offer type")
}

// StageOffer обрабатывает запросы для ввода встречной цены.
func (h *DeskHandler) StageOffer(w http.ResponseWriter, r *http.Request) {
	var req models.StageOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.Service.StageOffer(r.PathValue("sessionId"), req)
	h.sendView(w, http.StatusOK, view, err, "failed to stage offer")
}

// CollectOffer обрабатывает запросы для добавления позиции в пакет встречных предложений.
func (h *DeskHandler) CollectOffer(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.CollectOffer(r.PathValue("sessionId"), r.PathValue("itemId"))
	h.sendView(w, http.StatusOK, view, err, "failed to add item to counter offer batch")
}

// RemoveCollectedOffer обрабатывает запросы для удаления позиции из пакета встречных предложений.
func (h *DeskHandler) RemoveCollectedOffer(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.RemoveCollectedOffer(r.PathValue("sessionId"), r.PathValue("itemId"))
	h.sendView(w, http.StatusOK, view, err, "failed to remove item from counter offer batch")
}

// StagePriority обрабатывает запросы для назначения приоритета поставщика.
func (h *DeskHandler) StagePriority(w http.ResponseWriter, r *http.Request) {
	var req models.PriorityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.Service.StagePriority(r.PathValue("sessionId"), req)
	h.sendView(w, http.StatusOK, view, err, "failed to stage priority")
}

// CollectArc обрабатывает запросы для добавления позиции в пакет ARC.
func (h *DeskHandler) CollectArc(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.CollectArc(r.PathValue("sessionId"), r.PathValue("itemId"))
	h.sendView(w, http.StatusOK, view, err, "failed to add item to arc batch")
}

// RemoveArc обрабатывает запросы для удаления позиции из пакета ARC.
func (h *DeskHandler) RemoveArc(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.RemoveArc(r.PathValue("sessionId"), r.PathValue("itemId"))
	h.sendView(w, http.StatusOK, view, err, "failed to remove item from arc batch")
}

// SubmitCounterOffers обрабатывает запросы для отправки пакета встречных предложений.
func (h *DeskHandler) SubmitCounterOffers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	view, err := h.Service.SubmitCounterOffers(ctx, r.PathValue("sessionId"))
	h.sendView(w, http.StatusOK, view, err, "failed to submit counter offers")
}

// SubmitArc обрабатывает запросы для отправки пакета ARC-согласования.
func (h *DeskHandler) SubmitArc(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	view, err := h.Service.SubmitArc(ctx, r.PathValue("sessionId"), r.URL.Query().Get("userId"))
	h.sendView(w, http.StatusOK, view, err, "failed to submit arc approvals")
}

// GetRounds обрабатывает запросы для получения истории раундов по позиции.
func (h *DeskHandler) GetRounds(w http.ResponseWriter, r *http.Request) {
	itemId := r.URL.Query().Get("itemId")
	if itemId == "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, "itemId is required")
		return
	}

	rounds, err := h.Service.Rounds(r.PathValue("sessionId"), itemId)
	if err != nil {
		h.sendError(w, err, "failed to fetch rounds")
		return
	}
	if err := utils.SendJSON(w, http.StatusOK, rounds); err != nil {
		h.Logger.Warn("failed to write response", zap.Error(err))
	}
}

// ExportComparison обрабатывает запросы для выгрузки сравнения в xlsx.
func (h *DeskHandler) ExportComparison(w http.ResponseWriter, r *http.Request) {
	f, filename, err := h.Service.ExportComparison(r.PathValue("sessionId"))
	if err != nil {
		h.sendError(w, err, "failed to export comparison")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+filename+"\"")
	if err := f.Write(w); err != nil {
		h.Logger.Error("failed to write workbook", zap.Error(err))
	}
}

// GetSubmissions обрабатывает запросы для получения журнала отправок по RFQ.
func (h *DeskHandler) GetSubmissions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	query := r.URL.Query()
	limit, offset, err := utils.ParseLimitOffset(query.Get("limit"), query.Get("offset"))
	if err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	submissions, err := h.Service.ListSubmissions(ctx, r.PathValue("rfqId"), utils.SplitQueryValues(query["kind"]), limit, offset)
	if err != nil {
		h.sendError(w, err, "failed to fetch submissions")
		return
	}
	if err := utils.SendJSON(w, http.StatusOK, submissions); err != nil {
		h.Logger.Warn("failed to write response", zap.Error(err))
	}
}
