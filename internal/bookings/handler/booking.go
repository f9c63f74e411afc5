package handler

import (
	"net/http"

	"skincare/internal/bookings/service"
	httputil "skincare/pkg/http"
	"skincare/pkg/logger"
	"skincare/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type selectDoctorRequest struct {
	DoctorID string `json:"doctor_id"`
}

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) CreateSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess, err := h.service.CreateSession(r.Context())
	if err != nil {
		h.writeError(w, "CreateSession", err)
		return
	}

	if err := httputil.WriteCreated(w, sess); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateSession", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) GetSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, err := h.service.GetSession(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetSession", err)
		return
	}
	h.writeSuccess(w, "GetSession", sess)
}

func (h *BookingHandler) SelectDoctor(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req selectDoctorRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "SelectDoctor", err)
		return
	}

	sess, err := h.service.SelectDoctor(r.Context(), ps.ByName("id"), req.DoctorID)
	if err != nil {
		h.writeError(w, "SelectDoctor", err)
		return
	}
	h.writeSuccess(w, "SelectDoctor", sess)
}

func (h *BookingHandler) GoBack(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, err := h.service.GoBack(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GoBack", err)
		return
	}
	h.writeSuccess(w, "GoBack", sess)
}

func (h *BookingHandler) SubmitAppointment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req model.AppointmentRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "SubmitAppointment", err)
		return
	}

	sess, err := h.service.SubmitAppointment(r.Context(), ps.ByName("id"), req)
	if err != nil {
		h.writeError(w, "SubmitAppointment", err)
		return
	}
	h.writeSuccess(w, "SubmitAppointment", sess)
}

func (h *BookingHandler) GetConfirmation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	view, err := h.service.GetConfirmation(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetConfirmation", err)
		return
	}
	h.writeSuccess(w, "GetConfirmation", view)
}

func (h *BookingHandler) Reset(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, err := h.service.Reset(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "Reset", err)
		return
	}
	h.writeSuccess(w, "Reset", sess)
}

func (h *BookingHandler) DeleteSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.DeleteSession(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "DeleteSession", err)
		return
	}
	httputil.WriteNoContent(w)
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/sessions", h.CreateSession)
	router.GET("/api/v1/sessions/id/:id", h.GetSession)
	router.DELETE("/api/v1/sessions/id/:id", h.DeleteSession)
	router.POST("/api/v1/sessions/id/:id/doctor", h.SelectDoctor)
	router.POST("/api/v1/sessions/id/:id/back", h.GoBack)
	router.POST("/api/v1/sessions/id/:id/appointment", h.SubmitAppointment)
	router.GET("/api/v1/sessions/id/:id/confirmation", h.GetConfirmation)
	router.POST("/api/v1/sessions/id/:id/reset", h.Reset)
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *BookingHandler) writeSuccess(w http.ResponseWriter, handler string, data any) {
	if err := httputil.WriteSuccess(w, data); err != nil {
		h.log.Error("failed to write success response", "handler", handler, "operation", "WriteSuccess", "error", err)
	}
}
