package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioReservations/internal/api/handlers"
	"github.com/m04kA/SMC-StudioReservations/internal/api/middleware"
	"github.com/m04kA/SMC-StudioReservations/internal/domain"
	createReservation "github.com/m04kA/SMC-StudioReservations/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные параметры бронирования"
	msgRoomNotFound       = "комната не найдена"
	msgRoomInactive       = "комната недоступна для бронирования"
	msgStartInPast        = "начало бронирования уже прошло"
	msgOutsideHours       = "выбранное время вне часов работы студии"
	msgSlotNotAvailable   = "выбранное время уже занято"
)

type Handler struct {
	useCase CreateReservationUseCase
	slots   SlotFinder
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, slots SlotFinder, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		slots:   slots,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Клиент определяется по заголовку X-User-ID
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReservation.ErrRoomNotFound):
			h.logger.Warn("POST /reservations - Room not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createReservation.ErrRoomInactive):
			h.logger.Warn("POST /reservations - Room inactive: room_id=%d", req.RoomID)
			handlers.RespondUnprocessable(w, msgRoomInactive)

		case errors.Is(err, createReservation.ErrStartInPast):
			h.logger.Warn("POST /reservations - Start in past: user_id=%d, room_id=%d", userID, req.RoomID)
			handlers.RespondUnprocessable(w, msgStartInPast)

		case errors.Is(err, domain.ErrOutsideOperatingHours):
			h.logger.Warn("POST /reservations - Outside operating hours: room_id=%d", req.RoomID)
			handlers.RespondUnprocessable(w, msgOutsideHours)

		case errors.Is(err, domain.ErrSchedulingConflict):
			h.logger.Warn("POST /reservations - Slot not available: user_id=%d, room_id=%d", userID, req.RoomID)
			handlers.RespondErrorWithDetails(w, http.StatusConflict, msgSlotNotAvailable, h.alternatives(r, useCaseReq))

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, room_id=%d, error=%v",
				userID, req.RoomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, user_id=%d, room_id=%d",
		result.Reservation.ID, userID, req.RoomID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// alternatives свободные окна на день запрошенного начала, ошибки не критичны
func (h *Handler) alternatives(r *http.Request, req *createReservation.Request) interface{} {
	if h.slots == nil {
		return nil
	}
	slots, err := h.slots.FreeSlots(r.Context(), req.RoomID, req.Start)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to load free slots: room_id=%d, error=%v", req.RoomID, err)
		return nil
	}
	return map[string][]SlotResponse{"freeSlots": FromSlots(slots)}
}
