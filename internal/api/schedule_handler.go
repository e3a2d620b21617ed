package api

import (
	"errors"
	"net/http"
	"strconv"

	"workout-scheduler/internal/domain"
	"workout-scheduler/internal/service"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler holds the schedule service dependency.
type ScheduleHandler struct {
	scheduleService service.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleService service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// --- DTOs for API (Data Transfer Objects) ---

// CreateScheduleRequest defines the expected JSON for scheduling a workout.
type CreateScheduleRequest struct {
	WorkoutID     int              `json:"workoutId" binding:"required"`
	ScheduledDay  string           `json:"scheduledDay" binding:"required"` // YYYY-MM-DD
	ScheduledTime domain.TimeOfDay `json:"scheduledTime" binding:"required,oneof=FIRST_THING MORNING AFTERNOON EVENING"`
}

// UpdateScheduleRequest is a partial update: omitted fields stay untouched.
// The scheduled day cannot be changed.
type UpdateScheduleRequest struct {
	WorkoutID     *int              `json:"workoutId" binding:"omitempty"`
	ScheduledTime *domain.TimeOfDay `json:"scheduledTime" binding:"omitempty,oneof=FIRST_THING MORNING AFTERNOON EVENING"`
}

// WorkoutResponse is the DTO for a catalog workout.
type WorkoutResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ScheduleResponse is the DTO for returning a schedule with its resolved
// workout. ScheduledDay is serialized as an epoch-millisecond string.
type ScheduleResponse struct {
	ID            string           `json:"id"`
	UserID        string           `json:"userId"`
	WorkoutID     int              `json:"workoutId"`
	Workout       WorkoutResponse  `json:"workout"`
	ScheduledDay  string           `json:"scheduledDay"`
	ScheduledTime domain.TimeOfDay `json:"scheduledTime"`
}

// DeleteScheduleResponse reports whether a record was removed.
type DeleteScheduleResponse struct {
	Deleted bool `json:"deleted"`
}

// MapWorkoutToResponse converts a domain.Workout to WorkoutResponse DTO.
func MapWorkoutToResponse(w *domain.Workout) WorkoutResponse {
	if w == nil {
		return WorkoutResponse{}
	}
	return WorkoutResponse{ID: w.ID, Name: w.Name}
}

// MapScheduleToResponse converts a domain.WorkoutSchedule and its resolved
// workout to a ScheduleResponse DTO.
func MapScheduleToResponse(s *domain.WorkoutSchedule, workout *domain.Workout) ScheduleResponse {
	if s == nil {
		return ScheduleResponse{}
	}
	return ScheduleResponse{
		ID:            s.ID,
		UserID:        s.UserID,
		WorkoutID:     s.WorkoutID,
		Workout:       MapWorkoutToResponse(workout),
		ScheduledDay:  strconv.FormatInt(s.ScheduledDay.UnixMilli(), 10),
		ScheduledTime: s.ScheduledTime,
	}
}

// mapSchedulesToResponse resolves each schedule's workout and maps the lot.
func (h *ScheduleHandler) mapSchedulesToResponse(c *gin.Context, schedules []domain.WorkoutSchedule) ([]ScheduleResponse, error) {
	responses := make([]ScheduleResponse, len(schedules))
	for i := range schedules {
		workout, err := h.scheduleService.ResolveWorkout(c.Request.Context(), &schedules[i])
		if err != nil {
			return nil, err
		}
		responses[i] = MapScheduleToResponse(&schedules[i], workout)
	}
	return responses, nil
}

// --- Handler Methods ---

// GetSchedules godoc
// @Summary Get the caller's workout schedules
// @Description Returns the authenticated user's schedules, optionally limited to an inclusive day range.
// @Tags Schedules
// @Produce json
// @Security BearerAuth
// @Param start query string false "Range start (YYYY-MM-DD); requires end"
// @Param end query string false "Range end (YYYY-MM-DD); requires start"
// @Success 200 {array} ScheduleResponse "List of schedules"
// @Failure 400 {object} gin.H "Invalid date range"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /schedules [get]
func (h *ScheduleHandler) GetSchedules(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	startStr := c.Query("start")
	endStr := c.Query("end")

	var schedules []domain.WorkoutSchedule
	switch {
	case startStr == "" && endStr == "":
		schedules, err = h.scheduleService.List(c.Request.Context(), userID)
	case startStr != "" && endStr != "":
		start, perr := domain.ParseDay(startStr)
		if perr != nil {
			abortWithError(c, http.StatusBadRequest, "start must be a YYYY-MM-DD date.")
			return
		}
		end, perr := domain.ParseDay(endStr)
		if perr != nil {
			abortWithError(c, http.StatusBadRequest, "end must be a YYYY-MM-DD date.")
			return
		}
		schedules, err = h.scheduleService.ListInRange(c.Request.Context(), userID, start, end)
	default:
		abortWithError(c, http.StatusBadRequest, "start and end must be supplied together.")
		return
	}
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve schedules.")
		return
	}

	responses, err := h.mapSchedulesToResponse(c, schedules)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutNotFound) {
			abortWithError(c, http.StatusInternalServerError, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to resolve workouts.")
		}
		return
	}
	c.JSON(http.StatusOK, responses)
}

// GetSchedule godoc
// @Summary Get a single workout schedule
// @Description Returns the schedule, or a JSON null body when no schedule with that id exists for the caller. Absence is not an error.
// @Tags Schedules
// @Produce json
// @Security BearerAuth
// @Param id path string true "Schedule ID"
// @Success 200 {object} ScheduleResponse "The schedule, or null"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /schedules/{id} [get]
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	schedule, err := h.scheduleService.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve schedule.")
		return
	}
	if schedule == nil {
		c.JSON(http.StatusOK, nil)
		return
	}

	workout, err := h.scheduleService.ResolveWorkout(c.Request.Context(), schedule)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, MapScheduleToResponse(schedule, workout))
}

// CreateSchedule godoc
// @Summary Schedule a workout
// @Description Attaches a workout to a calendar day and time slot. At most one schedule may exist per day.
// @Tags Schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param schedule body CreateScheduleRequest true "Schedule details"
// @Success 201 {object} ScheduleResponse "Schedule created successfully"
// @Failure 400 {object} gin.H "Invalid input or unknown workout"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 409 {object} gin.H "A schedule already exists for this day"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /schedules [post]
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	schedule, err := h.scheduleService.Create(
		c.Request.Context(),
		userID,
		req.WorkoutID,
		req.ScheduledDay,
		req.ScheduledTime,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkoutNotFound):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrInvalidDay), errors.Is(err, service.ErrInvalidTimeOfDay):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrScheduleExists):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create schedule.")
		}
		return
	}

	workout, err := h.scheduleService.ResolveWorkout(c.Request.Context(), schedule)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusCreated, MapScheduleToResponse(schedule, workout))
}

// UpdateSchedule godoc
// @Summary Update a workout schedule
// @Description Partial update: only the supplied fields change. The scheduled day cannot be moved.
// @Tags Schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Schedule ID"
// @Param schedule body UpdateScheduleRequest true "Fields to update"
// @Success 200 {object} ScheduleResponse "Updated schedule"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Schedule does not exist"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /schedules/{id} [patch]
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	schedule, err := h.scheduleService.Update(
		c.Request.Context(),
		c.Param("id"),
		userID,
		req.WorkoutID,
		req.ScheduledTime,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScheduleNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidTimeOfDay):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update schedule.")
		}
		return
	}

	workout, err := h.scheduleService.ResolveWorkout(c.Request.Context(), schedule)
	if err != nil {
		// An update may have pointed the schedule at an id the catalog never had.
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, MapScheduleToResponse(schedule, workout))
}

// DeleteSchedule godoc
// @Summary Delete a workout schedule
// @Description Removes the schedule. Deleting an unknown id reports deleted=false rather than an error.
// @Tags Schedules
// @Produce json
// @Security BearerAuth
// @Param id path string true "Schedule ID"
// @Success 200 {object} DeleteScheduleResponse "Whether a record was removed"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /schedules/{id} [delete]
func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	deleted, err := h.scheduleService.Delete(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to delete schedule.")
		return
	}
	c.JSON(http.StatusOK, DeleteScheduleResponse{Deleted: deleted})
}

// GetWorkouts godoc
// @Summary List the workout catalog
// @Description Returns the static catalog of workouts a schedule can reference.
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} WorkoutResponse "Catalog workouts"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts [get]
func (h *ScheduleHandler) GetWorkouts(c *gin.Context) {
	workouts, err := h.scheduleService.Workouts(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workouts.")
		return
	}

	responses := make([]WorkoutResponse, len(workouts))
	for i := range workouts {
		responses[i] = MapWorkoutToResponse(&workouts[i])
	}
	c.JSON(http.StatusOK, responses)
}
