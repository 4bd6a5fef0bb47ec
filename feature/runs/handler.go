package runs

import (
	"errors"

	"are-we-consistent-yet/core/consistency"
	"are-we-consistent-yet/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for consistency runs.
type Handler struct {
	service *Service
}

// RunResponse is the body returned for a single run.
type RunResponse struct {
	Run   RunRecord `json:"run"`
	Lines []string  `json:"lines"`
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the consistency routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/consistency")
	group.Get("/status", h.HandleStatus)
	group.Post("/runs", h.HandleRun)
	group.Get("/runs", h.HandleListRuns)
	group.Get("/runs/:id", h.HandleGetRun)
}

// HandleRun executes a full consistency run.
// @Summary Run Consistency Probes
// @Description Creates the container, runs all five probes and deletes the container. Only one run executes at a time. This operation may take a long time.
// @Tags consistency
// @Accept json
// @Produce json
// @Param request body RunRequest false "Run parameters"
// @Success 200 {object} RunResponse "Run Report"
// @Failure 400 {object} map[string]string "Invalid Parameters"
// @Failure 409 {object} map[string]string "Run In Progress"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Security ApiKeyAuth
// @Router /consistency/runs [post]
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req RunRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
	}

	l.Info("Triggering consistency run", zap.String("container", req.Container), zap.Int("iterations", req.Iterations))
	rec, err := h.service.Run(c.Context(), req)
	if err != nil {
		l.Error("Consistency run failed", zap.Error(err))
		body := fiber.Map{"error": err.Error()}
		if rec != nil {
			body["run"] = rec
		}
		return c.Status(statusFor(err)).JSON(body)
	}

	return c.JSON(RunResponse{Run: *rec, Lines: rec.Report().Lines()})
}

// HandleListRuns lists stored runs.
// @Summary List Runs
// @Description Lists the most recent stored runs, newest first.
// @Tags consistency
// @Produce json
// @Param limit query int false "Maximum number of runs" default(50)
// @Success 200 {array} RunRecord "Runs"
// @Failure 501 {object} map[string]string "History Disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Security ApiKeyAuth
// @Router /consistency/runs [get]
func (h *Handler) HandleListRuns(c *fiber.Ctx) error {
	runs, err := h.service.ListRuns(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(runs)
}

// HandleGetRun fetches a stored run.
// @Summary Get Run
// @Tags consistency
// @Produce json
// @Param id path int true "Run ID"
// @Success 200 {object} RunResponse "Run"
// @Failure 400 {object} map[string]string "Invalid ID"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 501 {object} map[string]string "History Disabled"
// @Security ApiKeyAuth
// @Router /consistency/runs/{id} [get]
func (h *Handler) HandleGetRun(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid run id"})
	}

	rec, err := h.service.GetRun(c.Context(), uint(id))
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(RunResponse{Run: *rec, Lines: rec.Report().Lines()})
}

// HandleStatus reports whether a run is executing.
// @Summary Service Status
// @Tags consistency
// @Produce json
// @Success 200 {object} Status "Status"
// @Security ApiKeyAuth
// @Router /consistency/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(h.service.Status())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, consistency.ErrInvalidConfig), errors.Is(err, consistency.ErrUnknownLocation):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrRunInProgress):
		return fiber.StatusConflict
	case errors.Is(err, ErrRunNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrHistoryDisabled):
		return fiber.StatusNotImplemented
	default:
		return fiber.StatusInternalServerError
	}
}
