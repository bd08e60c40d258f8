// Package handlers adapts the planning services to HTTP.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/aquarian247/aquamind-planning/internal/domain/models"
	"github.com/aquarian247/aquamind-planning/internal/repository/mongodb"
	"github.com/aquarian247/aquamind-planning/internal/service/activity"
	"github.com/aquarian247/aquamind-planning/internal/service/fleet"
	"github.com/aquarian247/aquamind-planning/internal/service/variance"
)

const dateLayout = "2006-01-02"

// Materializer triggers activity generation for a batch.
type Materializer interface {
	MaterializeForBatch(ctx context.Context, batchID, createdBy string) (int, error)
}

// FleetSummarizer produces the fleet-wide aggregation view.
type FleetSummarizer interface {
	Summarize(ctx context.Context, facilityIDs []string) (fleet.Summary, error)
}

// PlannerHandler serves the production-planning HTTP API.
type PlannerHandler struct {
	repo        mongodb.Repository
	materalizer Materializer
	fleetSvc    FleetSummarizer
	reporter    *variance.Reporter
	facilityIDs []string
	logger      *zap.Logger
	now         func() time.Time
}

// NewPlannerHandler constructs the HTTP handler adapter.
func NewPlannerHandler(repo mongodb.Repository, materializer Materializer, fleetSvc FleetSummarizer, reporter *variance.Reporter, facilityIDs []string, logger *zap.Logger) *PlannerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlannerHandler{
		repo:        repo,
		materalizer: materializer,
		fleetSvc:    fleetSvc,
		reporter:    reporter,
		facilityIDs: facilityIDs,
		logger:      logger,
		now:         time.Now,
	}
}

// ListTemplates returns activity templates; ?active=true restricts to active.
func (h *PlannerHandler) ListTemplates(c *gin.Context) {
	onlyActive := c.Query("active") == "true"

	templates, err := h.repo.ListTemplates(c.Request.Context(), onlyActive)
	if err != nil {
		h.logger.Error("failed listing templates", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list templates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

// CreateTemplate validates and stores a new template.
func (h *PlannerHandler) CreateTemplate(c *gin.Context) {
	var tmpl models.ActivityTemplate
	if err := c.ShouldBindJSON(&tmpl); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template payload"})
		return
	}

	created, err := h.repo.CreateTemplate(c.Request.Context(), tmpl)
	if errors.Is(err, models.ErrInvalidTrigger) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("failed creating template", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create template"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateTemplate replaces a template. Deactivation never retracts activities
// the template already materialized.
func (h *PlannerHandler) UpdateTemplate(c *gin.Context) {
	var tmpl models.ActivityTemplate
	if err := c.ShouldBindJSON(&tmpl); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template payload"})
		return
	}
	tmpl.ID = c.Param("id")

	err := h.repo.UpdateTemplate(c.Request.Context(), tmpl)
	switch {
	case errors.Is(err, models.ErrInvalidTrigger):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, mongodb.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
	case err != nil:
		h.logger.Error("failed updating template", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update template"})
	default:
		c.JSON(http.StatusOK, tmpl)
	}
}

// DeleteTemplate removes a template.
func (h *PlannerHandler) DeleteTemplate(c *gin.Context) {
	err := h.repo.DeleteTemplate(c.Request.Context(), c.Param("id"))
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed deleting template", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete template"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ListActivities returns planned activities, filtered and sorted by due date.
func (h *PlannerHandler) ListActivities(c *gin.Context) {
	activities, err := h.repo.ListActivities(c.Request.Context(), c.Query("scenario"), c.Query("batch"))
	if err != nil {
		h.logger.Error("failed listing activities", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list activities"})
		return
	}

	filters, err := parseFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	today := h.now()
	filtered := activity.SortByDueDate(activity.Filter(activities, filters, today))
	c.JSON(http.StatusOK, gin.H{"activities": filtered})
}

// CreateActivity stores a manually planned activity.
func (h *PlannerHandler) CreateActivity(c *gin.Context) {
	var a models.PlannedActivity
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity payload"})
		return
	}
	if !a.ActivityType.Valid() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown activity type"})
		return
	}
	if a.BatchID == "" || a.DueDate.IsZero() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "batch and due_date are required"})
		return
	}

	now := h.now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	created, err := h.repo.CreateActivity(c.Request.Context(), a)
	if err != nil {
		h.logger.Error("failed creating activity", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create activity"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// CompleteActivity transitions an activity into COMPLETED. Terminal
// activities are rejected without modification.
func (h *PlannerHandler) CompleteActivity(c *gin.Context) {
	id := c.Param("id")

	current, err := h.repo.GetActivity(c.Request.Context(), id)
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "activity not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed loading activity", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load activity"})
		return
	}

	if !activity.CanMarkCompleted(current) {
		c.JSON(http.StatusConflict, gin.H{"error": activity.ErrInvalidTransition.Error()})
		return
	}

	completed, err := h.repo.MarkCompleted(c.Request.Context(), id, h.now(), c.GetHeader("X-User"))
	if errors.Is(err, mongodb.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": activity.ErrInvalidTransition.Error()})
		return
	}
	if err != nil {
		h.logger.Error("failed completing activity", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete activity"})
		return
	}

	c.JSON(http.StatusOK, completed)
}

// CancelActivity transitions an activity into CANCELLED.
func (h *PlannerHandler) CancelActivity(c *gin.Context) {
	h.transition(c, activity.Cancel)
}

// StartActivity transitions a pending activity into IN_PROGRESS.
func (h *PlannerHandler) StartActivity(c *gin.Context) {
	h.transition(c, activity.Start)
}

func (h *PlannerHandler) transition(c *gin.Context, apply func(models.PlannedActivity, time.Time) (models.PlannedActivity, error)) {
	id := c.Param("id")

	current, err := h.repo.GetActivity(c.Request.Context(), id)
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "activity not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed loading activity", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load activity"})
		return
	}

	updated, err := apply(current, h.now())
	if errors.Is(err, activity.ErrInvalidTransition) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("failed applying transition", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update activity"})
		return
	}

	if err := h.repo.UpdateActivity(c.Request.Context(), updated); err != nil {
		h.logger.Error("failed persisting transition", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update activity"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// spawnWorkflowRequest carries the stage pair for a transfer workflow.
type spawnWorkflowRequest struct {
	SourceStage string `json:"source_stage" binding:"required"`
	DestStage   string `json:"dest_stage" binding:"required"`
}

// SpawnWorkflow creates a transfer workflow for a TRANSFER activity and links
// it. A second spawn attempt fails; the first link is never overwritten.
func (h *PlannerHandler) SpawnWorkflow(c *gin.Context) {
	var req spawnWorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workflow payload"})
		return
	}

	id := c.Param("id")
	current, err := h.repo.GetActivity(c.Request.Context(), id)
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "activity not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed loading activity", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load activity"})
		return
	}

	if current.TransferWorkflowID != nil {
		c.JSON(http.StatusConflict, gin.H{"error": activity.ErrWorkflowExists.Error()})
		return
	}
	if !activity.CanSpawnWorkflow(current) {
		c.JSON(http.StatusConflict, gin.H{"error": activity.ErrInvalidTransition.Error()})
		return
	}

	ref := models.WorkflowRef{
		ID:          primitive.NewObjectID().Hex(),
		SourceStage: req.SourceStage,
		DestStage:   req.DestStage,
	}

	if _, err := h.repo.AttachWorkflow(c.Request.Context(), id, ref.ID, h.now()); err != nil {
		if errors.Is(err, mongodb.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": activity.ErrWorkflowExists.Error()})
			return
		}
		h.logger.Error("failed attaching workflow", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to spawn workflow"})
		return
	}

	c.JSON(http.StatusCreated, ref)
}

// MaterializeBatch generates planned activities for a batch from the active
// templates.
func (h *PlannerHandler) MaterializeBatch(c *gin.Context) {
	count, err := h.materalizer.MaterializeForBatch(c.Request.Context(), c.Param("id"), c.GetHeader("X-User"))
	if err != nil {
		h.logger.Error("failed materializing batch", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to materialize activities"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"created": count})
}

// ActivityKPIs returns the dashboard counters over the full activity set.
func (h *PlannerHandler) ActivityKPIs(c *gin.Context) {
	activities, err := h.repo.ListActivities(c.Request.Context(), c.Query("scenario"), c.Query("batch"))
	if err != nil {
		h.logger.Error("failed listing activities", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list activities"})
		return
	}

	c.JSON(http.StatusOK, activity.KPIs(activities, h.now()))
}

// GroupedActivities returns the batch-grouped timeline view.
func (h *PlannerHandler) GroupedActivities(c *gin.Context) {
	activities, err := h.repo.ListActivities(c.Request.Context(), c.Query("scenario"), c.Query("batch"))
	if err != nil {
		h.logger.Error("failed listing activities", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list activities"})
		return
	}

	groups := activity.GroupByBatch(activities)
	for i := range groups {
		groups[i].Activities = activity.SortByDueDate(groups[i].Activities)
	}

	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// VarianceReport reconciles planned due dates against actual completions.
func (h *PlannerHandler) VarianceReport(c *gin.Context) {
	activities, err := h.repo.ListActivities(c.Request.Context(), c.Query("scenario"), c.Query("batch"))
	if err != nil {
		h.logger.Error("failed listing activities", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list activities"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": h.reporter.Build(activities)})
}

// FleetSummary returns the cross-facility aggregation with partial failures
// reported alongside the data.
func (h *PlannerHandler) FleetSummary(c *gin.Context) {
	summary, err := h.fleetSvc.Summarize(c.Request.Context(), h.facilityIDs)
	if err != nil {
		h.logger.Error("failed summarizing fleet", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to summarize fleet"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func parseFilters(c *gin.Context) (models.ActivityFilters, error) {
	var filters models.ActivityFilters

	for _, raw := range splitMulti(c.QueryArray("type")) {
		t := models.ActivityType(raw)
		if !t.Valid() {
			return filters, errors.New("unknown activity type filter: " + raw)
		}
		filters.ActivityTypes = append(filters.ActivityTypes, t)
	}

	for _, raw := range splitMulti(c.QueryArray("status")) {
		s := models.ActivityStatus(raw)
		if !s.Valid() {
			return filters, errors.New("unknown status filter: " + raw)
		}
		filters.Statuses = append(filters.Statuses, s)
	}

	filters.BatchIDs = splitMulti(c.QueryArray("batch_id"))

	if from := c.Query("from"); from != "" {
		parsed, err := time.Parse(dateLayout, from)
		if err != nil {
			return filters, errors.New("invalid from date, expected YYYY-MM-DD")
		}
		filters.DateFrom = &parsed
	}
	if to := c.Query("to"); to != "" {
		parsed, err := time.Parse(dateLayout, to)
		if err != nil {
			return filters, errors.New("invalid to date, expected YYYY-MM-DD")
		}
		filters.DateTo = &parsed
	}

	filters.OverdueOnly = models.CoerceOverdue(c.Query("overdue_only"))

	return filters, nil
}

// splitMulti accepts both repeated query params and comma-separated values.
func splitMulti(values []string) []string {
	var result []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
	}
	return result
}
