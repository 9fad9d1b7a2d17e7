package controller

import (
	"errors"
	"placement_prep_backend/internal/model"
	"placement_prep_backend/internal/service"
	"placement_prep_backend/internal/util"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type RoadmapController struct {
	Roadmap  *service.RoadmapService
	Query    *service.QueryService
	Progress *service.ProgressService
}

func NewRoadmapController(roadmap *service.RoadmapService, query *service.QueryService, progress *service.ProgressService) *RoadmapController {
	return &RoadmapController{Roadmap: roadmap, Query: query, Progress: progress}
}

func isValidationErr(err error) bool {
	return errors.Is(err, util.ErrUnsupportedDuration) ||
		errors.Is(err, util.ErrInvalidDailyBudget) ||
		errors.Is(err, util.ErrInvalidBacklogEntry) ||
		errors.Is(err, util.ErrEmptyBacklog)
}

// canAccess limits roadmap reads to the owner; admins see everything.
func canAccess(claims *util.Claims, roadmap *model.Roadmap) bool {
	return claims.Role == model.Admin || roadmap.UserID == claims.UserID
}

// authorize resolves the caller's claim to the roadmap in the id param,
// writing the error response itself when access is denied.
func (c *RoadmapController) authorize(ctx *gin.Context) bool {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return false
	}
	if claims.Role == model.Admin {
		return true
	}
	owner, err := c.Query.OwnerOf(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrRoadmapNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return false
	}
	if owner != claims.UserID {
		util.Forbidden(ctx)
		return false
	}
	return true
}

// @Summary Generate a personalized roadmap
// @Description Plans and assembles a new roadmap for the student, superseding any prior active one. Omitting the backlog uses the stored skill-gap analysis.
// @Tags roadmap
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.GenerationRequest true "generation request"
// @Success 201 {object} util.Response
// @Router /roadmaps [post]
func (c *RoadmapController) Generate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.GenerationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	req.UserID = claims.UserID

	roadmap, err := c.Roadmap.Generate(ctx.Request.Context(), &req)
	if err != nil {
		if isValidationErr(err) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, roadmap)
}

// @Summary Get the student's active roadmap
// @Tags roadmap
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /roadmaps/active [get]
func (c *RoadmapController) GetActive(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	roadmap, err := c.Query.GetActive(ctx.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrNoActiveRoadmap) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, roadmap)
}

// @Summary Get a roadmap by id
// @Tags roadmap
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "roadmap id"
// @Success 200 {object} util.Response
// @Router /roadmaps/{id} [get]
func (c *RoadmapController) GetRoadmap(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	roadmap, err := c.Query.GetRoadmap(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrRoadmapNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	if !canAccess(claims, roadmap) {
		util.Forbidden(ctx)
		return
	}

	util.Success(ctx, roadmap)
}

// @Summary Get one week of a roadmap
// @Tags roadmap
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "roadmap id"
// @Param week path int true "week number (1-based)"
// @Success 200 {object} util.Response
// @Router /roadmaps/{id}/weeks/{week} [get]
func (c *RoadmapController) GetWeek(ctx *gin.Context) {
	if !c.authorize(ctx) {
		return
	}

	weekNumber, err := strconv.Atoi(ctx.Param("week"))
	if err != nil {
		util.BadRequest(ctx, "week must be an integer")
		return
	}

	week, err := c.Query.GetWeek(ctx.Param("id"), weekNumber)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrRoadmapNotFound), errors.Is(err, util.ErrWeekOutOfRange):
			util.NotFound(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, week)
}

// @Summary Get tasks scheduled for a date
// @Description Returns the day whose derived date matches the query date (defaults to today), independent of the current-week pointer.
// @Tags roadmap
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "roadmap id"
// @Param date query string false "date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} util.Response
// @Router /roadmaps/{id}/today [get]
func (c *RoadmapController) GetToday(ctx *gin.Context) {
	if !c.authorize(ctx) {
		return
	}

	asOf := time.Now()
	if raw := ctx.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			util.BadRequest(ctx, "date must be YYYY-MM-DD")
			return
		}
		asOf = parsed
	}

	day, err := c.Query.Today(ctx.Param("id"), asOf)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrRoadmapNotFound), errors.Is(err, util.ErrNoDayForDate):
			util.NotFound(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"date":           day.Date.Format("2006-01-02"),
		"focusArea":      day.FocusArea,
		"totalTasks":     day.TotalTasks,
		"completedTasks": day.CompletedTasks,
		"tasks":          day.Tasks,
	})
}

type completeTaskRequest struct {
	Timestamp *time.Time `json:"timestamp"`
}

// @Summary Record a task completion
// @Description One-way completion event; repeating it is an idempotent no-op. Returns the updated rollup.
// @Tags roadmap
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "roadmap id"
// @Param taskId path string true "task id"
// @Param body body completeTaskRequest false "optional completion timestamp"
// @Success 200 {object} util.Response
// @Router /roadmaps/{id}/tasks/{taskId}/complete [post]
func (c *RoadmapController) CompleteTask(ctx *gin.Context) {
	if !c.authorize(ctx) {
		return
	}

	var req completeTaskRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}
	ts := time.Now()
	if req.Timestamp != nil {
		ts = *req.Timestamp
	}

	rollup, err := c.Progress.RecordCompletion(ctx.Param("id"), ctx.Param("taskId"), ts)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrRoadmapNotFound), errors.Is(err, util.ErrTaskNotFound):
			util.NotFound(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, rollup)
}

// @Summary List roadmap milestones
// @Tags roadmap
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "roadmap id"
// @Success 200 {object} util.Response
// @Router /roadmaps/{id}/milestones [get]
func (c *RoadmapController) GetMilestones(ctx *gin.Context) {
	if !c.authorize(ctx) {
		return
	}

	milestones, err := c.Query.GetMilestones(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrRoadmapNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"milestones": milestones, "total": len(milestones)})
}
