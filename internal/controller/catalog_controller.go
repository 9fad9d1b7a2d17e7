package controller

import (
	"placement_prep_backend/internal/model"
	"placement_prep_backend/internal/repository"
	"placement_prep_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// CatalogController is the admin surface for curating the learning-resource
// catalog the assembler binds tasks against.
type CatalogController struct {
	Repo *repository.ResourceRepository
}

func NewCatalogController(repo *repository.ResourceRepository) *CatalogController {
	return &CatalogController{Repo: repo}
}

type resourceRequest struct {
	Skill           string             `json:"skill" binding:"required"`
	Type            model.ResourceType `json:"type" binding:"required"`
	Title           string             `json:"title" binding:"required"`
	Description     string             `json:"description"`
	URL             string             `json:"url"`
	DurationMinutes int                `json:"durationMinutes"`
	Level           string             `json:"level"`
	Enabled         *bool              `json:"enabled"`
}

// @Summary List catalog resources
// @Tags catalog
// @Produce json
// @Security ApiKeyAuth
// @Param skill query string false "filter by skill"
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Success 200 {object} util.Response
// @Router /admin/resources [get]
func (c *CatalogController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	rs, total, err := c.Repo.List(ctx.Query("skill"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"items": rs, "total": total})
}

// @Summary Create a catalog resource
// @Tags catalog
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body resourceRequest true "resource"
// @Success 201 {object} util.Response
// @Router /admin/resources [post]
func (c *CatalogController) Create(ctx *gin.Context) {
	var req resourceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res := &model.LearningResource{
		Skill:           model.NormalizeSkill(req.Skill),
		Type:            req.Type,
		Title:           req.Title,
		Description:     req.Description,
		URL:             req.URL,
		DurationMinutes: req.DurationMinutes,
		Level:           req.Level,
		Enabled:         true,
	}
	if req.Enabled != nil {
		res.Enabled = *req.Enabled
	}
	if err := c.Repo.Create(res); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, res)
}

// @Summary Update a catalog resource
// @Tags catalog
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "resource id"
// @Param body body resourceRequest true "resource"
// @Success 200 {object} util.Response
// @Router /admin/resources/{id} [put]
func (c *CatalogController) Update(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "id must be an integer")
		return
	}

	res, err := c.Repo.FindByID(uint(id))
	if err != nil {
		util.NotFound(ctx, util.ErrResourceNotFound.Error())
		return
	}

	var req resourceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res.Skill = model.NormalizeSkill(req.Skill)
	res.Type = req.Type
	res.Title = req.Title
	res.Description = req.Description
	res.URL = req.URL
	res.DurationMinutes = req.DurationMinutes
	res.Level = req.Level
	if req.Enabled != nil {
		res.Enabled = *req.Enabled
	}

	if err := c.Repo.Update(res); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, res)
}

// @Summary Delete a catalog resource
// @Tags catalog
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "resource id"
// @Success 200 {object} util.Response
// @Router /admin/resources/{id} [delete]
func (c *CatalogController) Delete(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "id must be an integer")
		return
	}

	if err := c.Repo.Delete(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": id})
}
