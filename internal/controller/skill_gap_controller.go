package controller

import (
	"errors"
	"placement_prep_backend/internal/service"
	"placement_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SkillGapController struct {
	Service *service.SkillGapService
}

func NewSkillGapController(svc *service.SkillGapService) *SkillGapController {
	return &SkillGapController{Service: svc}
}

// @Summary Replace the student's skill-gap backlog
// @Description Stores the full backlog snapshot pushed by the skill-gap analyzer.
// @Tags skill-gap
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SkillGapUpload true "backlog snapshot"
// @Success 200 {object} util.Response
// @Router /skill-gap [post]
func (c *SkillGapController) Replace(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var upload service.SkillGapUpload
	if err := ctx.ShouldBindJSON(&upload); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	gaps, err := c.Service.Replace(claims.UserID, &upload)
	if err != nil {
		if errors.Is(err, util.ErrInvalidBacklogEntry) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gaps)
}

// @Summary Get the student's stored skill-gap backlog
// @Tags skill-gap
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /skill-gap [get]
func (c *SkillGapController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	gaps, err := c.Service.List(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gaps)
}
