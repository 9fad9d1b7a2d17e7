package controller

import (
	"errors"
	"placement_prep_backend/internal/model"
	"placement_prep_backend/internal/repository"
	"placement_prep_backend/internal/service"
	"placement_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Service  *service.AuthService
	UserRepo *repository.UserRepository
}

func NewAuthController(svc *service.AuthService, userRepo *repository.UserRepository) *AuthController {
	return &AuthController{Service: svc, UserRepo: userRepo}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	College  string `json:"college"`
	Degree   string `json:"degree"`
	GradYear int    `json:"graduationYear"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// @Summary Register a student account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body registerRequest true "registration"
// @Success 201 {object} util.Response
// @Router /register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req registerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.Student,
		College:  req.College,
		Degree:   req.Degree,
		GradYear: req.GradYear,
	}
	if err := c.Service.Register(user); err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"id": user.ID, "email": user.Email})
}

// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "credentials"
// @Success 200 {object} util.Response
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.Service.Login(req.Email, req.Password)
	if err != nil {
		util.Error(ctx, 401, util.ErrInvalidCredentials.Error())
		return
	}

	util.Success(ctx, gin.H{"token": token})
}

// @Summary Get the current user's profile
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.UserRepo.FindByID(claims.UserID)
	if err != nil {
		util.NotFound(ctx, util.ErrUserNotFound.Error())
		return
	}

	util.Success(ctx, user)
}
