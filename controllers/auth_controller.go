package controllers

import (
	"net/http"

	"github.com/agenciadecir/gympro/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ac.Auth.Register(input.Email, input.Password, input.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := ac.Auth.Login(input.Email, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

type CheckStatusInput struct {
	Email string `json:"email" binding:"required,email"`
}

func (ac *AuthController) CheckStatus(c *gin.Context) {
	var input CheckStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := ac.Auth.CheckStatus(input.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	if status == "banned" {
		c.JSON(http.StatusForbidden, gin.H{
			"status":  status,
			"message": "Your account has been blocked. Contact an administrator.",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}
