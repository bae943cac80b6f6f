package controllers

import (
	"net/http"

	"github.com/agenciadecir/gympro/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

// GetProfile returns the caller with the active routine and diet populated.
func (uc *UserController) GetProfile(c *gin.Context) {
	user, err := uc.Users.GetProfile(c.GetUint("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
