package controllers

import (
	"net/http"
	"strconv"

	"github.com/agenciadecir/gympro/services"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Admin *services.AdminService
}

func NewAdminController(admin *services.AdminService) *AdminController {
	return &AdminController{Admin: admin}
}

func (ac *AdminController) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	listing, err := ac.Admin.ListUsers(services.ListUsersParams{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
		Status: c.Query("status"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (ac *AdminController) GetUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	detail, err := ac.Admin.GetUser(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

type AdminActionInput struct {
	Action string `json:"action" binding:"required"`
}

func (ac *AdminController) UpdateUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input AdminActionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ac.Admin.UpdateUser(c.GetUint("userID"), id, input.Action)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ac *AdminController) DeleteUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := ac.Admin.DeleteUser(c.GetUint("userID"), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ac *AdminController) Stats(c *gin.Context) {
	stats, err := ac.Admin.Stats()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
