package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ownessay/ownessay-backend/internal/services"
)

type ProgressHandler struct {
	weekProgressService services.WeekProgressService
}

func NewProgressHandler(weekProgressService services.WeekProgressService) *ProgressHandler {
	return &ProgressHandler{weekProgressService: weekProgressService}
}

func (ph *ProgressHandler) GetWeekProgress(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	weekStart, ok := parseDateParam(c, c.Query("weekStart"))
	if !ok {
		return
	}
	progress, err := ph.weekProgressService.GetWeekProgress(c.Request.Context(), rd.UserID, weekStart)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, progress)
}

func (ph *ProgressHandler) GetCurrentWeekProgress(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	progress, err := ph.weekProgressService.GetCurrentWeekProgress(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, progress)
}

func (ph *ProgressHandler) GetAllWeekProgress(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	progress, err := ph.weekProgressService.GetAllWeekProgress(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"weeks": progress})
}

func (ph *ProgressHandler) MarkEssayGenerated(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	var req struct {
		WeekStart string `json:"week_start"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	weekStart, ok := parseDateParam(c, req.WeekStart)
	if !ok {
		return
	}
	if err := ph.weekProgressService.MarkEssayGenerated(c.Request.Context(), rd.UserID, weekStart); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"essay_generated": true})
}
