package handlers

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/ownessay/ownessay-backend/internal/services"
)

type StreakHandler struct {
	streakService services.StreakService
}

func NewStreakHandler(streakService services.StreakService) *StreakHandler {
	return &StreakHandler{streakService: streakService}
}

func (sh *StreakHandler) GetCurrentStreak(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	current, err := sh.streakService.GetCurrentStreak(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"current_streak": current})
}

func (sh *StreakHandler) GetMaxStreak(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	max, err := sh.streakService.GetMaxStreak(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"max_streak": max})
}

func (sh *StreakHandler) GetStreaks(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	var current, max int
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		current, err = sh.streakService.GetCurrentStreak(ctx, rd.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		max, err = sh.streakService.GetMaxStreak(ctx, rd.UserID)
		return err
	})
	if err := g.Wait(); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"current_streak": current, "max_streak": max})
}
