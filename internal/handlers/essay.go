package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ownessay/ownessay-backend/internal/services"
	"github.com/ownessay/ownessay-backend/internal/types"
)

type EssayHandler struct {
	essayService    services.EssayService
	likeService     services.LikeService
	bookmarkService services.BookmarkService
}

func NewEssayHandler(essayService services.EssayService, likeService services.LikeService, bookmarkService services.BookmarkService) *EssayHandler {
	return &EssayHandler{
		essayService:    essayService,
		likeService:     likeService,
		bookmarkService: bookmarkService,
	}
}

func parseEssayID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "invalid essay id")
		return uuid.Nil, false
	}
	return id, true
}

func parsePaging(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ = strconv.Atoi(c.DefaultQuery("size", "20"))
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return page, size
}

func (eh *EssayHandler) Create(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	var req struct {
		Title        string `json:"title"`
		FinalContent string `json:"final_content"`
		AIDraft      string `json:"ai_draft"`
		Theme        string `json:"theme"`
		CoverImage   string `json:"cover_image"`
		WeekStart    string `json:"week_start"`
		WeekEnd      string `json:"week_end"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	input := services.EssayCreateInput{
		Title:        req.Title,
		FinalContent: req.FinalContent,
		AIDraft:      req.AIDraft,
		CoverImage:   req.CoverImage,
	}
	if req.Theme != "" {
		theme, err := types.EssayThemeFromString(req.Theme)
		if err != nil {
			RespondError(c, err)
			return
		}
		input.Theme = theme
	}
	if req.WeekStart != "" {
		weekStart, ok := parseDateParam(c, req.WeekStart)
		if !ok {
			return
		}
		input.WeekStart = weekStart
	}
	if req.WeekEnd != "" {
		weekEnd, ok := parseDateParam(c, req.WeekEnd)
		if !ok {
			return
		}
		input.WeekEnd = weekEnd
	}
	essay, err := eh.essayService.Create(c.Request.Context(), rd.UserID, input)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"essay": essay})
}

func (eh *EssayHandler) Get(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	essayID, ok := parseEssayID(c)
	if !ok {
		return
	}
	essay, err := eh.essayService.Get(c.Request.Context(), rd.UserID, essayID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"essay": essay})
}

func (eh *EssayHandler) ListMine(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	essays, err := eh.essayService.ListMine(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"essays": essays})
}

func (eh *EssayHandler) Update(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	essayID, ok := parseEssayID(c)
	if !ok {
		return
	}
	var req struct {
		Title        *string `json:"title"`
		FinalContent *string `json:"final_content"`
		Theme        *string `json:"theme"`
		CoverImage   *string `json:"cover_image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	input := services.EssayUpdateInput{
		Title:        req.Title,
		FinalContent: req.FinalContent,
		CoverImage:   req.CoverImage,
	}
	if req.Theme != nil {
		theme, err := types.EssayThemeFromString(*req.Theme)
		if err != nil {
			RespondError(c, err)
			return
		}
		input.Theme = &theme
	}
	essay, err := eh.essayService.Update(c.Request.Context(), rd.UserID, essayID, input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"essay": essay})
}

func (eh *EssayHandler) Publish(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	essayID, ok := parseEssayID(c)
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	status, err := types.PublishStatusFromString(req.Status)
	if err != nil {
		RespondError(c, err)
		return
	}
	essay, err := eh.essayService.Publish(c.Request.Context(), rd.UserID, essayID, status)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"essay": essay})
}

func (eh *EssayHandler) Delete(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	essayID, ok := parseEssayID(c)
	if !ok {
		return
	}
	if err := eh.essayService.Delete(c.Request.Context(), rd.UserID, essayID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

func (eh *EssayHandler) AddLike(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	essayID, ok := parseEssayID(c)
	if !ok {
		return
	}
	result, err := eh.likeService.Add(c.Request.Context(), rd.UserID, essayID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, result)
}

func (eh *EssayHandler) RemoveLike(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	essayID, ok := parseEssayID(c)
	if !ok {
		return
	}
	result, err := eh.likeService.Remove(c.Request.Context(), rd.UserID, essayID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, result)
}

func (eh *EssayHandler) ListMyLikes(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	page, size := parsePaging(c)
	likes, err := eh.likeService.ListMine(c.Request.Context(), rd.UserID, page, size)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"likes": likes})
}

func (eh *EssayHandler) AddBookmark(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	essayID, ok := parseEssayID(c)
	if !ok {
		return
	}
	result, err := eh.bookmarkService.Add(c.Request.Context(), rd.UserID, essayID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, result)
}

func (eh *EssayHandler) RemoveBookmark(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	essayID, ok := parseEssayID(c)
	if !ok {
		return
	}
	result, err := eh.bookmarkService.Remove(c.Request.Context(), rd.UserID, essayID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, result)
}

func (eh *EssayHandler) ListMyBookmarks(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	page, size := parsePaging(c)
	bookmarks, err := eh.bookmarkService.ListMine(c.Request.Context(), rd.UserID, page, size)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"bookmarks": bookmarks})
}
