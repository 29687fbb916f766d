package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ownessay/ownessay-backend/internal/services"
	"github.com/ownessay/ownessay-backend/internal/types"
)

type RecordHandler struct {
	recordService services.RecordService
}

func NewRecordHandler(recordService services.RecordService) *RecordHandler {
	return &RecordHandler{recordService: recordService}
}

func parseDateParam(c *gin.Context, value string) (time.Time, bool) {
	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		RespondBadRequest(c, "invalid date, expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}

func (rh *RecordHandler) SaveRecord(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	date, ok := parseDateParam(c, c.Param("date"))
	if !ok {
		return
	}
	slotType, err := types.SlotTypeFromString(c.Param("slotType"))
	if err != nil {
		RespondError(c, err)
		return
	}
	var req struct {
		Content   map[string]interface{} `json:"content"`
		Completed *bool                  `json:"completed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	if req.Completed == nil {
		RespondBadRequest(c, "completed is required")
		return
	}
	record, err := rh.recordService.SaveRecord(c.Request.Context(), rd.UserID, date, slotType, req.Content, *req.Completed)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"record": record})
}

func (rh *RecordHandler) GetDailyRecords(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	date, ok := parseDateParam(c, c.Param("date"))
	if !ok {
		return
	}
	daily, err := rh.recordService.GetDailyRecords(c.Request.Context(), rd.UserID, date)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, daily)
}

func (rh *RecordHandler) GetWeeklyRecords(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	start, ok := parseDateParam(c, c.Query("startDate"))
	if !ok {
		return
	}
	end, ok := parseDateParam(c, c.Query("endDate"))
	if !ok {
		return
	}
	records, err := rh.recordService.GetWeeklyRecords(c.Request.Context(), rd.UserID, start, end)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"records": records})
}

func (rh *RecordHandler) DeleteRecord(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "invalid record id")
		return
	}
	if err := rh.recordService.DeleteRecord(c.Request.Context(), rd.UserID, recordID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
