package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"resort-backend/services"
	"resort-backend/utils"

	"github.com/gin-gonic/gin"
)

type ActivityLogController struct {
	Logs *services.ActivityLogService
}

func NewActivityLogController(logs *services.ActivityLogService) *ActivityLogController {
	return &ActivityLogController{Logs: logs}
}

func parseLogFilters(c *gin.Context) services.ActivityLogFilters {
	filters := services.ActivityLogFilters{
		Action:     c.Query("action"),
		EntityType: c.Query("entityType"),
		Username:   c.Query("username"),
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filters.From = &t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			// inclusive end of day
			end := t.Add(24*time.Hour - time.Second)
			filters.To = &end
		}
	}
	return filters
}

func (ctl *ActivityLogController) Index(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	logs, total, err := ctl.Logs.List(parseLogFilters(c), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"logs":    logs,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

func (ctl *ActivityLogController) Show(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	entry, err := ctl.Logs.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, entry)
}

func (ctl *ActivityLogController) Stats(c *gin.Context) {
	byAction, err := ctl.Logs.StatsByAction()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	byEntity, err := ctl.Logs.StatsByEntityType()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"byAction":     byAction,
		"byEntityType": byEntity,
	})
}

// ExportCSV streams the filtered audit trail as a CSV download.
func (ctl *ActivityLogController) ExportCSV(c *gin.Context) {
	logs, _, err := ctl.Logs.List(parseLogFilters(c), 1, 10000)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	filename := "activity-logs-" + time.Now().Format("20060102-150405") + ".csv"
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"ID", "Timestamp", "Username", "Role", "Action", "EntityType", "EntityID", "EntityName", "Description", "IPAddress", "Device"})
	for _, entry := range logs {
		entityID := ""
		if entry.EntityID != nil {
			entityID = fmt.Sprintf("%d", *entry.EntityID)
		}
		_ = w.Write([]string{
			fmt.Sprintf("%d", entry.ID),
			entry.CreatedAt.Format(time.RFC3339),
			entry.Username,
			entry.UserRole,
			entry.Action,
			entry.EntityType,
			entityID,
			entry.EntityName,
			entry.Description,
			entry.IPAddress,
			entry.Device,
		})
	}
	w.Flush()
}
