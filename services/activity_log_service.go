package services

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"resort-backend/models"

	"github.com/gin-gonic/gin"
	ua "github.com/mssola/user_agent"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RequestMeta carries the client context recorded with every audit entry.
// Nil meta is fine for work outside a request (seeding, background jobs).
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// MetaFromContext extracts client IP and user agent from the in-flight request.
func MetaFromContext(c *gin.Context) *RequestMeta {
	if c == nil || c.Request == nil {
		return nil
	}
	return &RequestMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// ActivityLogService records entity mutations and auth events as immutable
// audit entries. Writes are best-effort: a failed audit insert is reported to
// the operational log and never aborts the business operation that triggered
// it. Callers invoke it after their own transaction has committed.
type ActivityLogService struct {
	DB  *gorm.DB
	Log *logrus.Logger
}

func NewActivityLogService(db *gorm.DB, log *logrus.Logger) *ActivityLogService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ActivityLogService{DB: db, Log: log}
}

func (s *ActivityLogService) LogCreate(actor *models.User, entity models.Auditable, meta *RequestMeta) *models.ActivityLog {
	name := entity.AuditDisplayName()
	return s.write(actor, models.ActionCreate, entity.AuditEntityType(), entity.AuditEntityID(), name,
		fmt.Sprintf("Created %s: %s", entity.AuditEntityType(), name),
		nil, entity.AuditFields(), meta)
}

// LogUpdate pairs the caller-captured before-state with the current state of
// the entity. OldData keeps only the fields that actually changed; NewData is
// the full post-image.
func (s *ActivityLogService) LogUpdate(actor *models.User, entity models.Auditable, before map[string]interface{}, meta *RequestMeta) *models.ActivityLog {
	name := entity.AuditDisplayName()
	after := entity.AuditFields()
	return s.write(actor, models.ActionUpdate, entity.AuditEntityType(), entity.AuditEntityID(), name,
		fmt.Sprintf("Updated %s: %s", entity.AuditEntityType(), name),
		ChangedFields(before, after), after, meta)
}

// LogDelete must be called before the row is removed, while the entity data
// is still available.
func (s *ActivityLogService) LogDelete(actor *models.User, entity models.Auditable, meta *RequestMeta) *models.ActivityLog {
	name := entity.AuditDisplayName()
	return s.write(actor, models.ActionDelete, entity.AuditEntityType(), entity.AuditEntityID(), name,
		fmt.Sprintf("Deleted %s: %s", entity.AuditEntityType(), name),
		entity.AuditFields(), nil, meta)
}

func (s *ActivityLogService) LogLogin(user *models.User, meta *RequestMeta) *models.ActivityLog {
	return s.write(user, models.ActionLogin, "User", user.ID, user.Email,
		"User logged in: "+user.Email, nil, nil, meta)
}

func (s *ActivityLogService) LogLogout(user *models.User, meta *RequestMeta) *models.ActivityLog {
	return s.write(user, models.ActionLogout, "User", user.ID, user.Email,
		"User logged out: "+user.Email, nil, nil, meta)
}

func (s *ActivityLogService) write(actor *models.User, action, entityType string, entityID uint, entityName, description string, oldData, newData map[string]interface{}, meta *RequestMeta) *models.ActivityLog {
	// Never audit the audit trail itself.
	if entityType == "ActivityLog" {
		return nil
	}

	entry := &models.ActivityLog{
		Action:      action,
		EntityType:  entityType,
		EntityName:  entityName,
		Description: description,
		CreatedAt:   time.Now(),
	}
	if entityID != 0 {
		id := entityID
		entry.EntityID = &id
	}

	if actor != nil && actor.ID != 0 {
		id := actor.ID
		entry.UserID = &id
		entry.Username = actor.Email
		if entry.Username == "" {
			entry.Username = actor.Username
		}
		entry.UserRole = actor.RoleLabel()
	} else {
		entry.Username = "Anonymous"
		entry.UserRole = "GUEST"
	}

	if meta != nil {
		entry.IPAddress = meta.IPAddress
		entry.UserAgent = meta.UserAgent
		entry.Device = deviceSummary(meta.UserAgent)
	}

	entry.OldData = marshalSnapshot(oldData)
	entry.NewData = marshalSnapshot(newData)

	if err := s.DB.Create(entry).Error; err != nil {
		s.Log.WithError(err).WithFields(logrus.Fields{
			"action":      action,
			"entity_type": entityType,
			"entity_id":   entityID,
		}).Warn("activity log write failed")
	}
	return entry
}

// ChangedFields keeps before-entries whose value differs from the after-image.
func ChangedFields(before, after map[string]interface{}) map[string]interface{} {
	if len(before) == 0 {
		return nil
	}
	changed := map[string]interface{}{}
	for field, oldVal := range before {
		if !reflect.DeepEqual(oldVal, after[field]) {
			changed[field] = oldVal
		}
	}
	if len(changed) == 0 {
		return nil
	}
	return changed
}

func marshalSnapshot(data map[string]interface{}) datatypes.JSON {
	if len(data) == 0 {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

// deviceSummary condenses a User-Agent into "Browser x.y / OS" for the
// listing views; the raw header is stored alongside.
func deviceSummary(userAgent string) string {
	if strings.TrimSpace(userAgent) == "" {
		return ""
	}
	parsed := ua.New(userAgent)
	browser, version := parsed.Browser()
	parts := []string{}
	if browser != "" {
		if version != "" {
			parts = append(parts, browser+" "+version)
		} else {
			parts = append(parts, browser)
		}
	}
	if os := parsed.OS(); os != "" {
		parts = append(parts, os)
	}
	return strings.Join(parts, " / ")
}

// ActivityLogFilters narrows the listing/export queries; zero values are
// ignored.
type ActivityLogFilters struct {
	Action     string
	EntityType string
	Username   string
	From       *time.Time
	To         *time.Time
}

func (s *ActivityLogService) filtered(filters ActivityLogFilters) *gorm.DB {
	q := s.DB.Model(&models.ActivityLog{})
	if filters.Action != "" {
		q = q.Where("action = ?", filters.Action)
	}
	if filters.EntityType != "" {
		q = q.Where("entity_type = ?", filters.EntityType)
	}
	if filters.Username != "" {
		q = q.Where("username LIKE ?", "%"+filters.Username+"%")
	}
	if filters.From != nil {
		q = q.Where("created_at >= ?", *filters.From)
	}
	if filters.To != nil {
		q = q.Where("created_at <= ?", *filters.To)
	}
	return q
}

func (s *ActivityLogService) List(filters ActivityLogFilters, page, limit int) ([]models.ActivityLog, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var total int64
	if err := s.filtered(filters).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.ActivityLog
	err := s.filtered(filters).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&logs).Error
	return logs, total, err
}

func (s *ActivityLogService) Get(id uint) (*models.ActivityLog, error) {
	var entry models.ActivityLog
	if err := s.DB.Preload("User").First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

type statRow struct {
	Bucket string
	Count  int64
}

func (s *ActivityLogService) StatsByAction() (map[string]int64, error) {
	return s.groupedCounts("action")
}

func (s *ActivityLogService) StatsByEntityType() (map[string]int64, error) {
	return s.groupedCounts("entity_type")
}

func (s *ActivityLogService) groupedCounts(column string) (map[string]int64, error) {
	var rows []statRow
	err := s.DB.Model(&models.ActivityLog{}).
		Select(column + " AS bucket, COUNT(id) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	stats := map[string]int64{}
	for _, row := range rows {
		stats[row.Bucket] = row.Count
	}
	return stats, nil
}

func (s *ActivityLogService) CountSince(t time.Time) (int64, error) {
	var count int64
	err := s.DB.Model(&models.ActivityLog{}).Where("created_at >= ?", t).Count(&count).Error
	return count, err
}

func (s *ActivityLogService) Recent(limit int) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	err := s.DB.Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
