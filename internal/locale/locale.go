// Package locale renders enum badges and option labels in the viewer's language.
package locale

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/noah-isme/campus-credit-api/internal/models"
)

var (
	Chinese = language.MustParse("zh-CN")
	English = language.MustParse("en-US")
)

var catalog = map[language.Tag]map[string]string{
	Chinese: {
		"activity.status.completed": "已完成",
		"activity.status.active":    "进行中",
		"activity.status.upcoming":  "即将开始",
		"activity.status.unknown":   "未知",
		"credit.status.completed":   "已达标",
		"credit.status.warning":     "接近达标",
		"credit.status.danger":      "未达标",
		"role.admin":                "系统管理员",
		"role.manager":              "院系管理员",
		"role.assistant":            "部门助理",
		"role.class":                "班级管理员",
		"notification.alert":        "提醒",
		"notification.success":      "成功",
		"notification.info":         "通知",
		"notification.calendar":     "日程",
		"filter.all.categories":     "全部类型",
		"filter.all.statuses":       "全部状态",
		"filter.all.roles":          "全部角色",
		"filter.all.departments":    "全部部门",
		"filter.all.types":          "全部类型",
		"filter.all.read":           "全部",
		"filter.read.unread":        "未读",
		"filter.read.read":          "已读",
		"empty.activities":          "没有找到符合条件的活动",
		"empty.students":            "没有找到符合条件的学生",
		"empty.users":               "没有找到符合条件的用户",
		"empty.notifications":       "当前没有符合条件的消息。",
		"empty.report":              "未找到数据",
	},
	English: {
		"activity.status.completed": "Completed",
		"activity.status.active":    "In progress",
		"activity.status.upcoming":  "Upcoming",
		"activity.status.unknown":   "Unknown",
		"credit.status.completed":   "On track",
		"credit.status.warning":     "Nearly there",
		"credit.status.danger":      "Below requirement",
		"role.admin":                "System administrator",
		"role.manager":              "Faculty administrator",
		"role.assistant":            "Department assistant",
		"role.class":                "Class administrator",
		"notification.alert":        "Alert",
		"notification.success":      "Success",
		"notification.info":         "Notice",
		"notification.calendar":     "Schedule",
		"filter.all.categories":     "All categories",
		"filter.all.statuses":       "All statuses",
		"filter.all.roles":          "All roles",
		"filter.all.departments":    "All departments",
		"filter.all.types":          "All types",
		"filter.all.read":           "All",
		"filter.read.unread":        "Unread",
		"filter.read.read":          "Read",
		"empty.activities":          "No activities match the current filters",
		"empty.students":            "No students match the current filters",
		"empty.users":               "No users match the current filters",
		"empty.notifications":       "No messages match the current filters.",
		"empty.report":              "No data found",
	},
}

var matcher = language.NewMatcher([]language.Tag{Chinese, English})

func init() {
	for tag, messages := range catalog {
		keys := make([]string, 0, len(messages))
		for key := range messages {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			_ = message.SetString(tag, key, messages[key])
		}
	}
}

// Labeler renders labels for one resolved language.
type Labeler struct {
	tag     language.Tag
	printer *message.Printer
}

// New resolves an Accept-Language header against the supported languages,
// falling back to fallback and then Chinese.
func New(acceptLanguage, fallback string) *Labeler {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		if fb, fbErr := language.Parse(fallback); fbErr == nil {
			tags = []language.Tag{fb}
		} else {
			tags = []language.Tag{Chinese}
		}
	}
	_, index, _ := matcher.Match(tags...)
	tag := Chinese
	if index == 1 {
		tag = English
	}
	return &Labeler{tag: tag, printer: message.NewPrinter(tag)}
}

// Tag returns the resolved language.
func (l *Labeler) Tag() language.Tag {
	return l.tag
}

// Text renders the catalog entry for key.
func (l *Labeler) Text(key string) string {
	return l.printer.Sprintf(key)
}

// ActivityStatus labels an activity status badge.
func (l *Labeler) ActivityStatus(s models.ActivityStatus) string {
	if !s.Valid() {
		return l.Text("activity.status.unknown")
	}
	return l.Text("activity.status." + string(s))
}

// CreditStatus labels a credit standing badge.
func (l *Labeler) CreditStatus(s models.CreditStatus) string {
	if !s.Valid() {
		return string(s)
	}
	return l.Text("credit.status." + string(s))
}

// Role labels a user role badge.
func (l *Labeler) Role(r models.UserRole) string {
	if !r.Valid() {
		return string(r)
	}
	return l.Text("role." + string(r))
}

// NotificationType labels a notification type.
func (l *Labeler) NotificationType(t models.NotificationType) string {
	if !t.Valid() {
		return string(t)
	}
	return l.Text("notification." + string(t))
}

// Sentinel labels an all-sentinel or read-state filter value; other values are returned as-is.
func (l *Labeler) Sentinel(value string) string {
	switch value {
	case models.AllStatuses:
		return l.Text("filter.all.statuses")
	case models.AllRoles:
		return l.Text("filter.all.roles")
	case models.AllDepartment:
		return l.Text("filter.all.departments")
	case models.AllCategories:
		return l.Text("filter.all.categories")
	case models.AllReadStates:
		return l.Text("filter.all.read")
	case models.ReadStateUnread:
		return l.Text("filter.read.unread")
	case models.ReadStateRead:
		return l.Text("filter.read.read")
	}
	return value
}

// IsEnglish reports whether the labeler renders English.
func (l *Labeler) IsEnglish() bool {
	base, _ := l.tag.Base()
	return strings.EqualFold(base.String(), "en")
}
