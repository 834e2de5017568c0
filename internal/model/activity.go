package model

// ActivityType 控制台用户行为类型
type ActivityType string

const (
	ActivityLogin     ActivityType = "login"
	ActivityLogout    ActivityType = "logout"
	ActivityDashboard ActivityType = "dashboard"
)

// Valid 判断是否为合法行为类型
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityLogin, ActivityLogout, ActivityDashboard:
		return true
	}
	return false
}

// ActivityEntry 一条用户行为审计记录
// 整个日志上限 50 条、新者在前，随跨会话缓存持久化
type ActivityEntry struct {
	ID        string       `json:"id"`
	Type      ActivityType `json:"type"`
	UserName  string       `json:"user_name"`
	Role      string       `json:"role"`
	Timestamp string       `json:"timestamp"` // RFC3339
}
