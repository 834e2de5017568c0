package dto

import "github.com/MuhammadAwais989/school-managment-system-sub000/internal/model"

// ── 行为日志模块 DTO ──

// AddActivityRequest 控制台外壳上报的一条用户行为
type AddActivityRequest struct {
	Type string `json:"type" binding:"required,oneof=login logout dashboard"`
}

// ActivityListResponse 行为日志列表（新者在前，至多 50 条）
type ActivityListResponse struct {
	List []model.ActivityEntry `json:"list"`
}
