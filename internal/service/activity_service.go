package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/model"
	"github.com/MuhammadAwais989/school-managment-system-sub000/pkg/kvstore"
)

// 活动日志最多保留的条数，超出后丢弃最旧的
const activityCap = 50

// ActivityService 控制台活动日志接口
type ActivityService interface {
	// Record 追加一条活动记录（登录/登出/访问仪表盘），新的在前
	Record(ctx context.Context, typ model.ActivityType, userName, role string) (*model.ActivityEntry, error)
	// List 按时间倒序返回全部留存记录
	List(ctx context.Context) ([]model.ActivityEntry, error)
}

type activityService struct {
	store  kvstore.Store
	logger *zap.Logger
	now    func() time.Time

	mu      sync.Mutex
	entries []model.ActivityEntry
	loaded  bool
}

// NewActivityService 创建 ActivityService 实例
// 首次读写时从缓存加载既有日志，进程内此后以内存副本为准
func NewActivityService(store kvstore.Store, logger *zap.Logger) ActivityService {
	return &activityService{store: store, logger: logger, now: time.Now}
}

func (s *activityService) ensureLoaded(ctx context.Context) {
	if s.loaded {
		return
	}
	var entries []model.ActivityEntry
	if kvstore.GetJSON(ctx, s.store, kvstore.KeySchoolActivities, &entries) {
		s.entries = entries
	}
	s.loaded = true
}

// ──────────────────── Record ────────────────────

func (s *activityService) Record(ctx context.Context, typ model.ActivityType, userName, role string) (*model.ActivityEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	entry := model.ActivityEntry{
		ID:        uuid.NewString(),
		Type:      typ,
		UserName:  userName,
		Role:      role,
		Timestamp: s.now().Format(time.RFC3339),
	}

	s.entries = append([]model.ActivityEntry{entry}, s.entries...)
	if len(s.entries) > activityCap {
		s.entries = s.entries[:activityCap]
	}

	if err := kvstore.SetJSON(ctx, s.store, kvstore.KeySchoolActivities, s.entries); err != nil {
		// 缓存写失败不影响本次记录，下次写入时整组覆盖
		s.logger.Warn("活动日志写缓存失败", zap.Error(err))
	}

	return &entry, nil
}

// ──────────────────── List ────────────────────

func (s *activityService) List(ctx context.Context) ([]model.ActivityEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	out := make([]model.ActivityEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}
