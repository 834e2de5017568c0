package kvstore

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
)

// Store 跨会话键值缓存接口
//
// 各仪表盘页面之间没有共享内存状态，派生出的聚合数字（当月收费、
// 在岗人数、六个月趋势序列等）通过该缓存传递。约定：
//   - 无 TTL、无跨键事务，写入为整值覆盖
//   - 键名仅靠约定耦合，拼写错误会静默得到默认值而非报错
//   - 读取缺失/损坏的键一律回退到调用方默认值，不视为故障
type Store interface {
	// Get 返回最近一次写入的值；键不存在或后端读取失败时 ok=false
	Get(ctx context.Context, key string) (value string, ok bool)
	// Set 持久化写入，覆盖旧值
	Set(ctx context.Context, key, value string) error
	// Delete 删除键；键不存在不算错误
	Delete(ctx context.Context, key string) error
}

// ── 约定键名 ──
//
// 与控制台各页面共用的键名约定，新增键请在此登记

const (
	KeyCurrentMonthCollection = "currentMonthCollection"
	KeyCurrentMonthDues       = "currentMonthDues"
	KeyTeacherPresentCount    = "teacherPresentCount"
	KeyTotalPresentStaffCount = "totalPresentStaffCount"
	KeyStudentPresentCount    = "studentPresentCount"
	KeyStudentSixMonthsData   = "studentSixMonthsData"
	KeyTeacherSixMonthsData   = "teacherSixMonthsData"
	KeySchoolActivities       = "school_activities"
)

// FeeLedgerKey 学生缴费台账的缓存键
func FeeLedgerKey(studentID string) string {
	return "feeledger:" + studentID
}

// ── 类型化读写辅助 ──

// GetInt 读取整数值，缺失或损坏时返回 def
func GetInt(ctx context.Context, s Store, key string, def int64) int64 {
	raw, ok := s.Get(ctx, key)
	if !ok {
		return def
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return n
}

// SetInt 写入整数值
func SetInt(ctx context.Context, s Store, key string, v int64) error {
	return s.Set(ctx, key, strconv.FormatInt(v, 10))
}

// GetJSON 读取并反序列化 JSON 值；缺失或损坏时返回 false 且不修改 out
func GetJSON(ctx context.Context, s Store, key string, out interface{}) bool {
	raw, ok := s.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false
	}
	return true
}

// SetJSON 序列化并写入 JSON 值
func SetJSON(ctx context.Context, s Store, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, string(data))
}

// ── 内存后端 ──

// Memory 进程内存后端，用于测试与缓存全面降级时的兜底
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory 创建内存后端
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
