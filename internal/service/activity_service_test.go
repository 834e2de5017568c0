package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/model"
	"github.com/MuhammadAwais989/school-managment-system-sub000/pkg/kvstore"
)

func TestActivityRecordNewestFirst(t *testing.T) {
	svc := NewActivityService(kvstore.NewMemory(), zap.NewNop())
	ctx := context.Background()

	if _, err := svc.Record(ctx, model.ActivityLogin, "Muhammad Awais", "Principal"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if _, err := svc.Record(ctx, model.ActivityDashboard, "Sana Malik", "Teacher"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("条数 = %d, want 2", len(entries))
	}
	if entries[0].UserName != "Sana Malik" {
		t.Errorf("最新记录应在最前: %s", entries[0].UserName)
	}
	if entries[0].ID == "" || entries[0].ID == entries[1].ID {
		t.Error("每条记录应有唯一 ID")
	}
	if _, err := time.Parse(time.RFC3339, entries[0].Timestamp); err != nil {
		t.Errorf("时间戳非 RFC3339: %s", entries[0].Timestamp)
	}
}

func TestActivityCapAtFifty(t *testing.T) {
	svc := NewActivityService(kvstore.NewMemory(), zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		if _, err := svc.Record(ctx, model.ActivityLogin, fmt.Sprintf("user-%02d", i), "Admin"); err != nil {
			t.Fatalf("Record %d: %v", i, err)
		}
	}

	entries, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 50 {
		t.Fatalf("条数 = %d, want 50（超量丢弃最旧）", len(entries))
	}
	if entries[0].UserName != "user-59" {
		t.Errorf("最前应为最新: %s", entries[0].UserName)
	}
	if entries[49].UserName != "user-10" {
		t.Errorf("最旧留存应为 user-10: %s", entries[49].UserName)
	}
}

func TestActivityPersistsAcrossInstances(t *testing.T) {
	store := kvstore.NewMemory()
	ctx := context.Background()

	svc := NewActivityService(store, zap.NewNop())
	if _, err := svc.Record(ctx, model.ActivityLogout, "Ahmed Raza", "Admin"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	// 同一缓存后端上的新实例应能加载既有日志
	svc2 := NewActivityService(store, zap.NewNop())
	entries, err := svc2.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || entries[0].UserName != "Ahmed Raza" {
		t.Errorf("跨实例读取失败: %+v", entries)
	}
	if entries[0].Type != model.ActivityLogout {
		t.Errorf("Type = %s, want logout", entries[0].Type)
	}
}

func TestActivityListReturnsCopy(t *testing.T) {
	svc := NewActivityService(kvstore.NewMemory(), zap.NewNop())
	ctx := context.Background()

	if _, err := svc.Record(ctx, model.ActivityLogin, "Bilal Khan", "Teacher"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, _ := svc.List(ctx)
	entries[0].UserName = "mutated"

	again, _ := svc.List(ctx)
	if again[0].UserName != "Bilal Khan" {
		t.Error("List 返回值被外部修改污染了内部状态")
	}
}
