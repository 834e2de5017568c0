package service

import (
	"errors"
	"time"

	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/model"
)

// ErrWindowInvalid 窗口选择器不合法（未知类型或 custom 缺少年月）
var ErrWindowInvalid = errors.New("报表窗口参数不合法")

// ResolveWindow 把窗口选择器解析为闭区间日期范围（纯函数，now 由调用方注入）
//
//	weekly   今天往前共 7 天
//	monthly  本自然月 1 号至今天
//	previous 上一个自然月整月
//	yearly   本年 1 月 1 日至今天
//	custom   指定年月整月
func ResolveWindow(w model.Window, now time.Time) (model.DateRange, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch w.Type {
	case model.WindowWeekly:
		return model.DateRange{From: today.AddDate(0, 0, -6), To: today}, nil

	case model.WindowMonthly:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return model.DateRange{From: first, To: today}, nil

	case model.WindowPrevious:
		firstOfThis := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		first := firstOfThis.AddDate(0, -1, 0)
		last := firstOfThis.AddDate(0, 0, -1)
		return model.DateRange{From: first, To: last}, nil

	case model.WindowYearly:
		first := time.Date(today.Year(), 1, 1, 0, 0, 0, 0, today.Location())
		return model.DateRange{From: first, To: today}, nil

	case model.WindowCustom:
		if w.Year < 2000 || w.Year > 2100 || w.Month < 1 || w.Month > 12 {
			return model.DateRange{}, ErrWindowInvalid
		}
		first := time.Date(w.Year, time.Month(w.Month), 1, 0, 0, 0, 0, today.Location())
		last := first.AddDate(0, 1, -1)
		return model.DateRange{From: first, To: last}, nil
	}

	return model.DateRange{}, ErrWindowInvalid
}
