package records

import (
	"context"

	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/model"
)

type staffClient struct {
	core *httpCore
}

// List 拉取教职工名单
// GET /addaccount（记录服务的历史路由命名，教师/职员账号都在这）
// 请求失败或响应异常时降级返回样例名单，sample=true
func (c *staffClient) List(ctx context.Context) ([]model.Staff, bool, error) {
	var raw []map[string]interface{}
	if err := c.core.getJSON(ctx, "/addaccount", nil, &raw); err != nil {
		return FixtureStaff(), true, nil
	}

	staff := make([]model.Staff, 0, len(raw))
	for _, r := range raw {
		staff = append(staff, NormalizeStaff(r))
	}
	return staff, false, nil
}
