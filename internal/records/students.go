package records

import (
	"context"
	"net/url"

	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/model"
)

type studentClient struct {
	core *httpCore
}

// List 拉取学生名单
// GET /students/details[?class=&section=]
// 请求失败或响应异常时降级返回样例名单，sample=true
func (c *studentClient) List(ctx context.Context, class, section string) ([]model.Student, bool, error) {
	query := url.Values{}
	if class != "" {
		query.Set("class", class)
	}
	if section != "" {
		query.Set("section", section)
	}

	var raw []map[string]interface{}
	if err := c.core.getJSON(ctx, "/students/details", query, &raw); err != nil {
		return FixtureStudents(class, section), true, nil
	}

	students := make([]model.Student, 0, len(raw))
	for _, r := range raw {
		students = append(students, NormalizeStudent(r))
	}
	return students, false, nil
}
