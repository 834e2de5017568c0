package records

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

var (
	// ErrBackendUnavailable 记录服务不可达或返回非 2xx
	ErrBackendUnavailable = errors.New("记录服务不可用")
	// ErrUnexpectedPayload 响应不是预期的 JSON 结构
	ErrUnexpectedPayload = errors.New("记录服务响应格式异常")
)

// httpCore 对外部记录服务的底层 JSON 请求封装
// 读接口的降级策略（回退样例数据）在各实体客户端中实现，这里只负责
// 请求、状态码与 Content-Type 校验
type httpCore struct {
	baseURL string
	hc      *http.Client
	logger  *zap.Logger
}

// getJSON 发起 GET 请求并解码 JSON 响应到 out
func (c *httpCore) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("构造请求失败: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req, out)
}

// postJSON 发起 POST 请求，body 序列化为 JSON；out 可为 nil
func (c *httpCore) postJSON(ctx context.Context, path string, body interface{}, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("序列化请求体失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("构造请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(req, out)
}

func (c *httpCore) do(req *http.Request, out interface{}) error {
	resp, err := c.hc.Do(req)
	if err != nil {
		c.logger.Warn("记录服务请求失败",
			zap.String("url", req.URL.String()),
			zap.Error(err),
		)
		return ErrBackendUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// 读掉响应体以复用连接
		io.Copy(io.Discard, resp.Body)
		c.logger.Warn("记录服务返回错误状态",
			zap.String("url", req.URL.String()),
			zap.Int("status", resp.StatusCode),
		)
		return ErrBackendUnavailable
	}

	ct := resp.Header.Get("Content-Type")
	if !strings.Contains(ct, "application/json") {
		c.logger.Warn("记录服务响应类型异常",
			zap.String("url", req.URL.String()),
			zap.String("content_type", ct),
		)
		return ErrUnexpectedPayload
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Warn("记录服务响应解析失败",
			zap.String("url", req.URL.String()),
			zap.Error(err),
		)
		return ErrUnexpectedPayload
	}

	return nil
}
