package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// NotArrivedAlert is the payload pushed to the operations Feishu group when a
// shipment is flagged 未到货.
type NotArrivedAlert struct {
	RecordID     string `json:"record_id"`
	Material     string `json:"material"`
	Spec         string `json:"spec"`
	Quantity     string `json:"quantity"`
	Unit         string `json:"unit"`
	DeliveryTime string `json:"delivery_time"`
	Project      string `json:"project"`
}

// FeishuClient posts alert cards to a Feishu group webhook. Sends are rate
// limited because Feishu bots reject bursts over ~5 msg/s and a batch status
// update can flag dozens of rows at once.
type FeishuClient struct {
	webhookURL string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

func NewFeishuClient(webhookURL string, logger *zap.Logger) *FeishuClient {
	return &FeishuClient{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(250*time.Millisecond), 4),
		logger:     logger,
	}
}

type feishuResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// Send delivers one alert card. Errors are returned for the caller to record;
// they never propagate back into the status update that triggered the alert.
func (c *FeishuClient) Send(ctx context.Context, alert NotArrivedAlert) error {
	if c.webhookURL == "" {
		return fmt.Errorf("feishu webhook URL not configured")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(c.buildCard(alert))
	if err != nil {
		return fmt.Errorf("marshal feishu card: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post feishu webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("feishu webhook returned HTTP %d", resp.StatusCode)
	}

	var fr feishuResponse
	if err := json.NewDecoder(resp.Body).Decode(&fr); err != nil {
		return fmt.Errorf("decode feishu response: %w", err)
	}
	if fr.Code != 0 {
		return fmt.Errorf("feishu webhook rejected message: code=%d msg=%s", fr.Code, fr.Msg)
	}

	c.logger.Info("Feishu alert delivered",
		zap.String("record_id", alert.RecordID),
		zap.String("project", alert.Project),
	)
	return nil
}

// buildCard renders the interactive card the bot posts.
func (c *FeishuClient) buildCard(alert NotArrivedAlert) map[string]interface{} {
	content := fmt.Sprintf(
		"**物资名称：**%s\n**规格型号：**%s\n**数量：**%s%s\n**交货时间：**%s\n**项目部：**%s",
		alert.Material, alert.Spec, alert.Quantity, alert.Unit, alert.DeliveryTime, alert.Project,
	)
	return map[string]interface{}{
		"msg_type": "interactive",
		"card": map[string]interface{}{
			"header": map[string]interface{}{
				"title": map[string]interface{}{
					"tag":     "plain_text",
					"content": "⚠️ 钢筋未到货预警",
				},
				"template": "red",
			},
			"elements": []interface{}{
				map[string]interface{}{
					"tag": "div",
					"text": map[string]interface{}{
						"tag":     "lark_md",
						"content": content,
					},
				},
			},
		},
	}
}
