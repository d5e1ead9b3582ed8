package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rusenback/announce-monitor/internal/model"
)

// Notifier lähettää ilmoituksen eteenpäin.
// Interface mahdollistaa mockauksen testeissä.
type Notifier interface {
	Send(ctx context.Context, item model.Announcement) error
	SendStartup(ctx context.Context, sources []string, interval time.Duration) error
}

// Varmista että WeComNotifier toteuttaa interfacen
var _ Notifier = (*WeComNotifier)(nil)

// WeComNotifier lähettää markdown viestejä 企业微信 ryhmän webhookiin
type WeComNotifier struct {
	webhookURL string
	httpClient *http.Client
	loc        *time.Location
	now        func() time.Time
}

// NewWeComNotifier luo uuden webhook notifierin
func NewWeComNotifier(webhookURL string, loc *time.Location) *WeComNotifier {
	return &WeComNotifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			// Webhook kutsut menevät aina suoraan, ei proxyjen kautta
			Transport: &http.Transport{Proxy: nil},
		},
		loc: loc,
		now: time.Now,
	}
}

// markdownMessage on webhookin viestimuoto
type markdownMessage struct {
	MsgType  string `json:"msgtype"`
	Markdown struct {
		Content string `json:"content"`
	} `json:"markdown"`
}

// webhookResult on webhookin vastausmuoto
type webhookResult struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

// Send lähettää yhden uuden ilmoituksen ryhmään
func (n *WeComNotifier) Send(ctx context.Context, item model.Announcement) error {
	checked := n.now().In(n.loc).Format("2006-01-02 15:04:05")

	content := fmt.Sprintf("### 📢 「%s」新公告\n\n", item.Source) +
		fmt.Sprintf("**标题**：%s\n\n", item.Title) +
		fmt.Sprintf("**时间**：%s", item.Date)
	if item.Time != "" {
		content += " " + item.Time
	}
	content += "\n\n" +
		fmt.Sprintf("**链接**：[点击查看详情](%s)\n\n", item.URL) +
		fmt.Sprintf("**巡检**：%s", checked)

	return n.post(ctx, content)
}

// SendStartup lähettää käynnistysilmoituksen (oletuksena pois päältä)
func (n *WeComNotifier) SendStartup(ctx context.Context, sources []string, interval time.Duration) error {
	started := n.now().In(n.loc).Format("2006-01-02 15:04:05")

	content := "### 🚀 公告监控服务已启动\n\n" +
		fmt.Sprintf("**启动时间**：%s\n\n", started) +
		"**监控对象**：\n"
	for _, name := range sources {
		content += fmt.Sprintf("- %s\n", name)
	}
	content += "\n" + fmt.Sprintf("**巡检间隔**：%d 分钟", int(interval.Minutes()))

	return n.post(ctx, content)
}

// post lähettää markdown sisällön webhookiin
func (n *WeComNotifier) post(ctx context.Context, content string) error {
	var msg markdownMessage
	msg.MsgType = "markdown"
	msg.Markdown.Content = content

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return fmt.Errorf("webhook status %d", resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read webhook response: %w", err)
	}

	// Osa webhook-toteutuksista vastaa tyhjällä bodylla
	if len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}

	var result webhookResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		// 200 + ei-JSON body on tyypillisesti proxyn virhesivu
		return fmt.Errorf("unexpected webhook response: %w", err)
	}
	if result.ErrCode != 0 {
		return fmt.Errorf("webhook errcode %d: %s", result.ErrCode, result.ErrMsg)
	}
	return nil
}
