package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/rusenback/announce-monitor/internal/model"
)

// WeixinPaySource hakee 微信支付 (WeChat Pay) CMS ilmoitukset
type WeixinPaySource struct {
	client  *Client
	loc     *time.Location
	baseURL string
	now     func() time.Time
}

// NewWeixinPaySource luo WeChat Pay lähteen
func NewWeixinPaySource(client *Client, loc *time.Location) *WeixinPaySource {
	return &WeixinPaySource{
		client:  client,
		loc:     loc,
		baseURL: "https://pay.weixin.qq.com/index.php/public/cms/get_contents",
		now:     time.Now,
	}
}

func (s *WeixinPaySource) Name() string { return "微信支付" }

// cmsResponse on CMS rajapinnan vastausmuoto
type cmsResponse struct {
	ErrorCode int `json:"errorcode"`
	Data      struct {
		ContentList []cmsContent `json:"contentlist"`
	} `json:"data"`
}

type cmsContent struct {
	ContentID          json.Number `json:"contentId"`
	ContentTitle       string      `json:"contentTitle"`
	ContentPublishTime int64       `json:"contentPublishTime"`
}

// baseParams palauttaa molemmille kyselyille yhteiset parametrit
func (s *WeixinPaySource) baseParams() url.Values {
	now := fmt.Sprintf("%d", s.now().Unix())
	params := url.Values{}
	params.Set("id", "6200")
	params.Set("cmstype", "1")
	params.Set("url", "https://pay.weixin.qq.com/public/cms/content_list?lang=zh&id=6200")
	params.Set("states", "2")
	params.Set("publishtimeend", now)
	params.Set("expiretimebeg", now)
	params.Set("field", "contentId,contentTitle,contentPublishTime")
	params.Set("g_ty", "ajax")
	return params
}

// Fetch hakee sekä tavalliset että ylös kiinnitetyt ilmoitukset
func (s *WeixinPaySource) Fetch(ctx context.Context) ([]model.Announcement, error) {
	// Tavalliset ilmoitukset
	regular := s.baseParams()
	regular.Set("pagenum", "1")
	regular.Set("propertyexclude", "1")
	regular.Set("ordertype", "4")

	items, err := s.query(ctx, regular)
	if err != nil {
		return nil, fmt.Errorf("weixin pay regular query: %w", err)
	}

	// Kiinnitetyt ilmoitukset
	pinned := s.baseParams()
	pinned.Set("propertyinclude", "1")

	pinnedItems, err := s.query(ctx, pinned)
	if err != nil {
		return nil, fmt.Errorf("weixin pay pinned query: %w", err)
	}

	return append(items, pinnedItems...), nil
}

// query tekee yhden CMS kyselyn ja muuntaa tulokset
func (s *WeixinPaySource) query(ctx context.Context, params url.Values) ([]model.Announcement, error) {
	resp, err := s.client.Get(ctx, s.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body cmsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if body.ErrorCode != 0 {
		return nil, fmt.Errorf("cms errorcode %d", body.ErrorCode)
	}

	result := make([]model.Announcement, 0, len(body.Data.ContentList))
	for _, item := range body.Data.ContentList {
		date, clock := formatUnix(item.ContentPublishTime, s.loc)
		result = append(result, model.Announcement{
			Source: s.Name(),
			ID:     item.ContentID.String(),
			Title:  item.ContentTitle,
			URL:    fmt.Sprintf("https://pay.weixin.qq.com/index.php/public/cms/content_detail?id=%s", item.ContentID.String()),
			Date:   date,
			Time:   clock,
		})
	}
	return result, nil
}
