package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/rusenback/announce-monitor/internal/model"
)

// TencentCloudSource scrapes 腾讯云 (Tencent Cloud) announcements
type TencentCloudSource struct {
	client  *Client
	listURL string
}

// NewTencentCloudSource creates the Tencent Cloud source
func NewTencentCloudSource(client *Client) *TencentCloudSource {
	return &TencentCloudSource{
		client:  client,
		listURL: "https://cloud.tencent.com/announce",
	}
}

func (s *TencentCloudSource) Name() string { return "腾讯云" }

// Fetch scrapes the announcement list page
func (s *TencentCloudSource) Fetch(ctx context.Context) ([]model.Announcement, error) {
	resp, err := s.client.Get(ctx, s.listURL)
	if err != nil {
		return nil, fmt.Errorf("tencent cloud fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("tencent cloud status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tencent cloud parse: %w", err)
	}

	var result []model.Announcement
	doc.Find(".msg-list-bd .msg-list-item").Each(func(_ int, item *goquery.Selection) {
		link := item.Find(".msg-list-con a").First()
		timeSpan := item.Find(".msg-list-aside span").First()

		href, ok := link.Attr("href")
		if !ok || timeSpan.Length() == 0 {
			// Vajaat rivit ohitetaan, loput listasta kelpaa silti
			return
		}

		id := lastPathSegment(href)
		date, clock := splitDateTime(strings.TrimSpace(timeSpan.Text()))

		result = append(result, model.Announcement{
			Source: s.Name(),
			ID:     id,
			Title:  strings.TrimSpace(link.Text()),
			URL:    fmt.Sprintf("https://cloud.tencent.com/announce/detail/%s", id),
			Date:   date,
			Time:   clock,
		})
	})

	return result, nil
}
