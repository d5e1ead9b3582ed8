package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/rusenback/announce-monitor/internal/model"
)

// YeepaySource scrapes 易宝支付 (Yeepay) notices
type YeepaySource struct {
	client  *Client
	listURL string
}

// NewYeepaySource creates the Yeepay source
func NewYeepaySource(client *Client) *YeepaySource {
	return &YeepaySource{
		client:  client,
		listURL: "https://www.yeepay.com/all-notices",
	}
}

func (s *YeepaySource) Name() string { return "易宝支付" }

// Fetch scrapes the notice table
func (s *YeepaySource) Fetch(ctx context.Context) ([]model.Announcement, error) {
	resp, err := s.client.Get(ctx, s.listURL)
	if err != nil {
		return nil, fmt.Errorf("yeepay fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("yeepay status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yeepay parse: %w", err)
	}

	var result []model.Announcement
	doc.Find(".ant-table-tbody tr").Each(func(_ int, row *goquery.Selection) {
		link := row.Find("a").First()
		timeCell := row.Find(".ant-table-row-cell-break-word").First()

		href, ok := link.Attr("href")
		if !ok || timeCell.Length() == 0 {
			return
		}

		id := lastPathSegment(href)
		date, clock := splitDateTime(strings.TrimSpace(timeCell.Text()))

		result = append(result, model.Announcement{
			Source: s.Name(),
			ID:     id,
			Title:  strings.TrimSpace(link.Text()),
			URL:    fmt.Sprintf("https://www.yeepay.com/notice-detail/%s", id),
			Date:   date,
			Time:   clock,
		})
	})

	return result, nil
}
