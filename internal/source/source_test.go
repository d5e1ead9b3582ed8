package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient() *Client {
	cfg := DefaultClientConfig()
	cfg.RetryMax = 0
	return NewClient(cfg)
}

func TestWeixinPayFetch(t *testing.T) {
	// 2025-06-01 10:00:00 +08:00
	published := time.Date(2025, 6, 1, 10, 0, 0, 0, time.FixedZone("CST", 8*3600)).Unix()

	var regularSeen, pinnedSeen bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("g_ty") != "ajax" || q.Get("id") != "6200" {
			t.Errorf("missing base params: %v", q)
		}
		if q.Get("publishtimeend") == "" || q.Get("expiretimebeg") == "" {
			t.Errorf("missing time window params")
		}

		if q.Get("propertyinclude") == "1" {
			pinnedSeen = true
			if q.Get("pagenum") != "" || q.Get("propertyexclude") != "" {
				t.Errorf("pinned query must not carry pagenum/propertyexclude: %v", q)
			}
			fmt.Fprintf(w, `{"errorcode":0,"data":{"contentlist":[
				{"contentId":99,"contentTitle":"置顶公告","contentPublishTime":%d}]}}`, published)
			return
		}

		regularSeen = true
		if q.Get("pagenum") != "1" || q.Get("ordertype") != "4" {
			t.Errorf("regular query params wrong: %v", q)
		}
		fmt.Fprintf(w, `{"errorcode":0,"data":{"contentlist":[
			{"contentId":1234,"contentTitle":"商户平台升级公告","contentPublishTime":%d}]}}`, published)
	}))
	defer srv.Close()

	loc := time.FixedZone("CST", 8*3600)
	src := NewWeixinPaySource(testClient(), loc)
	src.baseURL = srv.URL

	items, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !regularSeen || !pinnedSeen {
		t.Fatalf("expected both queries, regular=%v pinned=%v", regularSeen, pinnedSeen)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	first := items[0]
	if first.Source != "微信支付" || first.ID != "1234" {
		t.Fatalf("unexpected item: %+v", first)
	}
	if first.Date != "2025-06-01" || first.Time != "10:00:00" {
		t.Fatalf("unexpected publish time: %s %s", first.Date, first.Time)
	}
	if first.URL != "https://pay.weixin.qq.com/index.php/public/cms/content_detail?id=1234" {
		t.Fatalf("unexpected url: %s", first.URL)
	}
}

func TestWeixinPayErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"errorcode":500,"data":{"contentlist":[]}}`)
	}))
	defer srv.Close()

	src := NewWeixinPaySource(testClient(), time.UTC)
	src.baseURL = srv.URL

	if _, err := src.Fetch(context.Background()); err == nil {
		t.Fatalf("expected error for errorcode != 0")
	}
}

func TestTencentCloudFetch(t *testing.T) {
	page := `<html><body><div class="msg-list-bd">
		<div class="msg-list-item">
			<div class="msg-list-con"><a href="/announce/detail/5678">云服务器维护公告</a></div>
			<div class="msg-list-aside"><span>2025-06-01 08:30:00</span></div>
		</div>
		<div class="msg-list-item">
			<div class="msg-list-con"><span>linkitön rivi</span></div>
			<div class="msg-list-aside"><span>2025-06-01</span></div>
		</div>
		<div class="msg-list-item">
			<div class="msg-list-con"><a href="/announce/detail/5679">数据库升级通知</a></div>
			<div class="msg-list-aside"><span>2025-06-02</span></div>
		</div>
	</div></body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	src := NewTencentCloudSource(testClient())
	src.listURL = srv.URL

	items, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The malformed middle row is skipped
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d: %+v", len(items), items)
	}
	if items[0].ID != "5678" || items[0].Title != "云服务器维护公告" {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	if items[0].Date != "2025-06-01" || items[0].Time != "08:30:00" {
		t.Fatalf("unexpected first item time: %+v", items[0])
	}
	if items[1].Time != "" {
		t.Fatalf("expected empty clock for date-only row, got %q", items[1].Time)
	}
	if items[1].URL != "https://cloud.tencent.com/announce/detail/5679" {
		t.Fatalf("unexpected url: %s", items[1].URL)
	}
}

func TestYeepayFetch(t *testing.T) {
	page := `<html><body><table><tbody class="ant-table-tbody">
		<tr>
			<td><a href="/notice-detail/n-100">系统维护通知</a></td>
			<td class="ant-table-row-cell-break-word">2025-05-30 23:00:00</td>
		</tr>
		<tr>
			<td>ei linkkiä</td>
			<td class="ant-table-row-cell-break-word">2025-05-31</td>
		</tr>
	</tbody></table></body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	src := NewYeepaySource(testClient())
	src.listURL = srv.URL

	items, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	got := items[0]
	if got.Source != "易宝支付" || got.ID != "n-100" {
		t.Fatalf("unexpected item: %+v", got)
	}
	if got.URL != "https://www.yeepay.com/notice-detail/n-100" {
		t.Fatalf("unexpected url: %s", got.URL)
	}
}

func TestScrapeStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	src := NewTencentCloudSource(testClient())
	src.listURL = srv.URL

	if _, err := src.Fetch(context.Background()); err == nil {
		t.Fatalf("expected error for non-200 status")
	}
}

func TestLastPathSegment(t *testing.T) {
	cases := map[string]string{
		"/announce/detail/123": "123",
		"123":                  "123",
		"/notice-detail/n-1":   "n-1",
		"":                     "",
	}
	for in, want := range cases {
		if got := lastPathSegment(in); got != want {
			t.Fatalf("lastPathSegment(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSplitDateTime(t *testing.T) {
	date, clock := splitDateTime("2025-06-01 08:30:00")
	if date != "2025-06-01" || clock != "08:30:00" {
		t.Fatalf("got %q %q", date, clock)
	}

	date, clock = splitDateTime("2025-06-01")
	if date != "2025-06-01" || clock != "" {
		t.Fatalf("got %q %q", date, clock)
	}
}
