// internal/source/source.go
package source

import (
	"context"
	"time"

	"github.com/rusenback/announce-monitor/internal/model"
)

// Source hakee ilmoitukset yhdestä lähteestä.
// Interface mahdollistaa mockauksen testeissä.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]model.Announcement, error)
}

// Varmista että lähteet toteuttavat interfacen
var (
	_ Source = (*WeixinPaySource)(nil)
	_ Source = (*TencentCloudSource)(nil)
	_ Source = (*YeepaySource)(nil)
)

// lastPathSegment palauttaa URL-polun viimeisen osan (ilmoituksen ID)
func lastPathSegment(href string) string {
	for i := len(href) - 1; i >= 0; i-- {
		if href[i] == '/' {
			return href[i+1:]
		}
	}
	return href
}

// splitDateTime jakaa "2006-01-02 15:04:05" muotoisen ajan päivään ja kellonaikaan.
// Kellonaika voi puuttua.
func splitDateTime(raw string) (date, clock string) {
	for i := 0; i < len(raw); i++ {
		if raw[i] == ' ' {
			return raw[:i], raw[i+1:]
		}
	}
	return raw, ""
}

// formatUnix muotoilee unix-ajan päiväksi ja kellonajaksi annetussa vyöhykkeessä
func formatUnix(sec int64, loc *time.Location) (date, clock string) {
	t := time.Unix(sec, 0).In(loc)
	return t.Format("2006-01-02"), t.Format("15:04:05")
}
