package model

import (
	"fmt"
	"time"
)

// Announcement edustaa yhtä julkaistua ilmoitusta lähteessä
type Announcement struct {
	Source       string // Lähteen näyttönimi, esim. "微信支付"
	ID           string // Ilmoituksen tunniste lähteessä
	Title        string
	URL          string // Linkki detaljisivulle
	Date         string // Julkaisupäivä "2006-01-02"
	Time         string // Kellonaika "15:04:05", voi olla tyhjä
	DiscoveredAt time.Time
}

// Key palauttaa deduplikointiavaimen: lähde_otsikko_päivä
func (a Announcement) Key() string {
	return fmt.Sprintf("%s_%s_%s", a.Source, a.Title, a.Date)
}

// PublishedDate parses the announcement date in the given location.
func (a Announcement) PublishedDate(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", a.Date, loc)
}
