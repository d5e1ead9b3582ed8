package model

import "time"

// Container edustaa yhtä compose-projektin containeria
type Container struct {
	ID      string
	Name    string
	Service string // compose service nimi labelista
	Image   string
	Status  string
	State   string
	Created time.Time
	Ports   []Port
}

// Port edustaa container porttia
type Port struct {
	Private int
	Public  int
	Type    string
}

// Running kertoo onko container käynnissä
func (c Container) Running() bool {
	return c.State == "running"
}
