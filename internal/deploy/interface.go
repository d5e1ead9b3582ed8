// internal/deploy/interface.go
package deploy

import "github.com/rusenback/announce-monitor/internal/model"

// DeployClient interface mahdollistaa mockauksen testeissä
type DeployClient interface {
	ListProjectContainers(project string) ([]model.Container, error)
	StartContainer(id string) error
	StopContainer(id string) error
	RestartContainer(id string) error
	RestartProject(project string) error
	GetContainerLogs(id string, tail int) ([]model.LogEntry, error)
	StreamContainerLogs(id string) (<-chan model.LogEntry, <-chan error, func())
	Close() error
}

// Varmista että Client toteuttaa interfacen
var _ DeployClient = (*Client)(nil)
