// internal/deploy/project.go
package deploy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"

	"github.com/rusenback/announce-monitor/internal/model"
)

// Compose metadata labels the orchestrator writes on every container
const (
	projectLabel = "com.docker.compose.project"
	serviceLabel = "com.docker.compose.service"
)

// ListProjectContainers palauttaa nimetyn compose-projektin containerit
// (running + stopped). Tyhjä projekti palauttaa kaikki containerit.
func (c *Client) ListProjectContainers(project string) ([]model.Container, error) {
	opts := container.ListOptions{All: true}
	if project != "" {
		opts.Filters = filters.NewArgs(
			filters.Arg("label", fmt.Sprintf("%s=%s", projectLabel, project)),
		)
	}

	containers, err := c.cli.ContainerList(c.ctx, opts)
	if err != nil {
		return nil, err
	}

	result := make([]model.Container, 0, len(containers))
	for _, cont := range containers {
		// Poista "/" container nimen alusta jos on
		name := cont.Names[0]
		if strings.HasPrefix(name, "/") {
			name = name[1:]
		}

		// Muunna portit
		ports := make([]model.Port, 0)
		for _, p := range cont.Ports {
			ports = append(ports, model.Port{
				Private: int(p.PrivatePort),
				Public:  int(p.PublicPort),
				Type:    p.Type,
			})
		}

		result = append(result, model.Container{
			ID:      cont.ID[:12], // Lyhyt ID
			Name:    name,
			Service: cont.Labels[serviceLabel],
			Image:   cont.Image,
			Status:  cont.Status,
			State:   cont.State,
			Created: time.Unix(cont.Created, 0),
			Ports:   ports,
		})
	}

	return result, nil
}

// StartContainer käynnistää containerin
func (c *Client) StartContainer(id string) error {
	ctx, cancel := context.WithTimeout(c.ctx, 10*time.Second)
	defer cancel()

	return c.cli.ContainerStart(ctx, id, container.StartOptions{})
}

// StopContainer pysäyttää containerin
func (c *Client) StopContainer(id string) error {
	ctx, cancel := context.WithTimeout(c.ctx, 10*time.Second)
	defer cancel()

	timeout := 10 // Sekuntia
	return c.cli.ContainerStop(ctx, id, container.StopOptions{
		Timeout: &timeout,
	})
}

// RestartContainer uudelleenkäynnistää containerin
func (c *Client) RestartContainer(id string) error {
	ctx, cancel := context.WithTimeout(c.ctx, 20*time.Second)
	defer cancel()

	timeout := 10
	return c.cli.ContainerRestart(ctx, id, container.StopOptions{
		Timeout: &timeout,
	})
}

// RestartProject uudelleenkäynnistää kaikki projektin containerit.
// Vastaa operaattorin "docker compose restart" komentoa.
func (c *Client) RestartProject(project string) error {
	containers, err := c.ListProjectContainers(project)
	if err != nil {
		return err
	}
	if len(containers) == 0 {
		return fmt.Errorf("no containers found for project %q", project)
	}

	for _, cont := range containers {
		if err := c.RestartContainer(cont.ID); err != nil {
			return fmt.Errorf("restart %s: %w", cont.Name, err)
		}
	}
	return nil
}
