// Package file loads a static route table from a single YAML document.
// It suits small deployments where one file describes every route; larger
// tables are better served by the loam adapter (one document per route,
// with change watching).
package file

import (
	"fmt"
	"os"

	"github.com/aretw0/palisade/pkg/adapters/memory"
	"github.com/aretw0/palisade/pkg/domain"
	"github.com/aretw0/palisade/pkg/ports"
	"gopkg.in/yaml.v3"
)

// table is the on-disk shape:
//
//	routes:
//	  - id: /admin
//	    title: Admin area
//	    guards: [auth, "role:admin"]
//	    metadata:
//	      layout: dashboard
type table struct {
	Routes []routeDoc `yaml:"routes"`
}

type routeDoc struct {
	ID          string            `yaml:"id"`
	Title       string            `yaml:"title"`
	Description string            `yaml:"description"`
	Guards      []string          `yaml:"guards"`
	Metadata    map[string]string `yaml:"metadata"`
}

// Load reads a YAML route table and returns an immutable loader over it.
func Load(path string) (ports.RouteLoader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read route table: %w", err)
	}
	return Parse(data)
}

// Parse builds a loader from raw YAML.
func Parse(data []byte) (ports.RouteLoader, error) {
	var tbl table
	if err := yaml.Unmarshal(data, &tbl); err != nil {
		return nil, fmt.Errorf("failed to parse route table: %w", err)
	}
	if len(tbl.Routes) == 0 {
		return nil, fmt.Errorf("route table declares no routes")
	}

	routes := make([]domain.Route, 0, len(tbl.Routes))
	for i, doc := range tbl.Routes {
		if doc.ID == "" {
			return nil, fmt.Errorf("route #%d has no id", i)
		}
		route := domain.Route{
			ID:          doc.ID,
			Title:       doc.Title,
			Description: doc.Description,
			Metadata:    doc.Metadata,
		}
		for _, name := range doc.Guards {
			route.Guards = append(route.Guards, domain.Named(name))
		}
		routes = append(routes, route)
	}

	// The in-memory loader already handles duplicate detection and
	// copy-on-read.
	loader, err := memory.NewLoader(routes...)
	if err != nil {
		return nil, err
	}
	return loader, nil
}
