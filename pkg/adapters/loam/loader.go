// Package loam adapts a Loam document repository to the palisade RouteLoader
// interface. Each markdown/YAML document is one route: frontmatter declares
// the guards, the body becomes the description.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/palisade/pkg/domain"
	"github.com/aretw0/palisade/pkg/ports"
	"github.com/mitchellh/mapstructure"
)

// Loader implements ports.RouteLoader over a typed Loam repository.
type Loader struct {
	Repo *loam.TypedRepository[RouteMetadata]
}

// New creates a Loam adapter over an existing typed repository.
func New(repo *loam.TypedRepository[RouteMetadata]) *Loader {
	return &Loader{Repo: repo}
}

// Open initializes a read-only Loam repository at path and wraps it in a
// Loader. Strict mode makes malformed frontmatter fail at load time rather
// than mid-navigation.
func Open(path string) (*Loader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve route directory: %w", err)
	}

	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(loam.NewTypedRepository[RouteMetadata](repo)), nil
}

// GetRoute retrieves one route document. The lookup accepts both the
// metadata ID and the file-derived ID (extension trimmed).
func (l *Loader) GetRoute(id string) (*domain.Route, error) {
	ctx := context.Background()

	doc, err := l.Repo.Get(ctx, id)
	if err != nil {
		// Loam does not export a sentinel for missing documents; fold the
		// lookup miss into the domain error so callers can route on it.
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return nil, fmt.Errorf("%s: %w", id, domain.ErrRouteNotFound)
		}
		return nil, fmt.Errorf("loam get failed for %s: %w", id, err)
	}

	route, err := buildRoute(doc.ID, doc.Data, doc.Content)
	if err != nil {
		return nil, fmt.Errorf("invalid route document %s: %w", id, err)
	}
	return route, nil
}

// ListRoutes lists all route IDs, failing on ID collisions between files.
func (l *Loader) ListRoutes() ([]string, error) {
	ctx := context.Background()

	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(docs))

	for _, doc := range docs {
		id := routeID(doc.ID, doc.Data)
		if existing, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: route %q is defined in both %q and %q", id, existing, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	return ids, nil
}

// Watch implements ports.Watchable. The channel carries the changed document
// ID and closes when ctx is done.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- evt.ID:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}

func buildRoute(docID string, meta RouteMetadata, content string) (*domain.Route, error) {
	guards, err := resolveGuards(meta.Guards)
	if err != nil {
		return nil, err
	}
	return &domain.Route{
		ID:          routeID(docID, meta),
		Title:       meta.Title,
		Description: strings.TrimSpace(content),
		Guards:      guards,
		Metadata:    meta.Metadata,
	}, nil
}

// resolveGuards converts frontmatter guard entries into references. Entries
// are either bare registry keys or map form for explicit declarations.
func resolveGuards(entries []any) ([]domain.GuardRef, error) {
	var refs []domain.GuardRef
	for _, item := range entries {
		switch v := item.(type) {
		case string:
			refs = append(refs, domain.Named(v))

		case map[string]any, map[any]any:
			var ref domain.GuardRef
			if err := mapstructure.Decode(v, &ref); err != nil {
				return nil, fmt.Errorf("failed to decode guard entry: %w", err)
			}
			if ref.Name == "" {
				return nil, fmt.Errorf("guard entry missing name")
			}
			refs = append(refs, ref)

		default:
			return nil, fmt.Errorf("invalid guard entry type: %T", v)
		}
	}
	return refs, nil
}

func routeID(docID string, meta RouteMetadata) string {
	raw := meta.ID
	if raw == "" {
		raw = docID
	}
	return trimExtension(raw)
}

func trimExtension(id string) string {
	if ext := filepath.Ext(id); ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

var (
	_ ports.RouteLoader = (*Loader)(nil)
	_ ports.Watchable   = (*Loader)(nil)
)
