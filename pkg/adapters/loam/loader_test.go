package loam

import (
	"context"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"

	"github.com/aretw0/palisade/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saveDoc(t *testing.T, repo core.Repository, id, content string) {
	t.Helper()
	require.NoError(t, repo.Save(context.Background(), core.Document{ID: id, Content: content}))
}

func TestLoader_GetRoute(t *testing.T) {
	_, repo := testutils.SetupRouteRepo(t)

	saveDoc(t, repo, "admin.md", `---
id: /admin
title: Admin area
guards:
  - auth
  - role:admin
metadata:
  layout: dashboard
---
Administrative tools. Requires the admin role.`)

	loader := New(loam.NewTypedRepository[RouteMetadata](repo))

	route, err := loader.GetRoute("/admin")
	require.NoError(t, err)

	assert.Equal(t, "/admin", route.ID)
	assert.Equal(t, "Admin area", route.Title)
	assert.Contains(t, route.Description, "Administrative tools")
	assert.Equal(t, "dashboard", route.Metadata["layout"])

	require.Len(t, route.Guards, 2)
	assert.Equal(t, "auth", route.Guards[0].Name)
	assert.Equal(t, "role:admin", route.Guards[1].Name)
}

func TestLoader_GetRoute_GuardMapForm(t *testing.T) {
	_, repo := testutils.SetupRouteRepo(t)

	saveDoc(t, repo, "billing.md", `---
id: /billing
guards:
  - auth
  - name: role:billing
---
Billing dashboard.`)

	loader := New(loam.NewTypedRepository[RouteMetadata](repo))

	route, err := loader.GetRoute("/billing")
	require.NoError(t, err)

	require.Len(t, route.Guards, 2)
	assert.Equal(t, "auth", route.Guards[0].Name)
	assert.Equal(t, "role:billing", route.Guards[1].Name)
}

func TestLoader_GetRoute_RejectsUnnamedGuardEntry(t *testing.T) {
	_, repo := testutils.SetupRouteRepo(t)

	saveDoc(t, repo, "bad.md", `---
id: /bad
guards:
  - label: oops
---
Broken.`)

	loader := New(loam.NewTypedRepository[RouteMetadata](repo))

	_, err := loader.GetRoute("/bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing name")
}

func TestLoader_GetRoute_FallsBackToFileID(t *testing.T) {
	_, repo := testutils.SetupRouteRepo(t)

	// No explicit id in frontmatter: the file name (extension trimmed)
	// becomes the route ID.
	saveDoc(t, repo, "home.md", `---
title: Home
---
Landing page.`)

	loader := New(loam.NewTypedRepository[RouteMetadata](repo))

	route, err := loader.GetRoute("home")
	require.NoError(t, err)
	assert.Equal(t, "home", route.ID)
	assert.Empty(t, route.Guards)
}

func TestLoader_ListRoutes_DetectsCollisions(t *testing.T) {
	_, repo := testutils.SetupRouteRepo(t)

	saveDoc(t, repo, "a.md", "---\nid: /dup\n---\nA")
	saveDoc(t, repo, "b.md", "---\nid: /dup\n---\nB")

	loader := New(loam.NewTypedRepository[RouteMetadata](repo))

	_, err := loader.ListRoutes()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision")
}

func TestLoader_ListRoutes(t *testing.T) {
	_, repo := testutils.SetupRouteRepo(t)

	saveDoc(t, repo, "home.md", "---\nid: /home\n---\nHome")
	saveDoc(t, repo, "login.md", "---\nid: /login\n---\nLogin")

	loader := New(loam.NewTypedRepository[RouteMetadata](repo))

	ids, err := loader.ListRoutes()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"/home", "/login"}, ids)
}
