package validator_test

import (
	"context"
	"testing"

	"github.com/aretw0/palisade/internal/validator"
	"github.com/aretw0/palisade/pkg/adapters/memory"
	"github.com/aretw0/palisade/pkg/domain"
	"github.com/aretw0/palisade/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allow(ctx context.Context, req *domain.TransitionRequest) domain.Outcome {
	return domain.Continue()
}

func TestValidateRoutes_CleanTable(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register("auth", allow))

	loader, err := memory.NewLoader(
		domain.Route{ID: "/login"},
		domain.Route{
			ID:       "/account",
			Guards:   []domain.GuardRef{domain.Named("auth")},
			Metadata: map[string]string{"login": "/login"},
		},
	)
	require.NoError(t, err)

	assert.NoError(t, validator.ValidateRoutes(loader, reg.Snapshot()))
}

func TestValidateRoutes_ReportsAllProblems(t *testing.T) {
	loader, err := memory.NewLoader(
		domain.Route{ID: "/a", Guards: []domain.GuardRef{domain.Named("ghost")}},
		domain.Route{ID: "/b", Metadata: map[string]string{"redirect": "/nowhere"}},
	)
	require.NoError(t, err)

	err = validator.ValidateRoutes(loader, registry.New().Snapshot())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown guard "ghost"`)
	assert.Contains(t, err.Error(), `missing route "/nowhere"`)
	assert.Contains(t, err.Error(), "2 problems")
}

func TestValidateRoutes_InlineGuardsNeedNoRegistryEntry(t *testing.T) {
	loader, err := memory.NewLoader(
		domain.Route{ID: "/x", Guards: []domain.GuardRef{domain.Inline("local", allow)}},
	)
	require.NoError(t, err)

	assert.NoError(t, validator.ValidateRoutes(loader, registry.New().Snapshot()))
}
