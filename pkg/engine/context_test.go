package engine

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuckertucker/tkr-version-sync/go/pkg/config"
	"github.com/tuckertucker/tkr-version-sync/go/pkg/manifest"
	"github.com/tuckertucker/tkr-version-sync/go/pkg/workspace"
)

func TestContextEnumeratesAllDependencyTypes(t *testing.T) {
	packages := &workspace.Packages{ByName: map[string]*manifest.Package{
		"package-a": manifest.New("/repo/package-a/package.json", []byte(`{
			"name": "package-a",
			"version": "1.0.0",
			"dependencies": {"prod-dep": "1.0.0"},
			"devDependencies": {"dev-dep": "1.0.0"},
			"peerDependencies": {"peer-dep": "1.0.0"},
			"optionalDependencies": {"optional-dep": "1.0.0"},
			"overrides": {"override-dep": "1.0.0"},
			"resolutions": {"resolution-dep": "1.0.0"},
			"pnpm": {"overrides": {"pnpm-dep": "1.0.0"}}
		}`)),
	}}
	packages.AllNames = []string{"package-a"}

	ctx, err := NewContext(config.Rcfile{}, packages, nil)
	require.NoError(t, err)

	byType := make(map[string]int)
	for _, inst := range ctx.Instances {
		byType[inst.DependencyTypeName]++
	}
	for _, typeName := range []string{"prod", "dev", "peer", "optional", "overrides", "resolutions", "pnpmOverrides", "local"} {
		assert.Equal(t, 1, byType[typeName], typeName)
	}

	local := getInstance(t, ctx, "package-a", "/version")
	assert.True(t, local.IsLocal)
	assert.Equal(t, "package-a", local.Name)
}

func TestContextAppliesCustomTypes(t *testing.T) {
	rc := config.Rcfile{
		CustomTypes: map[string]config.CustomType{
			"engines":    {Strategy: "versionsByName", Path: "engines"},
			"packageMgr": {Strategy: "name@version", Path: "packageManager"},
		},
	}
	packages := &workspace.Packages{ByName: map[string]*manifest.Package{
		"package-a": manifest.New("/repo/package-a/package.json", []byte(`{
			"name": "package-a",
			"version": "1.0.0",
			"engines": {"node": ">=18.0.0"},
			"packageManager": "pnpm@9.0.0"
		}`)),
	}}
	packages.AllNames = []string{"package-a"}

	ctx, err := NewContext(rc, packages, nil)
	require.NoError(t, err)

	node := getInstance(t, ctx, "package-a", "/engines/node")
	assert.Equal(t, ">=18.0.0", node.Actual.Raw())
	assert.Equal(t, "engines", node.DependencyTypeName)

	pnpm := getInstance(t, ctx, "package-a", "/packageManager")
	assert.Equal(t, "pnpm", pnpm.Name)
	assert.Equal(t, "9.0.0", pnpm.Actual.Raw())
}

func TestContextDependencyTypesFilter(t *testing.T) {
	rc := config.Rcfile{DependencyTypes: []string{"prod"}}
	packages := &workspace.Packages{ByName: map[string]*manifest.Package{
		"package-a": manifest.New("/repo/package-a/package.json", []byte(`{
			"name": "package-a",
			"version": "1.0.0",
			"dependencies": {"kept": "1.0.0"},
			"devDependencies": {"dropped": "1.0.0"}
		}`)),
	}}
	packages.AllNames = []string{"package-a"}

	ctx, err := NewContext(rc, packages, nil)
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, inst := range ctx.Instances {
		names[inst.Name] = true
	}
	assert.True(t, names["kept"])
	assert.False(t, names["dropped"])
	// the local type was not named, only "prod" survives the filter
	assert.False(t, names["package-a"])
}

func TestContextFilterRegex(t *testing.T) {
	packages := &workspace.Packages{ByName: map[string]*manifest.Package{
		"package-a": manifest.New("/repo/package-a/package.json", []byte(`{
			"name": "package-a",
			"version": "1.0.0",
			"dependencies": {"react": "1.0.0", "lodash": "1.0.0"}
		}`)),
	}}
	packages.AllNames = []string{"package-a"}

	ctx, err := NewContext(config.Rcfile{}, packages, regexp.MustCompile(`^react$`))
	require.NoError(t, err)

	for _, inst := range ctx.Instances {
		assert.Equal(t, "react", inst.Name)
	}
	require.Len(t, ctx.Instances, 1)
}

func TestProcessingOrderMovesSnappedToLast(t *testing.T) {
	rc := config.Rcfile{
		VersionGroups: []config.VersionGroup{
			{Label: "snapped", SnapTo: []string{"leader"}},
			{Label: "standard"},
		},
	}
	packages := &workspace.Packages{ByName: map[string]*manifest.Package{}}

	ctx, err := NewContext(rc, packages, nil)
	require.NoError(t, err)

	order := ctx.ProcessingOrder()
	require.Len(t, order, 3)
	assert.Equal(t, "standard", order[0].Selector.Label)
	assert.Equal(t, HighestSemver, order[1].Variant) // the catch-all
	assert.Equal(t, "snapped", order[2].Selector.Label)
}
