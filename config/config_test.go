package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/recast/config"
	"github.com/dhamidi/recast/rewrite"
	"github.com/dhamidi/recast/xml"
)

const runConfig = `concurrency: 2
indent: "  "
log:
  verbosity: 1
  file: recast.log
maven:
  repository: https://repo.example.com/maven2
recipes:
  - name: xml.FindTags
    options:
      xPath: /project/dependencies/dependency
  - name: xml.ChangeTagValue
    options:
      xPath: /project/version
      value: "2.0"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(writeFile(t, "recast.yaml", runConfig))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Concurrency)
	assert.Equal(t, "  ", cfg.Indent)
	assert.Equal(t, config.LogConfig{Verbosity: 1, File: "recast.log"}, cfg.Log)
	assert.Equal(t, "https://repo.example.com/maven2", cfg.Maven.Repository)
	require.Len(t, cfg.Recipes, 2)
	assert.Equal(t, "xml.FindTags", cfg.Recipes[0].Name)
	assert.Equal(t, "/project/dependencies/dependency", rewrite.Options(cfg.Recipes[0].Options).String("xPath"))
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(writeFile(t, "recast.yaml", "recipes: []\n"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConcurrency, cfg.Concurrency)
	assert.Equal(t, config.DefaultIndent, cfg.Indent)
	assert.Empty(t, cfg.Recipes)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("RECAST_CONCURRENCY", "8")
	t.Setenv("RECAST_MAVEN_REPOSITORY", "https://mirror.example.com")

	cfg, err := config.Load(writeFile(t, "recast.yaml", runConfig))
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, "https://mirror.example.com", cfg.Maven.Repository)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = config.Load(writeFile(t, "recast.yaml", "concurrency: 0\n"))
	assert.ErrorIs(t, err, config.ErrInvalidConcurrency)

	_, err = config.Load(writeFile(t, "recast.yaml", "recipes:\n  - options: {}\n"))
	assert.ErrorIs(t, err, config.ErrRecipeName)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	cfg.Log.Verbosity = 5
	assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidVerbosity)
}

func TestWriteRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Recipes = []config.RecipeConfig{{Name: "xml.FindTags", Options: map[string]any{"xPath": "/a"}}}
	cfg.Classpath = []string{"lib/a.jar", "target/classes"}
	path := filepath.Join(t.TempDir(), "recast.yaml")
	require.NoError(t, config.Write(path, cfg))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Concurrency, loaded.Concurrency)
	assert.Equal(t, cfg.Indent, loaded.Indent)
	assert.Equal(t, cfg.Classpath, loaded.Classpath)
	require.Len(t, loaded.Recipes, 1)
	assert.Equal(t, "/a", rewrite.Options(loaded.Recipes[0].Options).String("xPath"))
}

func TestBuildRecipes(t *testing.T) {
	t.Parallel()

	reg := rewrite.NewRegistry()
	xml.Register(reg)

	cfg, err := config.Load(writeFile(t, "recast.yaml", runConfig))
	require.NoError(t, err)
	recipes, err := cfg.BuildRecipes(reg)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, xml.FindTagsName, recipes[0].Name())
	assert.Equal(t, xml.ChangeTagValueName, recipes[1].Name())

	bad := config.Config{Recipes: []config.RecipeConfig{
		{Name: "xml.Nope"},
		{Name: xml.FindTagsName, Options: map[string]any{"xPath": "relative"}},
	}}
	_, err = bad.BuildRecipes(reg)
	assert.ErrorIs(t, err, rewrite.ErrUnknownRecipe)
	assert.ErrorIs(t, err, config.ErrInvalidRecipe)
	assert.ErrorIs(t, err, rewrite.ErrPatternSyntax)
}
