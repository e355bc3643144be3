package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/okra-platform/rpcgen/internal/codegen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadConfigFromPath_Formats(t *testing.T) {
	// Test: JSON, YAML and TOML configs decode to the same settings
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "json",
			file: "rpcgen.json",
			content: `{
  "schema": "./calc.graphql",
  "namespace": "calc",
  "indent": 2,
  "access": "capital",
  "targets": [{"backend": "js", "out": "./web", "options": {"target": "node"}}]
}`,
		},
		{
			name: "yaml",
			file: "rpcgen.yaml",
			content: `schema: ./calc.graphql
namespace: calc
indent: 2
access: capital
targets:
  - backend: js
    out: ./web
    options:
      target: node
`,
		},
		{
			name: "yml",
			file: "rpcgen.yml",
			content: `schema: ./calc.graphql
namespace: calc
indent: 2
access: capital
targets:
  - backend: js
    out: ./web
    options:
      target: node
`,
		},
		{
			name: "toml",
			file: "rpcgen.toml",
			content: `schema = "./calc.graphql"
namespace = "calc"
indent = 2
access = "capital"

[[targets]]
backend = "js"
out = "./web"

[targets.options]
target = "node"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			writeFile(t, path, tt.content)

			cfg, err := LoadConfigFromPath(path)
			require.NoError(t, err)

			assert.Equal(t, "./calc.graphql", cfg.Schema)
			assert.Equal(t, "calc", cfg.Namespace)
			assert.Equal(t, 2, cfg.IndentWidth())
			assert.Equal(t, codegen.AccessCapital, cfg.FieldAccess())
			require.Len(t, cfg.Targets, 1)
			assert.Equal(t, Target{Backend: "js", Out: "./web", Options: map[string]string{"target": "node"}}, cfg.Targets[0])
		})
	}
}

func TestLoadConfigFromPath_Defaults(t *testing.T) {
	// Test: An empty config gets the default schema, indent, access, target and watch patterns
	path := filepath.Join(t.TempDir(), "rpcgen.json")
	writeFile(t, path, `{}`)

	cfg, err := LoadConfigFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultSchema, cfg.Schema)
	assert.Equal(t, DefaultIndent, cfg.Indent)
	assert.Equal(t, codegen.AccessUnderscore, cfg.FieldAccess())
	assert.Equal(t, []Target{{Backend: DefaultBackend, Out: DefaultOut}}, cfg.Targets)
	assert.Equal(t, []string{"*.graphql", "**/*.graphql"}, cfg.Watch.Patterns)
	assert.Equal(t, []string{".git/"}, cfg.Watch.Exclude)
	assert.Equal(t, Default(), cfg)
}

func TestLoadConfigFromPath_Tabs(t *testing.T) {
	// Test: tabs overrides the indent width so generated units keep tab indentation
	path := filepath.Join(t.TempDir(), "rpcgen.yaml")
	writeFile(t, path, "indent: 8\ntabs: true\n")

	cfg, err := LoadConfigFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.IndentWidth())
}

func TestLoadConfigFromPath_Invalid(t *testing.T) {
	// Test: Unknown access strategies, incomplete targets and unsupported formats are rejected
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown access", "rpcgen.json", `{"access": "camel"}`},
		{"target without backend", "rpcgen.json", `{"targets": [{"out": "./gen"}]}`},
		{"target without out", "rpcgen.yaml", "targets:\n  - backend: go\n"},
		{"negative indent", "rpcgen.yaml", "indent: -1\n"},
		{"unsupported format", "rpcgen.ini", "schema=x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			writeFile(t, path, tt.content)

			_, err := LoadConfigFromPath(path)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoadConfigFromPath_Malformed(t *testing.T) {
	// Test: Syntax errors surface as parse failures naming the file
	path := filepath.Join(t.TempDir(), "rpcgen.json")
	writeFile(t, path, `{"schema": `)

	_, err := LoadConfigFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
	assert.Contains(t, err.Error(), path)

	_, err = LoadConfigFromPath(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestLoadConfigFromDir(t *testing.T) {
	// Test: The search walks up to the nearest directory holding a config file
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "rpcgen.yaml"), "namespace: outer\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, dir, err := LoadConfigFromDir(nested)
	require.NoError(t, err)
	assert.Equal(t, root, dir)
	assert.Equal(t, "outer", cfg.Namespace)

	writeFile(t, filepath.Join(root, "a", "rpcgen.toml"), "namespace = \"inner\"\n")
	cfg, dir, err = LoadConfigFromDir(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a"), dir)
	assert.Equal(t, "inner", cfg.Namespace)
}

func TestLoadConfigFromDir_Precedence(t *testing.T) {
	// Test: Within one directory json wins over yaml and toml
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "rpcgen.toml"), "namespace = \"toml\"\n")
	writeFile(t, filepath.Join(root, "rpcgen.yaml"), "namespace: yaml\n")
	writeFile(t, filepath.Join(root, "rpcgen.json"), `{"namespace": "json"}`)

	cfg, _, err := LoadConfigFromDir(root)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Namespace)
}

func TestLoadConfigFromDir_NotFound(t *testing.T) {
	// Test: A tree without any config file reports ErrNotFound
	_, _, err := LoadConfigFromDir(t.TempDir())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSave_RoundTrip(t *testing.T) {
	// Test: A saved config loads back unchanged in every format
	cfg := Default()
	cfg.Namespace = "calc"
	cfg.Targets = append(cfg.Targets, Target{Backend: "proto", Out: "./proto", Options: map[string]string{"go_package": "example.com/calc"}})

	for _, name := range []string{"rpcgen.json", "rpcgen.yaml", "rpcgen.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, cfg.Save(path))

			loaded, err := LoadConfigFromPath(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}

	assert.ErrorIs(t, cfg.Save(filepath.Join(t.TempDir(), "rpcgen.ini")), ErrInvalid)
}

func TestResolve(t *testing.T) {
	// Test: Relative paths resolve against the config directory, absolute ones are kept
	assert.Equal(t, filepath.Join("/proj", "gen"), Resolve("/proj", "./gen"))
	assert.Equal(t, "/abs/gen", Resolve("/proj", "/abs/gen"))
}
