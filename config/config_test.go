package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"dbtool/config"

	"github.com/stretchr/testify/require"
)

func write(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dbtool.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := write(t, `
paths:
  schema_file: ddl/schema.sql
  xml_dumps_dir: fixtures
output:
  format: json
`)
	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "ddl/schema.sql", cfg.Paths.SchemaFile)
	require.Equal(t, "fixtures", cfg.Paths.XMLDumpsDir)
	require.Equal(t, "database.xml", cfg.Paths.XMLFile, "unset keys keep defaults")
	require.Equal(t, config.FormatJSON, cfg.Output.Format)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := config.LoadConfig(write(t, "output:\n  format: csv\n"))
	require.EqualError(t, err, `config: unknown output format "csv"`)

	_, err = config.LoadConfig(write(t, "paths:\n  unknown: x\n"))
	require.Error(t, err)

	_, err = config.LoadConfig(write(t, "paths: [\n"))
	require.Error(t, err)

	_, err = config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadOrDefault(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	cfg, err := config.LoadOrDefault("")
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)

	_, err = config.LoadOrDefault("missing.yaml")
	require.Error(t, err)

	require.NoError(t, os.WriteFile("dbtool.yaml", []byte("paths:\n  xml_file: out.xml\n"), 0o644))
	cfg, err = config.LoadOrDefault("")
	require.NoError(t, err)
	require.Equal(t, "out.xml", cfg.Paths.XMLFile)
}
