package config

import (
	"os"
	"path/filepath"
	"testing"

	"jelly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "config.json"))

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "0.0.0.0:4242", cfg.Addr())
	assert.True(t, cfg.ShowUpdateTime)
	assert.Nil(t, cfg.NetInterface)
	assert.Equal(t, models.DefaultBaselineMbps, cfg.NetBaselineMbps)
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"port": 8080, "theme": "dark", "net_interface": ""}`), 0644))

	cfg, err := NewStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, "gauges", cfg.Display)
	assert.True(t, cfg.ShowUpdateTime)
	assert.Nil(t, cfg.NetInterface, "empty interface name means aggregate")
	assert.Equal(t, 1000, cfg.NetBaselineMbps)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"port": `), 0644))

	_, err := NewStore(path).Load()
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{"port": 70000}`), 0644))
	_, err = NewStore(path).Load()
	assert.Error(t, err)
}

func TestSaveLoadJSON(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "config.json"))
	iface := "eth0"
	cfg := Default()
	cfg.NetInterface = &iface
	cfg.NetBaselineMbps = 100
	cfg.ShowUpdateTime = false

	require.NoError(t, store.Save(cfg))
	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jelly.yaml")
	store := NewStore(path)
	iface := "wlan0"
	cfg := Default()
	cfg.NetInterface = &iface
	cfg.Theme = "dark"

	require.NoError(t, store.Save(cfg))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "net_interface: wlan0")

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestUpdatePersists(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "config.json"))

	updated, err := store.Update(func(cfg *Config) {
		name := "eth1"
		cfg.NetInterface = &name
		cfg.NetBaselineMbps = -5
	})
	require.NoError(t, err)
	assert.Equal(t, 1000, updated.NetBaselineMbps, "non-positive baseline falls back to default")

	sel, err := store.Selection()
	require.NoError(t, err)
	require.NotNil(t, sel.Interface)
	assert.Equal(t, "eth1", *sel.Interface)
	assert.Equal(t, 1000, sel.BaselineMbps)
}

func TestSelectionCopiesInterface(t *testing.T) {
	cfg := Default()
	name := "eth0"
	cfg.NetInterface = &name

	sel := cfg.Selection()
	name = "changed"
	require.NotNil(t, sel.Interface)
	assert.Equal(t, "eth0", *sel.Interface)
}

func TestSelectionOnBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0644))

	sel, err := NewStore(path).Selection()
	assert.Error(t, err)
	assert.Equal(t, models.DefaultSelection(), sel)
}
