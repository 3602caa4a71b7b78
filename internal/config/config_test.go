package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, StorageSQLite, cfg.Storage.Driver)
	assert.Equal(t, "mozza", cfg.Storage.Namespace)
	assert.False(t, cfg.Storage.StrictDecode)
	assert.Equal(t, "override.events", cfg.Kafka.Topic)
	assert.Equal(t, 20, cfg.Backup.Keep)
	assert.False(t, cfg.KafkaEnabled())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("STORAGE_DRIVER", " Redis ")
	t.Setenv("STORAGE_NAMESPACE", "staging")
	t.Setenv("STORAGE_STRICT_DECODE", "true")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("BACKUP_KEEP", "5")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, StorageRedis, cfg.Storage.Driver)
	assert.Equal(t, "staging", cfg.Storage.Namespace)
	assert.True(t, cfg.Storage.StrictDecode)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.KafkaEnabled())
	assert.Equal(t, 5, cfg.Backup.Keep)
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("storage:\n  driver: memory\n  namespace: demo\nkafka:\n  brokers:\n    - a:9092\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, "demo", cfg.Storage.Namespace)
	assert.Equal(t, []string{"a:9092"}, cfg.Kafka.Brokers)
}

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitBrokers([]string{"a, b", "", " c "}))
	assert.Empty(t, splitBrokers(nil))
}
