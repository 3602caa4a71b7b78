package media_storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mozzabt/portfolio/internal/config"
	"github.com/mozzabt/portfolio/pkg/logger"
)

func TestNewCloudinaryAdapter(t *testing.T) {
	var cfg config.Config
	_, err := NewCloudinaryAdapter(cfg, logger.NewNopLogger())
	assert.Error(t, err)

	cfg.Cloudinary.CloudName = "demo"
	cfg.Cloudinary.ApiKey = "key"
	cfg.Cloudinary.ApiSecret = "secret"
	up, err := NewCloudinaryAdapter(cfg, logger.NewNopLogger())
	require.NoError(t, err)
	assert.NotNil(t, up)
}
