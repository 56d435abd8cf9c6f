package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/pkg/config"
)

func TestNewPoolConfig_PinsSessionTimeZone(t *testing.T) {
	cfg := config.DBConfig{
		Host: "127.0.0.1", Port: 5432, User: "app", Password: "secreta", DBName: "boutique", SSLMode: "disable",
		TimeZone: "America/La_Paz",
	}
	pc, err := newPoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "America/La_Paz", pc.ConnConfig.RuntimeParams["timezone"])
	assert.Equal(t, "127.0.0.1", pc.ConnConfig.Host)
	assert.NotNil(t, pc.AfterConnect)

	cfg.TimeZone = ""
	pc, err = newPoolConfig(cfg)
	require.NoError(t, err)
	_, ok := pc.ConnConfig.RuntimeParams["timezone"]
	assert.False(t, ok)
}
