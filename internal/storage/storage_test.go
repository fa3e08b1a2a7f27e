package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/repository/memory"
	"github.com/devsaad05858/Knowledge-Graph-Backend/pkg/config"
	"github.com/devsaad05858/Knowledge-Graph-Backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Set(zap.NewNop())
	m.Run()
}

func TestOpenMemory(t *testing.T) {
	s, err := Open(context.Background(), &config.Config{StoreDriver: config.DriverMemory})
	require.NoError(t, err)
	defer s.Close(context.Background())

	assert.IsType(t, &memory.Store{}, s)
	require.NoError(t, s.Ping(context.Background()))
	require.NoError(t, Migrate(context.Background(), s))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{StoreDriver: "mongo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo")
}

func TestOpenRejectsBadNeo4jURL(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{StoreDriver: config.DriverNeo4j, DatabaseURL: "::"})
	require.Error(t, err)
}
