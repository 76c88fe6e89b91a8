package db

import (
	"context"
	"testing"

	"github.com/hilthontt/roomly/internal/infrastructure/configs"
	"github.com/hilthontt/roomly/internal/infrastructure/logging"
	"github.com/stretchr/testify/assert"
)

func TestOpen_RejectsIncompleteConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  configs.MongoConfig
		want string
	}{
		{name: "no uri", cfg: configs.MongoConfig{Database: "roomly"}, want: "uri is required"},
		{name: "no database", cfg: configs.MongoConfig{URI: "mongodb://localhost:27017"}, want: "database is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(context.Background(), tt.cfg, logging.NewNop())
			assert.ErrorIs(t, err, errMongoConfig)
			assert.ErrorContains(t, err, tt.want)
			assert.Nil(t, store)
		})
	}
}

func TestStore_CloseWithoutClient(t *testing.T) {
	var store *Store
	assert.NoError(t, store.Close(context.Background()))
	assert.NoError(t, (&Store{}).Close(context.Background()))
}
