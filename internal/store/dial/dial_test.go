package dial

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffbook/staffql/internal/config"
	"github.com/staffbook/staffql/internal/record"
	"github.com/staffbook/staffql/internal/store/boltstore"
	"github.com/staffbook/staffql/internal/store/filestore"
)

func TestOpenBolt(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "staffql.db")

	s, err := Open(ctx, config.StoreConfig{URI: "bolt://" + path}, nil)
	require.NoError(t, err)
	defer s.Close(ctx)

	require.IsType(t, &boltstore.Store{}, s)
	require.NoError(t, s.Ping(ctx))

	e, err := s.InsertEmployee(ctx, &record.Employee{FirstName: record.String("Ada")})
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
}

func TestOpenFile(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")

	s, err := Open(ctx, config.StoreConfig{URI: "file://" + dir}, nil)
	require.NoError(t, err)
	defer s.Close(ctx)

	fs, ok := s.(*filestore.Store)
	require.True(t, ok)
	assert.Equal(t, dir, fs.Root())
}

func TestOpenErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		uri  string
	}{
		{"no scheme", "localhost:27017"},
		{"unknown scheme", "postgres://localhost/db"},
		{"bolt without path", "bolt://"},
		{"file without dir", "file://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(ctx, config.StoreConfig{URI: tt.uri}, nil)
			assert.Error(t, err)
			assert.Nil(t, s)
		})
	}
}
