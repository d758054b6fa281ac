package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(sqlserver.New(sqlserver.Config{Conn: conn}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestGeoNodes(t *testing.T) {
	db, mock := newMockDB(t)

	lat, lon := 42.355706, -71.062909
	mock.ExpectQuery(`SELECT GEO_NODE_ABBR, GEO_NODE_NAME, .+ FROM GEO_NODE WHERE GEO_NODE_ABBR IN`).
		WithArgs("10000", "99999").
		WillReturnRows(sqlmock.NewRows(
			[]string{"GEO_NODE_ABBR", "GEO_NODE_NAME", "lat", "lon"}).
			AddRow("10000", "Tremont St opp Temple Pl", lat, lon).
			AddRow("99999", "Unlocated", nil, nil))

	nodes, err := GeoNodes(db, []string{"10000", "99999"})
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	assert.Equal(t, "10000", nodes[0].StopID)
	assert.Equal(t, "Tremont St opp Temple Pl", nodes[0].Name)
	require.NotNil(t, nodes[0].Latitude)
	assert.InDelta(t, lat, *nodes[0].Latitude, 1e-6)
	require.NotNil(t, nodes[0].Longitude)
	assert.InDelta(t, lon, *nodes[0].Longitude, 1e-6)

	assert.Nil(t, nodes[1].Latitude)
	assert.Nil(t, nodes[1].Longitude)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGeoNodesChunks(t *testing.T) {
	db, mock := newMockDB(t)

	stopIDs := make([]string, geoNodeChunkSize+1)
	for i := range stopIDs {
		stopIDs[i] = "stop"
	}
	mock.ExpectQuery(`FROM GEO_NODE WHERE GEO_NODE_ABBR IN`).
		WillReturnRows(sqlmock.NewRows([]string{"a", "b", "c", "d"}))
	mock.ExpectQuery(`FROM GEO_NODE WHERE GEO_NODE_ABBR IN`).
		WillReturnRows(sqlmock.NewRows([]string{"a", "b", "c", "d"}))

	nodes, err := GeoNodes(db, stopIDs)
	require.NoError(t, err)
	assert.Empty(t, nodes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChunk(t *testing.T) {
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, Chunk([]int{1, 2, 3, 4, 5}, 2))
	assert.Equal(t, [][]int{{1, 2, 3}}, Chunk([]int{1, 2, 3}, 10))
	assert.Nil(t, Chunk([]int{}, 2))
	assert.Nil(t, Chunk([]int{1}, 0))
}
