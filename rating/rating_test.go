package rating

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rating-manager/rating/hastus"
)

func TestRecords(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.rte"),
		[]byte("RTE;   04;   04;Regular   ; 0;Bus       ; 0\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.RTE"),
		[]byte("RTE;   90;   90;Regular   ; 0;Bus       ; 0\n"), 0o644))

	r := New(dir)
	assert.Equal(t, dir, r.Path())

	records, err := r.Records("rte")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "04", records[0].(hastus.Route).RouteID)
	assert.Equal(t, "90", records[1].(hastus.Route).RouteID)

	// a second read comes from the cache, even if the files change
	require.NoError(t, os.Remove(filepath.Join(dir, "a.rte")))
	cached, err := r.Records("rte")
	require.NoError(t, err)
	assert.Len(t, cached, 2)
}

func TestRecordsNoFiles(t *testing.T) {
	r := New(t.TempDir())
	records, err := r.Records("blk")
	require.NoError(t, err)
	assert.Empty(t, records)
}
