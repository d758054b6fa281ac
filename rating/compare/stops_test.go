package compare

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rating-manager/rating"
)

func newTestRating(t *testing.T, files map[string][]string) *rating.Rating {
	t.Helper()
	dir := t.TempDir()
	for name, lines := range files {
		path := filepath.Join(dir, name)
		content := strings.Join(lines, "\n") + "\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return rating.New(dir)
}

func TestStops(t *testing.T) {
	current := newTestRating(t, map[string][]string{
		"current.nde": {
			"STP;110;Ten;;768989.0;2945910.0;Mass Ave;Putnam;;;Cambridge;;1",
			"STP;111;Eleven;;768989.0;2945910.0;Mass Ave;Putnam;;;Cambridge;;1",
			"STP;112;Twelve;;768989.0;2945910.0;Mass Ave;Putnam;;;Cambridge;;1",
		},
	})
	next := newTestRating(t, map[string][]string{
		"next.nde": {
			"STP;110;Ten;;768989.0;2945910.0;Mass Ave;Putnam;;;Cambridge;;1",
			"STP;111;Eleven New;;768989.0;2945910.0;Mass Ave;Putnam;;;Cambridge;;1",
			"STP;112;Twelve;;774308.2;2954951.1;Summer St;Otis St;;;Boston;;1",
			"STP;113;Thirteen;;768989.0;2945910.0;Mass Ave;Putnam;;;Cambridge;;1",
		},
		"next.pat": {
			"PAT;01;01-_-O-1;Outbound;;1;;_;Harvard",
			"TPS;111;;;1",
			"TPS;112;;;1",
			"TPS;113;;;1",
			"PAT;01;01-_-I-1;Inbound;;1;;_;Nubian",
			"TPS;113;;;1",
		},
	})

	var out strings.Builder
	require.NoError(t, Stops(current, next, &out))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `113,Thirteen,newStops,42.330970,-71.082752,"01 Inbound, 01 Outbound"`, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "112,Twelve,sameName_newLocation,42.3557"), lines[1])
	assert.Equal(t, `111,Eleven New,newName_sameLocation,42.330970,-71.082752,"01 Outbound"`, lines[2])
}

func TestSortStopIDs(t *testing.T) {
	ids := []string{"censq", "12", "3", "fell", "110"}
	sortStopIDs(ids)
	assert.Equal(t, []string{"3", "12", "110", "censq", "fell"}, ids)
}

func TestStreetViewURL(t *testing.T) {
	assert.Equal(t,
		"https://www.google.com/maps/@?api=1&map_action=pano&viewpoint=42.33097,-71.082752",
		StreetViewURL(42.33097, -71.082752))
}
