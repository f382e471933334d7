package linear

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// catalogStub answers viewer and teams queries, counting fetches per entry.
func catalogStub(t *testing.T, viewerCalls, teamCalls *atomic.Int64) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Query string `json:"query"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		switch {
		case strings.Contains(body.Query, "viewer"):
			viewerCalls.Add(1)
			graphqlData(t, w, map[string]any{
				"viewer": map[string]any{"id": "u-1", "name": "Jane Doe", "email": "jane@acme.com"},
			})
		case strings.Contains(body.Query, "teams"):
			teamCalls.Add(1)
			graphqlData(t, w, map[string]any{
				"teams": map[string]any{"nodes": []map[string]any{
					{
						"id":   "t-1",
						"key":  "ENG",
						"name": "Engineering",
						"states": map[string]any{"nodes": []map[string]any{
							{"id": "st-1", "name": "Todo", "type": "unstarted"},
							{"id": "st-2", "name": "Done", "type": "completed"},
						}},
					},
				}},
			})
		default:
			t.Errorf("unexpected query: %s", body.Query)
		}
	}
}

func TestCatalogFetchesTeamsOnce(t *testing.T) {
	var viewerCalls, teamCalls atomic.Int64
	client := newTestClient(t, catalogStub(t, &viewerCalls, &teamCalls))
	catalog := NewCatalog(client)

	first, err := catalog.Teams(context.Background())
	require.NoError(t, err)
	second, err := catalog.Teams(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), teamCalls.Load(), "second call must not refetch")
	assert.Equal(t, first, second)
	require.Len(t, first, 1)
	assert.Equal(t, "ENG", first[0].Key)
	assert.Len(t, first[0].States, 2)
}

func TestCatalogFetchesViewerOnce(t *testing.T) {
	var viewerCalls, teamCalls atomic.Int64
	client := newTestClient(t, catalogStub(t, &viewerCalls, &teamCalls))
	catalog := NewCatalog(client)

	first, err := catalog.Viewer(context.Background())
	require.NoError(t, err)
	second, err := catalog.Viewer(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), viewerCalls.Load())
	assert.Equal(t, first, second)
	assert.Equal(t, "u-1", first.ID)
}

// Concurrent first use must collapse into a single underlying fetch.
func TestCatalogSingleFlight(t *testing.T) {
	var viewerCalls, teamCalls atomic.Int64
	client := newTestClient(t, catalogStub(t, &viewerCalls, &teamCalls))
	catalog := NewCatalog(client)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := catalog.Teams(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), teamCalls.Load(), "concurrent warm-ups must collapse to one fetch")
}

func TestCatalogTeamByID(t *testing.T) {
	var viewerCalls, teamCalls atomic.Int64
	client := newTestClient(t, catalogStub(t, &viewerCalls, &teamCalls))
	catalog := NewCatalog(client)

	team, err := catalog.TeamByID(context.Background(), "t-1")
	require.NoError(t, err)
	require.NotNil(t, team)
	assert.Equal(t, "ENG", team.Key)

	missing, err := catalog.TeamByID(context.Background(), "t-404")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
