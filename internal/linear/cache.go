package linear

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/lnr-dev/lnr/internal/logging"
)

// Catalog is the process-lifetime cache of reference data: the authenticated
// viewer and the team/workflow-state catalog. Entries are populated lazily,
// at most one remote fetch per entry via single-flight, and are read-only
// once set. There is no invalidation path other than process restart; for
// the long-lived MCP adapter this is an accepted staleness window.
type Catalog struct {
	client *Client

	group singleflight.Group

	mu     sync.RWMutex
	viewer *User
	teams  []Team
}

// NewCatalog creates an empty catalog backed by the given client.
func NewCatalog(client *Client) *Catalog {
	return &Catalog{client: client}
}

// Viewer returns the authenticated identity, fetching it on first use.
func (c *Catalog) Viewer(ctx context.Context) (*User, error) {
	c.mu.RLock()
	viewer := c.viewer
	c.mu.RUnlock()
	if viewer != nil {
		return viewer, nil
	}

	result, err, _ := c.group.Do("viewer", func() (any, error) {
		logging.Debug("warming viewer cache")
		fetched, err := c.client.Viewer(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.viewer = fetched
		c.mu.Unlock()
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*User), nil
}

// Teams returns the full team catalog, fetching it on first use.
func (c *Catalog) Teams(ctx context.Context) ([]Team, error) {
	c.mu.RLock()
	teams := c.teams
	c.mu.RUnlock()
	if teams != nil {
		return teams, nil
	}

	result, err, _ := c.group.Do("teams", func() (any, error) {
		logging.Debug("warming team cache")
		fetched, err := c.client.Teams(ctx)
		if err != nil {
			return nil, err
		}
		if fetched == nil {
			fetched = []Team{}
		}
		c.mu.Lock()
		c.teams = fetched
		c.mu.Unlock()
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]Team), nil
}

// TeamByID looks up a cached team by canonical identifier.
func (c *Catalog) TeamByID(ctx context.Context, id string) (*Team, error) {
	teams, err := c.Teams(ctx)
	if err != nil {
		return nil, err
	}
	for i := range teams {
		if teams[i].ID == id {
			return &teams[i], nil
		}
	}
	return nil, nil
}
