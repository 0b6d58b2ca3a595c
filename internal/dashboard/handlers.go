package dashboard

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/forest"
	"github.com/cleared-dev/ledgerview/internal/model"
)

// accountJSON describes a stored node. Value is only set for leaves; a
// group's balance comes from the roll-up views.
type accountJSON struct {
	ID       model.AccountID  `json:"id"`
	Name     string           `json:"name"`
	ParentID model.AccountID  `json:"parentId,omitempty"`
	IsLeaf   bool             `json:"isLeaf"`
	Value    *decimal.Decimal `json:"value,omitempty"`
}

func toAccountJSON(n *forest.Node) accountJSON {
	out := accountJSON{ID: n.ID, Name: n.Name, ParentID: n.ParentID, IsLeaf: n.IsLeaf()}
	if out.IsLeaf {
		v := n.Value
		out.Value = &v
	}
	return out
}

func toAccountsJSON(nodes []*forest.Node) []accountJSON {
	out := make([]accountJSON, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, toAccountJSON(n))
	}
	return out
}

// Router returns the gin engine serving the API and metrics.
func (s *Service) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(s.logger))
	s.RegisterRoutes(r.Group("/api"))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	return r
}

// RegisterRoutes mounts the API handlers on g.
func (s *Service) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/accounts", s.HandleAccounts)
	g.GET("/accounts/:id/path", s.HandlePath)
	g.GET("/accounts/:id/descendants", s.HandleDescendants)
	g.GET("/accounts/:id/subtree", s.HandleSubtree)
	g.GET("/tree", s.HandleTree)
	g.GET("/treemap", s.HandleTreemap)
	g.GET("/summary", s.HandleSummary)
	g.GET("/cache/status", s.HandleCacheStatus)
	g.POST("/cache/refresh", s.HandleCacheRefresh)
}

// snapshotOrAccepted writes the empty-cache response when there is no snapshot.
func (s *Service) snapshotOrAccepted(c *gin.Context) (*Snapshot, bool) {
	snap, ok := s.Snapshot()
	if !ok {
		c.JSON(http.StatusAccepted, gin.H{"message": "cache empty; refresh required", "needsRefresh": true})
		return nil, false
	}
	return snap, true
}

// HandleAccounts returns the flattened view.
func (s *Service) HandleAccounts(c *gin.Context) {
	snap, ok := s.snapshotOrAccepted(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, snap.Flat)
}

// HandleTree returns the nested view.
func (s *Service) HandleTree(c *gin.Context) {
	snap, ok := s.snapshotOrAccepted(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, snap.Tree)
}

// HandleTreemap returns the name-grouped treemap.
func (s *Service) HandleTreemap(c *gin.Context) {
	snap, ok := s.snapshotOrAccepted(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, snap.Treemap)
}

// HandleSummary returns top-level totals and the leaf distribution.
func (s *Service) HandleSummary(c *gin.Context) {
	snap, ok := s.snapshotOrAccepted(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"topLevel": snap.Summary.TopLevel,
		"leaves":   snap.Summary.Leaves,
		"total":    snap.Summary.Total,
		"orphans":  snap.Orphans,
	})
}

// HandlePath returns the ancestor chain of an account, root first.
// "complete" is false when the chain stops at a missing ancestor.
func (s *Service) HandlePath(c *gin.Context) {
	snap, ok := s.snapshotOrAccepted(c)
	if !ok {
		return
	}
	id := model.AccountID(c.Param("id"))
	if _, found := snap.Forest.FindNode(id); !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found", "id": id})
		return
	}
	path, err := snap.Forest.StrictPath(id)
	if err != nil && !errors.Is(err, forest.ErrBrokenAncestorChain) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"path":     toAccountsJSON(path),
		"complete": err == nil,
	})
}

// HandleDescendants returns an account and everything below it, pre-order.
func (s *Service) HandleDescendants(c *gin.Context) {
	snap, ok := s.snapshotOrAccepted(c)
	if !ok {
		return
	}
	id := model.AccountID(c.Param("id"))
	nodes := snap.Forest.Descendants(id)
	if nodes == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found", "id": id})
		return
	}
	c.JSON(http.StatusOK, toAccountsJSON(nodes))
}

// HandleSubtree returns the nested view rooted at one account.
func (s *Service) HandleSubtree(c *gin.Context) {
	snap, ok := s.snapshotOrAccepted(c)
	if !ok {
		return
	}
	id := model.AccountID(c.Param("id"))
	view, found := snap.Forest.Subtree(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found", "id": id})
		return
	}
	c.JSON(http.StatusOK, view)
}

// HandleCacheStatus returns cache metadata.
func (s *Service) HandleCacheStatus(c *gin.Context) {
	snap, ok := s.Snapshot()
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"hasCache":     false,
			"lastRefresh":  nil,
			"needsRefresh": true,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"hasCache":    true,
		"lastRefresh": snap.LastRefresh,
		"accounts":    snap.Forest.Len(),
		"orphans":     snap.Orphans,
	})
}

// HandleCacheRefresh reloads the snapshot from the source.
func (s *Service) HandleCacheRefresh(c *gin.Context) {
	snap, err := s.Refresh(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "cache rebuilt",
		"lastRefresh": snap.LastRefresh,
		"accounts":    snap.Forest.Len(),
	})
}
