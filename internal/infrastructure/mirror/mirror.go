package mirror

import (
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/omkarj/kirana-billing-api/internal/config"
	"github.com/omkarj/kirana-billing-api/internal/domain/entity"
)

// Pusher mirrors catalog snapshots to a remote webhook so the catalog
// survives terminal reinstalls. Pushes are best-effort: the local
// catalog is the source of truth and a failed push is only logged.
type Pusher struct {
	client *resty.Client
	url    string
}

// NewPusher creates a mirror pusher. An empty URL disables it.
func NewPusher(cfg *config.MirrorConfig) *Pusher {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	if cfg.AuthToken != "" {
		client.SetAuthToken(cfg.AuthToken)
	}

	return &Pusher{
		client: client,
		url:    cfg.URL,
	}
}

// Enabled reports whether a mirror URL is configured.
func (p *Pusher) Enabled() bool {
	return p.url != ""
}

// snapshot is the wire payload for one catalog push.
type snapshot struct {
	PushedAt string               `json:"pushed_at"`
	Items    []entity.CatalogItem `json:"items"`
}

// Push sends the full catalog to the mirror. Safe to call from a
// goroutine; errors are logged, never returned.
func (p *Pusher) Push(items []entity.CatalogItem) {
	if !p.Enabled() {
		return
	}

	resp, err := p.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(&snapshot{
			PushedAt: time.Now().UTC().Format(time.RFC3339),
			Items:    items,
		}).
		Post(p.url)
	if err != nil {
		log.Printf("Catalog mirror push failed: %v", err)
		return
	}
	if resp.IsError() {
		log.Printf("Catalog mirror push rejected: %s", resp.Status())
	}
}
