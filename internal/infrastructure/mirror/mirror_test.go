package mirror

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/omkarj/kirana-billing-api/internal/config"
	"github.com/omkarj/kirana-billing-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushSendsSnapshot(t *testing.T) {
	received := make(chan snapshot, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var snap snapshot
		require.NoError(t, json.NewDecoder(r.Body).Decode(&snap))
		received <- snap
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewPusher(&config.MirrorConfig{
		URL:       srv.URL,
		AuthToken: "secret",
		Timeout:   5 * time.Second,
	})
	require.True(t, p.Enabled())

	item := entity.CatalogItem{Name: "साखर", Position: 1}
	item.SetRateFromDecimal(45.00)
	p.Push([]entity.CatalogItem{item})

	select {
	case snap := <-received:
		require.Len(t, snap.Items, 1)
		assert.Equal(t, "साखर", snap.Items[0].Name)
		assert.NotEmpty(t, snap.PushedAt)
	case <-time.After(2 * time.Second):
		t.Fatal("mirror never received the push")
	}
}

func TestPusherDisabledWithoutURL(t *testing.T) {
	p := NewPusher(&config.MirrorConfig{Timeout: time.Second})
	assert.False(t, p.Enabled())
	// Must be a no-op, not a panic.
	p.Push(nil)
}
