package ws

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warped/internal/domain/content"
	"warped/internal/domain/sim"
)

func startHub(t *testing.T) (*Hub, *websocket.Conn) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(zerolog.Nop())
	go hub.Run(ctx)
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)
	return hub, conn
}

func TestHub_BroadcastsToClients(t *testing.T) {
	hub, conn := startHub(t)

	hub.Publish([]byte(`{"hello":"world"}`))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"hello":"world"}`, string(msg))
}

func TestHub_ObserverPushesSnapshot(t *testing.T) {
	hub, conn := startHub(t)
	g := sim.NewGame(content.Default(), sim.WithRand(rand.New(rand.NewPCG(1, 2))))
	g.Subscribe(hub.Observer(g, 0))

	g.InfectPod("0-3-3")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	var view struct {
		State struct {
			Phase     int `json:"phase"`
			Resources struct {
				InfectedPods struct {
					Count float64 `json:"count"`
				} `json:"infected_pods"`
			} `json:"resources"`
		} `json:"state"`
	}
	require.NoError(t, json.Unmarshal(msg, &view))
	assert.Equal(t, 0, view.State.Phase)
	assert.Equal(t, float64(2), view.State.Resources.InfectedPods.Count)
}

func TestHub_ObserverIdleWithoutClients(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	g := sim.NewGame(content.Default())
	hub.Observer(g, 0)(g.State())

	select {
	case <-hub.broadcast:
		t.Fatal("nothing should be queued without clients")
	default:
	}
}

func TestHub_PublishKeepsLatest(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	hub.Publish([]byte("a"))
	hub.Publish([]byte("b"))

	assert.Equal(t, "b", string(<-hub.broadcast))
}

func TestHub_UnregistersOnClose(t *testing.T) {
	hub, conn := startHub(t)
	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 5*time.Millisecond)
}
