package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/gig-marketplace-api/internal/notify"
)

// openStream connects to the event stream and waits until the connection has
// joined its room.
func openStream(t *testing.T, server *httptest.Server, cookies []*http.Cookie) (*bufio.Reader, context.CancelFunc) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/events", nil)
	require.NoError(t, err)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, "retry: 2000\n", line)

	return reader, cancel
}

// readEvent returns the next named event and its data line.
func readEvent(t *testing.T, reader *bufio.Reader) (string, string) {
	t.Helper()

	type result struct {
		name, data string
		err        error
	}
	done := make(chan result, 1)

	go func() {
		var name string
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				done <- result{err: err}
				return
			}
			line = strings.TrimRight(line, "\n")
			switch {
			case strings.HasPrefix(line, "event: "):
				name = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: ") && name != "":
				done <- result{name: name, data: strings.TrimPrefix(line, "data: ")}
				return
			}
		}
	}()

	select {
	case r := <-done:
		require.NoError(t, r.err)
		return r.name, r.data
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event")
		return "", ""
	}
}

func TestEventHandler_DeliversHireToFreelancer(t *testing.T) {
	env := setupAPITestEnv(t)
	server := httptest.NewServer(env.router)
	defer server.Close()

	_, ownerCookies := env.signIn(t, "owner")
	aliceID, aliceCookies := env.signIn(t, "alice")
	_, bobCookies := env.signIn(t, "bob")

	gig := createGig(t, env, ownerCookies, "Build a website", 500)
	b1 := placeBid(t, env, aliceCookies, gig.ID, 400)
	placeBid(t, env, bobCookies, gig.ID, 450)

	reader, cancel := openStream(t, server, aliceCookies)
	defer cancel()
	require.Eventually(t, func() bool {
		return env.registry.ConnectionCount() == 1
	}, time.Second, 10*time.Millisecond)

	w := env.request(t, http.MethodPatch, fmt.Sprintf("/api/bids/%d/hire", b1.ID), nil, ownerCookies)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	name, data := readEvent(t, reader)
	assert.Equal(t, notify.EventHired, name)

	var payload notify.HiredPayload
	require.NoError(t, json.Unmarshal([]byte(data), &payload))
	assert.Equal(t, gig.ID, payload.GigID)
	assert.Equal(t, "Build a website", payload.GigTitle)
	assert.Equal(t, `You have been hired for "Build a website"!`, payload.Message)

	// Nothing reaches rooms of other users
	assert.Equal(t, 0, env.registry.DeliverToUser(aliceID+100, notify.Event{Name: "noop"}))
}

func TestEventHandler_LeavesRoomOnDisconnect(t *testing.T) {
	env := setupAPITestEnv(t)
	server := httptest.NewServer(env.router)
	defer server.Close()

	_, cookies := env.signIn(t, "alice")
	_, cancel := openStream(t, server, cookies)
	require.Eventually(t, func() bool {
		return env.registry.ConnectionCount() == 1
	}, time.Second, 10*time.Millisecond)

	cancel()

	assert.Eventually(t, func() bool {
		return env.registry.ConnectionCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestEventHandler_RequiresSession(t *testing.T) {
	env := setupAPITestEnv(t)

	w := env.request(t, http.MethodGet, "/api/events", nil, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
