package cmd

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mj1618/switcher/internal/server"
	"github.com/mj1618/switcher/internal/switcher"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeAttached_MetricsListenerBindFailure(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	sw := switcher.New(switcher.Options{Clock: clockwork.NewFakeClock()})
	cfg := server.Config{Transport: "stdio"}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- serveAttached(ctx, sw, nil, cfg, busy.Addr().String(), prometheus.NewRegistry())
	}()

	select {
	case err := <-errCh:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "metrics listener")
		assert.NotErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop after the metrics listener failed")
	}
}
