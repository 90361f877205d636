package cli

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunServer_StopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithCancel(context.Background())
	loaded := make(chan struct{})
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           http.NotFoundHandler(),
		ReadHeaderTimeout: time.Second,
	}

	done := make(chan error, 1)
	go func() {
		done <- runServer(ctx, httpSrv, func(context.Context) error {
			close(loaded)
			return nil
		})
	}()

	<-loaded
	cancel()

	select {
	case err = <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestRunServer_ListenFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	httpSrv := &http.Server{
		Addr:              ln.Addr().String(),
		Handler:           http.NotFoundHandler(),
		ReadHeaderTimeout: time.Second,
	}

	err = runServer(context.Background(), httpSrv, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serving on")
}
