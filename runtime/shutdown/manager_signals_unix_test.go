//go:build unix

package shutdown_test

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vortex-fintech/go-iban/runtime/shutdown"
)

func TestManager_SIGTERM(t *testing.T) {
	s := newFake("api")
	m := shutdown.New(shutdown.Config{ShutdownTimeout: time.Second, HandleSignals: true})
	m.Add(s)

	done := make(chan error, 1)
	go func() { done <- m.Run(context.Background()) }()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))

	select {
	case err := <-done:
		require.NoError(t, err)
		require.True(t, s.stopped.Load())
	case <-time.After(3 * time.Second):
		t.Fatal("manager did not stop on SIGTERM")
	}
}
