package printer

import (
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	p, err := New(Config{})
	require.NoError(t, err)
	assert.Equal(t, KindNone, p.Kind())
	assert.ErrorIs(t, p.Print(context.Background(), []byte("x")), ErrNotConfigured)

	_, err = New(Config{Kind: KindUSB})
	assert.Error(t, err)
	_, err = New(Config{Kind: KindNetwork})
	assert.Error(t, err)
	_, err = New(Config{Kind: "bluetooth"})
	assert.Error(t, err)

	p, err = New(Config{Kind: KindNetwork, Address: "127.0.0.1:9100"})
	require.NoError(t, err)
	assert.Equal(t, KindNetwork, p.Kind())
}

func TestDevicePrinter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lp0")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	p := &DevicePrinter{Path: path}
	require.NoError(t, p.Ping(context.Background()))
	require.NoError(t, p.Print(context.Background(), []byte("ticket-1")))
	require.NoError(t, p.Print(context.Background(), []byte("ticket-2")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ticket-1ticket-2", string(got))

	missing := &DevicePrinter{Path: filepath.Join(t.TempDir(), "nope")}
	assert.Error(t, missing.Ping(context.Background()))
	assert.Error(t, missing.Print(context.Background(), []byte("x")))
}

func TestNetworkPrinter(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		data, _ := io.ReadAll(conn)
		received <- data
	}()

	p := &NetworkPrinter{Address: ln.Addr().String(), DialTimeout: time.Second, WriteTimeout: time.Second}
	require.NoError(t, p.Print(context.Background(), []byte("\x1b@hello")))

	select {
	case data := <-received:
		assert.Equal(t, "\x1b@hello", string(data))
	case <-time.After(2 * time.Second):
		t.Fatal("printer received nothing")
	}
}

func TestNetworkPrinter_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	p := &NetworkPrinter{Address: addr, DialTimeout: 200 * time.Millisecond, WriteTimeout: time.Second}
	assert.Error(t, p.Ping(context.Background()))
	assert.Error(t, p.Print(context.Background(), []byte("x")))
}
