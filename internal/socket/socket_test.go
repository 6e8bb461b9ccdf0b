package socket

import (
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func startServer(t *testing.T, dir, file string, pid int) *Server {
	t.Helper()
	server, err := NewServer(dir, file, pid, zerolog.Nop())
	require.NoError(t, err)
	server.Start()
	t.Cleanup(server.Stop)
	return server
}

func receive(t *testing.T, server *Server) Message {
	t.Helper()
	select {
	case msg := <-server.Messages():
		return msg
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for message")
		return Message{}
	}
}

func TestServerClient(t *testing.T) {
	dir := t.TempDir()
	server := startServer(t, dir, "/tmp/shortcuts.json", 4242)

	client, err := NewClient(server.SocketPath())
	require.NoError(t, err)

	response, err := client.Send(Message{Command: CommandStatus, Text: "hello"})
	require.NoError(t, err)
	assert.True(t, response.Success, response.Message)

	msg := receive(t, server)
	assert.Equal(t, CommandStatus, msg.Command)
	assert.Equal(t, "hello", msg.Text)
}

func TestServerRejectsBadMessages(t *testing.T) {
	server := startServer(t, t.TempDir(), "shortcuts.json", 4242)
	client, err := NewClient(server.SocketPath())
	require.NoError(t, err)

	response, err := client.Send(Message{Command: "add_node"})
	require.NoError(t, err)
	assert.False(t, response.Success)
	assert.Equal(t, "Unknown command: add_node", response.Message)

	response, err = client.Send(Message{})
	require.NoError(t, err)
	assert.False(t, response.Success)
	assert.Equal(t, "Missing command field", response.Message)
}

func TestFindRunningInstances(t *testing.T) {
	dir := t.TempDir()
	first := startServer(t, dir, "/data/shortcuts.json", 101)
	second := startServer(t, dir, "/data/shortcuts.json", 102)
	startServer(t, dir, "/data/other.json", 103)

	instances, err := FindRunningInstances(dir, "/data/shortcuts.json")
	require.NoError(t, err)
	assert.ElementsMatch(t, []Instance{
		{SocketPath: first.SocketPath(), PID: 101},
		{SocketPath: second.SocketPath(), PID: 102},
	}, instances)

	_, err = FindRunningInstances(dir, "/data/missing.json")
	assert.True(t, errors.Is(err, ErrNoInstance))

	_, err = FindRunningInstances(filepath.Join(dir, "nope"), "/data/shortcuts.json")
	assert.True(t, errors.Is(err, ErrNoInstance))
}

func TestFindSkipsOwnProcess(t *testing.T) {
	dir := t.TempDir()
	startServer(t, dir, "shortcuts.json", os.Getpid())

	_, err := FindRunningInstances(dir, "shortcuts.json")
	assert.True(t, errors.Is(err, ErrNoInstance))
}

func TestNotifyReload(t *testing.T) {
	dir := t.TempDir()
	a := startServer(t, dir, "shortcuts.json", 201)
	b := startServer(t, dir, "shortcuts.json", 202)

	n, err := NotifyReload(dir, "shortcuts.json", "launcher add")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for _, s := range []*Server{a, b} {
		msg := receive(t, s)
		assert.Equal(t, CommandReload, msg.Command)
		assert.Equal(t, "launcher add", msg.Text)
	}
}

func TestNotifyReloadRemovesStaleSocket(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "launcher-"+fileKey("shortcuts.json")+"-301.sock")
	l, err := net.Listen("unix", stale)
	require.NoError(t, err)
	l.(*net.UnixListener).SetUnlinkOnClose(false)
	require.NoError(t, l.Close())

	n, err := NotifyReload(dir, "shortcuts.json", "")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoFileExists(t, stale)
}

func TestStopRemovesSocket(t *testing.T) {
	server, err := NewServer(t.TempDir(), "shortcuts.json", 401, zerolog.Nop())
	require.NoError(t, err)
	server.Start()
	require.FileExists(t, server.SocketPath())

	server.Stop()
	assert.NoFileExists(t, server.SocketPath())
}

func TestFileKeyUsesAbsolutePath(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, fileKey(filepath.Join(wd, "shortcuts.json")), fileKey("shortcuts.json"))
	assert.NotEqual(t, fileKey("a.json"), fileKey("b.json"))
}
