package socket

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"gitlab.com/tozd/go/errors"
)

// ErrNoInstance is returned when no launcher is running for a file
var ErrNoInstance = errors.Base("no running launcher found")

// Instance is a running launcher found by its socket
type Instance struct {
	SocketPath string
	PID        int
}

// FindRunningInstances returns the launchers in dir serving shortcutsFile,
// skipping the current process
func FindRunningInstances(dir, shortcutsFile string) ([]Instance, error) {
	prefix := "launcher-" + fileKey(shortcutsFile) + "-"
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WithStack(ErrNoInstance)
		}
		return nil, errors.Errorf("error scanning socket directory: %w", err)
	}

	var instances []Instance
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".sock") {
			continue
		}
		pid, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".sock"))
		if err != nil || pid == os.Getpid() {
			continue
		}
		instances = append(instances, Instance{SocketPath: filepath.Join(dir, name), PID: pid})
	}
	if len(instances) == 0 {
		return nil, errors.WithStack(ErrNoInstance)
	}
	return instances, nil
}

// Client sends messages to one running launcher
type Client struct {
	socketPath string
}

// NewClient creates a client for the socket at socketPath
func NewClient(socketPath string) (*Client, error) {
	if _, err := os.Stat(socketPath); err != nil {
		return nil, errors.Errorf("socket not found: %w", err)
	}
	return &Client{socketPath: socketPath}, nil
}

// Send sends a message and waits for the acknowledgement
func (c *Client) Send(msg Message) (*Response, error) {
	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return nil, errors.Errorf("failed to connect to socket: %w", err)
	}
	defer conn.Close()

	_ = conn.SetDeadline(time.Now().Add(2 * time.Second))

	if err := json.NewEncoder(conn).Encode(msg); err != nil {
		return nil, errors.Errorf("failed to send message: %w", err)
	}

	var response Response
	if err := json.NewDecoder(conn).Decode(&response); err != nil {
		return nil, errors.Errorf("failed to receive response: %w", err)
	}
	return &response, nil
}

// NotifyReload tells every other launcher serving shortcutsFile to reload it.
// Sockets left behind by crashed launchers are removed. It returns how many
// launchers acknowledged.
func NotifyReload(dir, shortcutsFile, who string) (int, error) {
	instances, err := FindRunningInstances(dir, shortcutsFile)
	if err != nil {
		return 0, err
	}

	notified := 0
	var errs []error
	for _, inst := range instances {
		client, err := NewClient(inst.SocketPath)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		resp, err := client.Send(Message{Command: CommandReload, Text: who})
		if err != nil {
			if errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ECONNREFUSED) {
				os.Remove(inst.SocketPath)
				continue
			}
			errs = append(errs, err)
			continue
		}
		if !resp.Success {
			errs = append(errs, errors.New(resp.Message))
			continue
		}
		notified++
	}
	return notified, errors.Join(errs...)
}

// String describes the instance for logs
func (i Instance) String() string {
	return fmt.Sprintf("pid %d (%s)", i.PID, i.SocketPath)
}
