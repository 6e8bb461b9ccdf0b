// Package socket lets launcher processes sharing a shortcuts file talk over
// Unix sockets, so a running launcher reloads after the command line changed
// the file.
package socket

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"net"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Dir returns the directory holding launcher sockets
func Dir() string {
	if xdgRuntime := os.Getenv("XDG_RUNTIME_DIR"); xdgRuntime != "" {
		return filepath.Join(xdgRuntime, "launcher")
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("launcher-%d", os.Getuid()))
}

// fileKey identifies a shortcuts file in socket names
func fileKey(shortcutsFile string) string {
	abs, err := filepath.Abs(shortcutsFile)
	if err != nil {
		abs = shortcutsFile
	}
	h := fnv.New32a()
	h.Write([]byte(filepath.Clean(abs)))
	return fmt.Sprintf("%08x", h.Sum32())
}

// Server accepts notifications for one shortcuts file
type Server struct {
	socketPath string
	listener   net.Listener
	msgChan    chan Message
	stopChan   chan struct{}
	log        zerolog.Logger
}

// NewServer listens on dir/launcher-<file key>-<pid>.sock
func NewServer(dir, shortcutsFile string, pid int, logger zerolog.Logger) (*Server, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Errorf("failed to create socket directory: %w", err)
	}

	socketPath := filepath.Join(dir, fmt.Sprintf("launcher-%s-%d.sock", fileKey(shortcutsFile), pid))
	if err := os.RemoveAll(socketPath); err != nil {
		return nil, errors.Errorf("failed to remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, errors.Errorf("failed to listen on socket: %w", err)
	}

	s := &Server{
		socketPath: socketPath,
		listener:   listener,
		msgChan:    make(chan Message, 10),
		stopChan:   make(chan struct{}),
		log:        logger.With().Str("component", "socket").Logger(),
	}
	s.log.Info().Str("path", socketPath).Msg("socket server listening")
	return s, nil
}

// Start begins accepting connections on the socket
func (s *Server) Start() {
	go s.acceptLoop()
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.stopChan:
				return
			default:
				s.log.Error().Err(err).Msg("error accepting connection")
				if errors.Is(err, net.ErrClosed) {
					return
				}
				continue
			}
		}
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)

	var msg Message
	if err := decoder.Decode(&msg); err != nil {
		if err != io.EOF {
			s.log.Warn().Err(err).Msg("error decoding message")
		}
		_ = encoder.Encode(Response{Message: fmt.Sprintf("Invalid message format: %v", err)})
		return
	}

	switch msg.Command {
	case CommandReload, CommandStatus:
	case "":
		_ = encoder.Encode(Response{Message: "Missing command field"})
		return
	default:
		_ = encoder.Encode(Response{Message: "Unknown command: " + msg.Command})
		return
	}

	select {
	case s.msgChan <- msg:
		_ = encoder.Encode(Response{Success: true, Message: "Command queued"})
	case <-s.stopChan:
		_ = encoder.Encode(Response{Message: "Server is shutting down"})
	default:
		// a full queue already holds a pending reload
		_ = encoder.Encode(Response{Success: true, Message: "Command dropped, queue full"})
	}
}

// Messages returns the channel of received notifications
func (s *Server) Messages() <-chan Message {
	return s.msgChan
}

// SocketPath returns the path to the Unix socket
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Stop stops the server and removes the socket file
func (s *Server) Stop() {
	close(s.stopChan)
	if s.listener != nil {
		s.listener.Close()
	}
	if s.socketPath != "" {
		os.Remove(s.socketPath)
	}
	s.log.Info().Msg("socket server stopped")
}
