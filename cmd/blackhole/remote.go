package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"blackhole/internal/utils"
)

type reply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// RemoteServer accepts JSON commands over a websocket at /ws. Connection
// goroutines only validate and enqueue; the render loop drains Commands.
type RemoteServer struct {
	listener net.Listener
	server   *http.Server
	upgrader websocket.Upgrader
	commands chan Command

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func StartRemote(addr string) (*RemoteServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("remote: %w", err)
	}

	r := &RemoteServer{
		listener: ln,
		commands: make(chan Command, 64),
		conns:    map[*websocket.Conn]struct{}{},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", r.handleWebSocket)
	r.server = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := r.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Error("Remote: server stopped: %v", err)
		}
	}()

	utils.Info("Remote: listening on ws://%s/ws", r.Addr())
	return r, nil
}

func (r *RemoteServer) Addr() string {
	return r.listener.Addr().String()
}

func (r *RemoteServer) Commands() <-chan Command {
	return r.commands
}

func (r *RemoteServer) handleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		utils.Warn("Remote: upgrade failed: %v", err)
		return
	}
	r.track(conn, true)
	defer func() {
		r.track(conn, false)
		conn.Close()
	}()
	utils.Debug("Remote: client %s connected", conn.RemoteAddr())

	for {
		var cmd Command
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				utils.Warn("Remote: read: %v", err)
			}
			return
		}

		res := reply{OK: true}
		if err := cmd.Validate(); err != nil {
			res = reply{Error: err.Error()}
		} else {
			select {
			case r.commands <- cmd:
			default:
				res = reply{Error: "command queue full"}
			}
		}

		if err := conn.WriteJSON(res); err != nil {
			utils.Warn("Remote: write: %v", err)
			return
		}
	}
}

func (r *RemoteServer) track(conn *websocket.Conn, add bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if add {
		r.conns[conn] = struct{}{}
	} else {
		delete(r.conns, conn)
	}
}

// Close stops accepting connections and drops the open ones.
func (r *RemoteServer) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := r.server.Shutdown(ctx)

	// Hijacked websocket connections are not closed by Shutdown.
	r.mu.Lock()
	for conn := range r.conns {
		conn.Close()
	}
	r.mu.Unlock()
	return err
}
