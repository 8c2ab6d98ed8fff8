package sensor

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iburimskiy/touch-targets/internal/round"
)

const (
	readLimit    = 1 << 16
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	pingEvery    = 25 * time.Second

	// TickHz is the frame rate advertised to trackers.
	TickHz = 60
)

// Server accepts tracker connections on /ws and feeds their fingertip
// samples into a Latest holder.
type Server struct {
	addr   string
	width  int
	height int
	latest *Latest

	upgrader websocket.Upgrader
	clients  atomic.Int32
	srv      *http.Server
}

func NewServer(addr string, width, height int, latest *Latest) *Server {
	s := &Server{
		addr:   addr,
		width:  width,
		height: height,
		latest: latest,
		upgrader: websocket.Upgrader{
			// Tracker pages run from arbitrary local origins.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// Clients returns the number of connected trackers.
func (s *Server) Clients() int {
	return int(s.clients.Load())
}

// Run listens until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	log.Printf("sensor: listening on ws://%s/ws", ln.Addr())

	errc := make(chan error, 1)
	go func() { errc <- s.srv.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("sensor: upgrade:", err)
		return
	}
	defer conn.Close()

	n := s.clients.Add(1)
	log.Printf("sensor: tracker connected from %s (%d connected)", r.RemoteAddr, n)
	defer func() {
		s.latest.Store(round.Sample{})
		n := s.clients.Add(-1)
		log.Printf("sensor: tracker %s disconnected (%d connected)", r.RemoteAddr, n)
	}()

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				// WriteControl may run concurrently with the read loop's writes.
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Println("sensor: read:", err)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))

		if err := s.handleMessage(conn, msg); err != nil {
			log.Println("sensor:", err)
		}
	}
}

func (s *Server) handleMessage(conn *websocket.Conn, msg []byte) error {
	env, err := DecodeEnvelope(msg)
	if err != nil {
		return err
	}
	switch env.T {
	case MsgTip:
		tip, err := DecodePayload[Tip](env)
		if err != nil {
			return err
		}
		s.latest.Store(Project(tip, float64(s.width), float64(s.height)))
	case MsgHello:
		hello, err := DecodePayload[Hello](env)
		if err != nil {
			return err
		}
		log.Printf("sensor: hello from %q (v%d)", hello.Name, hello.V)
		b, err := Encode(MsgWelcome, Welcome{V: ProtocolVersion, TickHz: TickHz, Width: s.width, Height: s.height})
		if err != nil {
			return err
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		return conn.WriteMessage(websocket.TextMessage, b)
	default:
		log.Printf("sensor: ignoring message type %q", env.T)
	}
	return nil
}
