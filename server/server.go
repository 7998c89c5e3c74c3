package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/undeconstructed/monopoly/game"
)

// Server is the spectator web front: a small REST API and a websocket
// stream of updates.
type Server struct {
	hub     *Hub
	origins []string
	log     zerolog.Logger
	router  *gin.Engine
}

// New makes a server over the hub. Origins are the websocket origin
// patterns to allow, besides the server's own host.
func New(hub *Hub, origins []string, log zerolog.Logger) *Server {
	s := &Server{
		hub:     hub,
		origins: origins,
		log:     log.With().Str("gw", "web").Logger(),
	}

	r := gin.Default()
	if len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  corsOrigins(origins),
			AllowMethods:  []string{"GET", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type"},
			AllowWildcard: true,
			MaxAge:        12 * time.Hour,
		}))
	}
	a := r.Group("/api")
	a.GET("/games", s.getGames)
	a.GET("/games/:id", s.getGame)
	a.GET("/games/:id/news", s.getNews)
	r.GET("/ws", s.serveWS)
	s.router = r

	return s
}

// corsOrigins turns websocket host patterns like "localhost:*" into the
// origins the cors middleware wants.
func corsOrigins(patterns []string) []string {
	var out []string
	for _, p := range patterns {
		if p == "*" || strings.Contains(p, "://") {
			out = append(out, p)
			continue
		}
		out = append(out, "http://"+p, "https://"+p)
	}
	return out
}

// Handler is the whole API, for mounting or testing.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until the context is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	s.log.Info().Msgf("web listening on http://%v", ln.Addr())

	hs := &http.Server{
		Handler:     s.router,
		ReadTimeout: time.Second * 10,
	}

	go func() {
		<-ctx.Done()
		s.hub.Close()
		sctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		_ = hs.Shutdown(sctx)
	}()

	err = hs.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) getGames(c *gin.Context) {
	c.JSON(http.StatusOK, s.hub.Games())
}

func (s *Server) getGame(c *gin.Context) {
	state, ok := s.hub.State(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, nil)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (s *Server) getNews(c *gin.Context) {
	news, ok := s.hub.News(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, nil)
		return
	}
	c.JSON(http.StatusOK, news)
}

func (s *Server) serveWS(c *gin.Context) {
	addr := c.Request.RemoteAddr

	log := s.log.With().Str("client", addr).Logger()

	id := c.Query("game")
	if id == "" {
		c.String(http.StatusBadRequest, "missing game")
		return
	}
	if _, ok := s.hub.State(id); !ok {
		c.String(http.StatusNotFound, "no such game")
		return
	}

	socket, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: s.origins,
	})
	if err != nil {
		log.Info().Err(err).Msg("websocket accept error")
		return
	}
	defer socket.Close(websocket.StatusInternalError, "the sky is falling")

	log.Info().Str("game", id).Msg("watching")

	// nothing is read, but reading notices the client going away
	ctx := socket.CloseRead(c.Request.Context())

	box := s.hub.feed(id).box
	var seen *game.Update
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("client gone")
			return
		case u, ok := <-box.Listen(ctx, seen):
			if !ok {
				if ctx.Err() != nil {
					log.Info().Msg("client gone")
					return
				}
				socket.Close(websocket.StatusGoingAway, "server stopping")
				return
			}
			wctx, cancel := context.WithTimeout(ctx, time.Second*10)
			err := wsjson.Write(wctx, socket, u)
			cancel()
			if err != nil {
				log.Info().Err(err).Msg("send error")
				return
			}
			if u.State.Finished {
				socket.Close(websocket.StatusNormalClosure, "game over")
				return
			}
			seen = u
		}
	}
}
