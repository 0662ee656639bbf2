package main

import (
	"context"
	"embed"
	"errors"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/willbeason/mandelzoom/pkg/colorize"
	"github.com/willbeason/mandelzoom/pkg/field"
	"github.com/willbeason/mandelzoom/pkg/hud"
	"github.com/willbeason/mandelzoom/pkg/render"
	"io/fs"
	"log"
	"net/http"
	"sync"
)

//go:embed static
var static embed.FS

// hello is the first message on every connection.
type hello struct {
	Type     string   `json:"type"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	MinZoom  float64  `json:"minZoom"`
	MaxZoom  float64  `json:"maxZoom"`
	Zoom     float64  `json:"zoom"`
	Palette  string   `json:"palette"`
	Palettes []string `json:"palettes"`
}

// request asks for a new frame. Fields left out keep their current value.
type request struct {
	Zoom    *float64 `json:"zoom,omitempty"`
	Palette *string  `json:"palette,omitempty"`
}

type server struct {
	cfg     *config
	catalog *colorize.Catalog
}

func newServer(cfg *config, catalog *colorize.Catalog) *server {
	return &server{cfg: cfg, catalog: catalog}
}

func (s *server) routes() http.Handler {
	files, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.websocketHandler)
	mux.Handle("/", http.FileServer(http.FS(files)))
	return mux
}

func (s *server) websocketHandler(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}
	defer c.CloseNow()

	log.Printf("got connection from: %s", r.RemoteAddr)

	sess := s.newSession(c)
	err = sess.serve(r.Context())
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		log.Printf("%s disconnected", r.RemoteAddr)
	default:
		log.Printf("session %s: %v", r.RemoteAddr, err)
	}
}

// session holds the render parameters chosen by one connected page.
type session struct {
	conn    *websocket.Conn
	cfg     *config
	catalog *colorize.Catalog

	zoom    float64
	palette string

	// cancel stops the render in flight, if any.
	cancel context.CancelFunc
	renders sync.WaitGroup

	// writeMu orders frames so a superseded render never follows its successor.
	writeMu sync.Mutex
}

func (s *server) newSession(c *websocket.Conn) *session {
	def, _ := s.catalog.Default()
	return &session{
		conn:    c,
		cfg:     s.cfg,
		catalog: s.catalog,
		zoom:    s.cfg.clampZoom(1.0),
		palette: def.Name,
		cancel:  func() {},
	}
}

func (cfg *config) clampZoom(zoom float64) float64 {
	return min(max(zoom, cfg.minZoom), cfg.maxZoom)
}

func (sess *session) serve(ctx context.Context) error {
	defer sess.renders.Wait()
	defer func() { sess.cancel() }()

	err := wsjson.Write(ctx, sess.conn, hello{
		Type:     "hello",
		Width:    sess.cfg.width,
		Height:   sess.cfg.height,
		MinZoom:  sess.cfg.minZoom,
		MaxZoom:  sess.cfg.maxZoom,
		Zoom:     sess.zoom,
		Palette:  sess.palette,
		Palettes: sess.catalog.Names(),
	})
	if err != nil {
		return err
	}

	sess.start(ctx)

	for {
		var req request
		if err := wsjson.Read(ctx, sess.conn, &req); err != nil {
			return err
		}
		sess.update(req)
		sess.start(ctx)
	}
}

func (sess *session) update(req request) {
	if req.Zoom != nil {
		sess.zoom = sess.cfg.clampZoom(*req.Zoom)
	}
	if req.Palette != nil {
		if _, found := sess.catalog.Lookup(*req.Palette); found {
			sess.palette = *req.Palette
		} else {
			log.Printf("ignoring unknown palette %q", *req.Palette)
		}
	}
}

// start cancels the render in flight and begins one for the current parameters.
func (sess *session) start(ctx context.Context) {
	sess.cancel()

	renderCtx, cancel := context.WithCancel(ctx)
	sess.cancel = cancel

	spec := field.ImageSpec{Width: sess.cfg.width, Height: sess.cfg.height}
	params := field.RenderParams{MaxIter: sess.cfg.maxIter, Zoom: sess.zoom}
	strategy, _ := sess.catalog.Lookup(sess.palette)
	gauge := hud.State{
		Zoom:    sess.zoom,
		MinZoom: sess.cfg.minZoom,
		MaxZoom: sess.cfg.maxZoom,
		Palette: sess.palette,
	}

	sess.renders.Add(1)
	go func() {
		defer sess.renders.Done()

		buf, err := render.RenderContext(renderCtx, spec, params, strategy, sess.cfg.workers)
		if err != nil {
			// Superseded by a newer request.
			return
		}
		if sess.cfg.hud {
			hud.Overlay(buf.Image(), gauge)
		}

		if err := sess.send(ctx, renderCtx, buf); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("send frame: %v", err)
		}
	}()
}

// send writes buf unless renderCtx has been canceled. Writes use the
// connection's ctx since canceling a write closes the websocket.
func (sess *session) send(ctx, renderCtx context.Context, buf render.PixelBuffer) error {
	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()

	if err := renderCtx.Err(); err != nil {
		return err
	}
	return sess.conn.Write(ctx, websocket.MessageBinary, buf.Pix)
}
