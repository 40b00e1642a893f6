// Package server exposes the compiler stages over a small JSON HTTP API.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"structura/internal/ast"
	"structura/internal/diag"
	"structura/internal/diagfmt"
	"structura/internal/driver"
	"structura/internal/emit"
	"structura/internal/ir"
	"structura/internal/source"
)

const (
	maxBody     = 1 << 20
	virtualName = "playground.struct"
)

// Config configures the HTTP server.
type Config struct {
	Addr string
	// Timeout bounds each request's compilation.
	Timeout time.Duration
	Emit    emit.Options
}

// Request is the body of every POST endpoint.
type Request struct {
	Code string `json:"code"`
}

// Response carries either Output or Error.
type Response struct {
	Output string                  `json:"output,omitempty"`
	Error  *diagfmt.DiagnosticJSON `json:"error,omitempty"`
}

type Server struct {
	cfg Config
	mux *http.ServeMux
}

type renderFunc func(w io.Writer, res *driver.Result) error

func New(cfg Config) *Server {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	s := &Server{cfg: cfg, mux: http.NewServeMux()}
	s.mux.HandleFunc("GET /healthz", s.healthz)
	s.mux.HandleFunc("POST /api/lexer", s.stage(driver.StageLex, renderTokens))
	s.mux.HandleFunc("POST /api/parser", s.stage(driver.StageParse, renderAST))
	s.mux.HandleFunc("POST /api/ir", s.stage(driver.StageOptimize, renderIR))
	s.mux.HandleFunc("POST /api/run", s.stage(driver.StageNone, renderJS))
	return s
}

func (s *Server) Handler() http.Handler { return s.mux }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

func (s *Server) stage(stop driver.Stage, render renderFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Request
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, nil, diag.NewError(diag.UnknownCode, 0, source.Span{}, "invalid request body: "+err.Error()))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Timeout)
		defer cancel()

		opts := driver.Options{Emit: s.cfg.Emit, StopAfter: stop}
		res, err := driver.Compile(ctx, virtualName, []byte(req.Code), opts)
		if err != nil {
			var cerr *driver.CompileError
			switch {
			case errors.As(err, &cerr):
				writeError(w, http.StatusUnprocessableEntity, res, cerr.Diagnostic())
			case errors.Is(err, context.DeadlineExceeded):
				writeError(w, http.StatusGatewayTimeout, nil, diag.NewError(diag.UnknownCode, 0, source.Span{}, "compilation timed out"))
			default:
				writeError(w, http.StatusInternalServerError, nil, diag.NewError(diag.UnknownCode, 0, source.Span{}, err.Error()))
			}
			return
		}

		var out bytes.Buffer
		if err := render(&out, res); err != nil {
			writeError(w, http.StatusInternalServerError, nil, diag.NewError(diag.UnknownCode, 0, source.Span{}, err.Error()))
			return
		}
		writeJSON(w, http.StatusOK, Response{Output: out.String()})
	}
}

func writeError(w http.ResponseWriter, status int, res *driver.Result, d diag.Diagnostic) {
	var fs *source.FileSet
	if res != nil {
		fs = res.FileSet
	}
	dj := diagfmt.ToJSON(d, fs, diagfmt.JSONOpts{IncludePositions: fs != nil, PathMode: diagfmt.PathModeBasename, IncludeNotes: true})
	writeJSON(w, status, Response{Error: &dj})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func renderTokens(w io.Writer, res *driver.Result) error {
	return diagfmt.FormatTokensPretty(w, res.Tokens, res.FileSet)
}

func renderAST(w io.Writer, res *driver.Result) error {
	return ast.Fprint(w, res.AST)
}

func renderIR(w io.Writer, res *driver.Result) error {
	return ir.Fprint(w, res.Optimized)
}

func renderJS(w io.Writer, res *driver.Result) error {
	_, err := io.WriteString(w, res.Output)
	return err
}
