// Package api 把请求层包装成 HTTP JSON 服务。
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/John-Robertt/mdapi/internal/domain"
	"github.com/John-Robertt/mdapi/internal/site"
)

// Catalog 是 handler 依赖的站点能力（*site.Client 实现它）。
type Catalog interface {
	Home(ctx context.Context) (domain.HomePage, error)
	Search(ctx context.Context, query string) (domain.SearchPage, error)
	Movies(ctx context.Context, page string) (domain.MoviesPage, error)
	Film(ctx context.Context, id string) (domain.FilmPage, error)
	Series(ctx context.Context, sq site.SeriesQuery) (domain.SeriesPage, error)
}

var _ Catalog = (*site.Client)(nil)

const shutdownTimeout = 5 * time.Second

type Server struct {
	Addr    string
	Catalog Catalog
	Logger  *log.Logger
}

// Handler 返回带日志中间件的完整路由。
func (s *Server) Handler() http.Handler {
	logger := s.logger()
	h := &handlers{catalog: s.Catalog}

	r := mux.NewRouter()
	r.HandleFunc("/", h.welcome).Methods(http.MethodGet)
	r.HandleFunc("/health", h.health).Methods(http.MethodGet)
	r.HandleFunc("/kezdolap", h.home).Methods(http.MethodGet)
	r.HandleFunc("/search", h.search).Methods(http.MethodGet)
	r.HandleFunc("/tartalmak", h.movies).Methods(http.MethodGet)
	r.HandleFunc("/sorozatok", h.series).Methods(http.MethodGet)
	r.HandleFunc("/filmek", h.film).Methods(http.MethodGet)
	// mux 的中间件只作用于匹配到的路由，404/405 需要单独包装。
	mw := loggingMiddleware(logger)
	r.NotFoundHandler = mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	}))
	r.MethodNotAllowedHandler = mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}))
	r.Use(mw)
	return r
}

// Run 监听 Addr 并阻塞，直到 ctx 取消（优雅关闭）或监听失败。
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve 在给定 listener 上提供服务；测试可以传入随机端口的 listener。
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	logger := s.logger()
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
		// handler 内部会向站点发请求，写超时不设上限，交给 http client 的超时控制。
		BaseContext: func(net.Listener) context.Context { return log.WithContext(context.Background(), logger) },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("API 服务启动", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("API 服务关闭失败", "err", err)
		return err
	}
	logger.Info("API 服务已停止")
	return nil
}

func (s *Server) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger.WithPrefix("api")
	}
	return log.Default().WithPrefix("api")
}
