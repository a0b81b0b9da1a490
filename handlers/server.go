package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/bezalel-media-core/crosspost/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const route_health = "/health"

// Host events
const route_save_post = "/v1/posts/{postID}/save"
const route_update_profile = "/v1/users/{userID}/profile"
const route_notices = "/v1/notices"
const route_post_box = "/v1/posts/{postID}/medium-box"
const route_settings_options = "/v1/settings/options"

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(accessLog(d.Log))

	r.Get(route_health, HandlerHealthCheck)
	r.Group(func(r chi.Router) {
		r.Use(requireAdmin(d.AdminApiKey))
		r.Post(route_save_post, HandlerSavePost(d))
		r.Post(route_update_profile, HandlerUpdateProfile(d))
		r.Get(route_notices, HandlerNotices(d))
		r.Get(route_post_box, HandlerPostBox(d))
		r.Get(route_settings_options, HandlerSettingsOptions)
	})
	return r
}

type Server struct {
	http *http.Server
	log  logger.Logger
}

func NewServer(addr string, d Deps) *Server {
	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(d),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		log: d.Log,
	}
}

func (s *Server) Start() error {
	s.log.Infof("HTTP server listening on %s", s.http.Addr)
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("HTTP server shutting down")
	return s.http.Shutdown(ctx)
}
