/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"
)

const (
	logDate string        = `2006-01-02T15:04:05.000-07:00`
	timeout time.Duration = 10 * time.Second
	qrSize  int           = 320
)

func securityHeaders(w http.ResponseWriter) {
	w.Header().Set("Cross-Origin-Resource-Policy", "same-site")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Security-Policy", "default-src 'self'")
}

func realIP(r *http.Request) string {
	host, port, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" && net.ParseIP(ip) != nil {
		host = ip
	}
	return net.JoinHostPort(host, port)
}

func served(r *http.Request, page string, written int, start time.Time) {
	log.Debug().
		Str("page", page).
		Str("size", humanReadableSize(int64(written))).
		Str("remote", realIP(r)).
		Dur("took", time.Since(start).Round(time.Microsecond)).
		Msg("SERVE")
}

func serveHealthCheck(errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(w)

		if _, err := w.Write([]byte("Ok\n")); err != nil {
			errs <- err
		}
	}
}

func serveVersion(errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		start := time.Now()

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(w)

		written, err := w.Write([]byte("wordsrv v" + releaseVersion + "\n"))
		if err != nil {
			errs <- err
			return
		}

		served(r, "version", written, start)
	}
}

func snapshotFor(w http.ResponseWriter, r *http.Request, s *Server) (Snapshot, bool) {
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	snap, err := s.Snapshot(ctx)
	if err != nil {
		http.Error(w, "game loop unavailable", http.StatusServiceUnavailable)
		return Snapshot{}, false
	}

	return snap, true
}

func serveStatus(s *Server, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		start := time.Now()

		snap, ok := snapshotFor(w, r, s)
		if !ok {
			return
		}

		data, err := json.Marshal(snap)
		if err != nil {
			errs <- err
			http.Error(w, "encoding failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		securityHeaders(w)

		written, err := w.Write(append(data, '\n'))
		if err != nil {
			errs <- err
			return
		}

		served(r, "status", written, start)
	}
}

func servePlayers(s *Server, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		start := time.Now()

		snap, ok := snapshotFor(w, r, s)
		if !ok {
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(w)

		written, err := w.Write([]byte(playersTable(snap)))
		if err != nil {
			errs <- err
			return
		}

		served(r, "players", written, start)
	}
}

// serveQR renders a code pointing at the game port on the host the admin
// page was reached through.
func serveQR(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		host, _, err := net.SplitHostPort(r.Host)
		if err != nil {
			host = r.Host
		}

		target := "telnet://" + net.JoinHostPort(host, strconv.Itoa(cfg.port))

		png, err := qrcode.Encode(target, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		securityHeaders(w)

		if _, err := w.Write(png); err != nil {
			errs <- err
		}
	}
}

func newAdminRouter(cfg *Config, s *Server, errs chan<- error) *httprouter.Router {
	mux := httprouter.New()

	mux.PanicHandler = func(w http.ResponseWriter, r *http.Request, i any) {
		log.Error().Interface("panic", i).Str("path", r.URL.Path).Msg("admin handler panicked")
		http.Error(w, "An error has occurred. Please try again.", http.StatusInternalServerError)
	}

	mux.GET("/healthz", serveHealthCheck(errs))
	mux.GET("/version", serveVersion(errs))
	mux.GET("/status", serveStatus(s, errs))
	mux.GET("/players", servePlayers(s, errs))
	mux.GET("/qr", serveQR(cfg, errs))

	if cfg.profile {
		registerProfileHandlers(mux)
	}

	return mux
}

// serveAdmin runs the read-only admin endpoint until ctx is cancelled.
func serveAdmin(ctx context.Context, cfg *Config, s *Server) error {
	errs := make(chan error, 64)

	srv := &http.Server{
		Addr:              cfg.adminAddr(),
		Handler:           newAdminRouter(cfg, s, errs),
		IdleTimeout:       10 * time.Minute,
		ReadTimeout:       timeout,
		ReadHeaderTimeout: timeout,
		WriteTimeout:      timeout,
	}

	go func() {
		for {
			select {
			case err := <-errs:
				log.Warn().Err(err).Msg("admin response failed")
			case <-ctx.Done():
				return
			}
		}
	}()

	failed := make(chan error, 1)
	go func() {
		log.Info().Str("addr", "http://"+srv.Addr+"/").Msg("admin endpoint listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
	}()

	select {
	case err := <-failed:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
