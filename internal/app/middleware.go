package app

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rosterly/rosterly/internal/config"
	"github.com/rosterly/rosterly/pkg/user"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Propagate X-Caller-Id header into context for downstream services
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			callerIdHeader := req.Header.Get("X-Caller-Id")
			ctx := req.Context()

			if callerIdHeader != "" {
				u, err := deps.UserService.GetByUid(ctx, callerIdHeader)
				if err != nil {
					if errors.Is(err, user.ErrUserNotFound) {
						log.Debugf("caller not found: %s", callerIdHeader)
						http.Error(w, "caller not found", http.StatusForbidden)
						return
					} else {
						log.Errorf("failed to get caller: %v", err)
						http.Error(w, err.Error(), http.StatusBadRequest)
						return
					}
				} else {
					log.Debugf("caller found: %s", u.Uid)
					ctx = user.WithUser(ctx, u)
				}
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}
