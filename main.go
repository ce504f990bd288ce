package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"shoplist-server/broadcast"
	"shoplist-server/catalog"
	"shoplist-server/handlers/api/items"
	"shoplist-server/handlers/api/lists"
	"shoplist-server/handlers/api/products"
	"shoplist-server/handlers/api/users"
	"shoplist-server/handlers/auth"
	"shoplist-server/handlers/websocket"
	authMiddleware "shoplist-server/middleware"
	"shoplist-server/recommend"
	"shoplist-server/service"
	"shoplist-server/state"
	"shoplist-server/stores"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	socketio "github.com/zishang520/socket.io/v2/socket"
)

func setupRouter(svc *service.Service, recommender recommend.Recommender) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Content-Length", "Origin", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", auth.HandleLogin(svc))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", products.HandleIndex(svc))
		r.Get("/products/{id}", products.HandleGet(svc))

		r.Get("/channels", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(websocket.GetActiveChannels()); err != nil {
				http.Error(w, "failed to encode response", http.StatusInternalServerError)
			}
		})

		// Everything below requires an authenticated user.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.AuthJWT)

			r.Route("/me", func(r chi.Router) {
				r.Get("/", users.HandleMe(svc))
				r.Put("/", users.HandleUpdateMe(svc))
			})

			r.Route("/lists", func(r chi.Router) {
				r.Post("/", lists.HandleCreate(svc))
				r.Get("/", lists.HandleIndex(svc))
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", lists.HandleGet(svc))
					r.Delete("/", lists.HandleDelete(svc))
					r.Post("/join", lists.HandleJoin(svc))
					r.Get("/items", lists.HandleItems(svc))
					r.Post("/items", lists.HandleAddItem(svc))
					r.Get("/recommendations", lists.HandleRecommendations(svc, recommender))
				})
			})

			r.Route("/items/{id}", func(r chi.Router) {
				r.Delete("/", items.HandleRemove(svc))
				r.Post("/reactions", items.HandleReact(svc))
				r.Post("/suggestions", items.HandleSuggest(svc))
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}

func waitForShutdown(ioo *socketio.Server, st *state.Store) {
	exit := make(chan struct{})
	signalC := make(chan os.Signal, 1)

	signal.Notify(signalC, os.Interrupt, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range signalC {
			switch s {
			case os.Interrupt, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				close(exit)
				return
			}
		}
	}()

	<-exit
	logrus.Info("Shutting down")
	ioo.Close(nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := st.Flush(ctx); err != nil {
		logrus.WithError(err).Error("Final snapshot flush failed")
		os.Exit(1)
	}
	os.Exit(0)
}

func flushDelayFromEnv() time.Duration {
	raw := os.Getenv("FLUSH_DELAY_MS")
	if raw == "" {
		return state.DefaultFlushDelay
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms <= 0 {
		logrus.WithField("value", raw).Warn("Invalid FLUSH_DELAY_MS, using default")
		return state.DefaultFlushDelay
	}
	return time.Duration(ms) * time.Millisecond
}

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}

	listenAddress := flag.String("listen", ":3002", "The address to listen on.")
	logLevel := flag.String("loglevel", "info", "The log level (debug, info, warn, error).")
	flag.Parse()

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	auth.InitAuth()

	seed, err := catalog.LoadSeed(os.Getenv("SEED_PATH"))
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load product seed")
	}

	st := state.New(stores.GetBackend(), state.WithFlushDelay(flushDelayFromEnv()))
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := st.Load(ctx, seed); err != nil {
		// The one fatal condition: without a readable, writable snapshot
		// there is no valid state to serve.
		logrus.WithError(err).Fatal("Failed to load state")
	}
	cancel()

	ioo := websocket.NewServer()
	svc := service.New(st, broadcast.New(ioo))
	websocket.Register(ioo, st, svc)

	recommender := recommend.NewCatalog(st)
	r := setupRouter(svc, recommender)
	r.Mount("/socket.io/", ioo.ServeHandler(nil))

	logrus.WithField("addr", *listenAddress).Info("starting server")
	go func() {
		if err := http.ListenAndServe(*listenAddress, r); err != nil {
			logrus.WithField("event", "start server").Fatal(err)
		}
	}()

	logrus.Debug("Server is running in the background")
	waitForShutdown(ioo, st)
}
