package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"mealhub/internal/auth"
	"mealhub/internal/chat"
	"mealhub/internal/engine"
	"mealhub/internal/household"
	"mealhub/internal/notify"
	"mealhub/internal/prefs"
	"mealhub/internal/ratings"
	"mealhub/internal/recipes"
	"mealhub/internal/scraper"
	"mealhub/internal/suggest"
	synchub "mealhub/internal/sync"
	"mealhub/pkg/database"
	"mealhub/pkg/utils"
)

func main() {
	cfg := database.DefaultConfig()
	db := database.MustOpen(cfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	router := gin.Default()

	// Optional: avoid “trusted all proxies” warning
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	// Start TCP sync first (so you notice binding errors early)
	hub := synchub.NewHub()
	router.GET("/ws", synchub.WSHandler(hub))
	tcpSrv := synchub.NewServer(envOr("MEALHUB_SYNC_ADDR", ":7070"), hub)

	// UDP notify: pings registered clients when new recipes land
	registry := notify.NewRegistry()
	notifySrv := notify.NewServer(envOr("MEALHUB_NOTIFY_ADDR", ":7071"), registry, nil)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": cfg.Path})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := hub.Stats()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":      "not_ready",
				"db_error":    err.Error(),
				"tcp_clients": stats.TCPClients,
				"ws_clients":  stats.WSClients,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"db":          "ok",
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
		})
	})

	router.GET("/debug", func(c *gin.Context) {
		stats := hub.Stats()
		c.JSON(http.StatusOK, gin.H{
			"db":          cfg.Path,
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
		})
	})

	// Recipe catalog (public)
	recipeRepo := recipes.NewRepo(db)
	recipeHandler := recipes.NewHandler(recipeRepo)
	recipeHandler.RegisterRoutes(router.Group("/recipes"))

	// Auth
	authCfg := utils.LoadAuthConfig()
	tokenSvc := auth.TokenService{
		Secret:   []byte(authCfg.JWTSecret),
		Issuer:   authCfg.JWTIssuer,
		Duration: authCfg.JWTDuration,
	}
	authRepo := auth.NewRepo(db)
	householdRepo := household.NewRepo(db)
	authHandler := auth.NewHandler(authRepo, householdRepo, tokenSvc)
	authHandler.RegisterRoutes(router.Group("/auth"))

	// Preference engine on the sqlite store
	prefsRepo := prefs.NewRepo(db, recipeRepo, householdRepo)
	svc := engine.NewService(prefsRepo, engine.DefaultConfig())

	// Protected routes
	protected := router.Group("")
	protected.Use(auth.AuthMiddleware(tokenSvc, authRepo))

	protected.GET("/users/me", func(c *gin.Context) {
		claims := auth.MustGetClaims(c)
		c.JSON(http.StatusOK, gin.H{
			"id":       claims.UserID,
			"username": claims.Username,
			"email":    claims.Email,
		})
	})

	householdHandler := household.NewHandler(householdRepo)
	householdHandler.RegisterRoutes(protected.Group("/households"))

	ratingsHandler := ratings.NewHandler(svc, prefsRepo, householdRepo, hub)
	ratingsHandler.RegisterRoutes(protected)

	suggestHandler := suggest.NewHandler(svc, householdRepo)
	suggestHandler.RegisterRoutes(protected)

	// Household chat
	chatHub := chat.NewHub(0)
	protected.GET("/chat/history", chat.HistoryHandler(chatHub, householdRepo))
	protected.GET("/ws/chat", chat.WSHandler(chatHub, householdRepo))

	httpSrv := &http.Server{
		Addr:    envOr("MEALHUB_HTTP_ADDR", ":8080"),
		Handler: router,
	}

	errCh := make(chan error, 3)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := tcpSrv.Run(); err != nil {
			errCh <- err
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := notifySrv.Run(); err != nil {
			errCh <- err
		}
	}()

	// Optional background catalog refresh, e.g. MEALHUB_SCRAPE_INTERVAL=6h
	scrapeCtx, stopScrape := context.WithCancel(context.Background())
	defer stopScrape()
	if interval := scrapeInterval(); interval > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runScrapeLoop(scrapeCtx, db, notifySrv, interval)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("HTTP API server listening on %s", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	log.Println("shutting down servers")
	stopScrape()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	if err := tcpSrv.Close(); err != nil {
		log.Printf("tcp shutdown error: %v", err)
	}

	// notify's UDP read loop holds its goroutine until process exit;
	// everything stateful is already flushed at this point.
	log.Println("servers stopped")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func scrapeInterval() time.Duration {
	v := os.Getenv("MEALHUB_SCRAPE_INTERVAL")
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("invalid MEALHUB_SCRAPE_INTERVAL %q, refresh disabled", v)
		return 0
	}
	return d
}

func runScrapeLoop(ctx context.Context, db *sql.DB, notifySrv *notify.Server, interval time.Duration) {
	agg := scraper.NewAggregator(scraper.NewArlaSource(), scraper.NewKoketSource())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		merged, err := agg.FetchAndMerge(runCtx)
		if err != nil {
			log.Printf("[refresh] scrape failed: %v", err)
		} else if len(merged) > 0 {
			inserted, err := scraper.SaveToDatabase(runCtx, db, merged)
			if err != nil {
				log.Printf("[refresh] save failed: %v", err)
			} else {
				log.Printf("[refresh] catalog updated, %d new recipes", len(inserted))
				for _, r := range inserted {
					notifySrv.BroadcastNewRecipe(r.ID, r.Name, r.Features.Cuisine)
				}
			}
		}
		cancel()

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
