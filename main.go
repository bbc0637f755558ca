package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"

	"recruitadmin/internal/apiclient"
	"recruitadmin/internal/busy"
	intconfig "recruitadmin/internal/config"
	router "recruitadmin/internal/http"
	"recruitadmin/internal/http/middleware"
	"recruitadmin/internal/screens"
	"recruitadmin/internal/session"
	"recruitadmin/internal/utils"
)

func main() {
	configPath := pflag.String("config", "recruitadmin.jsonc", "path to the JSONC config file")
	addr := pflag.String("addr", "", "listen address, overrides the config")
	pflag.Parse()

	env, err := intconfig.LoadEnv(*configPath)
	if err != nil {
		utils.Logger().Fatal().Err(err).Msg("failed to load config")
	}
	if *addr != "" {
		env.AppAddr = *addr
	}
	utils.SetLogger(utils.NewLogger(os.Stdout, env.LogLevel, env.LogPretty))
	log := utils.Logger()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, closeStore, err := intconfig.OpenSessionStore(ctx, env)
	if err != nil {
		log.Fatal().Err(err).Str("driver", env.SessionDriver).Msg("failed to open session store")
	}
	defer func() { _ = closeStore() }()

	client := apiclient.New(apiclient.Config{
		BaseURL: env.APIURL,
		AuthURL: env.AuthURL,
		Timeout: env.RequestTimeout.Std(),
	}, busy.New(busy.NewGauge(reg)), apiclient.NewMetrics(reg))

	sessions := session.NewManager(kv, session.WithIdleTimeout(env.SessionIdle.Std()))
	defer sessions.Close()
	go sessions.Run(ctx, env.SweepInterval.Std())

	r := router.NewRouter(router.Deps{
		Client:   client,
		Screens:  screens.NewRegistry(client),
		Sessions: sessions,
		Gatherer: reg,
		Cookie: middleware.CookieConfig{
			Name:   env.CookieName,
			Secure: env.CookieSecure,
			MaxAge: env.CookieMaxAge,
		},
		CORSOrigins: env.CORSOrigins,
		ViewTimeout: env.ViewTimeout.Std(),
	})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      env.ViewTimeout.Std() + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", env.AppAddr).Str("api", env.APIURL).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
		return
	}

	log.Info().Msg("server stopped")
}
