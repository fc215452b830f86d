// Command authservice runs the stateless authentication and
// authorization service: credential login issuing signed bearer tokens,
// per-request token verification, and role-gated user management.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/skillsenselab/authservice/internal/api"
	"github.com/skillsenselab/authservice/internal/auth"
	"github.com/skillsenselab/authservice/internal/config"
	"github.com/skillsenselab/authservice/internal/logger"
	"github.com/skillsenselab/authservice/internal/observability"
	"github.com/skillsenselab/authservice/internal/password"
	"github.com/skillsenselab/authservice/internal/server"
	"github.com/skillsenselab/authservice/internal/store"
	"github.com/skillsenselab/authservice/internal/token"
)

const serviceName = "authservice"

func main() {
	configFile := flag.String("config", "", "path to config.yml (optional)")
	flag.Parse()

	if err := run(*configFile); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	log := logger.New(&cfg.Logger, serviceName)
	logger.SetGlobalLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	telemetry, err := observability.Init(ctx, cfg.Observability, serviceName, log)
	if err != nil {
		return err
	}
	defer telemetry.Shutdown(context.Background())

	metrics, err := observability.NewAuthMetrics()
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Database, log)
	if err != nil {
		return err
	}

	codec, err := token.NewCodec(&cfg.Token)
	if err != nil {
		return err
	}
	issuer := token.NewIssuer(codec)

	hasher := password.NewHasher(cfg.Password)
	authSvc := auth.NewService(st.Users(), hasher, issuer, log)
	handler := api.NewHandler(authSvc, st.Users(), st.Profiles(), hasher, metrics, log)

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()
	policy := api.Register(srv.GinEngine(), handler, codec, metrics)

	log.Info("access policy loaded", map[string]interface{}{
		"operations": len(policy.Operations()),
	})

	if err := srv.Start(ctx); err != nil {
		return err
	}
	log.Info("service ready", map[string]interface{}{"addr": srv.Addr()})

	<-ctx.Done()
	log.Info("shutdown signal received")

	return srv.Stop(context.Background())
}
