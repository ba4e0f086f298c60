package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	intconfig "transportes/internal/config"
	"transportes/internal/db"
	router "transportes/internal/http"
	"transportes/internal/logger"
)

func main() {
	env := intconfig.LoadEnv()
	logger.Setup(env.LogFile)

	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	conn, err := intconfig.ConnectDB(env)
	if err != nil {
		logrus.Fatalf("falha ao conectar no banco: %v", err)
	}
	defer intconfig.CloseDB()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.EnsureSchema(ctx, conn); err != nil {
		cancel()
		logrus.Fatalf("falha ao preparar o schema: %v", err)
	}
	cancel()

	r := router.NewRouter(env)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logrus.Infof("servidor ouvindo em http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("falha ao iniciar o servidor: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logrus.Info("desligando o servidor...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("falha no shutdown: %v", err)
	}

	logrus.Info("servidor encerrado.")
}
