package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/noah-isme/lab-portal-api/internal/models"
	"github.com/noah-isme/lab-portal-api/internal/repository"
	"github.com/noah-isme/lab-portal-api/internal/service"
	"github.com/noah-isme/lab-portal-api/pkg/config"
	"github.com/noah-isme/lab-portal-api/pkg/database"
	appErrors "github.com/noah-isme/lab-portal-api/pkg/errors"
	"github.com/noah-isme/lab-portal-api/pkg/logger"
	"github.com/noah-isme/lab-portal-api/pkg/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx := context.Background()
	db, err := database.NewPostgres(ctx, cfg.Database, logr)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	auth := service.NewAuthService(repository.NewUserRepository(db), repository.NewAdminRepository(db), nil, validation.New(), logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
		AdminSecret: cfg.Auth.SuperAdminKey,
	})

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Admin email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)

	fmt.Print("Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		log.Fatalf("failed to read password: %v", err)
	}

	admin, err := auth.SignUpAdmin(ctx, models.SignUpRequest{Email: email, Password: string(raw)})
	if err != nil {
		appErr := appErrors.FromError(err)
		fmt.Fprintf(os.Stderr, "error: %s\n", appErr.Message)
		if appErr.Status >= 500 {
			logr.Error("create admin failed", zap.Error(err))
		}
		os.Exit(1)
	}
	fmt.Printf("admin %s created with id %s\n", admin.Email, admin.ID)
}
