package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/bakery-hub/internal/auth"
	authPostgres "github.com/frahmantamala/bakery-hub/internal/auth/postgres"
	"github.com/frahmantamala/bakery-hub/pkg/logger"
)

var (
	tokenCmd = &cobra.Command{
		Use:   "token [user-id]",
		Short: "Mint a development bearer token for an existing active user",
		Args:  cobra.ExactArgs(1),
		RunE:  runToken,
	}
	tokenTTL time.Duration
)

func init() {
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime, defaults to security.access_token_duration")
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	logger.Init(logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	sqlxDB, gormDB, err := initDB(cfg.Database)
	if err != nil {
		return err
	}
	defer sqlxDB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := authPostgres.NewUserRepository(gormDB).GetActiveUserByID(ctx, args[0])
	if err != nil {
		return fmt.Errorf("look up user %s: %w", args[0], err)
	}

	ttl := tokenTTL
	if ttl <= 0 {
		ttl = cfg.Security.AccessTokenDuration
	}
	token, err := auth.NewJWTTokenGenerator(cfg.Security.JWTSecret, ttl).GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
