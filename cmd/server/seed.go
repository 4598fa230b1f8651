package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/promptpal/internal/server/jwt"
	"github.com/iudanet/promptpal/internal/server/seed"
	"github.com/iudanet/promptpal/internal/server/service"
)

var seedOpts = seed.DefaultOptions()

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the database with sample prompts of a demo user",
	Long: `Create a demo user (or log in as it when it already exists) and insert
sample prompts from built-in templates. About 70% of them are public.

Examples:
  promptpal-server seed
  promptpal-server seed --count 20 --public-ratio 1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if _, err := cfg.EnsureSecret(); err != nil {
			return err
		}

		store, err := openStorage(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer store.Close()

		authService := service.NewAuthService(logger, store, jwt.NewService(cfg.JWT.Secret, cfg.JWT.TTL))
		promptService := service.NewPromptService(logger, store, cfg.Public.Limit)

		res, err := seed.Run(ctx, logger, authService, promptService, seedOpts)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "user:    %s (%s)\n", seedOpts.Username, res.UserID)
		fmt.Fprintf(out, "created: %d prompts (%d public, %d private)\n", res.Created, res.Public, res.Created-res.Public)
		return nil
	},
}

func init() {
	f := seedCmd.Flags()
	f.StringVar(&seedOpts.Username, "username", seedOpts.Username, "demo user name")
	f.StringVar(&seedOpts.Email, "email", seedOpts.Email, "demo user email")
	f.StringVar(&seedOpts.Password, "password", seedOpts.Password, "demo user password")
	f.IntVar(&seedOpts.Count, "count", seedOpts.Count, "number of prompts to create")
	f.Float64Var(&seedOpts.PublicRatio, "public-ratio", seedOpts.PublicRatio, "share of public prompts, 0..1")
	f.Uint64Var(&seedOpts.Seed, "seed", seedOpts.Seed, "random seed")
}
