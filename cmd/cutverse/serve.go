package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/hrygo/cutverse/ai/core/llm"
	"github.com/hrygo/cutverse/internal/profile"
	"github.com/hrygo/cutverse/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and demo page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			instanceProfile, err := loadProfile()
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), terminationSignals...)
			defer cancel()

			storeInstance, err := openStore(ctx, instanceProfile)
			if err != nil {
				return err
			}
			s, err := server.NewServer(ctx, instanceProfile, storeInstance, nil)
			if err != nil {
				_ = storeInstance.Close()
				return fmt.Errorf("failed to create server: %w", err)
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return s.Start(gctx)
			})
			g.Go(func() error {
				<-gctx.Done()
				s.Shutdown(context.Background())
				return nil
			})
			if instanceProfile.HasEnvAPIKey() {
				g.Go(func() error {
					warmup(gctx, instanceProfile)
					return nil
				})
			}

			printGreetings(instanceProfile)
			if err := g.Wait(); err != nil {
				return fmt.Errorf("failed to start server: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().String("addr", "", "address of server")
	cmd.Flags().Int("port", 28090, "port of server")
	if err := viper.BindPFlag("addr", cmd.Flags().Lookup("addr")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("port", cmd.Flags().Lookup("port")); err != nil {
		panic(err)
	}
	return cmd
}

// warmup opens the provider connection early so the first generation is not slowed
// by connection setup.
func warmup(ctx context.Context, p *profile.Profile) {
	svc, err := llm.NewService(&llm.Config{
		Provider: p.LLMProvider,
		Model:    p.LLMModel,
		APIKey:   p.LLMAPIKey,
		BaseURL:  p.LLMBaseURL,
		Timeout:  p.LLMTimeout,
	})
	if err != nil {
		slog.Warn("LLM warmup skipped", "error", err)
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	svc.Warmup(ctx)
}

func printGreetings(p *profile.Profile) {
	fmt.Println(titleStyle.Render("Cutverse " + p.Version + " started successfully!"))

	if p.IsDev() {
		fmt.Fprint(os.Stderr, "Development mode is enabled\n")
	}
	fmt.Printf("Data directory: %s\n", p.Data)
	fmt.Printf("Database driver: %s\n", p.Driver)
	fmt.Printf("Mode: %s\n", p.Mode)

	host := p.Addr
	if host == "" {
		host = "localhost"
	}
	fmt.Printf("Access Cutverse at: http://%s:%d\n", host, p.Port)
}
