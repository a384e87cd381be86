package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"marketplace-assistant/internal/di"
	"marketplace-assistant/internal/domain/entity"
	"marketplace-assistant/internal/infrastructure/env"
)

var (
	cfgFile string
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "assistant",
	Short: "Marketplace shopping assistant driven by a browsing agent",
	Long: `Searches an online marketplace through a remote browsing agent and
returns the listing URL with filters applied, or messages sellers.`,
	SilenceUsage: true,
}

var searchCmd = &cobra.Command{
	Use:   "search [prompt]",
	Short: "Find a marketplace URL matching the prompt (reads stdin when no prompt is given)",
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt := strings.Join(args, " ")
		if prompt == "" {
			fmt.Fprintln(os.Stderr, "Enter what you are looking for:")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read prompt: %w", err)
			}
			prompt = strings.TrimSpace(line)
		}

		return withContainer(cmd.Context(), func(ctx context.Context, c *di.Container) error {
			c.Logger.Info("Search started", "prompt", prompt)
			outcome, err := c.Assistant.Search(ctx, prompt)
			if err != nil {
				var malformed *entity.MalformedCompletionError
				if errors.As(err, &malformed) {
					c.Logger.Error("Completion was not valid JSON", "completion", malformed.Raw)
				}
				return err
			}
			if !outcome.IsFound() {
				c.Logger.Info("Nothing found", "reason", outcome.Reason())
			}
			return printJSON(outcome.Result())
		})
	},
}

var messageSellersCmd = &cobra.Command{
	Use:   "message-sellers url [url...]",
	Short: "Send a personalized message to each seller profile",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(cmd.Context(), func(ctx context.Context, c *di.Container) error {
			c.Logger.Info("Messaging sellers", "count", len(args))
			resp, err := c.Assistant.MessageSellers(ctx, args)
			if err != nil {
				return err
			}
			if resp == nil {
				fmt.Println("null")
				return nil
			}
			if len(resp.Raw) > 0 {
				fmt.Println(string(resp.Raw))
				return nil
			}
			return printJSON(resp)
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "optional config file (yaml, json or toml)")
	rootCmd.PersistentFlags().DurationVarP(&timeout, "timeout", "t", 30*time.Minute, "overall deadline for one command")
	rootCmd.AddCommand(searchCmd, messageSellersCmd)
}

func withContainer(parent context.Context, run func(ctx context.Context, c *di.Container) error) error {
	envService, err := env.NewEnvService(cfgFile)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	container, err := di.NewContainer(ctx, di.ConfigFrom(envService))
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}
	defer container.Close()

	container.Logger.Debug("Environment loaded", "appEnv", envService.AppEnv())
	return run(ctx, container)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
