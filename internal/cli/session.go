package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session commands",
	}

	cmd.AddCommand(newSessionStartCmd())
	cmd.AddCommand(newSessionShootCmd())
	cmd.AddCommand(newSessionFinishCmd())
	cmd.AddCommand(newSessionGetCmd())

	return cmd
}

func newSessionStartCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a new session",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"mode": mode}
			var result Session

			if err := client.Post("/api/v1/sessions", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "arcade", "Game mode: arcade, classic")

	return cmd
}

func newSessionShootCmd() *cobra.Command {
	var (
		hit      bool
		miss     bool
		distance float64
		ts       string
	)

	cmd := &cobra.Command{
		Use:   "shoot <session-id>",
		Short: "Record a shot in a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if hit == miss {
				return fmt.Errorf("exactly one of --hit or --miss is required")
			}

			timestamp := ts
			if timestamp == "" {
				timestamp = time.Now().UTC().Format(time.RFC3339Nano)
			}

			req := map[string]any{
				"type": "SHOT",
				"ts":   timestamp,
				"payload": map[string]any{
					"hit":      hit,
					"distance": distance,
				},
			}
			var result EventAck

			path := fmt.Sprintf("/api/v1/sessions/%s/events", args[0])
			if err := client.Post(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&hit, "hit", false, "The shot hit the target")
	cmd.Flags().BoolVar(&miss, "miss", false, "The shot missed")
	cmd.Flags().Float64Var(&distance, "distance", 0, "Distance to the target in meters")
	cmd.Flags().StringVar(&ts, "ts", "", "Shot timestamp, RFC 3339 (default: now)")

	return cmd
}

func newSessionFinishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "finish <session-id>",
		Short: "Finish a session and compute its score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			path := fmt.Sprintf("/api/v1/sessions/%s/finish", args[0])
			if err := client.Post(path, nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <session-id>",
		Short: "Show a session with its events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SessionDetail

			if err := client.Get("/api/v1/sessions/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
