package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/session"
)

const heartbeatInterval = 30 * time.Second

func sessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ems-agent-session.json"
	}
	return filepath.Join(home, ".config", "ems-agent", "session.json")
}

func main() {
	store := session.NewStore(sessionPath())
	if err := store.Load(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render(err.Error()))
	}

	baseURL := os.Getenv("EMS_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	client := newAPIClient(baseURL, store)

	root := &cobra.Command{
		Use:           "ems-agent",
		Short:         "Desktop tracking agent for the EMS backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var email, password string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and cache the session locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(os.Stdin)
			if email == "" {
				fmt.Print("Email: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				email = strings.TrimSpace(line)
			}
			if password == "" {
				fmt.Print("Password: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				password = strings.TrimSpace(line)
			}

			sess, err := client.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Println(okStyle.Render("Signed in as " + sess.Email))
			return nil
		},
	}
	loginCmd.Flags().StringVar(&email, "email", "", "account email")
	loginCmd.Flags().StringVar(&password, "password", "", "account password")

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the cached session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Println(okStyle.Render("Signed out"))
			return nil
		},
	}

	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start a tracking session",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := client.StartTracking(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(okStyle.Render("Tracking started") + " (session " + s.ID + ")")
			return nil
		},
	}

	pauseCmd := &cobra.Command{
		Use:   "pause",
		Short: "Pause the running session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.PauseTracking(cmd.Context()); err != nil {
				return err
			}
			fmt.Println(warnStyle.Render("Tracking paused"))
			return nil
		},
	}

	resumeCmd := &cobra.Command{
		Use:   "resume",
		Short: "Resume a paused session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.ResumeTracking(cmd.Context()); err != nil {
				return err
			}
			fmt.Println(okStyle.Render("Tracking resumed"))
			return nil
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop tracking and finalize the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := client.StopTracking(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%s after %s\n", okStyle.Render("Tracking stopped"), formatDuration(s.TotalSeconds))
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current tracker state",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := client.TrackingStatus(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Print(renderStatus(s))
			return nil
		},
	}

	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "List recent work sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := client.Sessions(cmd.Context())
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Println("No sessions yet")
				return nil
			}
			for _, s := range sessions {
				marker := " "
				if s.IsActive {
					marker = okStyle.Render("*")
				}
				fmt.Printf("%s %s  %s  %d screenshots\n", marker, s.StartTime, formatDuration(s.TotalSeconds), s.ScreenshotCount)
			}
			return nil
		},
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Start tracking and send heartbeats until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := client.StartTracking(ctx)
			if err != nil {
				return err
			}
			fmt.Println(okStyle.Render("Tracking started") + " (session " + s.ID + "), press Ctrl+C to stop")

			go store.AutoRefresh(ctx, time.Minute, client.RefreshSession)

			started := time.Now()
			ticker := time.NewTicker(heartbeatInterval)
			defer ticker.Stop()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			for {
				select {
				case <-ticker.C:
					elapsed := int64(time.Since(started).Seconds())
					if err := client.Heartbeat(ctx, elapsed); err != nil {
						fmt.Fprintln(os.Stderr, errStyle.Render("heartbeat failed: "+err.Error()))
					}
				case <-quit:
					stopped, err := client.StopTracking(ctx)
					if err != nil {
						return err
					}
					fmt.Printf("\n%s after %s\n", okStyle.Render("Tracking stopped"), formatDuration(stopped.TotalSeconds))
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		},
	}

	root.AddCommand(loginCmd, logoutCmd, startCmd, pauseCmd, resumeCmd, stopCmd, statusCmd, sessionsCmd, runCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render(err.Error()))
		os.Exit(1)
	}
}
