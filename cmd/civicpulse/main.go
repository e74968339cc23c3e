// Package main is the CivicPulse development CLI: docker stack control,
// test running, and direct access to the complaint data and the classifier
// for local debugging.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/civicpulse/civicpulse/internal/classifier"
	"github.com/civicpulse/civicpulse/internal/config"
	"github.com/civicpulse/civicpulse/internal/model"
	"github.com/civicpulse/civicpulse/internal/query"
	"github.com/civicpulse/civicpulse/internal/store"
)

var composeFile string

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "civicpulse: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "civicpulse",
		Short: "CivicPulse development CLI",
		Long: `CivicPulse CLI orchestrates development workflows: building and running the
Docker stack, running tests, launching the binaries, and inspecting the local
complaint data or exercising the image classifier directly.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&composeFile, "compose-file", "f", "docker-compose.yml", "Compose file to use for stack commands")
	cmd.AddCommand(
		newStackCmd(),
		newTestCmd(),
		newRunCmd(),
		newComplaintsCmd(),
		newSummaryCmd(),
		newClassifyCmd(),
	)
	return cmd
}

func newStackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stack",
		Short: "Control the docker-compose stack",
	}

	var noCache bool
	build := &cobra.Command{
		Use:   "build [service...]",
		Short: "Build Docker images via docker compose",
		RunE: func(cmd *cobra.Command, args []string) error {
			composeArgs := []string{"compose", "-f", composeFile, "build"}
			if noCache {
				composeArgs = append(composeArgs, "--no-cache")
			}
			return runCommand(cmd.Context(), "docker", append(composeArgs, args...)...)
		},
	}
	build.Flags().BoolVar(&noCache, "no-cache", false, "Disable Docker build cache")

	var detach, skipBuild bool
	up := &cobra.Command{
		Use:   "up [service...]",
		Short: "Start the stack",
		RunE: func(cmd *cobra.Command, args []string) error {
			composeArgs := []string{"compose", "-f", composeFile, "up"}
			if !skipBuild {
				composeArgs = append(composeArgs, "--build")
			}
			if detach {
				composeArgs = append(composeArgs, "-d")
			}
			return runCommand(cmd.Context(), "docker", append(composeArgs, args...)...)
		},
	}
	up.Flags().BoolVarP(&detach, "detached", "d", true, "Run docker compose in detached mode")
	up.Flags().BoolVar(&skipBuild, "skip-build", false, "Skip rebuilding images before starting")

	var removeVolumes bool
	down := &cobra.Command{
		Use:   "down",
		Short: "Stop the stack",
		RunE: func(cmd *cobra.Command, args []string) error {
			composeArgs := []string{"compose", "-f", composeFile, "down"}
			if removeVolumes {
				composeArgs = append(composeArgs, "-v")
			}
			return runCommand(cmd.Context(), "docker", composeArgs...)
		},
	}
	down.Flags().BoolVarP(&removeVolumes, "volumes", "v", false, "Remove stack volumes")

	var follow bool
	logs := &cobra.Command{
		Use:   "logs [service...]",
		Short: "Tail logs from stack services",
		RunE: func(cmd *cobra.Command, args []string) error {
			composeArgs := []string{"compose", "-f", composeFile, "logs"}
			if follow {
				composeArgs = append(composeArgs, "-f")
			}
			return runCommand(cmd.Context(), "docker", append(composeArgs, args...)...)
		},
	}
	logs.Flags().BoolVarP(&follow, "follow", "f", false, "Stream logs continuously")

	cmd.AddCommand(build, up, down, logs)
	return cmd
}

func newTestCmd() *cobra.Command {
	var race, cover bool
	cmd := &cobra.Command{
		Use:   "test [packages]",
		Short: "Run Go tests (defaults to ./...)",
		RunE: func(cmd *cobra.Command, args []string) error {
			pkgs := args
			if len(pkgs) == 0 {
				pkgs = []string{"./..."}
			}
			goArgs := []string{"test"}
			if race {
				goArgs = append(goArgs, "-race")
			}
			if cover {
				goArgs = append(goArgs, "-cover")
			}
			return runCommand(cmd.Context(), "go", append(goArgs, pkgs...)...)
		},
	}
	cmd.Flags().BoolVar(&race, "race", false, "Enable Go race detector")
	cmd.Flags().BoolVar(&cover, "cover", false, "Collect coverage data")
	return cmd
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run individual Go binaries directly",
	}
	for _, svc := range []struct{ name, path string }{
		{"server", "./cmd/server"},
		{"worker", "./cmd/worker"},
	} {
		path := svc.path
		cmd.AddCommand(&cobra.Command{
			Use:   svc.name,
			Short: fmt.Sprintf("go run %s", path),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runCommand(cmd.Context(), "go", append([]string{"run", path}, args...)...)
			},
		})
	}
	return cmd
}

// newComplaintsCmd lists the local complaint document, optionally filtered by
// citizen identity, the same way the API's listing endpoint would.
func newComplaintsCmd() *cobra.Command {
	var phone, userID string
	cmd := &cobra.Command{
		Use:   "complaints",
		Short: "List complaints from the local data file",
		RunE: func(cmd *cobra.Command, args []string) error {
			queries, err := openQueries()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var complaints []model.Complaint
			if phone != "" || userID != "" {
				complaints, err = queries.ListForUser(ctx, phone, userID)
			} else {
				complaints, err = queries.ListAll(ctx)
			}
			if err != nil {
				return err
			}
			for _, c := range complaints {
				fmt.Printf("%s  %-11s  %s/%s  %s\n",
					c.CreatedAt.Format("2006-01-02 15:04"), c.Status, c.MainCategory, c.SubCategory, c.Description)
			}
			fmt.Printf("%d complaints\n", len(complaints))
			return nil
		},
	}
	cmd.Flags().StringVar(&phone, "phone", "", "Filter by citizen phone number")
	cmd.Flags().StringVar(&userID, "user", "", "Filter by citizen user id")
	return cmd
}

// newSummaryCmd prints the same status buckets the admin view shows.
func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print complaint status counts from the local data file",
		RunE: func(cmd *cobra.Command, args []string) error {
			queries, err := openQueries()
			if err != nil {
				return err
			}
			complaints, err := queries.ListAll(cmd.Context())
			if err != nil {
				return err
			}
			sum := query.Summarize(complaints)
			fmt.Printf("total       %d\nsubmitted   %d\nin progress %d\nresolved    %d\n",
				sum.Total, sum.Submitted, sum.InProgress, sum.Resolved)
			return nil
		},
	}
}

// newClassifyCmd runs the vision classifier against a local image file,
// printing the suggestion the analyse endpoint would return.
func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <image file>",
		Short: "Classify a local image through the configured vision model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.OpenAIAPIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY is not set")
			}
			cls, err := classifier.NewOpenAI(classifier.Config{
				APIKey:  cfg.OpenAIAPIKey,
				BaseURL: cfg.OpenAIBaseURL,
				Model:   cfg.VisionModel,
				Timeout: cfg.ClassifyTimeout,
			})
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			suggestion, err := cls.Classify(cmd.Context(), data, http.DetectContentType(data))
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(suggestion, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}

func openQueries() (*query.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	st, err := store.NewJSONStore(cfg.DataFile)
	if err != nil {
		return nil, err
	}
	return query.New(st), nil
}

func runCommand(ctx context.Context, name string, args ...string) error {
	execCmd := exec.CommandContext(ctx, name, args...)
	execCmd.Stdout = os.Stdout
	execCmd.Stderr = os.Stderr
	execCmd.Stdin = os.Stdin
	return execCmd.Run()
}
