package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	cli "github.com/urfave/cli/v3"

	"github.com/autodoc-cli/autodoc/internal/config"
	"github.com/autodoc-cli/autodoc/internal/docs"
	"github.com/autodoc-cli/autodoc/internal/genai"
	"github.com/autodoc-cli/autodoc/internal/gitx"
	"github.com/autodoc-cli/autodoc/internal/prompt"
	"github.com/autodoc-cli/autodoc/internal/review"
	"github.com/autodoc-cli/autodoc/internal/scaffold"
	"github.com/autodoc-cli/autodoc/internal/tracker"
	"github.com/autodoc-cli/autodoc/internal/ux"
	"github.com/autodoc-cli/autodoc/internal/workflow"
)

func main() {
	app := &cli.Command{
		Name:        "autodoc",
		Usage:       "Generate task documents from issue-tracker tickets",
		Description: "Run 'autodoc docs' for documentation on configuration, prompts, and exit codes.",
		Commands: []*cli.Command{
			initCmd(),
			runCmd(),
			docCmd(),
			generateCmd(),
			docsCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", ux.Red, ux.Reset, err)
		os.Exit(workflow.ExitCode(err))
	}
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize ~/.autodoc with config, prompts, and an example document",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "tracker-url", Usage: "Issue tracker API base URL", Required: true},
			&cli.StringFlag{Name: "tracker-user", Usage: "Tracker username", Required: true},
			&cli.StringFlag{Name: "tracker-token", Usage: "Tracker API token or password", Required: true},
			&cli.StringFlag{Name: "backend-key", Usage: "Generation backend API key", Required: true},
			&cli.StringFlag{Name: "backend-url", Usage: "Generation backend base URL"},
			&cli.StringFlag{Name: "model", Usage: "Generation model name"},
			&cli.StringFlag{Name: "git-url", Usage: "Repository clone URL (for 'run --clone')"},
			&cli.StringFlag{Name: "git-user", Usage: "Git username (for 'run --clone')"},
			&cli.StringFlag{Name: "git-token", Usage: "Git password or token (for 'run --clone')"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := &config.Config{
				Tracker: config.Tracker{
					BaseURL:  cmd.String("tracker-url"),
					Username: cmd.String("tracker-user"),
					Token:    cmd.String("tracker-token"),
				},
				Git: config.Git{
					URL:      cmd.String("git-url"),
					Username: cmd.String("git-user"),
					Token:    cmd.String("git-token"),
				},
				Backend: config.Backend{
					BaseURL: cmd.String("backend-url"),
					APIKey:  cmd.String("backend-key"),
					Model:   cmd.String("model"),
				},
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}
			return scaffold.Init(cfg)
		},
	}
}

func runCmd() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Full workflow: branch, generate, persist, commit, push",
		ArgsUsage: "<ticket>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "clone", Usage: "Clone git.url into a fresh temp workspace instead of using the enclosing repository"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ticket, cfg, err := ticketAndConfig(cmd)
			if err != nil {
				return err
			}

			repo, err := openRepo(ctx, cfg, cmd.Bool("clone"))
			if err != nil {
				return err
			}
			if cfg.Git.Remote != "" {
				repo.Remote = cfg.Git.Remote
			}
			if cfg.Git.DefaultBranch == "" {
				cfg.Git.DefaultBranch = repo.DefaultBranch(ctx)
			}

			wf, err := buildWorkflow(cfg)
			if err != nil {
				return err
			}
			wf.Git = repo
			wf.RepoRoot = repo.Dir
			wf.BranchPrefix = cfg.Git.BranchPrefix
			wf.DefaultBranch = cfg.Git.DefaultBranch

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return finish(ticket, wf.FullRun(ctx, ticket))
		},
	}
}

func docCmd() *cli.Command {
	return &cli.Command{
		Name:      "doc",
		Usage:     "Generate a task document into the current directory",
		ArgsUsage: "<ticket>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ticket, cfg, err := ticketAndConfig(cmd)
			if err != nil {
				return err
			}
			wf, err := buildWorkflow(cfg)
			if err != nil {
				return err
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return finish(ticket, wf.GenerateOnly(ctx, ticket, cwd))
		},
	}
}

func generateCmd() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "Generate a task document under docs/.tasks",
		ArgsUsage: "<ticket>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ticket, cfg, err := ticketAndConfig(cmd)
			if err != nil {
				return err
			}
			wf, err := buildWorkflow(cfg)
			if err != nil {
				return err
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return finish(ticket, wf.GenerateToDocs(ctx, ticket, cwd))
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				fmt.Print("\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Printf("  %-12s %s\n", t.Name, t.Summary)
				}
				fmt.Println("\nRun 'autodoc docs <topic>' to read a topic.")
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			fmt.Print(t.Content)
			return nil
		},
	}
}

// ticketAndConfig reads the ticket argument and loads the config file.
func ticketAndConfig(cmd *cli.Command) (string, *config.Config, error) {
	ticket := cmd.Args().First()
	if ticket == "" {
		return "", nil, fmt.Errorf("ticket argument is required")
	}
	path, err := config.DefaultPath()
	if err != nil {
		return "", nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return "", nil, err
	}
	return ticket, cfg, nil
}

// buildWorkflow wires the real collaborators from the config.
func buildWorkflow(cfg *config.Config) (*workflow.Workflow, error) {
	lib, err := prompt.Load(cfg.Prompts.File, cfg.Prompts.ExamplesDir, cfg.Backend.MaxExamples)
	if err != nil {
		return nil, err
	}

	var genOpts []genai.Option
	if cfg.Backend.BaseURL != "" {
		genOpts = append(genOpts, genai.WithBaseURL(cfg.Backend.BaseURL))
	}
	if cfg.Backend.Model != "" {
		genOpts = append(genOpts, genai.WithModel(cfg.Backend.Model))
	}

	return &workflow.Workflow{
		Resolver: tracker.NewResolver(
			tracker.NewHTTPClient(cfg.Tracker.BaseURL, cfg.Tracker.Username, cfg.Tracker.Token)),
		Loop: &review.Loop{
			Library:   lib,
			Generator: genai.NewOpenAI(cfg.Backend.APIKey, genOpts...),
			Reviewer:  review.NewTerminalReviewer(),
		},
	}, nil
}

// openRepo resolves the repository to operate on: the one enclosing the
// current directory, or with clone set, a fresh uuid-named temp workspace
// cloned from git.url.
func openRepo(ctx context.Context, cfg *config.Config, clone bool) (*gitx.Repo, error) {
	if !clone {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		return gitx.Open(ctx, cwd)
	}

	if cfg.Git.URL == "" {
		return nil, fmt.Errorf("'git.url' must be configured for run --clone")
	}
	dir := filepath.Join(os.TempDir(), "autodoc-"+uuid.NewString())
	ux.Info("cloning " + cfg.Git.URL + " into " + dir)
	repo, err := gitx.Clone(ctx, cfg.Git.URL, cfg.Git.Username, cfg.Git.Token, dir)
	if err != nil {
		return nil, err
	}
	ux.Warn("temp workspace retained at " + dir + " — remove it when done")
	return repo, nil
}

// finish reports the workflow outcome and converts a failure into the error
// the top level maps onto an exit code.
func finish(ticket string, res workflow.Result) error {
	if res.Err != nil {
		ux.StageFail(res.Stage.String(), res.Err.Error())
		return fmt.Errorf("workflow stopped after stage %q: %w", res.Stage, res.Err)
	}
	ux.Success(ticket, res.Path)
	return nil
}
