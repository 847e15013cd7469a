package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/cutover-io/cutover/pkg/cli/config"
	"github.com/cutover-io/cutover/pkg/domain/interfaces"
	"github.com/cutover-io/cutover/pkg/domain/model"
	"github.com/cutover-io/cutover/pkg/usecase"
)

// workflowEnv bundles what every workflow command resolves before running:
// the registered project, its latest release and the workflow service.
type workflowEnv struct {
	project    *model.Project
	latest     *model.Release
	workflowUC interfaces.WorkflowUseCase
}

// workflowFlags returns the flags shared by all workflow commands
func workflowFlags(owner, repo *string, githubCfg *config.GitHub, registryCfg *config.Registry) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "owner",
			Usage:       "Repository owner",
			Required:    true,
			Destination: owner,
		},
		&cli.StringFlag{
			Name:        "repo",
			Usage:       "Repository name",
			Required:    true,
			Destination: repo,
		},
	}
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, registryCfg.Flags()...)
	return flags
}

// resolveEnv builds the hosting client, resolves the project and fetches
// its latest release
func resolveEnv(ctx context.Context, owner, repo string, githubCfg *config.GitHub, registryCfg *config.Registry) (*workflowEnv, error) {
	registry, err := registryCfg.Load()
	if err != nil {
		return nil, err
	}

	project, err := registry.Lookup(owner, repo)
	if err != nil {
		return nil, err
	}

	hosting, err := githubCfg.Build()
	if err != nil {
		return nil, err
	}

	latest, err := hosting.GetLatestRelease(ctx, project)
	if err != nil {
		return nil, err
	}

	return &workflowEnv{
		project:    project,
		latest:     latest,
		workflowUC: usecase.New(hosting),
	}, nil
}

// consoleSink renders each step on the terminal as it lands
func consoleSink() model.StepSink {
	success := color.New(color.FgGreen).SprintFunc()
	failure := color.New(color.FgRed).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	return model.StepSinkFunc(func(step model.Step) {
		mark := success("✔")
		if step.Icon == model.IconFailure {
			mark = failure("✘")
		}
		line := fmt.Sprintf("%s %s", mark, step.Message)
		if step.Secondary != "" {
			line += dim(" " + step.Secondary)
		}
		fmt.Println(line)
		if step.Link != "" {
			fmt.Println(dim("  " + step.Link))
		}
	})
}

func cmdCreateRC() *cli.Command {
	var (
		owner, repo, bump string
		githubCfg         config.GitHub
		registryCfg       config.Registry
	)

	flags := append(workflowFlags(&owner, &repo, &githubCfg, &registryCfg),
		&cli.StringFlag{
			Name:        "bump",
			Usage:       "Version component to bump (major, minor, patch)",
			Value:       string(model.BumpPatch),
			Destination: &bump,
		},
	)

	return &cli.Command{
		Name:  "create-rc",
		Usage: "Cut a new release-candidate branch and prerelease",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			level, err := model.ParseBumpLevel(bump)
			if err != nil {
				return err
			}

			env, err := resolveEnv(ctx, owner, repo, &githubCfg, &registryCfg)
			if err != nil {
				return err
			}

			result, err := env.workflowUC.CreateRC(ctx, env.project, env.latest, level, consoleSink())
			if err != nil {
				return err
			}

			fmt.Printf("\nCreated %s (%s)\n%s\n", result.Name, result.TagName, result.HTMLURL)
			return nil
		},
	}
}

func cmdPromote() *cli.Command {
	var (
		owner, repo           string
		force, merge, cleanup bool
		githubCfg             config.GitHub
		registryCfg           config.Registry
	)

	flags := append(workflowFlags(&owner, &repo, &githubCfg, &registryCfg),
		&cli.BoolFlag{
			Name:        "force",
			Usage:       "Promote even if the latest release is not a release candidate",
			Destination: &force,
		},
		&cli.BoolFlag{
			Name:        "merge",
			Usage:       "Merge the candidate branch into the mainline",
			Destination: &merge,
		},
		&cli.BoolFlag{
			Name:        "cleanup",
			Usage:       "Delete the candidate branch after merging (requires --merge)",
			Destination: &cleanup,
		},
	)

	return &cli.Command{
		Name:  "promote",
		Usage: "Promote the latest release candidate to a full release",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			env, err := resolveEnv(ctx, owner, repo, &githubCfg, &registryCfg)
			if err != nil {
				return err
			}

			opts := model.PromoteOptions{Force: force, Merge: merge, Cleanup: cleanup}
			result, err := env.workflowUC.PromoteRC(ctx, env.project, env.latest, opts, consoleSink())
			if err != nil {
				return err
			}

			fmt.Printf("\nPromoted %s (%s)\n%s\n", result.Name, result.TagName, result.HTMLURL)
			return nil
		},
	}
}

func cmdPatch() *cli.Command {
	var (
		owner, repo string
		githubCfg   config.GitHub
		registryCfg config.Registry
	)

	return &cli.Command{
		Name:  "patch",
		Usage: "Apply a follow-up patch on top of the latest full release",
		Flags: workflowFlags(&owner, &repo, &githubCfg, &registryCfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			env, err := resolveEnv(ctx, owner, repo, &githubCfg, &registryCfg)
			if err != nil {
				return err
			}

			result, err := env.workflowUC.Patch(ctx, env.project, env.latest, consoleSink())
			if err != nil {
				return err
			}

			fmt.Printf("\nPatched as %s\n%s\n", result.PatchTag, result.HTMLURL)
			return nil
		},
	}
}
