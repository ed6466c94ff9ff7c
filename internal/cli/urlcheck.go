package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mwong94/goutils/internal/config"
	"github.com/mwong94/goutils/internal/paths"
	"github.com/mwong94/goutils/internal/urlcheck"
)

var (
	urlcheckFile         string
	urlcheckStateFile    string
	urlcheckTimeout      int
	urlcheckNotify       bool
	urlcheckAlwaysNotify bool
)

func newURLCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "urlcheck",
		Short: "Monitor URLs for availability changes",
	}

	cmd.PersistentFlags().StringVarP(&urlcheckStateFile, "state-file", "s", "", "File to store URL states")

	cmd.AddCommand(newURLCheckCheckCmd())
	cmd.AddCommand(newURLCheckResetCmd())
	cmd.AddCommand(newURLCheckStateCmd())

	return cmd
}

func newURLCheckCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [url]...",
		Short: "Check a set of URLs for availability",
		RunE:  runURLCheck,
	}

	cmd.Flags().StringVarP(&urlcheckFile, "file", "f", "", "File containing URLs, one per line")
	cmd.Flags().IntVarP(&urlcheckTimeout, "timeout", "t", 0, "Request timeout in seconds")
	cmd.Flags().BoolVar(&urlcheckNotify, "notify", true, "Send notifications on status changes")
	cmd.Flags().BoolVar(&urlcheckAlwaysNotify, "always-notify", false, "Notify for every URL returning 200")

	return cmd
}

func runURLCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(paths.ConfigFile())
	if err != nil {
		return err
	}

	urls := append([]string{}, args...)
	if urlcheckFile != "" {
		fileURLs, err := urlcheck.ReadURLFile(urlcheckFile)
		if err != nil {
			return err
		}
		urls = append(urls, fileURLs...)
	}
	urls = urlcheck.Normalize(urls)
	if len(urls) == 0 {
		return fmt.Errorf("no URLs provided; pass arguments or --file")
	}

	statePath := resolveStatePath(cfg)
	prev, err := urlcheck.LoadState(statePath)
	if err != nil {
		return err
	}

	timeout := time.Duration(cfg.URLCheck.TimeoutSeconds) * time.Second
	if urlcheckTimeout > 0 {
		timeout = time.Duration(urlcheckTimeout) * time.Second
	}

	outcomes, next := urlcheck.CheckAll(cmd.Context(), http.DefaultClient, urls, prev, urlcheck.Options{
		Timeout:      timeout,
		Notify:       urlcheckNotify,
		AlwaysNotify: urlcheckAlwaysNotify,
		WebhookURL:   cfg.URLCheck.WebhookURL,
	})

	if err := urlcheck.SaveState(statePath, next); err != nil {
		return err
	}

	if outputJSON {
		data, err := json.MarshalIndent(outcomes, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printOutcomes(cmd, outcomes)
	cmd.Printf("\nChecked %d URLs, state saved to %s\n", len(outcomes), statePath)
	return nil
}

func newURLCheckResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear all stored URL statuses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(paths.ConfigFile())
			if err != nil {
				return err
			}
			statePath := resolveStatePath(cfg)
			removed, err := urlcheck.ResetState(statePath)
			if err != nil {
				return err
			}
			if removed {
				cmd.Printf("State file %s has been reset\n", statePath)
			} else {
				cmd.Printf("State file %s does not exist\n", statePath)
			}
			return nil
		},
	}
}

func newURLCheckStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show the current state of monitored URLs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(paths.ConfigFile())
			if err != nil {
				return err
			}
			state, err := urlcheck.LoadState(resolveStatePath(cfg))
			if err != nil {
				return err
			}

			if outputJSON {
				data, err := json.MarshalIndent(state, "", "  ")
				if err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				cmd.Println(string(data))
				return nil
			}

			if len(state.Entries) == 0 {
				cmd.Println("No state data found")
				return nil
			}

			urls := make([]string, 0, len(state.Entries))
			for url := range state.Entries {
				urls = append(urls, url)
			}
			sort.Strings(urls)
			for _, url := range urls {
				cmd.Printf("%-60s %d\n", url, state.Entries[url])
			}
			return nil
		},
	}
}

func resolveStatePath(cfg config.Config) string {
	if urlcheckStateFile != "" {
		return urlcheckStateFile
	}
	if cfg.URLCheck.StateFile != "" {
		return cfg.URLCheck.StateFile
	}
	return paths.URLStateFile()
}

func printOutcomes(cmd *cobra.Command, outcomes []urlcheck.Outcome) {
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	faint := lipgloss.NewStyle().Faint(true)

	for _, o := range outcomes {
		prev := "n/a"
		if o.Known {
			prev = fmt.Sprintf("%d", o.Previous)
		}

		current := fmt.Sprintf("%d", o.Current)
		if o.Current == urlcheck.StatusUnreachable {
			current = o.Detail
		}

		marker := red.Render("✗")
		if o.Current == http.StatusOK {
			marker = green.Render("✓")
		}

		change := string(o.Change)
		if o.Notified {
			change += " (notified)"
		}

		cmd.Printf("%s %s\n", marker, o.URL)
		cmd.Println(faint.Render(fmt.Sprintf("  previous %s · current %s · %s", prev, current, change)))
	}
}
