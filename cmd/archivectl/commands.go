package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/voidarchive/archive/client"
	"github.com/voidarchive/archive/core"
	"github.com/voidarchive/archive/x/controller"
	"github.com/voidarchive/archive/x/util"
)

// ClientFactory builds the daemon client for the resolved endpoint
type ClientFactory func(endpoint string) client.Client

func defaultClientFactory(endpoint string) client.Client {
	return client.NewClient(endpoint)
}

type globalOptions struct {
	Endpoint string
	JSON     bool
}

func New(factory ClientFactory) *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "archivectl",
		Short:         "Drive a running archive daemon from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	endpoint := os.Getenv("ARCHIVE_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://localhost:8000"
	}
	cmd.PersistentFlags().StringVar(&opts.Endpoint, "endpoint", endpoint, "Daemon endpoint.")
	cmd.PersistentFlags().BoolVar(&opts.JSON, "json", false, "Output as JSON.")

	connect := func() client.Client {
		return factory(opts.Endpoint)
	}

	addState(cmd, opts, connect)
	addStats(cmd, opts, connect)
	addLogs(cmd, opts, connect)
	addCharacters(cmd, opts, connect)
	addNavigate(cmd, opts, connect)
	addBack(cmd, opts, connect)
	addFavorite(cmd, opts, connect)
	addSignIn(cmd, opts, connect)
	addSignOut(cmd, opts, connect)
	addResume(cmd, opts, connect)
	addVersion(cmd, opts)
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printSnapshot(w io.Writer, opts *globalOptions, snapshot controller.Snapshot) error {
	if opts.JSON {
		return writeJSON(w, snapshot)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "view:\t%s\n", snapshot.View)
	if snapshot.Source != core.ViewNone {
		fmt.Fprintf(tw, "source:\t%s\n", snapshot.Source)
	}
	fmt.Fprintf(tw, "authenticated:\t%t\n", snapshot.Authenticated)
	fmt.Fprintf(tw, "loading:\t%t\n", snapshot.Loading)
	if snapshot.SelectedCharacter != nil {
		fmt.Fprintf(tw, "character:\t%s (%s)\n", snapshot.SelectedCharacter.Name, snapshot.SelectedCharacter.ID)
	}
	if snapshot.SelectedLog != nil {
		fmt.Fprintf(tw, "log:\t%s (%s)\n", snapshot.SelectedLog.Title, snapshot.SelectedLog.ID)
	}
	fmt.Fprintf(tw, "characters:\t%d\n", len(snapshot.Characters))
	fmt.Fprintf(tw, "logs:\t%d\n", len(snapshot.Logs))
	if snapshot.Notice != "" {
		fmt.Fprintf(tw, "notice:\t%s\n", snapshot.Notice)
	}
	if snapshot.AuthError != "" {
		fmt.Fprintf(tw, "auth error:\t%s\n", snapshot.AuthError)
	}
	return tw.Flush()
}

func printLogs(w io.Writer, logs []core.ArchiveLog) {
	for _, l := range logs {
		favorite := " "
		if l.IsFavorite {
			favorite = "*"
		}
		fmt.Fprintf(w, "%s %s\t%s\t%s\t%s\t%s\n", favorite, l.ID, l.Title, l.Status, l.Timestamp, core.FormatWordCount(l.WordCount))
	}
}

func addState(topLevel *cobra.Command, opts *globalOptions, connect func() client.Client) {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Show the current controller snapshot.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := connect().State(cmd.Context())
			if err != nil {
				return err
			}
			return printSnapshot(cmd.OutOrStdout(), opts, snapshot)
		},
	}
	topLevel.AddCommand(cmd)
}

func addStats(topLevel *cobra.Command, opts *globalOptions, connect func() client.Client) {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show profile statistics.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := connect().Stats(cmd.Context())
			if err != nil {
				return err
			}
			if opts.JSON {
				return writeJSON(cmd.OutOrStdout(), stats)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logs: %d\nwords: %s\ncharacters: %d\n", stats.LogsCount, stats.WordCount, stats.CharactersCount)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addLogs(topLevel *cobra.Command, opts *globalOptions, connect func() client.Client) {
	sort := string(controller.SortByDate)

	cmd := &cobra.Command{
		Use:   "logs [query]",
		Short: "List logs grouped by status.",
		Example: `
archivectl logs
archivectl logs rain --sort words
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			result, err := connect().AllLogs(cmd.Context(), query, controller.LogSort(sort))
			if err != nil {
				return err
			}
			if opts.JSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "%d logs\n", result.Total)
			if len(result.Ongoing) > 0 {
				fmt.Fprintln(tw, "Ongoing")
				printLogs(tw, result.Ongoing)
			}
			if len(result.Finished) > 0 {
				fmt.Fprintln(tw, "Finished")
				printLogs(tw, result.Finished)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&sort, "sort", sort, "Sort order. One of 'date', 'title' or 'words'.")
	topLevel.AddCommand(cmd)
}

func addCharacters(topLevel *cobra.Command, opts *globalOptions, connect func() client.Client) {
	cmd := &cobra.Command{
		Use:   "characters [query]",
		Short: "List published characters.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			characters, err := connect().Characters(cmd.Context(), query)
			if err != nil {
				return err
			}
			if opts.JSON {
				return writeJSON(cmd.OutOrStdout(), characters)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, c := range characters {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Title, strings.Join(c.Tags, ","))
			}
			return tw.Flush()
		},
	}
	topLevel.AddCommand(cmd)
}

func addNavigate(topLevel *cobra.Command, opts *globalOptions, connect func() client.Client) {
	var character, log, from string
	var clearCharacter, clearLog bool

	views := make([]string, len(core.Views))
	for i, v := range core.Views {
		views[i] = string(v)
	}

	cmd := &cobra.Command{
		Use:       "navigate <view>",
		Short:     "Move the daemon to another view.",
		Long:      "Move the daemon to another view.\n\nViews: " + strings.Join(views, ", "),
		ValidArgs: views,
		Example: `
archivectl navigate character_detail --character c1
archivectl navigate log_detail --log l1 --from all_logs
archivectl navigate dashboard --clear-log
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view := core.View(args[0])
			if !view.IsValid() {
				return fmt.Errorf("unknown view %q", args[0])
			}

			payload := map[string]any{}
			switch {
			case clearCharacter:
				payload["character"] = nil
			case character != "":
				payload["character"] = character
			}
			switch {
			case clearLog:
				payload["log"] = nil
			case log != "":
				payload["log"] = log
			}
			if from != "" {
				payload["from"] = from
			}

			snapshot, err := connect().Navigate(cmd.Context(), view, payload)
			if err != nil {
				return err
			}
			return printSnapshot(cmd.OutOrStdout(), opts, snapshot)
		},
	}
	cmd.Flags().StringVar(&character, "character", "", "Select the character with this id.")
	cmd.Flags().StringVar(&log, "log", "", "Select the log with this id.")
	cmd.Flags().StringVar(&from, "from", "", "Record the view this navigation came from.")
	cmd.Flags().BoolVar(&clearCharacter, "clear-character", false, "Clear the selected character.")
	cmd.Flags().BoolVar(&clearLog, "clear-log", false, "Clear the selected log.")
	cmd.MarkFlagsMutuallyExclusive("character", "clear-character")
	cmd.MarkFlagsMutuallyExclusive("log", "clear-log")
	topLevel.AddCommand(cmd)
}

func addBack(topLevel *cobra.Command, opts *globalOptions, connect func() client.Client) {
	cmd := &cobra.Command{
		Use:   "back",
		Short: "Return to the parent of the current view.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := connect().Back(cmd.Context())
			if err != nil {
				return err
			}
			return printSnapshot(cmd.OutOrStdout(), opts, snapshot)
		},
	}
	topLevel.AddCommand(cmd)
}

func addFavorite(topLevel *cobra.Command, opts *globalOptions, connect func() client.Client) {
	cmd := &cobra.Command{
		Use:   "favorite <log id>",
		Short: "Toggle the favorite flag of a log.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := connect().ToggleFavorite(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if opts.JSON {
				return writeJSON(cmd.OutOrStdout(), log)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s favorite: %t\n", log.Title, log.IsFavorite)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addSignIn(topLevel *cobra.Command, opts *globalOptions, connect func() client.Client) {
	var email, password string

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign the daemon in.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("ARCHIVE_PASSWORD")
			}
			snapshot, err := connect().SignIn(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			return printSnapshot(cmd.OutOrStdout(), opts, snapshot)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email.")
	cmd.Flags().StringVar(&password, "password", "", "Account password. Falls back to $ARCHIVE_PASSWORD.")
	_ = cmd.MarkFlagRequired("email")
	topLevel.AddCommand(cmd)
}

func addSignOut(topLevel *cobra.Command, opts *globalOptions, connect func() client.Client) {
	cmd := &cobra.Command{
		Use:   "signout",
		Short: "End the daemon session.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := connect().SignOut(cmd.Context())
			if err != nil {
				return err
			}
			return printSnapshot(cmd.OutOrStdout(), opts, snapshot)
		},
	}
	topLevel.AddCommand(cmd)
}

func addResume(topLevel *cobra.Command, opts *globalOptions, connect func() client.Client) {
	cmd := &cobra.Command{
		Use:   "resume <token>",
		Short: "Restore a session from a previously issued token.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := connect().Resume(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printSnapshot(cmd.OutOrStdout(), opts, snapshot)
		},
	}
	topLevel.AddCommand(cmd)
}

func addVersion(topLevel *cobra.Command, opts *globalOptions) {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print archivectl version.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := util.GetBuildInfo()
			if opts.JSON {
				return writeJSON(cmd.OutOrStdout(), info)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, %s)\n", info.Version, info.GitHash, info.GoVersion)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}
