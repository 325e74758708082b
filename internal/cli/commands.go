package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vibetimer/vibetimer/internal/timeutil"
)

const defaultServer = "http://localhost:3001"

type rootOptions struct {
	server string
	date   string
}

func (o *rootOptions) client() *Client { return NewClient(o.server) }

// New builds the vibectl command tree.
func New() *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "vibectl",
		Short:         "Track where your day went, one vibe at a time.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if o.server == "" {
				o.server = os.Getenv("VIBE_SERVER")
			}
			if o.server == "" {
				o.server = defaultServer
			}
			if o.date == "" {
				o.date = timeutil.DateKey(time.Now())
			}
			if _, err := timeutil.ParseDateKey(o.date); err != nil {
				return fmt.Errorf("invalid --date %q, want YYYY-MM-DD", o.date)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&o.server, "server", "", "server base URL (default $VIBE_SERVER or "+defaultServer+")")
	cmd.PersistentFlags().StringVarP(&o.date, "date", "d", "", "date to operate on, YYYY-MM-DD (default today)")

	addList(cmd, o)
	addAdd(cmd, o)
	addEdit(cmd, o)
	addDelete(cmd, o)
	addStart(cmd, o)
	addStop(cmd, o)
	addReset(cmd, o)
	addRunning(cmd, o)
	addSummary(cmd, o)

	return cmd
}

func addList(topLevel *cobra.Command, o *rootOptions) {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the day's vibes and their times",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := o.client().List(cmd.Context(), o.date)
			if err != nil {
				return err
			}
			renderEntries(o.date, entries, time.Now())
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addAdd(topLevel *cobra.Command, o *rootOptions) {
	var colorFlag string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a vibe to today",
		Example: `
vibectl add "Deep Work"
vibectl add Reading --color "#F59E0B"
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := o.client().Create(cmd.Context(), o.date, args[0], colorFlag)
			if err != nil {
				return err
			}
			fmt.Printf("added %s (%s)\n", entry.Name, entry.VibeID)
			return nil
		},
	}
	cmd.Flags().StringVar(&colorFlag, "color", "", "hex color (default next palette color)")
	topLevel.AddCommand(cmd)
}

func addEdit(topLevel *cobra.Command, o *rootOptions) {
	var nameFlag, colorFlag string
	cmd := &cobra.Command{
		Use:   "edit <vibe>",
		Short: "Rename or recolor a vibe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if nameFlag == "" && colorFlag == "" {
				return fmt.Errorf("nothing to change, pass --name or --color")
			}
			c := o.client()
			entry, err := c.ResolveVibe(cmd.Context(), o.date, args[0])
			if err != nil {
				return err
			}
			name := nameFlag
			if name == "" {
				name = entry.Name
			}
			clr := colorFlag
			if clr == "" {
				clr = entry.Color
			}
			if err := c.Edit(cmd.Context(), o.date, entry.VibeID, name, clr); err != nil {
				return err
			}
			fmt.Printf("updated %s\n", name)
			return nil
		},
	}
	cmd.Flags().StringVar(&nameFlag, "name", "", "new name")
	cmd.Flags().StringVar(&colorFlag, "color", "", "new hex color")
	topLevel.AddCommand(cmd)
}

func addDelete(topLevel *cobra.Command, o *rootOptions) {
	cmd := &cobra.Command{
		Use:     "delete <vibe>",
		Aliases: []string{"rm"},
		Short:   "Delete a vibe and its entry for the date",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := o.client()
			entry, err := c.ResolveVibe(cmd.Context(), o.date, args[0])
			if err != nil {
				return err
			}
			if err := c.Delete(cmd.Context(), o.date, entry.VibeID); err != nil {
				return err
			}
			fmt.Printf("deleted %s\n", entry.Name)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addStart(topLevel *cobra.Command, o *rootOptions) {
	cmd := &cobra.Command{
		Use:   "start <vibe>",
		Short: "Start timing a vibe, stopping whichever was running",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := o.client()
			entry, err := c.ResolveVibe(cmd.Context(), o.date, args[0])
			if err != nil {
				return err
			}
			started, err := c.Start(cmd.Context(), o.date, entry.VibeID)
			if err != nil {
				return err
			}
			renderRunning(started, time.Now())
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addStop(topLevel *cobra.Command, o *rootOptions) {
	cmd := &cobra.Command{
		Use:   "stop <vibe>",
		Short: "Stop timing a vibe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := o.client()
			entry, err := c.ResolveVibe(cmd.Context(), o.date, args[0])
			if err != nil {
				return err
			}
			stopped, err := c.Stop(cmd.Context(), o.date, entry.VibeID)
			if err != nil {
				return err
			}
			fmt.Printf("stopped %s at %s\n", stopped.Name, timeutil.FormatDuration(stopped.TotalTime))
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addReset(topLevel *cobra.Command, o *rootOptions) {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Zero every timer for today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset discards the day's times, pass --yes to confirm")
			}
			if err := o.client().Reset(cmd.Context(), o.date); err != nil {
				return err
			}
			fmt.Println("reset", o.date)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the reset")
	topLevel.AddCommand(cmd)
}

func addRunning(topLevel *cobra.Command, o *rootOptions) {
	cmd := &cobra.Command{
		Use:   "running",
		Short: "Show the currently running timer, if any",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := o.client().Running(cmd.Context())
			if err != nil {
				return err
			}
			renderRunning(entry, time.Now())
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addSummary(topLevel *cobra.Command, o *rootOptions) {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the day's time distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := o.client().Summary(cmd.Context(), o.date)
			if err != nil {
				return err
			}
			renderReport(report)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}
