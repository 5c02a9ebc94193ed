// Command condrangectl is a small demo CLI over the condrange factory and
// query methods: load a config, build a named condition, and report its
// last-active range and upcoming ranges relative to now or a given instant.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/daybreaklib/condrange"
	"github.com/spf13/cobra"
)

var (
	configPath string
	atFlag     string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "condrangectl",
		Short: "Inspect time-range conditions built from the locale factory",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a locale YAML config (defaults to built-in)")
	root.PersistentFlags().StringVar(&atFlag, "at", "", "query instant in RFC3339 (defaults to now)")

	root.AddCommand(newWeekdayCmd())
	root.AddCommand(newWeekendCmd())
	root.AddCommand(newWorkdayCmd())
	root.AddCommand(newSeasonCmd())
	root.AddCommand(newDayPartCmd())
	return root
}

func loadFactory() (*condrange.Factory, error) {
	if configPath == "" {
		return condrange.NewFactory(condrange.DefaultConfig()), nil
	}
	cfg, err := condrange.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return condrange.NewFactory(cfg), nil
}

func queryInstant() (time.Time, error) {
	if atFlag == "" {
		return time.Now(), nil
	}
	return time.Parse(time.RFC3339, atFlag)
}

func report(c *condrange.Condition, t time.Time) {
	fmt.Printf("contains(%s) = %v\n", t.Format(time.RFC3339), c.Contains(t))
	if r, ok := c.LastActiveRange(t); ok {
		fmt.Printf("last_active_range = %s\n", formatRange(r))
	} else {
		fmt.Println("last_active_range = none")
	}
	for _, r := range c.NextRanges(t).Ranges() {
		fmt.Printf("next_range = %s\n", formatRange(r))
	}
}

func formatRange(r condrange.DateRange) string {
	if r.End == nil {
		return fmt.Sprintf("[%s, +inf)", r.Start.Format(time.RFC3339))
	}
	return fmt.Sprintf("[%s, %s)", r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339))
}

func newWeekdayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weekday NAME",
		Short: "Report a named weekday condition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFactory()
			if err != nil {
				return err
			}
			c, err := f.Weekday(args[0])
			if err != nil {
				return err
			}
			t, err := queryInstant()
			if err != nil {
				return err
			}
			report(c, t)
			return nil
		},
	}
}

func newWeekendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weekend",
		Short: "Report the weekend condition",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFactory()
			if err != nil {
				return err
			}
			c, err := f.Weekend()
			if err != nil {
				return err
			}
			t, err := queryInstant()
			if err != nil {
				return err
			}
			report(c, t)
			return nil
		},
	}
}

func newWorkdayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "workday",
		Short: "Report the workday condition",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFactory()
			if err != nil {
				return err
			}
			c, err := f.Workday()
			if err != nil {
				return err
			}
			t, err := queryInstant()
			if err != nil {
				return err
			}
			report(c, t)
			return nil
		},
	}
}

func newSeasonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "season NAME",
		Short: "Report a named season condition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFactory()
			if err != nil {
				return err
			}
			c, err := f.Season(args[0])
			if err != nil {
				return err
			}
			t, err := queryInstant()
			if err != nil {
				return err
			}
			report(c, t)
			return nil
		},
	}
}

func newDayPartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "day-part NAME",
		Short: "Report a named day-part condition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFactory()
			if err != nil {
				return err
			}
			c, err := f.DayPart(args[0])
			if err != nil {
				return err
			}
			t, err := queryInstant()
			if err != nil {
				return err
			}
			report(c, t)
			return nil
		},
	}
}
