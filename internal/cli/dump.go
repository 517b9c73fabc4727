package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/esfalsa/pallets/internal/logger"
	"github.com/esfalsa/pallets/pkg/cache"
	"github.com/esfalsa/pallets/pkg/config"
	"github.com/esfalsa/pallets/pkg/dump"
)

// dumpFlags are the flags shared by commands addressing one existing dump.
type dumpFlags struct {
	kind       string
	date       string
	dateFormat string
}

func (f *dumpFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.kind, "type", "t", "", "Dump type (regions, nations)")
	cmd.Flags().StringVarP(&f.date, "date", "d", "", "Dump date")
	cmd.Flags().StringVarP(&f.dateFormat, "date-format", "f", "", "strftime format of --date (default: settings.date_format)")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("date")
}

func (f *dumpFlags) record(cfg *config.Config) (dump.Record, error) {
	kind, err := parseKind(f.kind)
	if err != nil {
		return dump.Record{}, err
	}
	date, err := parseDate(f.date, f.dateFormat, cfg)
	if err != nil {
		return dump.Record{}, err
	}
	return dump.NewRecord(kind, date), nil
}

// NewDeleteCmd creates the delete command.
func NewDeleteCmd() *cobra.Command {
	flags := &dumpFlags{}

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a downloaded dump",
		Long:  "Remove one dump from the dump directory. Deleting a dump that is not present is an error.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runDelete(flags)
		},
	}
	flags.register(cmd)

	return cmd
}

// NewPathCmd creates the path command.
func NewPathCmd() *cobra.Command {
	flags := &dumpFlags{}

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the path of a downloaded dump",
		Long:  "Print the local file path of one dump. Fails when the dump has not been downloaded.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPath(cmd, flags)
		},
	}
	flags.register(cmd)

	return cmd
}

func loadDumpTarget(flags *dumpFlags) (*cache.DefaultManager, dump.Record, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, dump.Record{}, err
	}
	rec, err := flags.record(cfg)
	if err != nil {
		return nil, dump.Record{}, err
	}
	manager, err := openCache(cfg)
	if err != nil {
		return nil, dump.Record{}, err
	}
	return manager, rec, nil
}

func runDelete(flags *dumpFlags) error {
	manager, rec, err := loadDumpTarget(flags)
	if err != nil {
		return err
	}

	if err := manager.Delete(rec.Kind, rec.Date); err != nil {
		return fmt.Errorf("failed to delete %s: %w", rec, err)
	}

	logger.Success("Deleted dump", logger.Fields{"dump": rec.String()})
	return nil
}

func runPath(cmd *cobra.Command, flags *dumpFlags) error {
	manager, rec, err := loadDumpTarget(flags)
	if err != nil {
		return err
	}

	path, err := manager.Locate(rec.Kind, rec.Date)
	if err != nil {
		return fmt.Errorf("%s: %w", rec, err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
