package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/esfalsa/pallets/internal/logger"
	"github.com/esfalsa/pallets/pkg/download"
	"github.com/esfalsa/pallets/pkg/dump"
)

type downloadOptions struct {
	kind       string
	date       string
	dateFormat string
	user       string
	force      bool
}

// NewDownloadCmd creates the download command.
func NewDownloadCmd() *cobra.Command {
	opts := &downloadOptions{}

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download a daily data dump",
		Long: `Download one daily data dump into the dump directory.

The date defaults to today (UTC). A nation name or email address must be given
with --user, settings.user or the PALLETS_USER environment variable so that
requests can be attributed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDownload(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.kind, "type", "t", "", "Dump type (regions, nations)")
	cmd.Flags().StringVarP(&opts.date, "date", "d", "", "Dump date (default: today)")
	cmd.Flags().StringVarP(&opts.dateFormat, "date-format", "f", "", "strftime format of --date (default: settings.date_format)")
	cmd.Flags().StringVarP(&opts.user, "user", "u", "", "Nation name or email address identifying you")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite a dump that is already present")

	return cmd
}

func runDownload(cmd *cobra.Command, opts *downloadOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	kind, err := parseKind(opts.kind)
	if err != nil {
		return err
	}

	date := today()
	if opts.date != "" {
		if date, err = parseDate(opts.date, opts.dateFormat, cfg); err != nil {
			return err
		}
	}

	user := opts.user
	if user == "" {
		user = cfg.GetUser()
	}
	userAgent, err := download.UserAgent(Version, user)
	if err != nil {
		return err
	}

	manager, err := openCache(cfg)
	if err != nil {
		return err
	}

	rec := dump.NewRecord(kind, date)
	logger.Info("Downloading dump", logger.Fields{"dump": rec.String()})

	dl := download.NewManager(cfg.Settings.HTTPTimeout, userAgent, cfg.Settings.BaseURL)
	path, err := dl.Fetch(cmd.Context(), download.Request{
		Kind:  kind,
		Date:  date,
		Dir:   manager.Directory(),
		Force: opts.force,
	})
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", rec, err)
	}

	logger.Success("Downloaded dump", logger.Fields{"dump": rec.String(), "path": path})
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
