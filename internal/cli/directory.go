package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/esfalsa/pallets/pkg/cache"
	"github.com/esfalsa/pallets/pkg/fsutil"
	"github.com/esfalsa/pallets/pkg/link"
)

// NewPrefixCmd creates the prefix command.
func NewPrefixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefix",
		Short: "Print the dump directory",
		Long:  "Print the absolute path of the directory dumps are stored in",
		Args:  cobra.NoArgs,
		RunE:  runPrefix,
	}

	return cmd
}

// NewInfoCmd creates the info command.
func NewInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show dump directory information",
		Long:  "Display the number, size and date range of downloaded dumps",
		Args:  cobra.NoArgs,
		RunE:  runInfo,
	}

	return cmd
}

// NewLinkCmd creates the link command.
func NewLinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link [PATH]",
		Short: "Link the dump directory into another location",
		Long: `Create a symbolic link to the dump directory.

If PATH does not exist the link is created there. If PATH is a directory the
link is created inside it as "` + fsutil.DumpsSubdir + `". Existing files are never replaced.
PATH defaults to the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLink,
	}

	return cmd
}

func openCacheOperation() (*cache.Operation, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	manager, err := openCache(cfg)
	if err != nil {
		return nil, err
	}
	return cache.NewOperation(manager), nil
}

func runPrefix(cmd *cobra.Command, _ []string) error {
	cacheOp, err := openCacheOperation()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), cacheOp.GetDirectory())
	return nil
}

func runInfo(cmd *cobra.Command, _ []string) error {
	cacheOp, err := openCacheOperation()
	if err != nil {
		return err
	}

	info, err := cacheOp.GetInfo()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), info)
	return nil
}

// Linker creates the links for the link command.
var Linker = link.NewLinker(nil)

func runLink(cmd *cobra.Command, args []string) error {
	target := DefaultLinkTarget
	if len(args) > 0 {
		target = args[0]
	}

	cacheOp, err := openCacheOperation()
	if err != nil {
		return err
	}

	linkPath, err := Linker.Link(cacheOp.GetDirectory(), target)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), linkPath)
	return nil
}
