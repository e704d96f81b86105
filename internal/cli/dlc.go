package cli

import (
	"fmt"

	"github.com/arthur-debert/apploader/pkg/filesystem"
	"github.com/arthur-debert/apploader/pkg/manifest"
	"github.com/arthur-debert/apploader/pkg/ui/styles"
	"github.com/spf13/cobra"
)

func newDlcCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dlc",
		Short: MsgDlcShort,
	}
	cmd.AddCommand(newDlcListCmd(opts))
	return cmd
}

func newDlcListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list <program-id-base>",
		Short:   MsgDlcListShort,
		Long:    MsgDlcListLong,
		Example: MsgDlcListExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProgramIDBase(args[0])
			if err != nil {
				return err
			}

			_, p, err := opts.load()
			if err != nil {
				return err
			}

			fs := filesystem.NewOS()
			w := cmd.OutOrStdout()
			title := styles.Render("TitleID", fmt.Sprintf("%016x", id))

			manifestPath := p.ManifestPath(id)
			if !filesystem.Exists(fs, manifestPath) {
				fmt.Fprintf(w, MsgNoManifest, title, styles.Render("FilePath", manifestPath))
				return nil
			}

			containers, err := manifest.Load(fs, manifestPath)
			if err != nil {
				return err
			}

			fmt.Fprintln(w, styles.Render("Header", fmt.Sprintf(MsgManifestHeader, title)))

			var enabled, disabled, missing int
			for _, c := range containers {
				fmt.Fprintf(w, MsgContainerFormat, styles.Render("FilePath", c.ContainerPath))
				if len(c.Entries) == 0 {
					fmt.Fprintln(w, styles.Render("Indent", styles.Render("Muted", MsgEmptyContainer)))
					continue
				}

				present := filesystem.Exists(fs, c.ContainerPath)
				for _, entry := range c.Entries {
					status := styles.Render("Enabled", MsgStatusEnabled)
					switch {
					case !present:
						status = styles.Render("Missing", MsgStatusMissing)
						missing++
					case !entry.Enabled:
						status = styles.Render("Disabled", MsgStatusDisabled)
						disabled++
					default:
						enabled++
					}
					fmt.Fprintln(w, styles.Render("Indent", fmt.Sprintf(MsgEntryFormat,
						styles.Render("TitleID", fmt.Sprintf("%016x", entry.TitleID)),
						fmt.Sprintf("%-8s", status),
						entry.InnerPath)))
				}
			}

			fmt.Fprintf(w, MsgManifestSummary, enabled, disabled, missing)
			return nil
		},
	}
}
