package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/rocket-loadout/internal/config"
	"github.com/Faultbox/rocket-loadout/internal/logger"
	"github.com/Faultbox/rocket-loadout/pkg/loadout"
)

func newDecodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <code>",
		Short: "Decode a loadout code",
		Long: `Decode prints the items and colors stored in a loadout code.
Use --format yaml or --format json to get a document that encode accepts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := loadout.Decode(args[0], loadout.WithVerify(a.cfg.Codec.Verify))
			if err != nil {
				return err
			}
			logger.Debug("decoded loadout",
				zap.Uint8("version", l.Header.Version),
				zap.Uint16("code_size", l.Header.CodeSize),
				zap.Bool("verified", a.cfg.Codec.Verify),
			)
			if l.Header.Version != loadout.CurrentVersion {
				logger.Warn("unexpected code version",
					zap.Uint8("version", l.Header.Version),
					zap.Int("expected", loadout.CurrentVersion),
				)
			}
			return writeLoadout(cmd.OutOrStdout(), l, a.cfg.Output.Format)
		},
	}
}

func writeLoadout(w io.Writer, l *loadout.Loadout, format string) error {
	switch format {
	case config.FormatYAML:
		return l.Document().WriteYAML(w)
	case config.FormatJSON:
		return l.Document().WriteJSON(w)
	default:
		return renderTable(w, l)
	}
}

func renderTable(w io.Writer, l *loadout.Loadout) error {
	if _, err := fmt.Fprintf(w, "Version %d, %d bytes, checksum %#02x\n",
		l.Header.Version, l.Header.CodeSize, l.Header.CRC); err != nil {
		return err
	}

	var data [][]string
	if l.BlueIsOrange {
		data = appendTeamRows(data, "Both", l.Blue)
	} else {
		data = appendTeamRows(data, "Blue", l.Blue)
		data = appendTeamRows(data, "Orange", l.Orange)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Team", "Slot", "Product", "Paint"})
	table.SetBorder(true)
	table.AppendBulk(data)
	table.Render()

	if l.BlueIsOrange {
		return writeColors(w, "Both", l.BlueColor)
	}
	if err := writeColors(w, "Blue", l.BlueColor); err != nil {
		return err
	}
	return writeColors(w, "Orange", l.OrangeColor)
}

func appendTeamRows(data [][]string, team string, t *loadout.TeamLoadout) [][]string {
	for _, item := range t.Items() {
		paint := ""
		if item.Painted() {
			paint = loadout.DisplayName(loadout.PaintName(item.PaintIndex))
		}
		data = append(data, []string{
			team,
			loadout.DisplayName(loadout.SlotName(item.SlotIndex)),
			strconv.Itoa(int(item.ProductID)),
			paint,
		})
	}
	return data
}

func writeColors(w io.Writer, team string, c loadout.ColorOverride) error {
	if !c.ShouldOverride {
		return nil
	}
	_, err := fmt.Fprintf(w, "%s colors: primary %s, secondary %s\n", team, c.Primary.Hex(), c.Secondary.Hex())
	return err
}
