package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/rocket-loadout/internal/logger"
	"github.com/Faultbox/rocket-loadout/pkg/loadout"
)

func newEncodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "encode <file|->",
		Short: "Encode a YAML or JSON loadout document",
		Long: `Encode reads a loadout document and prints its code. Pass - to read
the document from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			doc, err := loadout.ReadDocumentYAML(r)
			if err != nil {
				return err
			}
			l, err := doc.Loadout()
			if err != nil {
				return err
			}
			code, err := loadout.Encode(l)
			if err != nil {
				return err
			}
			logger.Debug("encoded loadout", zap.String("source", args[0]), zap.Int("length", len(code)))

			_, err = fmt.Fprintln(cmd.OutOrStdout(), code)
			return err
		},
	}
}
