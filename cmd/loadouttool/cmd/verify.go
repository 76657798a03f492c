package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/rocket-loadout/pkg/loadout"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <code>",
		Short: "Check a code's size and checksum",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := loadout.Verify(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: version %d, %d bytes, checksum %#02x\n",
				h.Version, h.CodeSize, h.CRC)
			return err
		},
	}
}
