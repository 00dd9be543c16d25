package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/etkecc/emailscore/internal/verify"
)

func newVerifyCmd() *cobra.Command {
	var noExternal bool
	cmd := &cobra.Command{
		Use:   "verify <email>...",
		Short: "Verify email addresses and print results as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cfg)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			opts := verify.CallOptions{SkipExternal: noExternal}
			for _, address := range args {
				if err := enc.Encode(a.verifier.VerifyWith(cmd.Context(), address, opts)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noExternal, "no-external", false, "Do not call the external provider")

	return cmd
}
