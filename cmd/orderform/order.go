package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-orderform/pkg/order"
	"github.com/goliatone/go-orderform/pkg/renderers/tui"
)

func newOrderCmd() *cobra.Command {
	var (
		format      string
		maxAttempts int
	)
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Place an order interactively in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch tui.OutputFormat(format) {
			case tui.OutputFormatPrettyText, tui.OutputFormatJSON:
			default:
				return fmt.Errorf("unknown format %q (want pretty or json)", format)
			}

			r := tui.New(
				tui.WithOutput(cmd.ErrOrStderr()),
				// Prompts go to stderr so stdout only carries the result.
				tui.WithStdio(os.Stdin, os.Stderr, os.Stderr),
				tui.WithOutputFormat(tui.OutputFormat(format)),
				tui.WithMaxAttempts(maxAttempts),
			)
			out, err := r.Run(cmd.Context(), order.NewForm())
			switch {
			case errors.Is(err, tui.ErrDeclined):
				fmt.Fprintln(cmd.ErrOrStderr(), "Order not placed.")
				return nil
			case err != nil:
				return err
			}
			logger.Debug("order placed from terminal", zap.String("format", format))
			if !bytes.HasSuffix(out, []byte("\n")) {
				out = append(out, '\n')
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(tui.OutputFormatPrettyText), "Output format: pretty or json")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 0, "Give up after this many invalid names (0 = keep asking)")
	return cmd
}
