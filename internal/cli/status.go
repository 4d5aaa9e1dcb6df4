package cli

import (
	"fmt"
	"io"

	"github.com/NikitaCOEUR/promptkit/internal/status"
)

// StatusParams contains parameters for the Status command
type StatusParams struct {
	GrammarPath  string
	SettingsPath string
	Out          io.Writer
}

// Status displays the grammar, settings and history in use
func Status(params StatusParams) error {
	data, err := status.CollectAll(status.Params{
		GrammarPath:  params.GrammarPath,
		SettingsPath: params.SettingsPath,
	})
	if err != nil {
		return fmt.Errorf("failed to collect status data: %w", err)
	}

	_, _ = fmt.Fprintln(output(params.Out), status.Render(data))
	return nil
}
