package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/ideabook/pkg/notify"
)

// ConfirmOptions
type ConfirmOptions struct {
	Yes bool
}

func AddConfirmArgs(cmd *cobra.Command, o *ConfirmOptions) {
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false,
		"Answer yes to every confirmation.")
}

// Confirmer prompts on the terminal unless --yes was given.
func (o *ConfirmOptions) Confirmer() notify.Confirmer {
	if o.Yes {
		return notify.Always(true)
	}
	return notify.Prompt{}
}
