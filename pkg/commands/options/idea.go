package options

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/ideabook/pkg/idea"
)

// IdeaOptions holds the editable fields of an idea.
type IdeaOptions struct {
	Name     string
	Tags     string
	Body     string
	BodyFile string
}

func AddIdeaArgs(cmd *cobra.Command, o *IdeaOptions) {
	cmd.Flags().StringVarP(&o.Tags, "tags", "t", "",
		"Comma separated tags, example: --tags=\"fantasy, epic\".")
	cmd.Flags().StringVarP(&o.Body, "body", "b", "",
		"Text of the idea.")
	cmd.Flags().StringVarP(&o.BodyFile, "body-file", "f", "",
		`Read the text of the idea from a file, "-" for stdin.`)
}

func AddRenameArg(cmd *cobra.Command, o *IdeaOptions) {
	cmd.Flags().StringVar(&o.Name, "name", "",
		"New name for the idea.")
}

// TagList splits the tags flag.
func (o *IdeaOptions) TagList() []string {
	return idea.SplitTags(o.Tags)
}

// ReadBody resolves the body from --body or --body-file.
func (o *IdeaOptions) ReadBody(stdin io.Reader) (string, error) {
	switch o.BodyFile {
	case "":
		return o.Body, nil
	case "-":
		b, err := io.ReadAll(stdin)
		return strings.TrimRight(string(b), "\n"), err
	default:
		b, err := os.ReadFile(o.BodyFile)
		return strings.TrimRight(string(b), "\n"), err
	}
}
