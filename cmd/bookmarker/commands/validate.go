package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matttelliott/bookmarker-ai/internal/foundation"
	"github.com/matttelliott/bookmarker-ai/internal/foundation/errors"
	"github.com/matttelliott/bookmarker-ai/internal/schema"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct {
	Kind    string `arg:"" help:"Entity kind (user, bookmark, tag, persona, user-bookmark, user-bookmark-tag, bookmark-tag)"`
	File    string `arg:"" help:"JSON document to validate ('-' reads stdin)" default:"-"`
	Variant string `help:"Entity shape to validate" enum:"record,create,update" default:"record"`
}

func (v *ValidateCmd) Run(g *Global, _ *CLI) error {
	data, err := v.read(g.Stdin)
	if err != nil {
		return err
	}

	value, err := foundation.ToTuple(schema.Parse(v.Kind, schema.Variant(v.Variant), data))
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to encode entity").Build()
	}
	_, _ = fmt.Fprintf(g.Stdout, "%s %s is valid\n%s\n", v.Kind, v.Variant, out)
	return nil
}

func (v *ValidateCmd) read(in io.Reader) ([]byte, error) {
	if v.File == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read stdin").Build()
		}
		return data, nil
	}
	// #nosec G304 -- path is an explicit CLI argument
	data, err := os.ReadFile(v.File)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read document").
			WithContext("path", v.File).
			Build()
	}
	return data, nil
}
