package cli

import (
	"errors"

	flag "github.com/spf13/pflag"

	"github.com/rollnote/rollnote/internal/source"
	"github.com/rollnote/rollnote/internal/vault"
)

var errConvertArgs = errors.New("convert needs a source and a vault path")

func cmdConvert(o *IO, cfg vault.Config, workDir string, args []string) error {
	flagSet := flag.NewFlagSet("convert", flag.ContinueOnError)
	flagSet.SetOutput(o.errOut)
	flagSet.Usage = func() {
		o.Printf("Usage: rollnote convert <source> <vault>\n\n")
		o.Printf("Convert a zip archive or an extracted directory of sourcebook\n")
		o.Printf("articles into a vault of Obsidian notes. Both source forms yield\n")
		o.Printf("byte-identical vaults.\n")
	}

	if hasHelpFlag(args) {
		flagSet.Usage()

		return nil
	}

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	rest := flagSet.Args()
	if len(rest) != 2 {
		return errConvertArgs
	}

	src, dest := resolve(workDir, rest[0]), resolve(workDir, rest[1])

	return convertInto(o, cfg, src, dest)
}

// convertInto runs one conversion; verify reuses it for each source form.
func convertInto(o *IO, cfg vault.Config, src, dest string) error {
	reader, err := source.Open(src, cfg.Extension)
	if err != nil {
		return err
	}

	if closer, ok := reader.(*source.Zip); ok {
		defer func() { _ = closer.Close() }()
	}

	return vault.Convert(reader, dest, o.Warnf)
}

func hasHelpFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == helpFlag {
			return true
		}
	}

	return false
}
