package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/rollnote/rollnote/internal/baseline"
	"github.com/rollnote/rollnote/internal/vault"
)

var (
	errVerifyArgs  = errors.New("verify needs --dir, --zip, and --out")
	errEquivalence = errors.New("outputs differ")
)

// cmdVerify is the regression harness: it converts the same logical archive
// from both source forms and requires the resulting trees to be identical,
// optionally also requiring each to match a known-good baseline. Any
// difference is a hard failure.
func cmdVerify(o *IO, cfg vault.Config, workDir string, args []string) error {
	flagSet := flag.NewFlagSet("verify", flag.ContinueOnError)
	flagSet.SetOutput(o.errOut)
	flagSet.Usage = func() {
		o.Printf("Usage: rollnote verify --dir <source-dir> --zip <source-zip> --out <dir> [--baseline <dir>]\n\n")
		o.Printf("Convert from a directory source into <out>/dir and from a zip source\n")
		o.Printf("into <out>/zip, then require both trees to be byte-identical. With\n")
		o.Printf("--baseline, each tree must also match the baseline.\n")
	}

	srcDir := flagSet.String("dir", "", "Directory form of the source archive")
	srcZip := flagSet.String("zip", "", "Zip form of the source archive")
	out := flagSet.String("out", "", "Directory the fresh outputs are written under")
	base := flagSet.String("baseline", "", "Known-good output tree to compare against")

	if hasHelpFlag(args) {
		flagSet.Usage()

		return nil
	}

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if *srcDir == "" || *srcZip == "" || *out == "" {
		return errVerifyArgs
	}

	outRoot := resolve(workDir, *out)
	fromDir := filepath.Join(outRoot, "dir")
	fromZip := filepath.Join(outRoot, "zip")

	runs := []struct {
		src, dest string
	}{
		{resolve(workDir, *srcDir), fromDir},
		{resolve(workDir, *srcZip), fromZip},
	}

	for _, run := range runs {
		// Fresh output every time; stale notes would mask regressions.
		if err := os.RemoveAll(run.dest); err != nil {
			return fmt.Errorf("clear %s: %w", run.dest, err)
		}

		if err := convertInto(o, cfg, run.src, run.dest); err != nil {
			return err
		}
	}

	if err := mustMatch(o, fromDir, fromZip); err != nil {
		return err
	}

	o.Println("ok: dir and zip outputs are identical")

	if *base != "" {
		baseRoot := resolve(workDir, *base)

		for _, tree := range []string{fromDir, fromZip} {
			if err := mustMatch(o, tree, baseRoot); err != nil {
				return err
			}
		}

		o.Println("ok: outputs match baseline", *base)
	}

	return nil
}

func mustMatch(o *IO, got, want string) error {
	differences, err := baseline.Diff(got, want)
	if err != nil {
		return err
	}

	if len(differences) == 0 {
		return nil
	}

	for _, diff := range differences {
		o.ErrPrintln(diff)
	}

	return fmt.Errorf("%w: %s vs %s (%d differences)", errEquivalence, got, want, len(differences))
}
