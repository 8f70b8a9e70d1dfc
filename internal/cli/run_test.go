package cli

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trollArticle = "# Monstrous Lair #2: Troll Bridge\n" +
	"Thank you to our patrons.\n" +
	"Monstrous Lair #2 Troll Bridge. © Raging Swan Press\n" +
	"## Under The Bridge\n" +
	"1. Gnawed bones\n" +
	"2. A rusted cauldron\n"

// writeArchiveDir lays out a directory source under the CLI's working dir and
// returns its relative path.
func writeArchiveDir(t *testing.T, cli *CLI, articles map[string]string) string {
	t.Helper()

	dir := filepath.Join(cli.Dir, "archive")
	require.NoError(t, os.MkdirAll(dir, 0o750))

	for stem, text := range articles {
		require.NoError(t, os.WriteFile(filepath.Join(dir, stem+".txt"), []byte(text), 0o600))
	}

	return "archive"
}

// writeArchiveZip packs the same articles as a zip source and returns its
// relative path.
func writeArchiveZip(t *testing.T, cli *CLI, articles map[string]string) string {
	t.Helper()

	file, err := os.Create(filepath.Join(cli.Dir, "archive.zip"))
	require.NoError(t, err)

	writer := zip.NewWriter(file)

	for stem, text := range articles {
		entry, createErr := writer.Create(stem + ".txt")
		require.NoError(t, createErr)

		_, writeErr := entry.Write([]byte(text))
		require.NoError(t, writeErr)
	}

	require.NoError(t, writer.Close())
	require.NoError(t, file.Close())

	return "archive.zip"
}

func TestRunWithoutArgsPrintsUsage(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)

	stdout, _, code := cli.Run()
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "Usage: rollnote")
}

func TestRunUnknownCommand(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)

	_, stderr, code := cli.Run("frobnicate")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown command: frobnicate")
}

func TestConvertWritesVault(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)
	src := writeArchiveDir(t, cli, map[string]string{"02 Troll Bridge": trollArticle})

	cli.MustRun("convert", src, "vault")

	data, err := os.ReadFile(filepath.Join(cli.Dir, "vault", "02 Troll Bridge.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "| 1 | **Gnawed bones** `dice: [[1d2]]` |")
}

func TestConvertWarningsDoNotChangeExitCode(t *testing.T) {
	t.Parallel()

	malformed := "# Monstrous Lair #3: Loot Room\n" +
		"Monstrous Lair #3 Loot Room. © Raging Swan Press\n" +
		"## Loot\n" +
		"| a | b |\n|---|---|\n| lonely |\n"

	cli := NewCLI(t)
	src := writeArchiveDir(t, cli, map[string]string{"03 Loot Room": malformed})

	_, stderr, code := cli.Run("convert", src, "vault")
	assert.Equal(t, 0, code, "warnings are not failures")
	assert.Contains(t, stderr, "warning: article 03 Loot Room")
	assert.Contains(t, stderr, "malformed table")
}

func TestConvertMissingSource(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)

	stderr := cli.MustFail("convert", "no-such-archive", "vault")
	assert.Contains(t, stderr, "source does not exist")
}

func TestConvertNeedsTwoArgs(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)

	stderr := cli.MustFail("convert", "only-one")
	assert.Contains(t, stderr, "convert needs a source and a vault path")
}

func TestVerifyAcceptsEquivalentSources(t *testing.T) {
	t.Parallel()

	articles := map[string]string{"02 Troll Bridge": trollArticle}

	cli := NewCLI(t)
	dir := writeArchiveDir(t, cli, articles)
	archive := writeArchiveZip(t, cli, articles)

	stdout := cli.MustRun("verify", "--dir", dir, "--zip", archive, "--out", "out")
	assert.Contains(t, stdout, "ok: dir and zip outputs are identical")
}

func TestVerifyRejectsDivergingSources(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)
	dir := writeArchiveDir(t, cli, map[string]string{"02 Troll Bridge": trollArticle})
	archive := writeArchiveZip(t, cli, map[string]string{
		"02 Troll Bridge": strings.Replace(trollArticle, "Gnawed bones", "Polished bones", 1),
	})

	stderr := cli.MustFail("verify", "--dir", dir, "--zip", archive, "--out", "out")
	assert.Contains(t, stderr, "outputs differ")
	assert.Contains(t, stderr, "content differs: 02 Troll Bridge.md")
}

func TestVerifyAgainstBaseline(t *testing.T) {
	t.Parallel()

	articles := map[string]string{"02 Troll Bridge": trollArticle}

	cli := NewCLI(t)
	dir := writeArchiveDir(t, cli, articles)
	archive := writeArchiveZip(t, cli, articles)

	cli.MustRun("convert", dir, "baseline")

	stdout := cli.MustRun("verify",
		"--dir", dir, "--zip", archive, "--out", "out", "--baseline", "baseline")
	assert.Contains(t, stdout, "ok: outputs match baseline")
}

func TestVerifyRequiresItsFlags(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)

	stderr := cli.MustFail("verify", "--dir", "a")
	assert.Contains(t, stderr, "verify needs --dir, --zip, and --out")
}

func TestPromoteReplacesBaseline(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)
	src := writeArchiveDir(t, cli, map[string]string{"02 Troll Bridge": trollArticle})

	cli.MustRun("convert", src, "latest")

	stdout := cli.MustRun("promote", "--out", "latest", "--baseline", "baseline", "-y")
	assert.Contains(t, stdout, "baseline replaced:")

	_, err := os.Stat(filepath.Join(cli.Dir, "baseline", "02 Troll Bridge.md"))
	assert.NoError(t, err)
}

func TestPromoteRequiresItsFlags(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)

	stderr := cli.MustFail("promote", "-y")
	assert.Contains(t, stderr, "promote needs --out and --baseline")
}

func TestPrintConfigDefaults(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)

	stdout := cli.MustRun("print-config")
	assert.Contains(t, stdout, `"extension": "txt"`)
	assert.NotContains(t, stdout, "# project config:")
}

func TestPrintConfigReadsProjectFile(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)

	config := "{\n  // articles ship as markdown in this archive\n  \"extension\": \"md\",\n}\n"
	require.NoError(t, os.WriteFile(
		filepath.Join(cli.Dir, ".rollnote.json"), []byte(config), 0o600))

	stdout := cli.MustRun("print-config")
	assert.Contains(t, stdout, `"extension": "md"`)
	assert.Contains(t, stdout, "# project config:")
}

func TestExtensionFlagOverridesConfig(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)

	stdout := cli.MustRun("--extension", "md", "print-config")
	assert.Contains(t, stdout, `"extension": "md"`)
}

func TestExtensionFlagSelectsArticles(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)

	dir := filepath.Join(cli.Dir, "archive")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "02 Troll Bridge.md"), []byte(trollArticle), 0o600))

	cli.MustRun("--extension", "md", "convert", "archive", "vault")

	_, err := os.Stat(filepath.Join(cli.Dir, "vault", "02 Troll Bridge.md"))
	assert.NoError(t, err)
}

func TestExplicitConfigMustExist(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)

	stderr := cli.MustFail("--config", "missing.json", "print-config")
	assert.Contains(t, stderr, "config file not found")
}
