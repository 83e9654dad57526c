package mcppdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// DefaultFallbackDir returns the configured fallback output directory:
// $OUTPUT_DIR, or ~/pdf-output when unset.
func DefaultFallbackDir() string {
	if dir := os.Getenv("OUTPUT_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pdf-output"
	}
	return filepath.Join(home, "pdf-output")
}

// resolveOutputDir returns a usable output directory for the run. The
// requested directory is created if missing and write-probed; on failure the
// configured fallback is tried the same way and an advisory message is
// returned alongside it. If the fallback also fails, generation fails with
// ErrOutputUnwritable.
func (g *Generator) resolveOutputDir(requested string) (dir, advisory string, err error) {
	if requested == "" {
		requested = g.fallbackDir
	}

	if err := ensureWritable(requested); err == nil {
		g.log.Info().Str("dir", requested).Msg("using requested output directory")
		return requested, "", nil
	} else {
		g.log.Warn().Str("dir", requested).Err(err).Msg("requested output directory not usable")
	}

	if err := ensureWritable(g.fallbackDir); err != nil {
		g.log.Error().Str("dir", g.fallbackDir).Err(err).Msg("fallback output directory not usable")
		return "", "", fmt.Errorf("%w: requested %q, fallback %q", ErrOutputUnwritable, requested, g.fallbackDir)
	}

	advisory = fmt.Sprintf("Note: Saved to %s (requested directory %s was not accessible)", g.fallbackDir, requested)
	g.log.Warn().Msg(advisory)
	return g.fallbackDir, advisory, nil
}

// ensureWritable creates the directory if needed and confirms actual
// writability with a create-and-remove probe. Existence alone is not proof:
// the directory may be read-only or permission-restricted.
func ensureWritable(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	probe := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(probe, nil, 0o600); err != nil {
		return err
	}
	return os.Remove(probe)
}

// deriveFilename builds an output filename from the document title: keep
// alphanumerics, spaces, hyphens, and underscores, replace spaces with
// underscores, lower-case, and append a second-resolution timestamp. The
// timestamp makes repeated runs with identical titles produce unique names
// without a counter or lock.
func deriveFilename(title string, now time.Time) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		default:
			b.WriteRune('_')
		}
	}
	safe := strings.ToLower(b.String())
	return fmt.Sprintf("%s_%s.pdf", safe, now.Format("20060102_150405"))
}
