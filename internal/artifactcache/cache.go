// Package artifactcache persists the text rendering of a compiled lexer or
// parser table to disk, keyed by a hash of the spec it was built from, so
// repeated CLI invocations against an unchanged spec can skip rebuilding a
// table that's potentially expensive to construct (in particular, the
// canonical LR(1) collection). It deliberately caches only the
// human-readable String() rendering of a table rather than its internal
// automaton structures: the cache exists to speed up `gobio grammar`/`gobio
// lex` inspection output, not to persist a loadable Table/CompiledLexer.
package artifactcache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/dekarrin/rezi"

	"github.com/dekarrin/gobio/internal/icerrors"
)

// Entry is one cached artifact: the rendered text of a table or NFA/DFA
// table, tagged with the kind of build that produced it and the build ID
// of the Frontend (or standalone builder) that produced it.
type Entry struct {
	SpecHash string
	Kind     string
	BuildID  string
	Text     string
}

// HashSpec returns the cache key for the given spec source text.
func HashSpec(src string) string {
	sum := sha256.Sum256([]byte(src))
	return hex.EncodeToString(sum[:])
}

// pathFor returns the cache file path for key within dir.
func pathFor(dir, kind, key string) string {
	return filepath.Join(dir, kind+"-"+key+".rzc")
}

// Save writes entry to dir, creating dir if needed.
func Save(dir string, entry Entry) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return icerrors.Wrap(icerrors.TableIO, err, "create cache dir %q", dir)
	}

	data := rezi.EncBinary(entry)

	p := pathFor(dir, entry.Kind, entry.SpecHash)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return icerrors.Wrap(icerrors.TableIO, err, "write cache file %q", p)
	}
	return nil
}

// Load reads back a previously Saved entry for the given kind and spec
// hash. The second return is false (with a nil error) if no cached entry
// exists.
func Load(dir, kind, specHash string) (Entry, bool, error) {
	p := pathFor(dir, kind, specHash)

	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return Entry{}, false, nil
		}
		return Entry{}, false, icerrors.Wrap(icerrors.TableIO, err, "read cache file %q", p)
	}

	var entry Entry
	if _, err := rezi.DecBinary(data, &entry); err != nil {
		return Entry{}, false, icerrors.Wrap(icerrors.TableIO, err, "decode cache file %q", p)
	}
	return entry, true, nil
}

// Clear removes every cached artifact under dir.
func Clear(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return icerrors.Wrap(icerrors.TableIO, err, "read cache dir %q", dir)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".rzc" {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return icerrors.Wrap(icerrors.TableIO, err, "remove cache file %q", e.Name())
		}
	}
	return nil
}
