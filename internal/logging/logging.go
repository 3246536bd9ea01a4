// Package logging builds the text logger every command uses.
package logging

import (
	"io"
	"log/slog"
	"path/filepath"
)

// New returns a text logger that prints short source file names. The level
// can be changed later through the returned LevelVar.
func New(w io.Writer, level slog.Level) (*slog.Logger, *slog.LevelVar) {
	lv := new(slog.LevelVar)
	lv.Set(level)
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource:   true,
		Level:       lv,
		ReplaceAttr: shortSource,
	}))
	return logger, lv
}

func shortSource(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.SourceKey {
		if source, _ := a.Value.Any().(*slog.Source); source != nil {
			source.File = filepath.Base(source.File)
		}
	}
	return a
}
