// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"

	"github.com/invowk/pyshim/internal/config"
)

// newLogger returns a slog.Logger backed by a charmbracelet/log handler that
// writes to w. Unknown levels fall back to warn.
func newLogger(w io.Writer, level config.LogLevel) *slog.Logger {
	lvl, err := log.ParseLevel(string(level))
	if err != nil {
		lvl = log.WarnLevel
	}

	logger := log.NewWithOptions(w, log.Options{
		Prefix: config.AppName,
		Level:  lvl,
	})

	styles := log.DefaultStyles()
	styles.Prefix = VerboseStyle.Bold(true)
	styles.Levels[log.WarnLevel] = styles.Levels[log.WarnLevel].Foreground(ColorWarning)
	styles.Levels[log.ErrorLevel] = styles.Levels[log.ErrorLevel].Foreground(ColorError)
	logger.SetStyles(styles)

	return slog.New(logger)
}
