// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	termMsgJust = 40
)

func levelColor(l slog.Level) int {
	switch {
	case l >= LevelCrit:
		return 35
	case l >= slog.LevelError:
		return 31
	case l >= slog.LevelWarn:
		return 33
	case l >= slog.LevelInfo:
		return 32
	case l >= slog.LevelDebug:
		return 36
	default:
		return 34
	}
}

func (h *TerminalHandler) format(b []byte, r slog.Record) []byte {
	lvl := strings.ToUpper(LevelString(r.Level))
	if len(lvl) > 4 {
		lvl = lvl[:4]
	}
	if h.useColor {
		b = append(b, "\x1b["...)
		b = strconv.AppendInt(b, int64(levelColor(r.Level)), 10)
		b = append(b, 'm')
		b = append(b, lvl...)
		b = append(b, "\x1b[0m"...)
	} else {
		b = append(b, lvl...)
	}
	for i := len(lvl); i < 4; i++ {
		b = append(b, ' ')
	}
	b = append(b, " ["...)
	b = r.Time.AppendFormat(b, termTimeFormat)
	b = append(b, "] "...)
	b = append(b, r.Message...)

	if h.attrs != nil || r.NumAttrs() > 0 {
		for i := utf8.RuneCountInString(r.Message); i < termMsgJust; i++ {
			b = append(b, ' ')
		}
	}
	for _, a := range h.attrs {
		b = h.appendAttr(b, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		b = h.appendAttr(b, a)
		return true
	})
	return append(b, '\n')
}

func (h *TerminalHandler) appendAttr(b []byte, a slog.Attr) []byte {
	b = append(b, ' ')
	if h.useColor {
		b = append(b, "\x1b[2m"...)
		b = append(b, a.Key...)
		b = append(b, "\x1b[0m"...)
	} else {
		b = append(b, a.Key...)
	}
	b = append(b, '=')
	return appendEscaped(b, formatValue(a.Value))
}

func formatValue(v slog.Value) string {
	v = replaceValue(v.Resolve(), true)
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindTime:
		return v.Time().Format(timeFormat)
	default:
		return v.String()
	}
}

// appendEscaped quotes s when it would otherwise break the key=value layout.
func appendEscaped(b []byte, s string) []byte {
	if s == "" {
		return append(b, `""`...)
	}
	if strings.ContainsAny(s, " =\"\t\r\n") {
		return strconv.AppendQuote(b, s)
	}
	return append(b, s...)
}
