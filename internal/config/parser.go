package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Comment lines start with one of these as their first non-blank character.
const commentChars = "%#*=!"

// ParseKeywords consumes the legacy keyword input stream and applies every
// recognized keyword to cfg. The format is flat: whitespace/line-delimited
// `keyword value...` pairs in any order, any number of times; the last
// occurrence of a keyword wins. Comment lines are skipped entirely and
// unrecognized keywords are ignored.
//
// Malformed values for a recognized keyword are non-fatal: the returned
// warnings name the keyword, the field keeps its previous value, and
// parsing continues. The stream is consumed to EOF; when r is seekable the
// position is restored afterwards so other readers can re-scan the stream.
func ParseKeywords(r io.Reader, cfg *Config) []string {
	if seeker, ok := r.(io.Seeker); ok {
		if start, err := seeker.Seek(0, io.SeekCurrent); err == nil {
			defer seeker.Seek(start, io.SeekStart)
		}
	}

	tz := newTokenizer(r)
	var warnings []string
	warnf := func(format string, args ...interface{}) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	for {
		tok, ok := tz.next()
		if !ok {
			break
		}
		keyword := strings.ToLower(strings.TrimSuffix(tok, ":"))

		switch keyword {
		case "stt":
			if val, ok := tz.next(); !ok {
				warnf("stt: missing value")
			} else if mode, err := ParseSTTMode(val); err != nil {
				warnf("stt: %v", err)
			} else {
				cfg.STT = mode
			}
		case "do_she":
			parseFlagInto(tz, "do_she", &cfg.SHE, warnf)
		case "jsite":
			parseFlagInto(tz, "jsite", &cfg.SiteCurrentFromFile, warnf)
		case "jvecfile":
			if val, ok := tz.next(); !ok {
				warnf("jvecfile: missing value")
			} else {
				cfg.JVecFile = val
			}
		case "jvec":
			var v [3]float64
			bad := false
			for c := 0; c < 3; c++ {
				val, ok := tz.next()
				if !ok {
					warnf("jvec: expected 3 components, got %d", c)
					bad = true
					break
				}
				f, err := strconv.ParseFloat(val, 64)
				if err != nil {
					warnf("jvec: invalid component %q", val)
					bad = true
					break
				}
				v[c] = f
			}
			if !bad {
				cfg.JVec = v
			}
		case "adibeta":
			parseFloatInto(tz, "adibeta", &cfg.AdiBeta, warnf)
		case "spin_pol":
			parseFloatInto(tz, "spin_pol", &cfg.SpinPolarization, warnf)
		case "she_angle":
			parseFloatInto(tz, "she_angle", &cfg.SHEAngle, warnf)
		case "thick_ferro":
			parseFloatInto(tz, "thick_ferro", &cfg.FerroThickness, warnf)
		default:
			// Not ours; the full input file carries keywords for many
			// other subsystems.
		}
	}

	return warnings
}

func parseFloatInto(tz *tokenizer, keyword string, dst *float64, warnf func(string, ...interface{})) {
	val, ok := tz.next()
	if !ok {
		warnf("%s: missing value", keyword)
		return
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		warnf("%s: invalid value %q", keyword, val)
		return
	}
	*dst = f
}

func parseFlagInto(tz *tokenizer, keyword string, dst *bool, warnf func(string, ...interface{})) {
	val, ok := tz.next()
	if !ok {
		warnf("%s: missing value", keyword)
		return
	}
	switch strings.ToLower(val) {
	case "y", "yes", "t", "true", "1":
		*dst = true
	case "n", "no", "f", "false", "0":
		*dst = false
	default:
		warnf("%s: invalid flag %q", keyword, val)
	}
}

// tokenizer yields whitespace-separated tokens line by line, dropping
// comment lines before they contribute any tokens.
type tokenizer struct {
	lines   *bufio.Scanner
	pending []string
}

func newTokenizer(r io.Reader) *tokenizer {
	return &tokenizer{lines: bufio.NewScanner(r)}
}

func (t *tokenizer) next() (string, bool) {
	for len(t.pending) == 0 {
		if !t.lines.Scan() {
			return "", false
		}
		line := strings.TrimSpace(t.lines.Text())
		if line == "" || strings.ContainsRune(commentChars, rune(line[0])) {
			continue
		}
		t.pending = strings.Fields(line)
	}
	tok := t.pending[0]
	t.pending = t.pending[1:]
	return tok, true
}
