// Package current builds the per-atom spin-polarized current field used
// by the torque kernels. The field is populated once per run and never
// mutated afterwards.
package current

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/spintorque/internal/config"
	"github.com/san-kum/spintorque/internal/spin"
)

// Build returns the site-current field for atoms atoms. In broadcast mode
// every atom receives cfg.JVec; in file mode the field is scattered from
// cfg.JVecFile. Warnings are non-fatal diagnostics (row-count mismatch,
// skipped rows); the returned error is reserved for an unreadable file.
func Build(atoms int, cfg *config.Config) (spin.Field, []string, error) {
	if atoms <= 0 {
		return nil, nil, fmt.Errorf("current: invalid atom count %d", atoms)
	}
	if !cfg.SiteCurrentFromFile {
		return spin.Uniform(atoms, cfg.JVec), nil, nil
	}

	f, err := os.Open(cfg.JVecFile)
	if err != nil {
		return nil, nil, fmt.Errorf("current: open site-current file: %w", err)
	}
	defer f.Close()

	field, warnings, err := readSiteFile(f, atoms)
	if err != nil {
		return nil, warnings, fmt.Errorf("current: read %s: %w", cfg.JVecFile, err)
	}
	return field, warnings, nil
}

// readSiteFile performs the two-pass read: count data rows, rewind, then
// scatter rows `index x y z` (1-based atom indices, any order) into the
// field. A row count different from the atom count is reported but does
// not stop the read; rows with out-of-range indices are skipped so atoms
// never named in the file keep the zero vector.
func readSiteFile(f io.ReadSeeker, atoms int) (spin.Field, []string, error) {
	var warnings []string

	rows := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) != "" {
			rows++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, warnings, err
	}
	if rows != atoms {
		warnings = append(warnings,
			fmt.Sprintf("site-current file has %d rows but the system has %d atoms", rows, atoms))
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, warnings, err
	}

	field := spin.NewField(atoms)
	scanner = bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			warnings = append(warnings, fmt.Sprintf("line %d: expected `index x y z`, got %d fields", lineno, len(fields)))
			continue
		}
		idx, err := strconv.Atoi(fields[0])
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: invalid atom index %q", lineno, fields[0]))
			continue
		}
		if idx < 1 || idx > atoms {
			warnings = append(warnings, fmt.Sprintf("line %d: atom index %d outside 1..%d, skipped", lineno, idx, atoms))
			continue
		}
		var v spin.Vector
		bad := false
		for c := 0; c < 3; c++ {
			v[c], err = strconv.ParseFloat(fields[c+1], 64)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("line %d: invalid component %q", lineno, fields[c+1]))
				bad = true
				break
			}
		}
		if bad {
			continue
		}
		field[idx-1] = v
	}
	if err := scanner.Err(); err != nil {
		return nil, warnings, err
	}

	return field, warnings, nil
}
