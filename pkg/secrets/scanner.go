package secrets

import (
	"bytes"
	"os"

	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/paths"
	"github.com/arthur-debert/slinky/pkg/types"
)

// Finding locates one detected secret. It deliberately holds no value.
type Finding struct {
	// File is the absolute path of the scanned file
	File string `json:"file"`

	// Line is 1-based
	Line int `json:"line"`

	// Start and End are the byte span of the value within the line
	Start int `json:"start"`
	End   int `json:"end"`

	Category    Category `json:"category"`
	Placeholder string   `json:"placeholder"`
	Preview     string   `json:"preview"`
}

// Scanner applies a rule table to files
type Scanner struct {
	rules []Rule
}

// NewScanner returns a scanner using rules, or DefaultRules when none are given.
func NewScanner(rules ...Rule) *Scanner {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &Scanner{rules: rules}
}

// Scan reads path and returns its findings in line order.
func (s *Scanner) Scan(rc *types.RunContext, path string) ([]Finding, error) {
	abs, err := paths.Normalize(path)
	if err != nil {
		return nil, err
	}

	data, err := rc.FS.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrNotFound, "file to scan does not exist").
				WithDetail("path", abs)
		}
		return nil, errors.PathError(err, "read", abs)
	}

	logger := rc.Logger.With().Str("component", "secrets").Str("file", abs).Logger()
	if bytes.IndexByte(data, 0) >= 0 {
		logger.Debug().Msg("Skipping binary file")
		return nil, nil
	}

	findings := s.ScanBytes(abs, data)
	for _, f := range findings {
		logger.Info().
			Int("line", f.Line).
			Str("category", string(f.Category)).
			Str("placeholder", f.Placeholder).
			Str("preview", f.Preview).
			Msg("Secret found")
	}
	return findings, nil
}

// ScanBytes scans data as the contents of file.
func (s *Scanner) ScanBytes(file string, data []byte) []Finding {
	var findings []Finding
	names := newNamer(TokenNames(data)...)

	for i, raw := range SplitLines(data) {
		line := Content(raw)
		f, ok := s.scanLine(line, names)
		if !ok {
			continue
		}
		f.File = file
		f.Line = i + 1
		findings = append(findings, f)
	}
	return findings
}

// scanLine returns the finding of the first rule that matches line.
func (s *Scanner) scanLine(line string, names *namer) (Finding, bool) {
	a, isAssign := parseAssignment(line)

	for _, rule := range s.rules {
		if rule.Name != nil {
			if !isAssign || isReference(a.value(line)) || !rule.Name.MatchString(a.name) {
				continue
			}
			return newFinding(rule.Category, a.name, line, a.start, a.end, names), true
		}

		loc := rule.Token.FindStringIndex(line)
		if loc == nil {
			continue
		}
		lhs := ""
		if isAssign && loc[0] >= a.start && loc[1] <= a.end {
			lhs = a.name
		}
		return newFinding(rule.Category, lhs, line, loc[0], loc[1], names), true
	}
	return Finding{}, false
}

func newFinding(category Category, lhs, line string, start, end int, names *namer) Finding {
	return Finding{
		Start:       start,
		End:         end,
		Category:    category,
		Placeholder: names.next(lhs, category),
		Preview:     Mask(line[start:end]),
	}
}

// ScanFiles scans every file in order and concatenates the findings.
func (s *Scanner) ScanFiles(rc *types.RunContext, files []string) ([]Finding, error) {
	var all []Finding
	for _, f := range files {
		findings, err := s.Scan(rc, f)
		if err != nil {
			return nil, err
		}
		all = append(all, findings...)
	}
	return all, nil
}

// ExistingFiles keeps the files that exist, dropping the others silently.
// It is used for the default scan list, where most shells' files are absent.
func ExistingFiles(rc *types.RunContext, files []string) []string {
	var out []string
	for _, f := range files {
		abs, err := paths.Normalize(f)
		if err != nil {
			continue
		}
		if info, err := rc.FS.Stat(abs); err == nil && !info.IsDir() {
			out = append(out, abs)
		}
	}
	return out
}

// ByFile groups findings by file, keeping their order within each file.
func ByFile(findings []Finding) (files []string, grouped map[string][]Finding) {
	grouped = make(map[string][]Finding)
	for _, f := range findings {
		if _, ok := grouped[f.File]; !ok {
			files = append(files, f.File)
		}
		grouped[f.File] = append(grouped[f.File], f)
	}
	return files, grouped
}
