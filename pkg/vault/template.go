package vault

import (
	"os"
	"strings"

	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/paths"
	"github.com/arthur-debert/slinky/pkg/secrets"
	"github.com/arthur-debert/slinky/pkg/types"
)

// TemplateSuffix is appended to a file name to name its template
const TemplateSuffix = ".template"

// TemplateFile describes a written template
type TemplateFile struct {
	Source       string
	Path         string
	Placeholders []string
}

// TemplatePath returns the template path for source.
func TemplatePath(source string) string {
	return source + TemplateSuffix
}

// SourceOf returns the file a template rehydrates into.
func SourceOf(template string) (string, bool) {
	if !strings.HasSuffix(template, TemplateSuffix) || template == TemplateSuffix {
		return "", false
	}
	return strings.TrimSuffix(template, TemplateSuffix), true
}

// scannedFile is a file whose findings were verified against its content
type scannedFile struct {
	path     string
	perm     os.FileMode
	lines    []string
	findings []secrets.Finding
}

// load re-reads and re-scans every file the findings refer to, failing with
// STALE_FINDING when a finding no longer matches the file.
func (v *Vault) load(rc *types.RunContext, findings []secrets.Finding) ([]scannedFile, error) {
	files, grouped := secrets.ByFile(findings)

	out := make([]scannedFile, 0, len(files))
	for _, file := range files {
		info, err := rc.FS.Stat(file)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrStaleFinding, "scanned file is gone").
				WithDetail("path", file)
		}
		data, err := rc.FS.ReadFile(file)
		if err != nil {
			return nil, errors.PathError(err, "read", file)
		}

		current := make(map[secrets.Finding]bool)
		for _, f := range v.scanner.ScanBytes(file, data) {
			current[f] = true
		}
		for _, f := range grouped[file] {
			if !current[f] {
				return nil, errors.New(errors.ErrStaleFinding, "file changed since it was scanned").
					WithDetail("path", file).
					WithDetail("line", f.Line)
			}
		}

		out = append(out, scannedFile{
			path:     file,
			perm:     info.Mode().Perm(),
			lines:    secrets.SplitLines(data),
			findings: grouped[file],
		})
	}
	return out, nil
}

// Recover reads the values the findings point at.
func (v *Vault) Recover(rc *types.RunContext, findings []secrets.Finding) ([]Secret, error) {
	files, err := v.load(rc, findings)
	if err != nil {
		return nil, err
	}

	var out []Secret
	for _, sf := range files {
		for _, f := range sf.findings {
			line := secrets.Content(sf.lines[f.Line-1])
			out = append(out, Secret{Finding: f, Value: line[f.Start:f.End]})
		}
	}
	return out, nil
}

// Template writes a template next to every file with findings, replacing
// each secret with its placeholder token. With InPlace the original file is
// rewritten the same way. All files are verified before any is written.
func (v *Vault) Template(rc *types.RunContext, findings []secrets.Finding) ([]TemplateFile, error) {
	files, err := v.load(rc, findings)
	if err != nil {
		return nil, err
	}

	var out []TemplateFile
	for _, sf := range files {
		lines := append([]string(nil), sf.lines...)
		tf := TemplateFile{Source: sf.path, Path: TemplatePath(sf.path)}

		for _, f := range sf.findings {
			i := f.Line - 1
			content := secrets.Content(lines[i])
			terminator := lines[i][len(content):]
			lines[i] = content[:f.Start] + secrets.Token(f.Placeholder) + content[f.End:] + terminator
			tf.Placeholders = append(tf.Placeholders, f.Placeholder)
		}

		data := []byte(strings.Join(lines, ""))
		if err := rc.FS.AtomicWrite(tf.Path, data, sf.perm); err != nil {
			return out, errors.PathError(err, "write", tf.Path)
		}
		if v.inPlace {
			if err := rc.FS.AtomicWrite(sf.path, data, sf.perm); err != nil {
				return out, errors.PathError(err, "write", sf.path)
			}
		}

		logger(rc).Info().
			Str("template", tf.Path).
			Int("placeholders", len(tf.Placeholders)).
			Bool("in_place", v.inPlace).
			Msg("Template written")
		out = append(out, tf)
	}
	return out, nil
}

// Rehydrate substitutes payload values into templates and writes the real
// files. Every template is checked first: if any placeholder has no payload
// entry nothing is written.
func (v *Vault) Rehydrate(rc *types.RunContext, templates []string, payload *Payload) ([]string, error) {
	type job struct {
		source string
		perm   os.FileMode
		data   []byte
	}

	var (
		jobs    []job
		missing []string
	)
	for _, t := range templates {
		path, err := paths.Normalize(t)
		if err != nil {
			return nil, err
		}
		source, ok := SourceOf(path)
		if !ok {
			return nil, errors.New(errors.ErrInvalidInput, "not a template file").
				WithDetail("path", path)
		}

		info, err := rc.FS.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrap(err, errors.ErrNotFound, "template does not exist").
					WithDetail("path", path)
			}
			return nil, errors.PathError(err, "stat", path)
		}
		data, err := rc.FS.ReadFile(path)
		if err != nil {
			return nil, errors.PathError(err, "read", path)
		}

		out := secrets.TokenPattern.ReplaceAllStringFunc(string(data), func(token string) string {
			name := secrets.TokenPattern.FindStringSubmatch(token)[1]
			value, ok := payload.Lookup(source, name)
			if !ok {
				missing = append(missing, source+":"+name)
				return token
			}
			return value
		})
		jobs = append(jobs, job{source: source, perm: info.Mode().Perm(), data: []byte(out)})
	}

	if len(missing) > 0 {
		return nil, errors.Newf(errors.ErrPayloadIntegrity, "vault has no value for %s", strings.Join(missing, ", ")).
			WithDetail("missing", missing)
	}

	written := make([]string, 0, len(jobs))
	for _, j := range jobs {
		if err := rc.FS.AtomicWrite(j.source, j.data, j.perm); err != nil {
			return written, errors.PathError(err, "write", j.source)
		}
		logger(rc).Info().Str("path", j.source).Msg("Rehydrated")
		written = append(written, j.source)
	}
	return written, nil
}
