package planner

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/paths"
	"github.com/arthur-debert/slinky/pkg/types"
)

type planner struct {
	rc     *types.RunContext
	pkg    types.Package
	ig     *Ignorer
	target string
	result *PlanResult
	logger zerolog.Logger

	// virtual holds target paths that an unfold will create: the link
	// destination, or "" for a directory being rebuilt
	virtual map[string]string
}

// Plan computes the operations needed to link or unlink pkg against
// targetDir. It never mutates the filesystem and never stops at a conflict:
// every conflict in the package is reported in one pass.
func Plan(rc *types.RunContext, pkg types.Package, targetDir string, direction Direction) (*PlanResult, error) {
	logger := rc.Logger.With().
		Str("component", "planner").
		Str("package", pkg.Name).
		Str("direction", direction.String()).
		Logger()

	target, err := paths.Normalize(targetDir)
	if err != nil {
		return nil, err
	}

	info, err := rc.FS.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrNotFound, "target directory does not exist").
				WithDetail("path", target)
		}
		return nil, errors.PathError(err, "stat", target)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrNotFound, "target directory is not a directory").
			WithDetail("path", target)
	}
	if paths.IsWithin(pkg.Root, target) {
		return nil, errors.New(errors.ErrInvalidInput, "target directory lies inside the package").
			WithDetail("package", pkg.Name).
			WithDetail("path", target)
	}

	ig, err := LoadIgnorer(rc, pkg)
	if err != nil {
		return nil, err
	}

	p := &planner{
		rc:      rc,
		pkg:     pkg,
		ig:      ig,
		target:  target,
		result:  &PlanResult{Package: pkg, TargetDir: target, Direction: direction},
		logger:  logger,
		virtual: make(map[string]string),
	}

	if direction == Unlink {
		err = p.unlink("")
	} else {
		err = p.link("")
	}
	if err != nil {
		return nil, err
	}

	c := p.result.Counts
	logger.Debug().
		Int("create", c.Create).
		Int("linked", c.AlreadyLinked).
		Int("conflict", c.Conflict).
		Int("remove", c.Remove).
		Msg("Plan ready")
	return p.result, nil
}

func (p *planner) emit(op Operation) {
	p.logger.Debug().
		Str("op", op.Kind.String()).
		Str("path", op.RelPath).
		Str("reason", op.Reason.String()).
		Msg("Planned")
	p.result.add(op)
}

func (p *planner) link(rel string) error {
	entries, err := children(p.rc, p.pkg, p.ig, rel)
	if err != nil {
		return err
	}

	for _, e := range entries {
		source := p.pkg.Path(e.RelPath)
		target := filepath.Join(p.target, e.RelPath)
		isDir := e.Kind == types.NodeDir

		if dest, ok := p.virtual[target]; ok {
			if dest != "" {
				p.emit(Conflict(e.RelPath, source, target, ReasonPointsElsewhere))
				continue
			}
			if err := p.link(e.RelPath); err != nil {
				return err
			}
			continue
		}

		info, err := p.rc.FS.Lstat(target)
		if os.IsNotExist(err) {
			if isDir {
				partial, err := hasIgnored(p.rc, p.pkg, p.ig, e.RelPath)
				if err != nil {
					return err
				}
				if partial {
					// Folding would expose ignored entries through the link
					if err := p.link(e.RelPath); err != nil {
						return err
					}
					continue
				}
			}
			p.emit(Create(e.RelPath, source, target, isDir))
			continue
		}
		if err != nil {
			return errors.PathError(err, "lstat", target)
		}

		switch {
		case info.Mode()&os.ModeSymlink != 0:
			if p.pointsTo(target, source) {
				p.emit(AlreadyLinked(e.RelPath, source, target, isDir))
				continue
			}
			foreign, ok := p.foreignFold(target, isDir)
			if !ok {
				p.emit(Conflict(e.RelPath, source, target, ReasonPointsElsewhere))
				continue
			}
			if err := p.unfold(e.RelPath, foreign, true); err != nil {
				return err
			}
			if err := p.link(e.RelPath); err != nil {
				return err
			}
		case info.IsDir():
			if !isDir {
				p.emit(Conflict(e.RelPath, source, target, ReasonKindMismatch))
				continue
			}
			if err := p.link(e.RelPath); err != nil {
				return err
			}
		default:
			if isDir {
				p.emit(Conflict(e.RelPath, source, target, ReasonKindMismatch))
			} else {
				p.emit(Conflict(e.RelPath, source, target, ReasonNotASymlink))
			}
		}
	}
	return nil
}

// foreignFold reports whether the symlink at link is a directory folded by
// another package of the same stow directory, and returns its destination.
func (p *planner) foreignFold(link string, isDir bool) (string, bool) {
	if !isDir {
		return "", false
	}
	dest, ok := p.resolveLink(link)
	if !ok {
		return "", false
	}
	root := filepath.Clean(p.pkg.Root)
	stowDir := filepath.Dir(root)
	if dest == stowDir || !paths.IsWithin(stowDir, dest) || paths.IsWithin(root, dest) {
		return "", false
	}
	info, err := p.rc.FS.Stat(dest)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return dest, true
}

// unfold plans replacing the folded link at rel with a real directory that
// holds one link per entry of foreign, the directory the link pointed to.
// Entries this package also has as directories are unfolded in turn, so the
// other package stays linked entry by entry.
func (p *planner) unfold(rel, foreign string, isLink bool) error {
	target := filepath.Join(p.target, rel)
	if isLink {
		p.logger.Debug().Str("path", rel).Str("foreign", foreign).Msg("Unfolding shared directory")
		p.emit(Remove(rel, foreign, target, true))
	}
	p.virtual[target] = ""

	entries, err := children(p.rc, p.pkg, p.ig, rel)
	if err != nil {
		return err
	}
	ours := make(map[string]bool, len(entries))
	for _, e := range entries {
		ours[e.RelPath] = e.Kind == types.NodeDir
	}

	theirs, err := p.rc.FS.ReadDir(foreign)
	if err != nil {
		return errors.PathError(err, "read", foreign)
	}
	sort.Slice(theirs, func(i, j int) bool {
		return theirs[i].Name() < theirs[j].Name()
	})

	for _, entry := range theirs {
		childRel := filepath.Join(rel, entry.Name())
		source := filepath.Join(foreign, entry.Name())
		if ours[childRel] && entry.IsDir() {
			if err := p.unfold(childRel, source, false); err != nil {
				return err
			}
			continue
		}
		childTarget := filepath.Join(p.target, childRel)
		p.virtual[childTarget] = source
		p.emit(Create(childRel, source, childTarget, entry.IsDir()))
	}
	return nil
}

func (p *planner) unlink(rel string) error {
	entries, err := children(p.rc, p.pkg, p.ig, rel)
	if err != nil {
		return err
	}

	for _, e := range entries {
		source := p.pkg.Path(e.RelPath)
		target := filepath.Join(p.target, e.RelPath)
		isDir := e.Kind == types.NodeDir

		info, err := p.rc.FS.Lstat(target)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return errors.PathError(err, "lstat", target)
		}

		switch {
		case info.Mode()&os.ModeSymlink != 0:
			if p.pointsInto(target, source) {
				p.emit(Remove(e.RelPath, source, target, isDir))
			} else {
				p.logger.Trace().Str("path", e.RelPath).Msg("Symlink belongs elsewhere, leaving it")
			}
		case info.IsDir() && isDir:
			if err := p.unlink(e.RelPath); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveLink returns the cleaned absolute destination of the symlink at link.
func (p *planner) resolveLink(link string) (string, bool) {
	dest, err := p.rc.FS.Readlink(link)
	if err != nil {
		return "", false
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(link), dest)
	}
	return filepath.Clean(dest), true
}

// pointsTo reports whether the symlink at link resolves to source.
func (p *planner) pointsTo(link, source string) bool {
	dest, ok := p.resolveLink(link)
	if !ok {
		return false
	}
	if dest == filepath.Clean(source) {
		return true
	}
	return p.sameFile(link, source)
}

// pointsInto reports whether the symlink at link resolves into the package.
func (p *planner) pointsInto(link, source string) bool {
	dest, ok := p.resolveLink(link)
	if !ok {
		return false
	}
	if paths.IsWithin(filepath.Clean(p.pkg.Root), dest) {
		return true
	}
	return p.sameFile(link, source)
}

// sameFile covers links written through another path to the same node,
// e.g. a stow dir reached via a symlinked parent.
func (p *planner) sameFile(link, source string) bool {
	li, err := p.rc.FS.Stat(link)
	if err != nil {
		return false
	}
	si, err := p.rc.FS.Stat(source)
	if err != nil {
		return false
	}
	return os.SameFile(li, si)
}
