package executor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/filesystem"
	"github.com/arthur-debert/slinky/pkg/planner"
	"github.com/arthur-debert/slinky/pkg/testutil"
	"github.com/arthur-debert/slinky/pkg/types"
)

func setup(t *testing.T, name string, files ...string) (*types.RunContext, types.Package, string) {
	t.Helper()
	root := testutil.CreateDir(t, t.TempDir(), name)
	for _, f := range files {
		testutil.CreateFile(t, root, f, "content of "+f)
	}
	return types.NewRunContext(filesystem.NewOS()), types.Package{Name: name, Root: root}, t.TempDir()
}

func plan(t *testing.T, rc *types.RunContext, pkg types.Package, target string, dir planner.Direction) *planner.PlanResult {
	t.Helper()
	p, err := planner.Plan(rc, pkg, target, dir)
	require.NoError(t, err)
	return p
}

func ops(log *ExecutionLog) []planner.Operation {
	out := make([]planner.Operation, 0, len(log.Entries))
	for _, e := range log.Entries {
		out = append(out, e.Op)
	}
	return out
}

func outcomes(log *ExecutionLog) []Outcome {
	out := make([]Outcome, 0, len(log.Entries))
	for _, e := range log.Entries {
		out = append(out, e.Outcome)
	}
	return out
}

func TestDryRunMatchesApply(t *testing.T) {
	rc, pkg, home := setup(t, "shell", ".bashrc", ".zshrc", ".config/fish/config.fish", ".profile")
	testutil.CreateFile(t, home, ".bashrc", "mine")
	testutil.CreateSymlink(t, pkg.Path(".profile"), filepath.Join(home, ".profile"))

	p := plan(t, rc, pkg, home, planner.Link)
	before := testutil.Snapshot(t, home)

	dry := Execute(rc, p, DryRun)
	assert.Equal(t, before, testutil.Snapshot(t, home), "dry-run must not touch the filesystem")
	assert.Equal(t, []Outcome{Skipped, WouldApply, Skipped, WouldApply}, outcomes(dry))
	assert.Equal(t, Counts{Skipped: 2, WouldApply: 2}, dry.Counts)

	// Planning again after the dry run yields the same plan
	assert.Equal(t, p, plan(t, rc, pkg, home, planner.Link))

	applied := Execute(rc, p, Apply)
	assert.Equal(t, ops(dry), ops(applied))
	assert.Equal(t, []Outcome{Skipped, Applied, Skipped, Applied}, outcomes(applied))
	assert.True(t, applied.OK())
}

func TestApplyCreatesLinksAndIsIdempotent(t *testing.T) {
	rc, pkg, home := setup(t, "nvim", ".config/nvim/init.lua", ".vimrc")

	first := Execute(rc, plan(t, rc, pkg, home, planner.Link), Apply)
	require.True(t, first.OK())
	assert.Equal(t, 2, first.Counts.Applied)

	testutil.AssertSymlink(t, filepath.Join(home, ".config"), pkg.Path(".config"))
	testutil.AssertSymlink(t, filepath.Join(home, ".vimrc"), pkg.Path(".vimrc"))
	assert.Equal(t, "content of .config/nvim/init.lua",
		testutil.ReadFile(t, filepath.Join(home, ".config", "nvim", "init.lua")))

	again := plan(t, rc, pkg, home, planner.Link)
	assert.False(t, again.HasChanges())
	assert.Equal(t, planner.Counts{AlreadyLinked: 2}, again.Counts)

	second := Execute(rc, again, Apply)
	assert.Equal(t, Counts{Skipped: 2}, second.Counts)
}

func TestApplyNeverTouchesConflicts(t *testing.T) {
	rc, pkg, home := setup(t, "git", ".gitconfig", ".gitignore_global")
	testutil.CreateFile(t, home, ".gitconfig", "[user]\n\tname = me\n")

	log := Execute(rc, plan(t, rc, pkg, home, planner.Link), Apply)

	assert.Equal(t, []Outcome{Skipped, Applied}, outcomes(log))
	assert.False(t, testutil.SymlinkExists(t, filepath.Join(home, ".gitconfig")))
	assert.Equal(t, "[user]\n\tname = me\n", testutil.ReadFile(t, filepath.Join(home, ".gitconfig")))
}

func TestApplyIsolatesFailures(t *testing.T) {
	rc, pkg, home := setup(t, "shell", ".bashrc", ".profile", ".zshrc")
	p := plan(t, rc, pkg, home, planner.Link)

	ffs := testutil.NewFailingFS(filesystem.NewOS())
	ffs.Fail[filepath.Join(home, ".profile")] = os.ErrPermission
	rc = types.NewRunContext(ffs)

	log := Execute(rc, p, Apply)

	assert.Equal(t, []Outcome{Applied, Failed, Applied}, outcomes(log))
	assert.Equal(t, Counts{Applied: 2, Failed: 1}, log.Counts)
	assert.False(t, log.OK())

	failures := log.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, ".profile", failures[0].Op.RelPath)
	assert.True(t, errors.IsErrorCode(failures[0].Err, errors.ErrIO))
	assert.ErrorIs(t, failures[0].Err, os.ErrPermission)

	testutil.AssertSymlink(t, filepath.Join(home, ".bashrc"), pkg.Path(".bashrc"))
	testutil.AssertSymlink(t, filepath.Join(home, ".zshrc"), pkg.Path(".zshrc"))

	// A later run picks up where the failed one stopped
	rc = types.NewRunContext(filesystem.NewOS())
	retry := plan(t, rc, pkg, home, planner.Link)
	assert.Equal(t, planner.Counts{Create: 1, AlreadyLinked: 2}, retry.Counts)
	assert.True(t, Execute(rc, retry, Apply).OK())
}

func TestApplyRechecksTargets(t *testing.T) {
	t.Run("create refuses a target that appeared", func(t *testing.T) {
		rc, pkg, home := setup(t, "zsh", ".zshrc")
		p := plan(t, rc, pkg, home, planner.Link)
		testutil.CreateFile(t, home, ".zshrc", "written meanwhile")

		log := Execute(rc, p, Apply)

		require.Equal(t, []Outcome{Failed}, outcomes(log))
		assert.True(t, errors.IsErrorCode(log.Entries[0].Err, errors.ErrConflict))
		assert.Equal(t, "written meanwhile", testutil.ReadFile(t, filepath.Join(home, ".zshrc")))
	})

	t.Run("create skips a link made meanwhile", func(t *testing.T) {
		rc, pkg, home := setup(t, "zsh", ".zshrc")
		p := plan(t, rc, pkg, home, planner.Link)
		testutil.CreateSymlink(t, pkg.Path(".zshrc"), filepath.Join(home, ".zshrc"))

		log := Execute(rc, p, Apply)
		assert.Equal(t, []Outcome{Skipped}, outcomes(log))
	})

	t.Run("remove refuses a replaced target", func(t *testing.T) {
		rc, pkg, home := setup(t, "zsh", ".zshrc")
		testutil.CreateSymlink(t, pkg.Path(".zshrc"), filepath.Join(home, ".zshrc"))
		p := plan(t, rc, pkg, home, planner.Unlink)
		require.NoError(t, os.Remove(filepath.Join(home, ".zshrc")))
		testutil.CreateFile(t, home, ".zshrc", "real")

		log := Execute(rc, p, Apply)

		require.Equal(t, []Outcome{Failed}, outcomes(log))
		assert.True(t, errors.IsErrorCode(log.Entries[0].Err, errors.ErrConflict))
		assert.Equal(t, "real", testutil.ReadFile(t, filepath.Join(home, ".zshrc")))
	})

	t.Run("remove skips a target already gone", func(t *testing.T) {
		rc, pkg, home := setup(t, "zsh", ".zshrc")
		testutil.CreateSymlink(t, pkg.Path(".zshrc"), filepath.Join(home, ".zshrc"))
		p := plan(t, rc, pkg, home, planner.Unlink)
		require.NoError(t, os.Remove(filepath.Join(home, ".zshrc")))

		log := Execute(rc, p, Apply)
		assert.Equal(t, []Outcome{Skipped}, outcomes(log))
	})
}

func TestUnlinkPrunesDirectoriesItEmptied(t *testing.T) {
	rc, pkg, home := setup(t, "app", ".config/app/settings.json", ".config/app/cache.tmp")
	testutil.CreateFile(t, pkg.Root, planner.LocalIgnoreFile, "*.tmp\n")

	linked := Execute(rc, plan(t, rc, pkg, home, planner.Link), Apply)
	require.True(t, linked.OK())
	testutil.AssertSymlink(t, filepath.Join(home, ".config", "app", "settings.json"), pkg.Path(".config/app/settings.json"))
	assert.False(t, testutil.SymlinkExists(t, filepath.Join(home, ".config")))

	unlinked := Execute(rc, plan(t, rc, pkg, home, planner.Unlink), Apply)
	require.True(t, unlinked.OK())
	assert.Equal(t, 1, unlinked.Counts.Applied)

	assert.False(t, testutil.PathExists(t, filepath.Join(home, ".config")))
	assert.True(t, testutil.PathExists(t, home))
}

func TestUnlinkKeepsUnrelatedContent(t *testing.T) {
	rc, pkg, home := setup(t, "app", ".config/app/settings.json", ".config/app/theme.json")
	testutil.CreateFile(t, home, ".config/app/local.json", "{}")

	require.True(t, Execute(rc, plan(t, rc, pkg, home, planner.Link), Apply).OK())
	require.True(t, Execute(rc, plan(t, rc, pkg, home, planner.Unlink), Apply).OK())

	assert.Equal(t, map[string]string{
		".":                      "dir",
		".config":                "dir",
		".config/app":            "dir",
		".config/app/local.json": "file:{}",
	}, testutil.Snapshot(t, home))

	again := plan(t, rc, pkg, home, planner.Unlink)
	assert.False(t, again.HasChanges())
}

func TestNvimPackageLifecycle(t *testing.T) {
	t.Run("shared config dir", func(t *testing.T) {
		rc, pkg, home := setup(t, "nvim", ".config/nvim/init.lua")
		testutil.CreateFile(t, home, ".config/git/config", "[core]")

		dryPlan := plan(t, rc, pkg, home, planner.Link)
		dry := Execute(rc, dryPlan, DryRun)
		realPlan := plan(t, rc, pkg, home, planner.Link)
		assert.Equal(t, dryPlan, realPlan)

		applied := Execute(rc, realPlan, Apply)
		assert.Equal(t, ops(dry), ops(applied))
		require.Equal(t, 1, applied.Counts.Applied)
		testutil.AssertSymlink(t, filepath.Join(home, ".config", "nvim"), pkg.Path(".config/nvim"))

		unlinked := Execute(rc, plan(t, rc, pkg, home, planner.Unlink), Apply)
		require.Equal(t, 1, unlinked.Counts.Applied)
		assert.False(t, testutil.PathExists(t, filepath.Join(home, ".config", "nvim")))
		assert.Equal(t, "[core]", testutil.ReadFile(t, filepath.Join(home, ".config", "git", "config")))
	})

	t.Run("empty home folds at the top", func(t *testing.T) {
		rc, pkg, home := setup(t, "nvim", ".config/nvim/init.lua")

		applied := Execute(rc, plan(t, rc, pkg, home, planner.Link), Apply)
		require.Equal(t, 1, applied.Counts.Applied)
		testutil.AssertSymlink(t, filepath.Join(home, ".config"), pkg.Path(".config"))

		unlinked := Execute(rc, plan(t, rc, pkg, home, planner.Unlink), Apply)
		require.Equal(t, 1, unlinked.Counts.Applied)
		assert.Equal(t, map[string]string{".": "dir"}, testutil.Snapshot(t, home))
	})
}

func TestPackagesShareAFoldedDirectory(t *testing.T) {
	rc, nvim, home := setup(t, "nvim", ".config/nvim/init.lua")
	fishRoot := testutil.CreateDir(t, filepath.Dir(nvim.Root), "fish")
	testutil.CreateFile(t, fishRoot, ".config/fish/config.fish", "set -x EDITOR nvim")
	fish := types.Package{Name: "fish", Root: fishRoot}

	require.True(t, Execute(rc, plan(t, rc, nvim, home, planner.Link), Apply).OK())
	testutil.AssertSymlink(t, filepath.Join(home, ".config"), nvim.Path(".config"))

	log := Execute(rc, plan(t, rc, fish, home, planner.Link), Apply)
	require.True(t, log.OK())
	assert.Equal(t, []Outcome{Applied, Applied, Applied}, outcomes(log))

	assert.Equal(t, map[string]string{
		".":            "dir",
		".config":      "dir",
		".config/fish": "link:" + fish.Path(".config/fish"),
		".config/nvim": "link:" + nvim.Path(".config/nvim"),
	}, testutil.Snapshot(t, home))
	assert.False(t, testutil.PathExists(t, nvim.Path(".config/fish")))

	assert.False(t, plan(t, rc, nvim, home, planner.Link).HasChanges())
	assert.False(t, plan(t, rc, fish, home, planner.Link).HasChanges())

	require.True(t, Execute(rc, plan(t, rc, nvim, home, planner.Unlink), Apply).OK())
	assert.Equal(t, map[string]string{
		".":            "dir",
		".config":      "dir",
		".config/fish": "link:" + fish.Path(".config/fish"),
	}, testutil.Snapshot(t, home))
}

func TestApplyStopsBelowAFoldItCouldNotRemove(t *testing.T) {
	rc, nvim, home := setup(t, "nvim", ".config/nvim/init.lua")
	fishRoot := testutil.CreateDir(t, filepath.Dir(nvim.Root), "fish")
	testutil.CreateFile(t, fishRoot, ".config/fish/config.fish", "")
	fish := types.Package{Name: "fish", Root: fishRoot}
	testutil.CreateSymlink(t, nvim.Path(".config"), filepath.Join(home, ".config"))
	p := plan(t, rc, fish, home, planner.Link)

	ffs := testutil.NewFailingFS(filesystem.NewOS())
	ffs.Fail[filepath.Join(home, ".config")] = os.ErrPermission
	log := Execute(types.NewRunContext(ffs), p, Apply)

	assert.Equal(t, []Outcome{Failed, Failed, Failed}, outcomes(log))
	assert.ErrorIs(t, log.Entries[0].Err, os.ErrPermission)
	assert.True(t, errors.IsErrorCode(log.Entries[1].Err, errors.ErrConflict))
	assert.True(t, errors.IsErrorCode(log.Entries[2].Err, errors.ErrConflict))

	testutil.AssertSymlink(t, filepath.Join(home, ".config"), nvim.Path(".config"))
	assert.False(t, testutil.PathExists(t, nvim.Path(".config/fish")))
}
