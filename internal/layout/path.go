package layout

import "path/filepath"

// FileName is the layout file's name within a resolved git directory.
const FileName = "machete"

// ResolvePath returns the layout file path for a repository, honoring
// machete.worktree.useTopLevelMacheteFile: true (the default) uses the
// common git directory shared by every worktree, false uses the
// current worktree's own git directory.
func ResolvePath(commonDir, gitDir string, useTopLevel bool) string {
	if useTopLevel {
		return filepath.Join(commonDir, FileName)
	}
	return filepath.Join(gitDir, FileName)
}
