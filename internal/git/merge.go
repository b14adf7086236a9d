package git

import "context"

// Merge merges parent into the current branch with "git merge
// [--no-edit] parent".
func (r *Repository) Merge(ctx context.Context, parent string, noEdit bool) error {
	args := []string{"merge"}
	if noEdit {
		args = append(args, "--no-edit")
	}
	args = append(args, parent)
	_, err := r.run(ctx, args...)
	return err
}
