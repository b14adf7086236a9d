package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.abhg.dev/ladder/internal/errs"
	"go.abhg.dev/ladder/internal/git"
)

func TestIsUserFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"LayoutError", &errs.LayoutError{Branch: "feat", Reason: "bad"}, true},
		{"LayoutIndentError", &errs.LayoutIndentError{Line: 3}, true},
		{"GitInvocationError", &git.GitInvocationError{Args: []string{"status"}, Code: 1}, true},
		{"OngoingOpError", &errs.OngoingOpError{Op: errs.OpRebase}, true},
		{"ForkPointUnknownError", &errs.ForkPointUnknownError{Branch: "feat"}, true},
		{"UnmanagedBranchError", &errs.UnmanagedBranchError{Branch: "feat"}, true},
		{"NoRemotesError", &errs.NoRemotesError{}, true},
		{"AmbiguousRemoteError", &errs.AmbiguousRemoteError{Remotes: []string{"a", "b"}}, true},
		{"ConfigError", &errs.ConfigError{Key: "machete.x"}, true},
		{"Unrecognized", assertErr{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUserFailure(tt.err))
		})
	}
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }

func TestExitCodeError(t *testing.T) {
	err := &exitCodeError{code: 1}
	assert.Equal(t, "", err.Error())
}
