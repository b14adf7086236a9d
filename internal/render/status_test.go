package render_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.abhg.dev/ladder/internal/branchtree"
	"go.abhg.dev/ladder/internal/render"
	"go.abhg.dev/ladder/internal/syncstate"
)

func TestStatus_RendersCurrentAndQualifiers(t *testing.T) {
	tree := branchtree.New()
	require.NoError(t, tree.Add(branchtree.AddRequest{Name: "master"}))
	require.NoError(t, tree.Add(branchtree.AddRequest{
		Name: "feature",
		Onto: "master",
		Annotation: branchtree.Annotation{
			Qualifiers: branchtree.Qualifiers{NoPush: true},
		},
	}))

	var buf bytes.Buffer
	err := render.Status(&buf, tree, render.Options{
		Style:   render.DefaultStyle(),
		Current: "feature",
		Info: map[string]render.BranchInfo{
			"feature": {Edge: syncstate.OutOfSync, HasEdge: true},
		},
	})
	require.NoError(t, err)
	require.Contains(t, buf.String(), "master")
	require.Contains(t, buf.String(), "feature")
	require.Contains(t, buf.String(), "push=no")
}

func TestStatus_RendersRelativeCommitTime(t *testing.T) {
	tree := branchtree.New()
	require.NoError(t, tree.Add(branchtree.AddRequest{Name: "master"}))
	require.NoError(t, tree.Add(branchtree.AddRequest{Name: "feature", Onto: "master"}))

	var buf bytes.Buffer
	err := render.Status(&buf, tree, render.Options{
		Style:   render.DefaultStyle(),
		Current: "feature",
		Info: map[string]render.BranchInfo{
			"feature": {
				Commits: []render.Commit{
					{Hash: "abc1234", Subject: "add widget", CommitterDate: time.Now().Add(-3 * 24 * time.Hour)},
				},
			},
		},
	})
	require.NoError(t, err)
	require.Contains(t, buf.String(), "add widget")
	require.Contains(t, buf.String(), "ago")
}

func TestList_OneLinePerBranch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.List(&buf, []string{"a", "b"}))
	require.Equal(t, "a\nb\n", buf.String())
}

func TestCategories_UnknownCategory(t *testing.T) {
	tree := branchtree.New()
	_, err := render.Categories(tree, "bogus")
	require.Error(t, err)
}

func TestCategories_Childless(t *testing.T) {
	tree := branchtree.New()
	require.NoError(t, tree.Add(branchtree.AddRequest{Name: "master"}))
	require.NoError(t, tree.Add(branchtree.AddRequest{Name: "feature", Onto: "master"}))

	names, err := render.Categories(tree, "childless")
	require.NoError(t, err)
	require.Equal(t, []string{"feature"}, names)
}
