package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/EO-DataHub/eodhp-users-dashboard/internal/dashboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunUsers_FirstPage(t *testing.T) {
	source := newSourceServer(t, 7)

	var out bytes.Buffer
	require.NoError(t, runUsers(context.Background(), testConfig(source.URL, "/"), &out, 1, nil))

	assert.Contains(t, out.String(), "Users & Posts Dashboard")
	assert.Contains(t, out.String(), "User 1")
	assert.Contains(t, out.String(), "User 5")
	assert.NotContains(t, out.String(), "User 6")
	assert.Contains(t, out.String(), "Page 1 of 2 | next: 2")
	assert.NotContains(t, out.String(), "User's Posts")
}

func TestRunUsers_PageAndUser(t *testing.T) {
	source := newSourceServer(t, 7)
	selected := 7

	var out bytes.Buffer
	require.NoError(t, runUsers(context.Background(), testConfig(source.URL, "/"), &out, 2, &selected))

	assert.Contains(t, out.String(), "User 7")
	assert.NotContains(t, out.String(), "User 5\n")
	assert.Contains(t, out.String(), "Page 2 of 2 | previous: 1")
	assert.Contains(t, out.String(), "Title: Post of 7")
	assert.Contains(t, out.String(), "Post ID: 70")
}

func TestRunUsers_OutOfRangePageShowsFirstPage(t *testing.T) {
	source := newSourceServer(t, 3)

	var out bytes.Buffer
	require.NoError(t, runUsers(context.Background(), testConfig(source.URL, "/"), &out, 5, nil))

	assert.Contains(t, out.String(), "Page 1 of 1")
	assert.Contains(t, out.String(), "User 3")
}

func TestRunUsers_UserWithoutPosts(t *testing.T) {
	source := newSourceServer(t, 2)
	selected := 42

	var out bytes.Buffer
	require.NoError(t, runUsers(context.Background(), testConfig(source.URL, "/"), &out, 1, &selected))

	assert.Contains(t, out.String(), dashboard.OverlayEmptyText)
}
