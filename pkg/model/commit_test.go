package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMetadata(t *testing.T) {
	ts := time.Date(2020, time.March, 5, 14, 7, 9, 0, time.FixedZone("", 2*3600))

	for _, toPin := range []struct {
		name     string
		commit   Commit
		expected string
	}{
		{
			name:     "root commit",
			commit:   Commit{Timestamp: ts, Message: "first"},
			expected: "parent=None\nThu Mar 05 14:07:09 2020 +0200\nfirst\n",
		},
		{
			name:     "normal commit",
			commit:   Commit{Parents: []string{"aaa"}, Timestamp: ts, Message: "second"},
			expected: "parent=aaa\nThu Mar 05 14:07:09 2020 +0200\nsecond\n",
		},
		{
			name:     "merge commit",
			commit:   Commit{Parents: []string{"aaa", "bbb"}, Timestamp: ts, Message: "Merge branch/commit id: dev"},
			expected: "parent=aaa, bbb\nThu Mar 05 14:07:09 2020 +0200\nMerge branch/commit id: dev\n",
		},
	} {
		testcase := toPin
		t.Run(testcase.name, func(t *testing.T) {
			data := FormatMetadata(testcase.commit)
			assert.Equal(t, testcase.expected, string(data))

			parsed, err := ParseMetadata("xyz", data)
			require.NoError(t, err)
			assert.Equal(t, "xyz", parsed.ID)
			assert.Equal(t, testcase.commit.Parents, parsed.Parents)
			assert.Equal(t, testcase.commit.Message, parsed.Message)
			assert.True(t, testcase.commit.Timestamp.Equal(parsed.Timestamp))
		})
	}
}

func TestParseMetadataErrors(t *testing.T) {
	for _, toPin := range []struct {
		name string
		data string
	}{
		{name: "empty", data: ""},
		{name: "no parent line", data: "Thu Mar 05 14:07:09 2020 +0200\nmsg\n"},
		{name: "bad timestamp", data: "parent=None\nyesterday\nmsg\n"},
		{name: "empty parent", data: "parent=aaa, \nThu Mar 05 14:07:09 2020 +0200\nmsg\n"},
	} {
		testcase := toPin
		t.Run(testcase.name, func(t *testing.T) {
			_, err := ParseMetadata("xyz", []byte(testcase.data))
			require.Error(t, err)
			var merr MetadataErr
			assert.ErrorAs(t, err, &merr)
		})
	}
}

func TestParseMultilineMessage(t *testing.T) {
	c, err := ParseMetadata("xyz", []byte("parent=None\nThu Mar 05 14:07:09 2020 +0200\nline one\nline two\n"))
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", c.Message)
	assert.True(t, c.IsRoot())
	assert.False(t, c.IsMerge())
}

func TestHeadState(t *testing.T) {
	assert.Equal(t, "on branch master, no commits yet", UnbornHead("master").String())
	assert.Equal(t, "HEAD detached at abc", DetachedHead("abc").String())
	assert.Equal(t, "on branch dev", BranchTipHead("dev", "abc").String())
	assert.Equal(t, "on branch dev, HEAD at abc", BranchBehindHead("dev", "abc").String())
	assert.Equal(t, "on-branch-behind", OnBranchBehind.String())
	assert.Equal(t, "HeadKind(9)", HeadKind(9).String())
}
