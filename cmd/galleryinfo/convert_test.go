// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-galleryinfo/internal/platform/constants"
)

const samplePayload = `{"id": 177013, "title": {"pretty": "Sample Title"}, "upload_date": 1672876800,
	"tags": [{"type": "tag", "name": "yuri"}, {"type": "tag", "name": "ahegao"}, {"type": "artist", "name": "foo"}]}`

func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root := newRootCommand()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)

	err = root.Execute()
	return out.String(), errOut.String(), err
}

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

/*
TestConvert_StdinToStdout converts one payload from stdin.
*/
func TestConvert_StdinToStdout(t *testing.T) {
	stdout, _, err := execute(t, samplePayload, "convert")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, `<?xml version="1.0" encoding="utf-8"?>`))
	assert.Contains(t, stdout, "<Title>177013 Sample Title</Title>")
	assert.Contains(t, stdout, "<Writer>foo</Writer>")
	assert.Contains(t, stdout, "<Tags>tag: ahegao,tag: yuri</Tags>")
}

/*
TestConvert_StdinSizeCap rejects a stdin payload larger than the upload limit.
*/
func TestConvert_StdinSizeCap(t *testing.T) {
	oversized := `{"id": 177013, "title": {"pretty": "` +
		strings.Repeat("a", constants.MaxPayloadBytes) +
		`"}, "upload_date": 1672876800}`

	stdout, stderr, err := execute(t, oversized, "convert")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 inputs failed")
	assert.Contains(t, stderr, "decode_failed")
	assert.Empty(t, stdout)
}

/*
TestConvert_OutDir writes one directory per gallery and skips bad inputs.
*/
func TestConvert_OutDir(t *testing.T) {
	inputs := t.TempDir()
	out := t.TempDir()

	good := writeInput(t, inputs, "good.json", samplePayload)
	untitled := writeInput(t, inputs, "untitled.json", `{"id": 5, "upload_date": 1}`)
	malformed := writeInput(t, inputs, "bad.json", `{"id":`)
	overflow := writeInput(t, inputs, "overflow.json", `{"id": 6, "upload_date": 1200000000000}`)

	_, stderr, err := execute(t, "", "convert", "--out", out, good, malformed, untitled, overflow)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 4 inputs failed")
	assert.Contains(t, stderr, "decode_failed")
	assert.Contains(t, stderr, "precondition_violation")

	document, readErr := os.ReadFile(filepath.Join(out, "177013 sample-title", "ComicInfo.xml"))
	require.NoError(t, readErr)
	assert.Contains(t, string(document), "<Web>https://nhentai.net/g/177013/</Web>")

	_, statErr := os.Stat(filepath.Join(out, "5", "ComicInfo.xml"))
	assert.NoError(t, statErr)

	_, statErr = os.Stat(filepath.Join(out, "6", "ComicInfo.xml"))
	assert.True(t, os.IsNotExist(statErr))
}

/*
TestConvert_MultipleInputsNeedOut refuses to interleave documents on stdout.
*/
func TestConvert_MultipleInputsNeedOut(t *testing.T) {
	_, _, err := execute(t, "", "convert", "a.json", "b.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--out")
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "galleryinfo 0.3.0\n", stdout)
}
