package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rootCard = `<template>
<layout title="Verify your email">
<heading level="2">{{ greeting }}</heading>
<badge>{{ props.code }}</badge>
<text>Enter the code above to continue.</text>
</layout>
</template>
<script>
  greeting = "Hello, ${try(props.name, "friend")}"
</script>
`

const badgeCard = `<template>
<span class="badge" style="font-weight: 700;"><slot/></span>
</template>
`

func TestLoadComponents(t *testing.T) {
	t.Parallel()

	t.Run("empty dir flag yields none", func(t *testing.T) {
		t.Parallel()
		comps, err := loadComponents("")
		require.NoError(t, err)
		assert.Nil(t, comps)
	})

	t.Run("discovers card files sorted by name", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "zigzag.card"), []byte(badgeCard), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "badge.card"), []byte(badgeCard), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

		comps, err := loadComponents(dir)
		require.NoError(t, err)
		require.Len(t, comps, 2)
		assert.Equal(t, "badge.card", comps[0].Name)
		assert.Equal(t, "zigzag.card", comps[1].Name)
		assert.Equal(t, badgeCard, comps[0].Source)
	})
}

func TestBuildOptions(t *testing.T) {
	t.Parallel()

	t.Run("locale only", func(t *testing.T) {
		t.Parallel()
		opts, err := buildOptions("", "", "de")
		require.NoError(t, err)
		assert.Equal(t, "de", opts.I18n.DefaultLocale)
		assert.Nil(t, opts.Props)
	})

	t.Run("parses props and translations files", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		props := filepath.Join(dir, "props.json")
		require.NoError(t, os.WriteFile(props, []byte(`{"name": "Ada", "code": "123456"}`), 0o644))
		translations := filepath.Join(dir, "messages.json")
		require.NoError(t, os.WriteFile(translations, []byte(`{"en": {"greeting": "Hello"}}`), 0o644))

		opts, err := buildOptions(props, translations, "en")
		require.NoError(t, err)
		assert.Equal(t, "Ada", opts.Props["name"])
		assert.Equal(t, "Hello", opts.I18n.Translations["en"]["greeting"])
	})

	t.Run("rejects malformed props", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "props.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"name":`), 0o644))

		_, err := buildOptions(path, "", "")
		assert.Error(t, err)
	})
}

func TestRenderCommand(t *testing.T) {
	t.Parallel()

	t.Run("writes html and text for each file", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()

		cardPath := filepath.Join(dir, "welcome.card")
		require.NoError(t, os.WriteFile(cardPath, []byte(rootCard), 0o644))

		compDir := filepath.Join(dir, "components")
		require.NoError(t, os.Mkdir(compDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(compDir, "badge.card"), []byte(badgeCard), 0o644))

		propsPath := filepath.Join(dir, "props.json")
		require.NoError(t, os.WriteFile(propsPath, []byte(`{"name": "Ada", "code": "123456"}`), 0o644))

		outDir := filepath.Join(dir, "out")
		err := run(context.Background(), []string{
			"render", cardPath,
			"--components", compDir,
			"--props", propsPath,
			"--out", outDir,
			"--text",
		})
		require.NoError(t, err)

		html, err := os.ReadFile(filepath.Join(outDir, "Welcome.html"))
		require.NoError(t, err)
		doc := string(html)
		assert.Contains(t, doc, "<!DOCTYPE html")
		assert.Contains(t, doc, "Hello, Ada")
		assert.Contains(t, doc, `<span class="badge"`)
		assert.Contains(t, doc, "123456")
		assert.Contains(t, doc, "<h2")

		text, err := os.ReadFile(filepath.Join(outDir, "Welcome.txt"))
		require.NoError(t, err)
		assert.Contains(t, string(text), "Hello, Ada")
		assert.Contains(t, string(text), "123456")
		assert.NotContains(t, string(text), "<span")
	})

	t.Run("requires at least one file", func(t *testing.T) {
		t.Parallel()
		err := run(context.Background(), []string{"render"})
		assert.Error(t, err)
	})

	t.Run("missing source file fails the run", func(t *testing.T) {
		t.Parallel()
		err := run(context.Background(), []string{
			"render", filepath.Join(t.TempDir(), "absent.card"),
			"--out", t.TempDir(),
		})
		assert.Error(t, err)
	})
}
