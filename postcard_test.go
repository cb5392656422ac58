package postcard_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/postcard"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

func TestRender(t *testing.T) {
	ctx := context.Background()

	t.Run("template-only source renders a document", func(t *testing.T) {
		r := postcard.New()
		doc, err := r.Render(ctx, "welcome:en", postcard.Source{
			Source: "<template><p>Hi</p></template>",
		}, nil)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(doc, postcard.Doctype))
		assert.Contains(t, doc, "<p>Hi</p>")
	})

	t.Run("props flow into the template", func(t *testing.T) {
		r := postcard.New()
		doc, err := r.Render(ctx, "greeting", postcard.Source{
			Source: "<template><p>Hello, {{ name }}!</p></template>",
		}, &postcard.Options{Props: map[string]any{"name": "Ada"}})
		require.NoError(t, err)
		assert.Contains(t, doc, "Hello, Ada!")
	})

	t.Run("parse failure returns typed error and empty string", func(t *testing.T) {
		r := postcard.New(postcard.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
		doc, err := r.Render(ctx, "broken", postcard.Source{
			Source: "<template><p>Hi</template>",
		}, nil)
		assert.Empty(t, doc)
		require.Error(t, err)
		assert.ErrorIs(t, err, postcard.ErrComponentNotFound)
		assert.ErrorIs(t, err, postcard.ErrParse)

		var renderErr *postcard.RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, "load-root", renderErr.Stage)
		assert.Equal(t, "Broken", renderErr.Component)
	})

	t.Run("empty source is a load failure", func(t *testing.T) {
		r := postcard.New(postcard.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
		doc, err := r.Render(ctx, "empty", postcard.Source{}, nil)
		assert.Empty(t, doc)
		assert.ErrorIs(t, err, postcard.ErrComponentNotFound)
	})

	t.Run("comments are stripped except conditionals", func(t *testing.T) {
		r := postcard.New()
		doc, err := r.Render(ctx, "comments", postcard.Source{
			Source: "<template><!-- internal note --><p>x</p><!--[if mso]><v:rect/><![endif]--></template>",
		}, nil)
		require.NoError(t, err)
		assert.NotContains(t, doc, "internal note")
		assert.Contains(t, doc, "<!--[if mso]>")
	})
}

func TestSubComponents(t *testing.T) {
	ctx := context.Background()

	t.Run("registered and expanded", func(t *testing.T) {
		r := postcard.New()
		doc, err := r.Render(ctx, "root", postcard.Source{
			Source: `<template><order-line :qty="3"/></template>`,
			Components: []postcard.Component{
				{Name: "order-line", Source: `<template><td>qty {{ qty }}</td></template>`},
			},
		}, nil)
		require.NoError(t, err)
		assert.Contains(t, doc, "<td>qty 3</td>")
	})

	t.Run("colliding canonical names last wins", func(t *testing.T) {
		r := postcard.New()
		doc, err := r.Render(ctx, "root", postcard.Source{
			Source: `<template><foo-bar/></template>`,
			Components: []postcard.Component{
				{Name: "Foo:bar", Source: `<template><i>first</i></template>`},
				{Name: "Foo-bar", Source: `<template><b>second</b></template>`},
			},
		}, nil)
		require.NoError(t, err)
		assert.Contains(t, doc, "<b>second</b>")
		assert.NotContains(t, doc, "first")
	})

	t.Run("sub-components reach the built-ins", func(t *testing.T) {
		r := postcard.New()
		doc, err := r.Render(ctx, "root", postcard.Source{
			Source: `<template><promo/></template>`,
			Components: []postcard.Component{
				{Name: "promo", Source: `<template><button href="https://example.com/sale">Shop now</button></template>`},
			},
		}, nil)
		require.NoError(t, err)
		assert.Contains(t, doc, `href="https://example.com/sale"`)
		assert.Contains(t, doc, ">Shop now</a>")
	})

	t.Run("broken sub-component is skipped", func(t *testing.T) {
		var logs bytes.Buffer
		r := postcard.New(postcard.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
		doc, err := r.Render(ctx, "root", postcard.Source{
			Source: `<template><p>kept</p><broken-part/></template>`,
			Components: []postcard.Component{
				{Name: "broken-part", Source: `<template><p>oops</template>`},
			},
		}, nil)
		require.NoError(t, err)
		assert.Contains(t, doc, "<p>kept</p>")
		assert.NotContains(t, doc, "oops")
		assert.Contains(t, logs.String(), "sub-component skipped")
	})

	t.Run("strict policy makes load failures fatal", func(t *testing.T) {
		r := postcard.New(
			postcard.StrictComponents(),
			postcard.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
		)
		doc, err := r.Render(ctx, "root", postcard.Source{
			Source: `<template><p>kept</p></template>`,
			Components: []postcard.Component{
				{Name: "broken-part", Source: `<template><p>oops</template>`},
			},
		}, nil)
		assert.Empty(t, doc)
		require.Error(t, err)
		assert.ErrorIs(t, err, postcard.ErrSubComponentLoad)

		var renderErr *postcard.RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, "BrokenPart", renderErr.Component)
	})

	t.Run("strict policy rejects unresolved tags", func(t *testing.T) {
		r := postcard.New(
			postcard.StrictComponents(),
			postcard.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
		)
		doc, err := r.Render(ctx, "root", postcard.Source{
			Source: `<template><mystery-widget/></template>`,
		}, nil)
		assert.Empty(t, doc)
		assert.ErrorIs(t, err, postcard.ErrSerialization)
	})

	t.Run("best effort passes unresolved tags through", func(t *testing.T) {
		var logs bytes.Buffer
		r := postcard.New(postcard.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
		doc, err := r.Render(ctx, "root", postcard.Source{
			Source: `<template><mystery-widget/></template>`,
		}, nil)
		require.NoError(t, err)
		assert.Contains(t, doc, "<mystery-widget")
		assert.Contains(t, logs.String(), "unresolved component tag")
	})
}

func TestLocalization(t *testing.T) {
	ctx := context.Background()

	frCatalog := map[string]map[string]any{
		"fr": {"welcome": map[string]any{"title": "Bienvenue"}},
		"en": {"welcome": map[string]any{"title": "Welcome"}},
	}

	t.Run("keys resolve in the requested locale", func(t *testing.T) {
		r := postcard.New()
		doc, err := r.Render(ctx, "hello", postcard.Source{
			Source: `<template><h1>{{ t("welcome.title") }}</h1></template>`,
		}, &postcard.Options{I18n: postcard.I18n{
			DefaultLocale: "fr",
			Translations:  frCatalog,
		}})
		require.NoError(t, err)
		assert.Contains(t, doc, "<h1>Bienvenue</h1>")
	})

	t.Run("no i18n means keys echo", func(t *testing.T) {
		r := postcard.New()
		doc, err := r.Render(ctx, "hello", postcard.Source{
			Source: `<template><h1>{{ t("welcome.title") }}</h1></template>`,
		}, nil)
		require.NoError(t, err)
		assert.Contains(t, doc, "<h1>welcome.title</h1>")
	})

	t.Run("translations without a locale stay inert", func(t *testing.T) {
		r := postcard.New()
		doc, err := r.Render(ctx, "hello", postcard.Source{
			Source: `<template><h1>{{ t("welcome.title") }}</h1></template>`,
		}, &postcard.Options{I18n: postcard.I18n{Translations: frCatalog}})
		require.NoError(t, err)
		assert.Contains(t, doc, "<h1>welcome.title</h1>")
	})

	t.Run("call locale merges with configured catalogs", func(t *testing.T) {
		r := postcard.New(postcard.WithConfig(postcard.Config{
			Options: postcard.Options{I18n: postcard.I18n{
				DefaultLocale: "en",
				Translations:  frCatalog,
			}},
		}))
		doc, err := r.Render(ctx, "hello", postcard.Source{
			Source: `<template><h1>{{ t("welcome.title") }}</h1></template>`,
		}, &postcard.Options{I18n: postcard.I18n{DefaultLocale: "fr"}})
		require.NoError(t, err)
		assert.Contains(t, doc, "<h1>Bienvenue</h1>")
	})

	t.Run("pluralized keys", func(t *testing.T) {
		r := postcard.New()
		doc, err := r.Render(ctx, "cart", postcard.Source{
			Source: `<template><p>{{ tn("cart.items", count) }}</p></template>`,
		}, &postcard.Options{
			Props: map[string]any{"count": 3},
			I18n: postcard.I18n{
				DefaultLocale: "en",
				Translations: map[string]map[string]any{
					"en": {"cart": map[string]any{"items": map[string]string{
						"one":   "one item",
						"other": "%{count} items",
					}}},
				},
			},
		})
		require.NoError(t, err)
		assert.Contains(t, doc, "3 items")
	})
}

func TestOptionPrecedence(t *testing.T) {
	ctx := context.Background()

	r := postcard.New(postcard.WithConfig(postcard.Config{
		Options: postcard.Options{Props: map[string]any{"name": "Config"}},
	}))

	t.Run("call props replace the configured bag", func(t *testing.T) {
		doc, err := r.Render(ctx, "who", postcard.Source{
			Source: "<template><p>{{ name }}</p></template>",
		}, &postcard.Options{Props: map[string]any{"name": "Call"}})
		require.NoError(t, err)
		assert.Contains(t, doc, "<p>Call</p>")
	})

	t.Run("configured props apply when the call has none", func(t *testing.T) {
		doc, err := r.Render(ctx, "who", postcard.Source{
			Source: "<template><p>{{ name }}</p></template>",
		}, nil)
		require.NoError(t, err)
		assert.Contains(t, doc, "<p>Config</p>")
	})
}

func TestConcurrentRenders(t *testing.T) {
	r := postcard.New()

	render := func(locale, label string) (string, error) {
		return r.Render(context.Background(), "notice", postcard.Source{
			Source: `<template><p>{{ t("notice.title") }}</p><part/></template>`,
			Components: []postcard.Component{
				{Name: "part", Source: `<template><b>` + label + `</b></template>`},
			},
		}, &postcard.Options{I18n: postcard.I18n{
			DefaultLocale: locale,
			Translations: map[string]map[string]any{
				"en": {"notice": map[string]any{"title": "Attention"}},
				"de": {"notice": map[string]any{"title": "Achtung"}},
			},
		}})
	}

	var english, german string
	g := new(errgroup.Group)
	g.Go(func() error {
		var err error
		english, err = render("en", "english-part")
		return err
	})
	g.Go(func() error {
		var err error
		german, err = render("de", "german-part")
		return err
	})
	require.NoError(t, g.Wait())

	assert.Contains(t, english, "Attention")
	assert.Contains(t, english, "english-part")
	assert.NotContains(t, english, "german-part")

	assert.Contains(t, german, "Achtung")
	assert.Contains(t, german, "german-part")
	assert.NotContains(t, german, "english-part")
}

func TestRenderPlainText(t *testing.T) {
	ctx := context.Background()
	r := postcard.New()

	text, err := r.RenderPlainText(ctx, "welcome", postcard.Source{
		Source: `<template><h1>Hello, {{ name }}!</h1><p>Thanks &amp; see you soon.</p></template>`,
	}, &postcard.Options{Props: map[string]any{"name": "Ada"}})
	require.NoError(t, err)

	assert.NotContains(t, text, "<")
	assert.Contains(t, text, "Hello, Ada!")
	assert.Contains(t, text, "Thanks & see you soon.")
	assert.NotContains(t, text, "DOCTYPE")
}

func TestInlineCSS(t *testing.T) {
	ctx := context.Background()
	r := postcard.New(postcard.WithInlineCSS())

	doc, err := r.Render(ctx, "styled", postcard.Source{
		Source: `<template><p class="lead">x</p></template>
<style>
.lead { color: red; }
</style>`,
	}, nil)
	require.NoError(t, err)
	assert.Contains(t, doc, "color: red")
	assert.Contains(t, doc, `style="`)
	assert.True(t, strings.HasPrefix(doc, postcard.Doctype))
}

func TestScopedStyleDocument(t *testing.T) {
	ctx := context.Background()
	r := postcard.New()

	doc, err := r.Render(ctx, "scoped", postcard.Source{
		Source: `<template><p class="note">x</p></template>
<style scoped>
.note { color: blue; }
</style>`,
	}, nil)
	require.NoError(t, err)
	assert.Contains(t, doc, "<style")
	assert.Contains(t, doc, "data-pc-")
	assert.Contains(t, doc, `.note[data-pc-`)
}

func TestSnapshotDocument(t *testing.T) {
	r := postcard.New()

	doc, err := r.Render(context.Background(), "order:confirmation", postcard.Source{
		Source: `<template>
<layout title="Order confirmed">
  <preview text="Your order is on its way"/>
  <heading>{{ t("order.thanks", { name = name }) }}</heading>
  <text>{{ tn("order.items", length(items)) }}</text>
  <order-line pc-for="item, i in items" :item="item" :index="i"/>
  <divider/>
  <button :href="trackUrl">{{ t("order.track") }}</button>
  <footer>Example Shop, 1 Main St.</footer>
</layout>
</template>`,
		Components: []postcard.Component{
			{Name: "order-line", Source: `<template>
<row>
  <column><text>{{ index + 1 }}. {{ item.name }}</text></column>
  <column align="right"><text tone="secondary">{{ item.price }}</text></column>
</row>
</template>`},
		},
	}, &postcard.Options{
		Props: map[string]any{
			"name":     "Ada",
			"trackUrl": "https://example.com/orders/42",
			"items": []any{
				map[string]any{"name": "Widget", "price": "$10.00"},
				map[string]any{"name": "Gadget", "price": "$24.50"},
			},
		},
		I18n: postcard.I18n{
			DefaultLocale: "en",
			Translations: map[string]map[string]any{
				"en": {"order": map[string]any{
					"thanks": "Thanks, %{name}!",
					"track":  "Track your order",
					"items": map[string]string{
						"one":   "You ordered one item.",
						"other": "You ordered %{count} items.",
					},
				}},
			},
		},
	})
	require.NoError(t, err)
	snaps.WithConfig(snaps.Ext(".html")).MatchSnapshot(t, doc)
}
