package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

var testCatalog = []ThemeOption{
	{ID: "default", Name: "Default", PreviewClass: "bg-white", ColorScheme: ColorSchemeLight, ButtonStyle: ButtonRounded, ButtonAnimation: AnimationNone, BackgroundEffect: EffectNone},
	{ID: "purple", Name: "Purple Dream", PreviewClass: "theme-purple", ColorScheme: ColorSchemeLight, ButtonStyle: ButtonPill, ButtonAnimation: AnimationGlow, BackgroundEffect: EffectGradient},
	{ID: "orange", Name: "Sunset Orange", ButtonStyle: ButtonSquare},
}

func TestResolveTheme(t *testing.T) {
	got := ResolveTheme("purple", testCatalog)
	if diff := cmp.Diff(testCatalog[1], got); diff != "" {
		t.Errorf("ResolveTheme(purple) mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveThemeUnknownFallsBackToFirst(t *testing.T) {
	assert.Equal(t, testCatalog[0], ResolveTheme("unknown", testCatalog))
	assert.Equal(t, testCatalog[0], ResolveTheme("", testCatalog))
}

func TestResolveThemeFillsUnsetAttributes(t *testing.T) {
	got := ResolveTheme("orange", testCatalog)
	assert.Equal(t, ButtonSquare, got.ButtonStyle)
	assert.Equal(t, AnimationNone, got.ButtonAnimation)
	assert.Equal(t, EffectNone, got.BackgroundEffect)
	assert.Equal(t, ColorSchemeLight, got.ColorScheme)
}

func TestResolveThemeEmptyCatalog(t *testing.T) {
	got := ResolveTheme("purple", nil)
	assert.Equal(t, "default", got.ID)
	assert.Equal(t, ButtonRounded, got.ButtonStyle)
}

func TestStyle(t *testing.T) {
	overrides := Theme{ID: "purple", PrimaryColor: "#ff00ff", BackgroundColor: "#000000", CustomCSS: ".x{}"}
	got := Style(ResolveTheme("purple", testCatalog), overrides)

	want := ThemeStyle{
		ThemeID:          "purple",
		ColorScheme:      ColorSchemeLight,
		PreviewClass:     "theme-purple",
		ButtonStyle:      ButtonPill,
		ButtonClass:      "rounded-full",
		ButtonAnimation:  AnimationGlow,
		AnimationClass:   "animation-glow",
		BackgroundEffect: EffectGradient,
		PrimaryColor:     "#ff00ff",
		BackgroundColor:  "#000000",
		CustomCSS:        ".x{}",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Style mismatch (-want +got):\n%s", diff)
	}
}

func TestStyleUnknownButtonStyle(t *testing.T) {
	got := Style(ThemeOption{ID: "odd", ButtonStyle: "wobbly", ButtonAnimation: "spin"}, Theme{})
	assert.Equal(t, ButtonRounded, got.ButtonStyle)
	assert.Equal(t, "rounded-lg", got.ButtonClass)
	assert.Equal(t, AnimationNone, got.ButtonAnimation)
	assert.Empty(t, got.AnimationClass)
}

func TestHasTheme(t *testing.T) {
	assert.True(t, HasTheme("orange", testCatalog))
	assert.False(t, HasTheme("teal", testCatalog))
}
