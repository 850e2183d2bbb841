package domain

type ColorScheme string

const (
	ColorSchemeLight  ColorScheme = "light"
	ColorSchemeDark   ColorScheme = "dark"
	ColorSchemeSystem ColorScheme = "system"
)

type ButtonStyle string

const (
	ButtonRounded ButtonStyle = "rounded"
	ButtonPill    ButtonStyle = "pill"
	ButtonSquare  ButtonStyle = "square"
	ButtonSoft    ButtonStyle = "soft"
	ButtonGlass   ButtonStyle = "glass"
	ButtonOutline ButtonStyle = "outline"
	ButtonMinimal ButtonStyle = "minimal"
)

type ButtonAnimation string

const (
	AnimationNone   ButtonAnimation = "none"
	AnimationPulse  ButtonAnimation = "pulse"
	AnimationBounce ButtonAnimation = "bounce"
	AnimationGlow   ButtonAnimation = "glow"
	AnimationSlide  ButtonAnimation = "slide"
)

type BackgroundEffect string

const (
	EffectNone      BackgroundEffect = "none"
	EffectParticles BackgroundEffect = "particles"
	EffectGradient  BackgroundEffect = "gradient"
	EffectShapes    BackgroundEffect = "shapes"
)

var buttonClasses = map[ButtonStyle]string{
	ButtonRounded: "rounded-lg",
	ButtonPill:    "rounded-full",
	ButtonSquare:  "rounded-none",
	ButtonSoft:    "rounded-xl shadow-soft",
	ButtonGlass:   "rounded-lg glass-effect",
	ButtonOutline: "rounded-lg bg-transparent border-2",
	ButtonMinimal: "rounded-none bg-transparent shadow-none",
}

var animationClasses = map[ButtonAnimation]string{
	AnimationNone:   "",
	AnimationPulse:  "animation-pulse",
	AnimationBounce: "animation-bounce",
	AnimationGlow:   "animation-glow",
	AnimationSlide:  "animation-slide",
}

// Theme is the theme stored on a profile: the catalog id it refers to plus
// optional per-profile overrides.
type Theme struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	ColorScheme      ColorScheme      `json:"colorScheme"`
	PrimaryColor     string           `json:"primaryColor"`
	BackgroundColor  string           `json:"backgroundColor"`
	ButtonStyle      ButtonStyle      `json:"buttonStyle"`
	ButtonAnimation  ButtonAnimation  `json:"buttonAnimation,omitempty"`
	BackgroundEffect BackgroundEffect `json:"backgroundEffect,omitempty"`
	CustomCSS        string           `json:"customCSS,omitempty"`
}

// ThemeOption is an entry of the theme catalog.
type ThemeOption struct {
	ID               string           `json:"id" yaml:"id"`
	Name             string           `json:"name" yaml:"name"`
	PreviewClass     string           `json:"previewClass" yaml:"preview_class"`
	ColorScheme      ColorScheme      `json:"colorScheme" yaml:"color_scheme"`
	ButtonStyle      ButtonStyle      `json:"buttonStyle,omitempty" yaml:"button_style"`
	ButtonAnimation  ButtonAnimation  `json:"buttonAnimation,omitempty" yaml:"button_animation"`
	BackgroundEffect BackgroundEffect `json:"backgroundEffect,omitempty" yaml:"background_effect"`
}

// ThemeStyle is the bundle of presentation attributes a renderer needs.
type ThemeStyle struct {
	ThemeID          string           `json:"themeId"`
	ColorScheme      ColorScheme      `json:"colorScheme"`
	PreviewClass     string           `json:"previewClass"`
	ButtonStyle      ButtonStyle      `json:"buttonStyle"`
	ButtonClass      string           `json:"buttonClass"`
	ButtonAnimation  ButtonAnimation  `json:"buttonAnimation"`
	AnimationClass   string           `json:"animationClass,omitempty"`
	BackgroundEffect BackgroundEffect `json:"backgroundEffect"`
	PrimaryColor     string           `json:"primaryColor,omitempty"`
	BackgroundColor  string           `json:"backgroundColor,omitempty"`
	CustomCSS        string           `json:"customCSS,omitempty"`
}

var neutralTheme = ThemeOption{
	ID:               "default",
	Name:             "Default",
	ColorScheme:      ColorSchemeLight,
	ButtonStyle:      ButtonRounded,
	ButtonAnimation:  AnimationNone,
	BackgroundEffect: EffectNone,
}

// ResolveTheme returns the catalog entry for themeID, or the first entry
// when the id is unknown, with unset style attributes filled in.
func ResolveTheme(themeID string, catalog []ThemeOption) ThemeOption {
	if len(catalog) == 0 {
		return neutralTheme
	}
	resolved := catalog[0]
	for _, opt := range catalog {
		if opt.ID == themeID {
			resolved = opt
			break
		}
	}
	return withStyleDefaults(resolved)
}

// HasTheme reports whether themeID names a catalog entry.
func HasTheme(themeID string, catalog []ThemeOption) bool {
	for _, opt := range catalog {
		if opt.ID == themeID {
			return true
		}
	}
	return false
}

func withStyleDefaults(opt ThemeOption) ThemeOption {
	if _, ok := buttonClasses[opt.ButtonStyle]; !ok {
		opt.ButtonStyle = ButtonRounded
	}
	if _, ok := animationClasses[opt.ButtonAnimation]; !ok {
		opt.ButtonAnimation = AnimationNone
	}
	if opt.BackgroundEffect == "" {
		opt.BackgroundEffect = EffectNone
	}
	if opt.ColorScheme == "" {
		opt.ColorScheme = ColorSchemeLight
	}
	return opt
}

// Style combines a resolved catalog entry with the profile's overrides.
func Style(opt ThemeOption, overrides Theme) ThemeStyle {
	opt = withStyleDefaults(opt)
	return ThemeStyle{
		ThemeID:          opt.ID,
		ColorScheme:      opt.ColorScheme,
		PreviewClass:     opt.PreviewClass,
		ButtonStyle:      opt.ButtonStyle,
		ButtonClass:      buttonClasses[opt.ButtonStyle],
		ButtonAnimation:  opt.ButtonAnimation,
		AnimationClass:   animationClasses[opt.ButtonAnimation],
		BackgroundEffect: opt.BackgroundEffect,
		PrimaryColor:     overrides.PrimaryColor,
		BackgroundColor:  overrides.BackgroundColor,
		CustomCSS:        overrides.CustomCSS,
	}
}
