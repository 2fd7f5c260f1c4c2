package schemastream

import (
	"embed"

	i18n "github.com/kaptinlin/go-i18n"
)

//go:embed locales/*.json
var localesFS embed.FS

// I18n returns an initialised internationalisation bundle with the
// embedded locale catalogs, for use with CompileError.Localize and
// InvalidReason.Explain. Grounded on the teacher's i18n.go (embedded
// locales/*.json, i18n.NewBundle/WithDefaultLocale/WithLocales/LoadFS).
func I18n() (*i18n.I18n, error) {
	bundle := i18n.NewBundle(
		i18n.WithDefaultLocale("en"),
		i18n.WithLocales("en", "zh-Hans"),
	)
	if err := bundle.LoadFS(localesFS, "locales/*.json"); err != nil {
		return nil, err
	}
	return bundle, nil
}
