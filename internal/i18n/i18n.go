// Package i18n translates interface strings and formats money for display.
package i18n

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"golang.org/x/text/number"
)

var messageCatalog = buildCatalog()

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for lang, msgs := range messages {
		tag := language.MustParse(lang)
		for key, msg := range msgs {
			// Messages are printf formats; literal percent signs need escaping.
			if err := b.SetString(tag, key, strings.ReplaceAll(msg, "%", "%%")); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// Translator looks up interface strings for one language.
type Translator struct {
	printer *message.Printer
	lang    string
}

// NewTranslator returns a translator for lang. Unknown languages fall back to English.
func NewTranslator(lang string) *Translator {
	tag, err := language.Parse(lang)
	if err != nil || messages[lang] == nil {
		tag, lang = language.English, "en"
	}
	return &Translator{
		printer: message.NewPrinter(tag, message.Catalog(messageCatalog)),
		lang:    lang,
	}
}

// Language returns the language code in use.
func (t *Translator) Language() string {
	return t.lang
}

// T returns the translation for key, or key itself when there is none.
func (t *Translator) T(key string) string {
	return t.printer.Sprintf(key)
}

type currencyStyle struct {
	locale language.Tag
	symbol string
	suffix bool
}

var currencyStyles = map[string]currencyStyle{
	"EUR": {locale: language.French, symbol: "€", suffix: true},
	"USD": {locale: language.AmericanEnglish, symbol: "$"},
	"GBP": {locale: language.BritishEnglish, symbol: "£"},
	"CAD": {locale: language.MustParse("en-CA"), symbol: "$"},
	"CNY": {locale: language.MustParse("zh-CN"), symbol: "¥"},
	"XOF": {locale: language.MustParse("fr-BF"), symbol: "F CFA", suffix: true},
}

// FormatCurrency renders amount in the conventions of the currency's home locale,
// always with two fraction digits. Unknown codes are printed after the number.
func FormatCurrency(amount decimal.Decimal, code string) string {
	code = strings.ToUpper(code)
	style, ok := currencyStyles[code]
	if !ok {
		unit, err := currency.ParseISO(code)
		if err != nil {
			return amount.StringFixed(2)
		}
		style = currencyStyle{locale: language.English, symbol: unit.String(), suffix: true}
	}

	p := message.NewPrinter(style.locale)
	digits := p.Sprint(number.Decimal(amount.Abs().Round(2).InexactFloat64(), number.Scale(2)))

	sign := ""
	if amount.Round(2).IsNegative() {
		sign = "-"
	}
	if style.suffix {
		return sign + digits + " " + style.symbol
	}
	return sign + style.symbol + digits
}
