package variant

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"product-feed/internal/models"
)

const (
	PriceUnavailable = "Price unavailable"

	descriptionTemplate = "Experience the future of %s. Premium quality, designed for you."
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatPrice convierte unidades menores a un monto con formato de moneda en-US.
// Un código desconocido se muestra como "<CODE> <monto>".
func FormatPrice(currencyCode string, amount int64) string {
	value := decimal.New(amount, -2)
	code := strings.ToUpper(strings.TrimSpace(currencyCode))

	unit, err := currency.ParseISO(code)
	if err != nil {
		return code + " " + value.StringFixed(2)
	}

	scale, _ := currency.Standard.Rounding(unit)
	rounded := value.Round(int32(scale))

	symbol := printer.Sprint(currency.Symbol(unit))
	formatted := printer.Sprint(number.Decimal(rounded.InexactFloat64(), number.Scale(scale)))
	if rounded.IsNegative() {
		return "-" + symbol + strings.TrimPrefix(formatted, "-")
	}
	return symbol + formatted
}

// ProductPrice usa el precio canónico del primer variante
func ProductPrice(p *models.Product) string {
	if p == nil || len(p.Variants) == 0 {
		return PriceUnavailable
	}
	price, ok := p.Variants[0].CanonicalPrice()
	if !ok {
		return PriceUnavailable
	}
	return FormatPrice(price.CurrencyCode, price.Amount)
}

// ProductDescription retorna la descripción o una línea generada a partir del título
func ProductDescription(p *models.Product) string {
	if p == nil {
		return ""
	}
	if p.Description != nil && *p.Description != "" {
		return *p.Description
	}
	return printer.Sprintf(descriptionTemplate, p.Title)
}
