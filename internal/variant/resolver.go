// Package variant resuelve la selección de opciones de un producto a un
// variante concreto con precio y stock.
package variant

import (
	"errors"

	"product-feed/internal/models"
)

// LowStockThreshold es el límite (exclusivo) de stock bajo
const LowStockThreshold = 5

var ErrUnknownOption = errors.New("unknown product option")

// Resolver mantiene el estado de selección de una vista de detalle.
// No es seguro para uso concurrente.
type Resolver struct {
	product  *models.Product
	selected *models.ProductVariant
	options  map[string]string
}

func Bind(product *models.Product) *Resolver {
	r := &Resolver{}
	r.Bind(product)
	return r
}

// Bind reinicia la selección: primer variante con stock, si no el primero.
func (r *Resolver) Bind(product *models.Product) {
	r.product = product
	r.selected = nil
	r.options = map[string]string{}

	if product == nil || len(product.Variants) == 0 {
		return
	}

	def := &product.Variants[0]
	for i := range product.Variants {
		if product.Variants[i].InStock() {
			def = &product.Variants[i]
			break
		}
	}

	r.selected = def
	for _, opt := range def.Options {
		r.options[opt.OptionID] = opt.Value
	}
}

// SelectOption escribe el valor y busca el variante que coincide en todas sus
// opciones. Si ninguno coincide se conserva el variante anterior.
func (r *Resolver) SelectOption(optionID, value string) error {
	if r.product == nil || len(r.product.Variants) == 0 {
		return nil
	}
	if len(r.product.Options) > 0 {
		if _, ok := r.product.FindOption(optionID); !ok {
			return ErrUnknownOption
		}
	}

	r.options[optionID] = value

	if match := r.match(); match != nil {
		r.selected = match
	}
	return nil
}

func (r *Resolver) match() *models.ProductVariant {
	for i := range r.product.Variants {
		v := &r.product.Variants[i]
		if len(v.Options) == 0 {
			continue
		}
		ok := true
		for _, opt := range v.Options {
			if got, found := r.options[opt.OptionID]; !found || got != opt.Value {
				ok = false
				break
			}
		}
		if ok {
			return v
		}
	}
	return nil
}

func (r *Resolver) Product() *models.Product {
	return r.product
}

func (r *Resolver) Selected() (*models.ProductVariant, bool) {
	return r.selected, r.selected != nil
}

// SelectedOptions retorna una copia del mapa de selección
func (r *Resolver) SelectedOptions() map[string]string {
	out := make(map[string]string, len(r.options))
	for k, v := range r.options {
		out[k] = v
	}
	return out
}

// IsOutOfStock trata inventario desconocido o sin variante como agotado
func (r *Resolver) IsOutOfStock() bool {
	return !r.selected.InStock()
}

func (r *Resolver) IsLowStock() bool {
	stock := r.selected.Stock()
	return stock > 0 && stock < LowStockThreshold
}

// FormattedPrice es vacío cuando no hay variante o precio
func (r *Resolver) FormattedPrice() string {
	price, ok := r.selected.CanonicalPrice()
	if !ok {
		return ""
	}
	return FormatPrice(price.CurrencyCode, price.Amount)
}

// View es una foto serializable del estado de selección
type View struct {
	ProductID       string                 `json:"product_id"`
	Variant         *models.ProductVariant `json:"variant"`
	SelectedOptions map[string]string      `json:"selected_options"`
	FormattedPrice  string                 `json:"formatted_price"`
	OutOfStock      bool                   `json:"out_of_stock"`
	LowStock        bool                   `json:"low_stock"`
}

func (r *Resolver) View() View {
	v := View{
		SelectedOptions: r.SelectedOptions(),
		FormattedPrice:  r.FormattedPrice(),
		OutOfStock:      r.IsOutOfStock(),
		LowStock:        r.IsLowStock(),
	}
	if r.product != nil {
		v.ProductID = r.product.ID
	}
	if r.selected != nil {
		selected := *r.selected
		v.Variant = &selected
	}
	return v
}
