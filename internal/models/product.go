package models

// Product es la entidad de catálogo compartida por todos los FeedItem que la referencian.
// Se construye una sola vez por página y no se modifica después de emitir sus items.
type Product struct {
	ID                string           `json:"id" bson:"_id" yaml:"id"`
	Title             string           `json:"title" bson:"title" yaml:"title"`
	Description       *string          `json:"description" bson:"description,omitempty" yaml:"description"`
	Thumbnail         *string          `json:"thumbnail" bson:"thumbnail,omitempty" yaml:"thumbnail"`
	Options           []ProductOption  `json:"options" bson:"options" yaml:"options"`
	Variants          []ProductVariant `json:"variants" bson:"variants" yaml:"variants"`
	SupplementalMedia []string         `json:"wear_test_media,omitempty" bson:"-" yaml:"-"`
}

type ProductOption struct {
	ID     string        `json:"id" bson:"id" yaml:"id"`
	Title  string        `json:"title" bson:"title" yaml:"title"`
	Values []OptionValue `json:"values" bson:"values" yaml:"values"`
}

type OptionValue struct {
	Value string `json:"value" bson:"value" yaml:"value"`
}

// ProductVariant es un SKU concreto. Prices[0] es el precio canónico.
type ProductVariant struct {
	ID                string          `json:"id" bson:"id" yaml:"id"`
	Title             string          `json:"title" bson:"title" yaml:"title"`
	Prices            []Price         `json:"prices" bson:"prices" yaml:"prices"`
	InventoryQuantity *int            `json:"inventory_quantity" bson:"inventory_quantity,omitempty" yaml:"inventory_quantity"`
	Options           []VariantOption `json:"options" bson:"options" yaml:"options"`
}

// Price guarda montos en unidades menores (centavos), nunca formateados.
type Price struct {
	Amount       int64  `json:"amount" bson:"amount" yaml:"amount"`
	CurrencyCode string `json:"currency_code" bson:"currency_code" yaml:"currency_code"`
}

type VariantOption struct {
	OptionID string `json:"option_id" bson:"option_id" yaml:"option_id"`
	Value    string `json:"value" bson:"value" yaml:"value"`
}

// CanonicalPrice retorna el primer precio declarado
func (v *ProductVariant) CanonicalPrice() (Price, bool) {
	if v == nil || len(v.Prices) == 0 {
		return Price{}, false
	}
	return v.Prices[0], true
}

// Stock trata inventario desconocido como cero
func (v *ProductVariant) Stock() int {
	if v == nil || v.InventoryQuantity == nil {
		return 0
	}
	return *v.InventoryQuantity
}

func (v *ProductVariant) InStock() bool {
	return v.Stock() > 0
}

// OptionValues retorna las opciones del variante como mapa optionID -> valor
func (v *ProductVariant) OptionValues() map[string]string {
	out := make(map[string]string, len(v.Options))
	for _, opt := range v.Options {
		out[opt.OptionID] = opt.Value
	}
	return out
}

// FindOption busca una opción del producto por ID
func (p *Product) FindOption(id string) (*ProductOption, bool) {
	for i := range p.Options {
		if p.Options[i].ID == id {
			return &p.Options[i], true
		}
	}
	return nil, false
}

// HasValue indica si el valor está permitido para la opción
func (o *ProductOption) HasValue(value string) bool {
	for _, v := range o.Values {
		if v.Value == value {
			return true
		}
	}
	return false
}
