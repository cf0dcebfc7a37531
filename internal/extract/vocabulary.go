package extract

// Vocabulary names the attributes, classes and label prefixes a storefront
// uses to describe products.
type Vocabulary struct {
	NameAttrs  []string `json:"name_attrs"`
	IDAttrs    []string `json:"id_attrs"`
	PriceAttrs []string `json:"price_attrs"`

	// ContainerClasses and ContainerTags recognize the product container
	// (table row, card, generic wrapper) around an add control.
	ContainerClasses []string `json:"container_classes"`
	ContainerTags    []string `json:"container_tags"`

	NameLabels  []string `json:"name_labels"`
	IDLabels    []string `json:"id_labels"`
	PriceLabels []string `json:"price_labels"`

	// LabelPrefixes are stripped from label text, case-insensitively.
	LabelPrefixes []string `json:"label_prefixes"`
}

// DefaultVocabulary matches the catalog page templates.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		NameAttrs:        []string{"data-name", "data-title"},
		IDAttrs:          []string{"data-sku", "data-id", "data-article"},
		PriceAttrs:       []string{"data-price"},
		ContainerClasses: []string{"product", "product-card", "product-row", "card"},
		ContainerTags:    []string{"tr"},
		NameLabels:       []string{"product__name", "product-name", "name"},
		IDLabels:         []string{"product__sku", "product-sku", "sku"},
		PriceLabels:      []string{"product__price", "product-price", "price"},
		LabelPrefixes:    []string{"Артикул:", "Арт.:", "Арт.", "Article:", "SKU:", "Цена:", "Price:"},
	}
}
