package models

// Variant is one portion/size option of a menu item.
type Variant struct {
	Label       string  `json:"label"`
	Price       float64 `json:"price"`
	PortionInfo string  `json:"portion_info,omitempty"`
}

// CartLine is one selected menu item. Lines are unique per
// (ItemID, Variant.Label); picking the same variant again bumps the
// quantity instead of adding a second line.
type CartLine struct {
	ItemID    string  `json:"item_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Variant   Variant `json:"selected_variant"`
	ImageRef  string  `json:"image_ref,omitempty"`
	Category  string  `json:"category,omitempty"`
}

// LineTotal is the variant price times the quantity.
func (l CartLine) LineTotal() float64 {
	return l.Variant.Price * float64(l.Quantity)
}

// Cart holds the lines of one client session plus free-text kitchen
// instructions. Insertion order is kept for display.
type Cart struct {
	Lines               []CartLine `json:"lines"`
	SpecialInstructions string     `json:"special_instructions,omitempty"`
}

// TotalPrice sums variant price × quantity over every line.
func (c Cart) TotalPrice() float64 {
	var total float64
	for _, line := range c.Lines {
		total += line.LineTotal()
	}
	return total
}
