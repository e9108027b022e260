package catalog

func price(v int64) *int64 { return &v }

func sizeGroup() *OptionGroup {
	return &OptionGroup{Name: "Tamaño", Options: []string{"Individual", "Mediana", "Familiar"}, Required: true}
}

// Menu is the built-in storefront menu used when no catalog file is configured.
func Menu() []Product {
	return []Product{
		{
			ID:              1,
			Category:        "Pizzas",
			Name:            "Pizza Margarita",
			Image:           "pizza_margarita.png",
			Price:           7000,
			OriginalPrice:   price(8500),
			Description:     "Clásica pizza margarita con salsa de tomate y albahaca fresca.",
			RequiredOptions: sizeGroup(),
			Extras:          &OptionGroup{Name: "Ingredientes extra", Options: []string{"Queso extra", "Jalapeños", "Jamón"}},
			Rating:          4.6,
			DeliveryTime:    "40-60 min",
		},
		{
			ID:              2,
			Category:        "Pizzas",
			Name:            "Pizza Pepperoni",
			Image:           "pizza_pepperoni.png",
			Price:           8000,
			OriginalPrice:   price(9000),
			Description:     "Pizza con rodajas de pepperoni y queso mozzarella derretido.",
			RequiredOptions: sizeGroup(),
			Extras:          &OptionGroup{Name: "Ingredientes extra", Options: []string{"Queso extra", "Aceitunas", "Champiñones"}},
			Rating:          4.3,
			DeliveryTime:    "45-70 min",
		},
		{
			ID:           3,
			Category:     "Bebidas",
			Name:         "Bebida Cola 500ml",
			Image:        "cola.png",
			Price:        2000,
			Description:  "Refresco cola en botella de 500ml.",
			Rating:       4.8,
			DeliveryTime: "20-30 min",
		},
		{
			ID:           4,
			Category:     "Bebidas",
			Name:         "Bebida Zero 500ml",
			Image:        "cola.png",
			Price:        2000,
			Description:  "Refresco cola sin azúcar en botella de 500ml.",
			Rating:       4.7,
			DeliveryTime: "20-30 min",
		},
		{
			ID:           5,
			Category:     "Postres",
			Name:         "Postre Brownie",
			Image:        "brownie.png",
			Price:        3500,
			Description:  "Delicioso brownie de chocolate con salsa de chocolate.",
			Rating:       4.9,
			DeliveryTime: "30-45 min",
		},
	}
}

func Default() *Catalog {
	c, err := New(Menu())
	if err != nil {
		panic(err)
	}
	return c
}
