package catalog

// Default returns the Temple Eats menu
func Default() *Catalog {
	return New(defaultCategories, defaultItems)
}

var defaultCategories = []Category{
	{ID: "1", Name: "Wings"},
	{ID: "2", Name: "Sides"},
	{ID: "3", Name: "Drinks"},
	{ID: "4", Name: "Desserts"},
}

var defaultItems = []Item{
	{
		ID:          "1",
		Name:        "Buffalo Wings",
		Description: "Our signature buffalo wings tossed in spicy buffalo sauce. Served with celery sticks and your choice of dressing.",
		Price:       12.99,
		ImageURL:    "https://images.pexels.com/photos/7627440/pexels-photo-7627440.jpeg",
		CategoryID:  "1",
		Options: []OptionGroup{
			{
				ID: "size", Name: "Size", Required: true,
				Items: []OptionItem{
					{ID: "6pc", Name: "6 Pieces", Price: 0},
					{ID: "12pc", Name: "12 Pieces", Price: 10.99},
					{ID: "18pc", Name: "18 Pieces", Price: 19.99},
				},
			},
			{
				ID: "sauce", Name: "Sauce Level", Required: true,
				Items: []OptionItem{
					{ID: "mild", Name: "Mild", Price: 0},
					{ID: "medium", Name: "Medium", Price: 0},
					{ID: "hot", Name: "Hot", Price: 0},
					{ID: "extra-hot", Name: "Extra Hot", Price: 0},
				},
			},
			{
				ID: "dressing", Name: "Dressing", Required: true,
				Items: []OptionItem{
					{ID: "ranch", Name: "Ranch", Price: 0},
					{ID: "blue-cheese", Name: "Blue Cheese", Price: 0},
				},
			},
			{
				ID: "extras", Name: "Add Extras", Required: false,
				Items: []OptionItem{
					{ID: "extra-sauce", Name: "Extra Sauce", Price: 0.99},
					{ID: "extra-dressing", Name: "Extra Dressing", Price: 0.99},
					{ID: "extra-celery", Name: "Extra Celery", Price: 1.49},
				},
			},
		},
	},
	{
		ID:          "2",
		Name:        "BBQ Wings",
		Description: "Tender chicken wings smothered in our house-made smoky BBQ sauce, served with your choice of dressing.",
		Price:       12.99,
		ImageURL:    "https://images.pexels.com/photos/60616/fried-chicken-chicken-fried-crunchy-60616.jpeg",
		CategoryID:  "1",
		Options: []OptionGroup{
			{
				ID: "size", Name: "Size", Required: true,
				Items: []OptionItem{
					{ID: "6pc", Name: "6 Pieces", Price: 0},
					{ID: "12pc", Name: "12 Pieces", Price: 10.99},
					{ID: "18pc", Name: "18 Pieces", Price: 19.99},
				},
			},
			{
				ID: "sauce", Name: "Sauce Amount", Required: true,
				Items: []OptionItem{
					{ID: "light", Name: "Light Sauce", Price: 0},
					{ID: "regular", Name: "Regular Sauce", Price: 0},
					{ID: "extra", Name: "Extra Sauce", Price: 0},
				},
			},
			{
				ID: "dressing", Name: "Dressing", Required: true,
				Items: []OptionItem{
					{ID: "ranch", Name: "Ranch", Price: 0},
					{ID: "blue-cheese", Name: "Blue Cheese", Price: 0},
				},
			},
			{
				ID: "extras", Name: "Add Extras", Required: false,
				Items: []OptionItem{
					{ID: "extra-sauce", Name: "Extra BBQ Sauce", Price: 0.99},
					{ID: "extra-dressing", Name: "Extra Dressing", Price: 0.99},
					{ID: "extra-celery", Name: "Celery Sticks", Price: 1.49},
				},
			},
		},
	},
	{
		ID:          "3",
		Name:        "Garlic Parmesan Wings",
		Description: "Crispy wings tossed in creamy garlic parmesan sauce.",
		Price:       13.99,
		ImageURL:    "https://images.pexels.com/photos/2338407/pexels-photo-2338407.jpeg",
		CategoryID:  "1",
		Options: []OptionGroup{
			{
				ID: "size", Name: "Size", Required: true,
				Items: []OptionItem{
					{ID: "6pc", Name: "6 Pieces", Price: 0},
					{ID: "12pc", Name: "12 Pieces", Price: 10.99},
					{ID: "18pc", Name: "18 Pieces", Price: 19.99},
				},
			},
			{
				ID: "sauce", Name: "Sauce Amount", Required: true,
				Items: []OptionItem{
					{ID: "light", Name: "Light Sauce", Price: 0},
					{ID: "regular", Name: "Regular Sauce", Price: 0},
					{ID: "extra", Name: "Extra Sauce", Price: 0},
				},
			},
			{
				ID: "extras", Name: "Add Extras", Required: false,
				Items: []OptionItem{
					{ID: "extra-sauce", Name: "Extra Garlic Sauce", Price: 0.99},
					{ID: "extra-parmesan", Name: "Extra Parmesan", Price: 0.99},
					{ID: "extra-celery", Name: "Celery Sticks", Price: 1.49},
				},
			},
		},
	},
	{
		ID:          "4",
		Name:        "Seasoned Fries",
		Description: "Crispy golden fries with house seasoning.",
		Price:       4.99,
		ImageURL:    "https://images.pexels.com/photos/1893556/pexels-photo-1893556.jpeg",
		CategoryID:  "2",
		Options: []OptionGroup{
			{
				ID: "size", Name: "Size", Required: true,
				Items: []OptionItem{
					{ID: "regular", Name: "Regular", Price: 0},
					{ID: "large", Name: "Large", Price: 2.00},
				},
			},
			{
				ID: "seasoning", Name: "Seasoning", Required: true,
				Items: []OptionItem{
					{ID: "light", Name: "Light", Price: 0},
					{ID: "regular", Name: "Regular", Price: 0},
					{ID: "extra", Name: "Extra", Price: 0},
				},
			},
			{
				ID: "extras", Name: "Add Extras", Required: false,
				Items: []OptionItem{
					{ID: "ranch", Name: "Ranch Dipping Sauce", Price: 0.75},
					{ID: "cheese", Name: "Cheese Sauce", Price: 1.49},
					{ID: "garlic", Name: "Garlic Aioli", Price: 0.99},
				},
			},
		},
	},
	{
		ID:          "5",
		Name:        "Chicken Tenders",
		Description: "Hand-breaded tenders with your choice of dipping sauce.",
		Price:       9.99,
		ImageURL:    "https://images.pexels.com/photos/60616/fried-chicken-chicken-fried-crunchy-60616.jpeg",
		CategoryID:  "2",
		Options: []OptionGroup{
			{
				ID: "size", Name: "Size", Required: true,
				Items: []OptionItem{
					{ID: "regular", Name: "Regular", Price: 0},
					{ID: "large", Name: "Large", Price: 2.00},
				},
			},
			{
				ID: "sauce", Name: "Dipping Sauce", Required: true,
				Items: []OptionItem{
					{ID: "ranch", Name: "Ranch", Price: 0},
					{ID: "bbq", Name: "BBQ Sauce", Price: 0},
					{ID: "honey-mustard", Name: "Honey Mustard", Price: 0},
				},
			},
			{
				ID: "extras", Name: "Add Extras", Required: false,
				Items: []OptionItem{
					{ID: "extra-sauce", Name: "Extra Sauce", Price: 0.75},
					{ID: "seasoning", Name: "Cajun Seasoning", Price: 0.50},
				},
			},
		},
	},
	{
		ID:          "6",
		Name:        "Fountain Drink",
		Description: "Ice-cold fountain soda.",
		Price:       2.49,
		ImageURL:    "https://images.pexels.com/photos/2789328/pexels-photo-2789328.jpeg",
		CategoryID:  "3",
		Options: []OptionGroup{
			{
				ID: "size", Name: "Size", Required: true,
				Items: []OptionItem{
					{ID: "regular", Name: "Regular (20 oz)", Price: 0},
					{ID: "large", Name: "Large (32 oz)", Price: 1.00},
				},
			},
			{
				ID: "type", Name: "Flavor", Required: true,
				Items: []OptionItem{
					{ID: "cola", Name: "Cola", Price: 0},
					{ID: "diet-cola", Name: "Diet Cola", Price: 0},
					{ID: "lemon-lime", Name: "Lemon Lime", Price: 0},
					{ID: "root-beer", Name: "Root Beer", Price: 0},
				},
			},
			{
				ID: "extras", Name: "Ice", Required: false,
				Items: []OptionItem{
					{ID: "extra-ice", Name: "Extra Ice", Price: 0},
					{ID: "no-ice", Name: "No Ice", Price: 0},
				},
			},
		},
	},
	{
		ID:          "7",
		Name:        "Chocolate Fudge Cake",
		Description: "Rich chocolate cake layered with fudge.",
		Price:       6.99,
		ImageURL:    "https://images.pexels.com/photos/132694/pexels-photo-132694.jpeg",
		CategoryID:  "4",
		Options: []OptionGroup{
			{
				ID: "size", Name: "Size", Required: true,
				Items: []OptionItem{
					{ID: "slice", Name: "Single Slice", Price: 0},
					{ID: "whole", Name: "Whole Cake", Price: 35.99},
				},
			},
			{
				ID: "extras", Name: "Add Extras", Required: false,
				Items: []OptionItem{
					{ID: "ice-cream", Name: "Vanilla Ice Cream", Price: 2.49},
					{ID: "whipped-cream", Name: "Whipped Cream", Price: 0.99},
					{ID: "extra-fudge", Name: "Extra Fudge Sauce", Price: 1.49},
				},
			},
		},
	},
}
