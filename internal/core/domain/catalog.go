package domain

// Category groups products.
type Category struct {
	ID   int64  `json:"id" bson:"_id"`
	Name string `json:"name" bson:"name"`
}

// Product is a sellable item belonging to exactly one category.
type Product struct {
	ID          int64   `json:"id" bson:"_id"`
	Name        string  `json:"name" bson:"name"`
	Description string  `json:"description" bson:"description"`
	Price       float64 `json:"price" bson:"price"`
	CategoryID  int64   `json:"categoryId" bson:"category_id"`
}

// CategoryWithProducts is the read model returned for category lookups.
type CategoryWithProducts struct {
	Category
	Products []Product `json:"products" bson:"products"`
}
