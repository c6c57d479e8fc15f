package models

type Dish struct {
	ID          uint   `json:"id" gorm:"primaryKey" binding:"required"`
	Name        string `json:"name" gorm:"uniqueIndex;not null" binding:"required"`
	Portion     int    `json:"portion" gorm:"not null;check:portion > 0" binding:"gt=0"`
	Price       int    `json:"price" gorm:"not null;check:price > 0" binding:"gt=0"`
	Description string `json:"description" gorm:"not null" binding:"required"`
	ImageURL    string `json:"imageurl" gorm:"column:imageurl;not null" binding:"required,url"`
}

// DishInput carries the writable fields of a dish.
type DishInput struct {
	Name        string `json:"name" binding:"required"`
	Portion     int    `json:"portion" binding:"gt=0"`
	Price       int    `json:"price" binding:"gt=0"`
	Description string `json:"description" binding:"required"`
	ImageURL    string `json:"imageurl" binding:"required,url"`
}

func (in DishInput) Dish() Dish {
	return Dish{
		Name:        in.Name,
		Portion:     in.Portion,
		Price:       in.Price,
		Description: in.Description,
		ImageURL:    in.ImageURL,
	}
}
