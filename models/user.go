package models

import "time"

type User struct {
	ID        string   `gorm:"primaryKey" json:"id"`
	Email     string   `gorm:"unique;not null" json:"email"`
	Phone     string   `json:"phone"`
	Name      string   `json:"name"`
	Picture   string   `json:"picture"`
	Provider  string   `json:"provider"`
	Address   Address  `gorm:"embedded" json:"address"` // Embeds address fields directly
	Cart      Cart     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart"`
	Wishlist  Wishlist `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"wishlist"`
	Orders    []Order  `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"orders"`
	CreatedAt time.Time
}

// Address model embedded in User
type Address struct {
	Country    string `json:"country"`
	State      string `json:"state"`
	City       string `json:"city"`
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
}
