package models

import "time"

// Menu categories are a fixed set; the ordering flow groups items by them.
const (
	CategoryDrink = "minuman"
	CategoryFood  = "makanan"
	CategorySnack = "snack"
)

func ValidCategory(c string) bool {
	switch c {
	case CategoryDrink, CategoryFood, CategorySnack:
		return true
	}
	return false
}

type MenuItem struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Price       float64   `json:"price" gorm:"not null"`
	Category    string    `json:"category" gorm:"not null"`
	ImageURL    string    `json:"image_url"`
	// No column default: gorm would treat an explicit false as unset on
	// create and store the item as available.
	Available   bool      `json:"available" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HomepageImage is a storefront asset shown in one of the fixed homepage
// sections. The record owns the stored image file.
type HomepageImage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Section   string    `json:"section" gorm:"not null"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	SectionHero        = "hero"
	SectionAbout       = "about"
	SectionFacilities  = "facilities"
	SectionTestimonial = "testimonial"
)

func ValidSection(s string) bool {
	switch s {
	case SectionHero, SectionAbout, SectionFacilities, SectionTestimonial:
		return true
	}
	return false
}
