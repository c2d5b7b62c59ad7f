package persistence

import "time"

// PropertyModel represents an enriched listing in the database.
type PropertyModel struct {
	ID          int64    `gorm:"primaryKey;autoIncrement"`
	HotelID     string   `gorm:"column:hotel_id;type:varchar(100);uniqueIndex;not null"`
	Title       string   `gorm:"column:title;type:varchar(255);not null"`
	Summary     *string  `gorm:"column:summary;type:text"`
	Description *string  `gorm:"column:description;type:text"`
	Location    *string  `gorm:"column:location;type:varchar(255)"`
	Latitude    *float64 `gorm:"column:latitude"`
	Longitude   *float64 `gorm:"column:longitude"`
	Price       *string  `gorm:"column:price;type:varchar(50)"`
}

// TableName returns the table name.
func (PropertyModel) TableName() string { return "property_property" }

// SummaryModel represents a generated summary in the database.
type SummaryModel struct {
	ID         int64         `gorm:"primaryKey;autoIncrement"`
	PropertyID int64         `gorm:"column:property_id;not null;index"`
	Property   PropertyModel `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	Summary    string        `gorm:"column:summary;type:text;not null"`
	CreatedAt  time.Time     `gorm:"column:created_at;not null"`
}

// TableName returns the table name.
func (SummaryModel) TableName() string { return "property_summary" }

// RatingModel represents a generated rating and review in the database.
type RatingModel struct {
	ID         int64         `gorm:"primaryKey;autoIncrement"`
	PropertyID int64         `gorm:"column:property_id;not null;index"`
	Property   PropertyModel `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	Rating     float64       `gorm:"column:rating;not null;check:chk_property_rating_range,rating >= 0 AND rating <= 5"`
	Review     string        `gorm:"column:review;type:text;not null"`
	CreatedAt  time.Time     `gorm:"column:created_at;not null"`
}

// TableName returns the table name.
func (RatingModel) TableName() string { return "property_propertyrating" }
