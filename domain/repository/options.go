package repository

// WithID filters by the "id" column.
func WithID(id int64) Option {
	return WithCondition("id", id)
}

// WithHotelID filters by the external listing reference.
func WithHotelID(hotelID string) Option {
	return WithCondition("hotel_id", hotelID)
}

// WithListingID filters child records by their owning listing.
func WithListingID(id int64) Option {
	return WithCondition("property_id", id)
}
