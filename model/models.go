package model

import "gorm.io/gorm"

// All lists every persisted model in dependency order.
var All = []interface{}{
	&Patient{},
	&Doctor{},
	&Staff{},
	&Appointment{},
}

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All...)
}
