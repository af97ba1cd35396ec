package specification

import "gorm.io/gorm"

// Specification narrows a knowledge query. Implementations chain onto the
// passed query builder and return it.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
