package specification

import (
	"gorm.io/gorm"
)

type ByDocumentName struct {
	DocumentName string
}

func (s ByDocumentName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_name = ?", s.DocumentName)
}

type ByOutlineLevel struct {
	OutlineLevel int
}

func (s ByOutlineLevel) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("outline_level = ?", s.OutlineLevel)
}

// OrderBySublevel restores document order within a section.
type OrderBySublevel struct{}

func (s OrderBySublevel) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("outline_sublevel ASC")
}
