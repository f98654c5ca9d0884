package models

// Tag represents a product tag document. Tags are removed physically.
type Tag struct {
	ID           string `bson:"_id" json:"id"`
	Name         string `bson:"name" json:"name"`
	Icon         string `bson:"icon,omitempty" json:"icon,omitempty"`
	Color        string `bson:"color,omitempty" json:"color,omitempty"`
	DisplayOrder int    `bson:"displayOrder" json:"displayOrder"`
	IsActive     bool   `bson:"isActive" json:"isActive"`
	Version      int64  `bson:"version" json:"version"`

	Audit `bson:",inline"`
}
