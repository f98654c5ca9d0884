package models

// Category represents a catalog category document. Categories form a tree
// through ParentID; a category must never be its own ancestor.
type Category struct {
	ID          string  `bson:"_id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Description string  `bson:"description" json:"description"`
	Slug        string  `bson:"slug" json:"slug"`
	ParentID    *string `bson:"parentId,omitempty" json:"parentId,omitempty"`
	IsMain      bool    `bson:"isMain" json:"isMain"`
	Version     int64   `bson:"version" json:"version"`

	Audit      `bson:",inline"`
	SoftDelete `bson:",inline"`
}

// CategoryNode is a category with its resolved children, used by the tree view.
type CategoryNode struct {
	Category
	Children []*CategoryNode `json:"children"`
}
