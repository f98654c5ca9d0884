package models

import "time"

// Audit carries the bookkeeping fields shared by every document.
type Audit struct {
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	CreatedBy string    `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
	UpdatedBy string    `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
}

// SoftDelete carries the logical-deletion flag for entities that are never
// physically removed. Deleted documents are excluded from every read path.
type SoftDelete struct {
	IsDeleted bool       `bson:"isDeleted" json:"-"`
	DeletedAt *time.Time `bson:"deletedAt,omitempty" json:"-"`
}

// Touch stamps modification time and actor.
func (a *Audit) Touch(by string) {
	a.UpdatedAt = time.Now().UTC()
	a.UpdatedBy = by
}

// Stamp initializes creation and modification fields for a new document.
func (a *Audit) Stamp(by string) {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.CreatedBy = by
	a.UpdatedAt = now
	a.UpdatedBy = by
}
