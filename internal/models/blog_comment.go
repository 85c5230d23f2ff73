package models

import "gorm.io/gorm"

type BlogComment struct {
	gorm.Model

	ArticleID uint   `gorm:"not null;index"`
	UserID    uint   `gorm:"not null;index"`
	Content   string `gorm:"type:text;not null"`

	// Relationships
	Article BlogArticle `gorm:"foreignKey:ArticleID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	User    User        `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
