package models

import "gorm.io/gorm"

// BlogVote holds at most one row per user and article; repeat votes update
// the existing row's value.
type BlogVote struct {
	gorm.Model

	ArticleID uint `gorm:"not null;uniqueIndex:idx_article_user"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_article_user"`
	Value     int  `gorm:"not null"` // 1 or -1

	// Relationships
	Article BlogArticle `gorm:"foreignKey:ArticleID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	User    User        `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
