package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type BlogArticle struct {
	gorm.Model

	Slug        string `gorm:"uniqueIndex;not null"`
	Title       string `gorm:"not null"`
	Content     string `gorm:"type:text;not null"`
	Excerpt     string
	Tags        pq.StringArray `gorm:"type:text[]"`
	IsPublished bool           `gorm:"not null;default:false"`
	IsPinned    bool           `gorm:"not null;default:false"`
	PublishedAt *time.Time

	// Relationships
	Comments []BlogComment `gorm:"foreignKey:ArticleID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Votes    []BlogVote    `gorm:"foreignKey:ArticleID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
