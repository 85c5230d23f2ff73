package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/brightforge-studio/brightforge/db"
	"github.com/brightforge-studio/brightforge/internal/logger"
	"github.com/brightforge-studio/brightforge/internal/models"
	"github.com/brightforge-studio/brightforge/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateArticleRequest struct {
	Title       string   `json:"title" binding:"required"`
	Content     string   `json:"content" binding:"required"`
	Excerpt     string   `json:"excerpt"`
	Tags        []string `json:"tags"`
	IsPublished bool     `json:"is_published"`
	IsPinned    bool     `json:"is_pinned"`
}

type UpdateArticleRequest struct {
	Title       string   `json:"title" binding:"required"`
	Content     string   `json:"content" binding:"required"`
	Excerpt     string   `json:"excerpt"`
	Tags        []string `json:"tags"`
	IsPublished bool     `json:"is_published"`
	IsPinned    bool     `json:"is_pinned"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type VoteRequest struct {
	Value int `json:"value" binding:"required"`
}

// ListArticles returns published articles only, pinned first.
func ListArticles(ctx *gin.Context) {
	var articles []models.BlogArticle

	if err := db.DB.Where("is_published = ?", true).
		Order("is_pinned DESC, published_at DESC").
		Find(&articles).Error; err != nil {
		logger.L.Error("Failed to list articles", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve articles"})
		return
	}

	if articles == nil {
		articles = []models.BlogArticle{}
	}

	ctx.JSON(http.StatusOK, articles)
}

// GetArticle responds 404 for unpublished slugs; the public cannot tell an
// unpublished article from a missing one.
func GetArticle(ctx *gin.Context) {
	slug := ctx.Param("slug")

	var article models.BlogArticle

	if err := db.DB.Where("slug = ? AND is_published = ?", slug, true).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		} else {
			logger.L.Error("Failed to fetch article", zap.String("slug", slug), zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve article"})
		}
		return
	}

	ctx.JSON(http.StatusOK, article)
}

func publishedArticle(ctx *gin.Context) (models.BlogArticle, bool) {
	slug := ctx.Param("slug")

	var article models.BlogArticle

	if err := db.DB.Where("slug = ? AND is_published = ?", slug, true).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		} else {
			logger.L.Error("Failed to fetch article", zap.String("slug", slug), zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve article"})
		}
		return article, false
	}

	return article, true
}

func ListComments(ctx *gin.Context) {
	article, ok := publishedArticle(ctx)

	if !ok {
		return
	}

	var comments []models.BlogComment

	if err := db.DB.Where("article_id = ?", article.ID).Order("created_at ASC").Find(&comments).Error; err != nil {
		logger.L.Error("Failed to list comments", zap.Uint("article_id", article.ID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}

	if comments == nil {
		comments = []models.BlogComment{}
	}

	ctx.JSON(http.StatusOK, comments)
}

func CreateComment(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	article, ok := publishedArticle(ctx)

	if !ok {
		return
	}

	var req CreateCommentRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	comment := models.BlogComment{
		ArticleID: article.ID,
		UserID:    userID,
		Content:   req.Content,
	}

	if err := db.DB.Create(&comment).Error; err != nil {
		logger.L.Error("Failed to create comment", zap.Uint("article_id", article.ID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	ctx.JSON(http.StatusCreated, comment)
}

// Vote keeps one row per user and article; a repeat vote updates the value.
func Vote(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	article, ok := publishedArticle(ctx)

	if !ok {
		return
	}

	var req VoteRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Value != 1 && req.Value != -1 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Vote value must be 1 or -1"})
		return
	}

	var vote models.BlogVote

	err = db.DB.Where("article_id = ? AND user_id = ?", article.ID, userID).First(&vote).Error

	if err == nil {
		vote.Value = req.Value

		if err := db.DB.Save(&vote).Error; err != nil {
			logger.L.Error("Failed to update vote", zap.Uint("article_id", article.ID), zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save vote"})
			return
		}

		ctx.JSON(http.StatusOK, vote)
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.L.Error("Failed to fetch vote", zap.Uint("article_id", article.ID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save vote"})
		return
	}

	vote = models.BlogVote{
		ArticleID: article.ID,
		UserID:    userID,
		Value:     req.Value,
	}

	if err := db.DB.Create(&vote).Error; err != nil {
		// A concurrent vote can win the race to the unique index; treat the
		// duplicate as an update.
		if isUniqueViolation(err) {
			if err := db.DB.Model(&models.BlogVote{}).
				Where("article_id = ? AND user_id = ?", article.ID, userID).
				Update("value", req.Value).Error; err == nil {
				ctx.JSON(http.StatusOK, vote)
				return
			}
		}

		logger.L.Error("Failed to create vote", zap.Uint("article_id", article.ID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save vote"})
		return
	}

	ctx.JSON(http.StatusCreated, vote)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error

	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// Admin article management below; routes are registered under /api/admin.

func AdminListArticles(ctx *gin.Context) {
	var articles []models.BlogArticle

	if err := db.DB.Order("created_at DESC").Find(&articles).Error; err != nil {
		logger.L.Error("Failed to list articles", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve articles"})
		return
	}

	if articles == nil {
		articles = []models.BlogArticle{}
	}

	ctx.JSON(http.StatusOK, articles)
}

func AdminCreateArticle(ctx *gin.Context) {
	var req CreateArticleRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	slug, err := utils.GenerateUniqueSlug(db.DB, req.Title)

	if err != nil {
		logger.L.Error("Failed to generate slug", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create article"})
		return
	}

	article := models.BlogArticle{
		Slug:        slug,
		Title:       req.Title,
		Content:     req.Content,
		Excerpt:     req.Excerpt,
		Tags:        req.Tags,
		IsPublished: req.IsPublished,
		IsPinned:    req.IsPinned,
	}

	if req.IsPublished {
		now := time.Now()
		article.PublishedAt = &now
	}

	if err := db.DB.Create(&article).Error; err != nil {
		logger.L.Error("Failed to create article", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create article"})
		return
	}

	logSecurityEvent(ctx, "blog_article_created", article.Slug, nil)

	ctx.JSON(http.StatusCreated, article)
}

func AdminUpdateArticle(ctx *gin.Context) {
	articleID, err := utils.GetIDParam(ctx, "article_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateArticleRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var article models.BlogArticle

	if err := db.DB.First(&article, articleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		} else {
			logger.L.Error("Failed to fetch article", zap.Uint("article_id", articleID), zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve article"})
		}
		return
	}

	article.Title = req.Title
	article.Content = req.Content
	article.Excerpt = req.Excerpt
	article.Tags = req.Tags
	article.IsPinned = req.IsPinned

	// published_at tracks the publish toggle.
	if req.IsPublished && !article.IsPublished {
		now := time.Now()
		article.PublishedAt = &now
	} else if !req.IsPublished {
		article.PublishedAt = nil
	}

	article.IsPublished = req.IsPublished

	if err := db.DB.Save(&article).Error; err != nil {
		logger.L.Error("Failed to update article", zap.Uint("article_id", articleID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update article"})
		return
	}

	logSecurityEvent(ctx, "blog_article_updated", article.Slug, nil)

	ctx.JSON(http.StatusOK, article)
}

func AdminDeleteArticle(ctx *gin.Context) {
	articleID, err := utils.GetIDParam(ctx, "article_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var article models.BlogArticle

	if err := db.DB.First(&article, articleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		} else {
			logger.L.Error("Failed to fetch article", zap.Uint("article_id", articleID), zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve article"})
		}
		return
	}

	if err := db.DB.Delete(&article).Error; err != nil {
		logger.L.Error("Failed to delete article", zap.Uint("article_id", articleID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete article"})
		return
	}

	logSecurityEvent(ctx, "blog_article_deleted", article.Slug, nil)

	ctx.Status(http.StatusNoContent)
}
