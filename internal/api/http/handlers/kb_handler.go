package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/supportstack/helpdesk/internal/api/dto"
	"github.com/supportstack/helpdesk/internal/domain"
	"github.com/supportstack/helpdesk/internal/service"
	apperrors "github.com/supportstack/helpdesk/pkg/util"
)

// KBHandler manages knowledge-base article endpoints.
type KBHandler struct {
	kb *service.KBService
}

// NewKBHandler constructs handler.
func NewKBHandler(kbService *service.KBService) *KBHandler {
	return &KBHandler{kb: kbService}
}

// ListArticles GET /kb.
func (h *KBHandler) ListArticles(c *fiber.Ctx) error {
	var status *domain.ArticleStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.ArticleStatus(raw)
		status = &s
	}
	articles, err := h.kb.ListArticles(c.Context(), status, c.Query("query"))
	if err != nil {
		return err
	}
	items := make([]dto.ArticleResponse, 0, len(articles))
	for i := range articles {
		items = append(items, articleResponse(&articles[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateArticle POST /kb.
func (h *KBHandler) CreateArticle(c *fiber.Ctx) error {
	req, err := parseArticleRequest(c)
	if err != nil {
		return err
	}
	article, err := h.kb.CreateArticle(c.Context(), service.ArticleInput{
		Title:  req.Title,
		Body:   req.Body,
		Tags:   req.Tags,
		Status: req.Status,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": articleResponse(article)})
}

// UpdateArticle PUT /kb/:id.
func (h *KBHandler) UpdateArticle(c *fiber.Ctx) error {
	req, err := parseArticleRequest(c)
	if err != nil {
		return err
	}
	article, err := h.kb.UpdateArticle(c.Context(), c.Params("id"), service.ArticleInput{
		Title:  req.Title,
		Body:   req.Body,
		Tags:   req.Tags,
		Status: req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": articleResponse(article)})
}

// DeleteArticle DELETE /kb/:id.
func (h *KBHandler) DeleteArticle(c *fiber.Ctx) error {
	if err := h.kb.DeleteArticle(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

func parseArticleRequest(c *fiber.Ctx) (*dto.ArticleRequest, error) {
	var req dto.ArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Body) == "" {
		return nil, apperrors.NewValidationError("title and body required", nil)
	}
	if req.Status != "" && req.Status != domain.ArticleStatusDraft && req.Status != domain.ArticleStatusPublished {
		return nil, apperrors.NewValidationError("status must be draft or published", nil)
	}
	return &req, nil
}

func articleResponse(article *domain.Article) dto.ArticleResponse {
	return dto.ArticleResponse{
		ID:        article.ID,
		Title:     article.Title,
		Body:      article.Body,
		Tags:      article.Tags,
		Status:    article.Status,
		UpdatedAt: article.UpdatedAt,
	}
}
