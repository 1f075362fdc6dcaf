package server

import (
	"postapi/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /posts
// @Summary List posts
// @Description All posts newest first, each with its author's username
// @Tags posts
// @Produce json
// @Success 200 {array} models.PostWithAuthor
// @Failure 500 {object} models.ErrorResponse
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postSvc().ListPosts(c.UserContext())
	if err != nil {
		return s.mapServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /posts/:id
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.PostWithAuthor
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postSvc().GetPostByID(c.UserContext(), id)
	if err != nil {
		return s.mapServiceError(c, err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /posts
// @Summary Create a post
// @Description content defaults to "" and status to "draft". The user is not checked.
// @Tags posts
// @Accept json
// @Produce json
// @Param request body service.CreatePostInput true "New post"
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var in service.CreatePostInput
	if err := s.decodeBody(c, &in); err != nil {
		return nil
	}

	post, err := s.postSvc().CreatePost(c.UserContext(), in)
	if err != nil {
		return s.mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetUserPosts handles GET /users/:id/posts
// @Summary List a user's posts
// @Description Newest first. An unknown user yields an empty list.
// @Tags posts
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.PostWithAuthor
// @Failure 500 {object} models.ErrorResponse
// @Router /users/{id}/posts [get]
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	posts, err := s.postSvc().GetUserPosts(c.UserContext(), userID)
	if err != nil {
		return s.mapServiceError(c, err)
	}
	return c.JSON(posts)
}
