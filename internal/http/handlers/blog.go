package handlers

import (
	"net/http"
	"strings"
	"time"

	"spiceroute-services/pkg/response"

	"github.com/google/uuid"
)

func (h *Handler) BlogPostsGet(w http.ResponseWriter, r *http.Request) {
	var blog BlogFile
	if err := h.loadOrDefault(FileBlogPosts, &blog); err != nil {
		h.Logger.Error("blog posts load failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load blog posts")
		return
	}
	if blog.Posts == nil {
		blog.Posts = []BlogPost{}
	}
	response.Success(w, blog)
}

func (h *Handler) BlogPostCreate(w http.ResponseWriter, r *http.Request) {
	var post BlogPost
	if err := h.decodeBody(r, &post); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid blog post payload")
		return
	}
	if strings.TrimSpace(post.Title) == "" || strings.TrimSpace(post.Content) == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Title and content are required")
		return
	}
	post.ID = uuid.NewString()
	post.PublishedAt = time.Now().Format(time.RFC3339)

	var blog BlogFile
	if err := h.loadOrDefault(FileBlogPosts, &blog); err != nil {
		h.Logger.Error("blog posts load failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save blog post")
		return
	}
	blog.Posts = append(blog.Posts, post)

	if err := h.Store.Save(FileBlogPosts, blog); err != nil {
		h.Logger.Error("blog posts save failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save blog post")
		return
	}
	response.Created(w, post)
}

func (h *Handler) BlogPostUpdate(w http.ResponseWriter, r *http.Request) {
	var updated BlogPost
	if err := h.decodeBody(r, &updated); err != nil || strings.TrimSpace(updated.ID) == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Blog post ID is required")
		return
	}

	var blog BlogFile
	if err := h.loadOrDefault(FileBlogPosts, &blog); err != nil {
		h.Logger.Error("blog posts load failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update blog post")
		return
	}

	found := false
	for i, post := range blog.Posts {
		if post.ID == updated.ID {
			updated.PublishedAt = post.PublishedAt
			updated.UpdatedAt = time.Now().Format(time.RFC3339)
			blog.Posts[i] = updated
			found = true
			break
		}
	}
	if !found {
		response.Error(w, http.StatusNotFound, "NOT_FOUND", "Blog post not found")
		return
	}

	if err := h.Store.Save(FileBlogPosts, blog); err != nil {
		h.Logger.Error("blog posts save failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update blog post")
		return
	}
	response.Success(w, updated)
}

func (h *Handler) AboutUsGet(w http.ResponseWriter, r *http.Request) {
	var content AboutUsContent
	if err := h.loadOrDefault(FileAboutUs, &content); err != nil {
		h.Logger.Error("about-us load failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load about-us content")
		return
	}
	response.Success(w, content)
}

func (h *Handler) AboutUsPut(w http.ResponseWriter, r *http.Request) {
	var content AboutUsContent
	if err := h.decodeBody(r, &content); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid about-us payload")
		return
	}
	content.UpdatedAt = time.Now().Format(time.RFC3339)

	if err := h.Store.Save(FileAboutUs, content); err != nil {
		h.Logger.Error("about-us save failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save about-us content")
		return
	}
	response.Success(w, content)
}
