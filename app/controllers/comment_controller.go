package controllers

import (
	"errors"
	"html/template"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"inkwell/app/models"
	"inkwell/app/repositories"
	"inkwell/app/services"

	"github.com/gorilla/mux"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	commentService *services.CommentService
	postService    *services.PostService
	templates      map[string]*template.Template
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService, postService *services.PostService,
	basePath string) *CommentController {
	return &CommentController{
		commentService: commentService,
		postService:    postService,
		templates:      loadCommentTemplates(basePath),
	}
}

// loadCommentTemplates loads and parses all comment-related templates
func loadCommentTemplates(basePath string) map[string]*template.Template {
	templates := make(map[string]*template.Template)
	templates["new"] = template.Must(template.ParseFiles(
		filepath.Join(basePath, "app/views/layout.html"),
		filepath.Join(basePath, "app/views/comments/new.html"),
	))
	return templates
}

type commentFormData struct {
	User   *models.User
	Notice string
	PostID int
	Form   *models.CommentForm
}

// New displays the form for commenting on a post
func (cc *CommentController) New(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	if _, err := cc.postService.GetPost(postID, 0); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Failed to fetch post: "+err.Error(), http.StatusInternalServerError)
		return
	}

	cc.render(w, "new", commentFormData{
		User:   currentUser(r),
		PostID: postID,
		Form:   &models.CommentForm{},
	})
}

// Create handles attaching a comment to a post. Comments are approved
// immediately; a failed validation re-renders the form with field errors.
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	form := &models.CommentForm{
		Author:  strings.TrimSpace(r.FormValue("author")),
		Content: strings.TrimSpace(r.FormValue("content")),
	}
	if err := form.Validate(); err != nil {
		cc.render(w, "new", commentFormData{User: currentUser(r), PostID: postID, Form: form})
		return
	}

	if _, err := cc.commentService.CreateComment(postID, form); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Failed to create comment: "+err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/posts/"+strconv.Itoa(postID), http.StatusSeeOther)
}

func (cc *CommentController) render(w http.ResponseWriter, name string, data interface{}) {
	if err := cc.templates[name].ExecuteTemplate(w, "layout", data); err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}
