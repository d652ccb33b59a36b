package controllers

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"inkwell/app/models"
	"inkwell/app/repositories"
	"inkwell/app/services"

	"github.com/gorilla/mux"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService *services.PostService
	templates   map[string]*template.Template
}

// NewPostController creates a new PostController. basePath is prepended to
// template paths so tests can point at a fixture directory.
func NewPostController(postService *services.PostService, basePath string) *PostController {
	return &PostController{
		postService: postService,
		templates:   loadPostTemplates(basePath),
	}
}

// SetService sets the post service for testing
func (pc *PostController) SetService(service *services.PostService) {
	pc.postService = service
}

// loadPostTemplates loads and parses all post-related templates
func loadPostTemplates(basePath string) map[string]*template.Template {
	templates := make(map[string]*template.Template)
	templates["index"] = template.Must(template.ParseFiles(
		filepath.Join(basePath, "app/views/layout.html"),
		filepath.Join(basePath, "app/views/posts/index.html"),
		filepath.Join(basePath, "app/views/shared/pagination.html"),
	))
	templates["show"] = template.Must(template.ParseFiles(
		filepath.Join(basePath, "app/views/layout.html"),
		filepath.Join(basePath, "app/views/posts/show.html"),
		filepath.Join(basePath, "app/views/shared/comments.html"),
	))
	templates["new"] = template.Must(template.ParseFiles(
		filepath.Join(basePath, "app/views/layout.html"),
		filepath.Join(basePath, "app/views/posts/new.html"),
	))
	templates["edit"] = template.Must(template.ParseFiles(
		filepath.Join(basePath, "app/views/layout.html"),
		filepath.Join(basePath, "app/views/posts/edit.html"),
	))
	templates["confirm_delete"] = template.Must(template.ParseFiles(
		filepath.Join(basePath, "app/views/layout.html"),
		filepath.Join(basePath, "app/views/posts/confirm_delete.html"),
	))
	return templates
}

type listData struct {
	User    *models.User
	Notice  string
	Heading string
	Page    *services.PostPage
}

type formData struct {
	User   *models.User
	Notice string
	PostID int
	Form   *models.PostForm
}

// Index handles listing published posts, newest first, four per page.
// Bad page parameters never error: non-integers become page 1 and pages
// past the end become the last page.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	page, err := pc.postService.ListPublished(parsePage(r))
	if err != nil {
		http.Error(w, "Failed to fetch posts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	pc.render(w, "index", listData{
		User:    currentUser(r),
		Notice:  notice(r),
		Heading: "Latest posts",
		Page:    page,
	})
}

// UserPosts handles listing a user's published posts with the same
// pagination policy as Index
func (pc *PostController) UserPosts(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	user, page, err := pc.postService.ListByAuthor(username, parsePage(r))
	if errors.Is(err, repositories.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Failed to fetch posts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	pc.render(w, "index", listData{
		User:    currentUser(r),
		Notice:  notice(r),
		Heading: "Posts by " + user.Username,
		Page:    page,
	})
}

// Show handles displaying a single post with its approved comments and
// like state
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	uid := 0
	if user := currentUser(r); user != nil {
		uid = user.ID
	}

	detail, err := pc.postService.GetPost(id, uid)
	if errors.Is(err, repositories.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Failed to fetch post: "+err.Error(), http.StatusInternalServerError)
		return
	}

	data := struct {
		User   *models.User
		Notice string
		Detail *services.PostDetail
	}{currentUser(r), notice(r), detail}

	pc.render(w, "show", data)
}

// New displays the form for creating a new post
func (pc *PostController) New(w http.ResponseWriter, r *http.Request) {
	pc.render(w, "new", formData{
		User: currentUser(r),
		Form: &models.PostForm{},
	})
}

// Create handles creating a new post. The author and publish time come
// from the session, not the form. A failed validation re-renders the form
// with field errors.
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	form := &models.PostForm{
		Title:   strings.TrimSpace(r.FormValue("title")),
		Content: strings.TrimSpace(r.FormValue("content")),
	}
	if err := form.Validate(); err != nil {
		pc.render(w, "new", formData{User: currentUser(r), Form: form})
		return
	}

	post, err := pc.postService.CreatePost(form, currentUser(r))
	if err != nil {
		http.Error(w, "Failed to create post: "+err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/posts/"+strconv.Itoa(post.ID), http.StatusSeeOther)
}

// Edit displays the update form pre-filled with the stored post
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	detail, err := pc.postService.GetPost(id, 0)
	if errors.Is(err, repositories.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Failed to fetch post: "+err.Error(), http.StatusInternalServerError)
		return
	}

	pc.render(w, "edit", formData{
		User:   currentUser(r),
		Notice: notice(r),
		PostID: id,
		Form:   &models.PostForm{Title: detail.Post.Title, Content: detail.Post.Content},
	})
}

// Update handles applying an edit. A non-author's attempt is swallowed:
// the stored post re-renders in the form and nothing is mutated. A valid
// edit re-stamps the publish time.
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	form := &models.PostForm{
		Title:   strings.TrimSpace(r.FormValue("title")),
		Content: strings.TrimSpace(r.FormValue("content")),
	}
	if err := form.Validate(); err != nil {
		pc.render(w, "edit", formData{User: currentUser(r), PostID: id, Form: form})
		return
	}

	post, err := pc.postService.UpdatePost(id, form, currentUser(r))
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		http.NotFound(w, r)
	case errors.Is(err, services.ErrForbidden):
		pc.Edit(w, r)
	case err != nil:
		http.Error(w, "Failed to update post: "+err.Error(), http.StatusInternalServerError)
	default:
		http.Redirect(w, r, "/posts/"+strconv.Itoa(post.ID)+"?notice="+url.QueryEscape("Post updated"), http.StatusSeeOther)
	}
}

// ConfirmDelete displays the delete confirmation page
func (pc *PostController) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	detail, err := pc.postService.GetPost(id, 0)
	if errors.Is(err, repositories.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Failed to fetch post: "+err.Error(), http.StatusInternalServerError)
		return
	}

	data := struct {
		User   *models.User
		Notice string
		Post   *models.Post
	}{currentUser(r), notice(r), detail.Post}

	pc.render(w, "confirm_delete", data)
}

// Delete handles deleting a post. A non-author's POST behaves exactly like
// a GET: the confirmation page renders again and nothing is deleted.
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	err = pc.postService.DeletePost(id, currentUser(r))
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		http.NotFound(w, r)
	case errors.Is(err, services.ErrForbidden):
		pc.ConfirmDelete(w, r)
	case err != nil:
		http.Error(w, "Failed to delete post: "+err.Error(), http.StatusInternalServerError)
	default:
		http.Redirect(w, r, "/?notice="+url.QueryEscape("Post deleted"), http.StatusSeeOther)
	}
}

// Like toggles the current user's like on the post named by the post_id
// form field, then redirects to the detail page named by the path.
func (pc *PostController) Like(w http.ResponseWriter, r *http.Request) {
	pk := mux.Vars(r)["id"]

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	postID, err := strconv.Atoi(r.FormValue("post_id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if _, err := pc.postService.ToggleLike(postID, currentUser(r).ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Failed to toggle like: "+err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/posts/"+pk, http.StatusSeeOther)
}

func (pc *PostController) render(w http.ResponseWriter, name string, data interface{}) {
	if err := pc.templates[name].ExecuteTemplate(w, "layout", data); err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}
