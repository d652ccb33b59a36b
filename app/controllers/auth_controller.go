package controllers

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"inkwell/app/middleware"
	"inkwell/app/models"
	"inkwell/app/repositories"
	"inkwell/app/services"
)

// AuthController handles registration, login and logout
type AuthController struct {
	authService *services.AuthService
	templates   map[string]*template.Template
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, basePath string) *AuthController {
	return &AuthController{
		authService: authService,
		templates:   loadAuthTemplates(basePath),
	}
}

// loadAuthTemplates loads and parses all auth-related templates
func loadAuthTemplates(basePath string) map[string]*template.Template {
	templates := make(map[string]*template.Template)
	templates["login"] = template.Must(template.ParseFiles(
		filepath.Join(basePath, "app/views/layout.html"),
		filepath.Join(basePath, "app/views/auth/login.html"),
	))
	templates["register"] = template.Must(template.ParseFiles(
		filepath.Join(basePath, "app/views/layout.html"),
		filepath.Join(basePath, "app/views/auth/register.html"),
	))
	return templates
}

type loginData struct {
	User   *models.User
	Notice string
	Form   *models.LoginForm
}

type registerData struct {
	User   *models.User
	Notice string
	Form   *models.RegisterForm
}

// ShowLogin displays the login form
func (ac *AuthController) ShowLogin(w http.ResponseWriter, r *http.Request) {
	ac.render(w, "login", loginData{
		User:   currentUser(r),
		Notice: notice(r),
		Form:   &models.LoginForm{},
	})
}

// Login verifies the credentials, opens a session and sets the cookie
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	form := &models.LoginForm{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}
	if err := form.Validate(); err != nil {
		ac.render(w, "login", loginData{Form: form})
		return
	}

	session, err := ac.authService.Login(form.Username, form.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidLogin) {
			form.Errors = map[string]string{"Form": "Invalid username or password"}
			ac.render(w, "login", loginData{Form: form})
			return
		}
		http.Error(w, "Login failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(ac.authService.Lifetime()),
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ShowRegister displays the registration form
func (ac *AuthController) ShowRegister(w http.ResponseWriter, r *http.Request) {
	ac.render(w, "register", registerData{
		User:   currentUser(r),
		Notice: notice(r),
		Form:   &models.RegisterForm{},
	})
}

// Register creates a new account. Duplicate usernames and emails come back
// as field errors on the form.
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	form := &models.RegisterForm{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	if err := form.Validate(); err != nil {
		ac.render(w, "register", registerData{Form: form})
		return
	}

	_, err := ac.authService.Register(form)
	switch {
	case errors.Is(err, repositories.ErrUsernameTaken):
		form.Errors = map[string]string{"Username": "is already taken"}
		ac.render(w, "register", registerData{Form: form})
	case errors.Is(err, repositories.ErrEmailTaken):
		form.Errors = map[string]string{"Email": "is already taken"}
		ac.render(w, "register", registerData{Form: form})
	case err != nil:
		http.Error(w, "Registration failed: "+err.Error(), http.StatusInternalServerError)
	default:
		http.Redirect(w, r, "/login?notice="+url.QueryEscape("Account created, please log in"), http.StatusSeeOther)
	}
}

// Logout deletes the session and expires the cookie
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil {
		_ = ac.authService.Logout(cookie.Value)
		cookie.Value = ""
		cookie.Path = "/"
		cookie.MaxAge = -1
		http.SetCookie(w, cookie)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (ac *AuthController) render(w http.ResponseWriter, name string, data interface{}) {
	if err := ac.templates[name].ExecuteTemplate(w, "layout", data); err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}
