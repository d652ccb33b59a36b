package routes

import (
	"net/http"
	"path/filepath"
	"time"

	"inkwell/app/controllers"
	"inkwell/app/middleware"
	"inkwell/app/repositories"
	"inkwell/app/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
)

// Setup wires the repositories, services and controllers over the given
// Badger DB and returns the application router. basePath is prepended to
// template and static paths so tests can point at a fixture directory.
func Setup(db *badger.DB, basePath string, sessionLifetime time.Duration) *mux.Router {
	postRepo := repositories.NewBadgerPostRepository(db)
	commentRepo := repositories.NewBadgerCommentRepository(db)
	userRepo := repositories.NewBadgerUserRepository(db)
	likeRepo := repositories.NewBadgerLikeRepository(db)
	sessionRepo := repositories.NewBadgerSessionRepository(db)

	postService := services.NewPostService(postRepo, commentRepo, likeRepo, userRepo)
	commentService := services.NewCommentService(commentRepo, postRepo)
	authService := services.NewAuthService(userRepo, sessionRepo, sessionLifetime)

	postController := controllers.NewPostController(postService, basePath)
	commentController := controllers.NewCommentController(commentService, postService, basePath)
	authController := controllers.NewAuthController(authService, basePath)

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.WithSession(authService))

	// Serve static files
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/",
		http.FileServer(http.Dir(filepath.Join(basePath, "static")))))

	// Auth endpoints
	router.HandleFunc("/register", authController.ShowRegister).Methods("GET")
	router.HandleFunc("/register", authController.Register).Methods("POST")
	router.HandleFunc("/login", authController.ShowLogin).Methods("GET")
	router.HandleFunc("/login", authController.Login).Methods("POST")
	router.HandleFunc("/logout", authController.Logout).Methods("GET", "POST")

	// Web routes
	router.HandleFunc("/", postController.Index).Methods("GET")
	router.Handle("/users/{username}/posts",
		middleware.RequireAuth(http.HandlerFunc(postController.UserPosts))).Methods("GET")

	// Posts web endpoints
	posts := router.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", postController.Index).Methods("GET")
	posts.Handle("/new", middleware.RequireAuth(http.HandlerFunc(postController.New))).Methods("GET")
	posts.Handle("", middleware.RequireAuth(http.HandlerFunc(postController.Create))).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}", postController.Show).Methods("GET")
	posts.Handle("/{id:[0-9]+}/edit", middleware.RequireAuth(http.HandlerFunc(postController.Edit))).Methods("GET")
	posts.Handle("/{id:[0-9]+}/edit", middleware.RequireAuth(http.HandlerFunc(postController.Update))).Methods("POST")
	posts.Handle("/{id:[0-9]+}/delete", middleware.RequireAuth(http.HandlerFunc(postController.ConfirmDelete))).Methods("GET")
	posts.Handle("/{id:[0-9]+}/delete", middleware.RequireAuth(http.HandlerFunc(postController.Delete))).Methods("POST")
	posts.Handle("/{id:[0-9]+}/like", middleware.RequireAuth(http.HandlerFunc(postController.Like))).Methods("POST")

	// Comments web endpoints
	posts.Handle("/{id:[0-9]+}/comments/new", middleware.RequireAuth(http.HandlerFunc(commentController.New))).Methods("GET")
	posts.Handle("/{id:[0-9]+}/comments", middleware.RequireAuth(http.HandlerFunc(commentController.Create))).Methods("POST")

	return router
}

// StartServer starts the HTTP server on the specified address with the given router.
func StartServer(addr string, router http.Handler) error {
	return http.ListenAndServe(addr, router)
}
