package routes

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"inkwell/app/middleware"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter wires the full application over a throwaway database, with
// templates loaded from the repository root.
func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})
	return Setup(db, "../..", time.Hour)
}

type client struct {
	t       *testing.T
	router  *mux.Router
	session *http.Cookie
}

func (c *client) do(method, target string, values url.Values) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if values != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if c.session != nil {
		req.AddCookie(c.session)
	}
	rw := httptest.NewRecorder()
	c.router.ServeHTTP(rw, req)
	return rw
}

func (c *client) get(target string) *httptest.ResponseRecorder {
	return c.do("GET", target, nil)
}

func (c *client) post(target string, values url.Values) *httptest.ResponseRecorder {
	return c.do("POST", target, values)
}

// signUp registers and logs in a user, capturing the session cookie.
func (c *client) signUp(username string) {
	c.t.Helper()
	rw := c.post("/register", url.Values{
		"username": {username},
		"email":    {username + "@example.com"},
		"password": {"sekrit123"},
	})
	require.Equal(c.t, http.StatusSeeOther, rw.Code)

	rw = c.post("/login", url.Values{
		"username": {username},
		"password": {"sekrit123"},
	})
	require.Equal(c.t, http.StatusSeeOther, rw.Code)

	cookies := rw.Result().Cookies()
	require.Len(c.t, cookies, 1)
	require.Equal(c.t, middleware.SessionCookie, cookies[0].Name)
	c.session = cookies[0]
}

var postPathRe = regexp.MustCompile(`^/posts/(\d+)$`)

// createPost publishes a post and returns its detail path.
func (c *client) createPost(title, content string) string {
	c.t.Helper()
	rw := c.post("/posts", url.Values{
		"title":   {title},
		"content": {content},
	})
	require.Equal(c.t, http.StatusSeeOther, rw.Code)

	loc := rw.Header().Get("Location")
	require.Regexp(c.t, postPathRe, loc)
	return loc
}

func TestAnonymousBrowsing(t *testing.T) {
	router := newTestRouter(t)
	author := &client{t: t, router: router}
	author.signUp("writer")
	postPath := author.createPost("Public Post", "Anyone can read this")

	anon := &client{t: t, router: router}

	t.Run("index lists the post", func(t *testing.T) {
		rw := anon.get("/")
		assert.Equal(t, http.StatusOK, rw.Code)
		assert.Contains(t, rw.Body.String(), "Public Post")
	})

	t.Run("detail page renders", func(t *testing.T) {
		rw := anon.get(postPath)
		assert.Equal(t, http.StatusOK, rw.Code)
		body := rw.Body.String()
		assert.Contains(t, body, "Anyone can read this")
		assert.Contains(t, body, "0 likes")
	})

	t.Run("missing post is a 404", func(t *testing.T) {
		rw := anon.get("/posts/9999")
		assert.Equal(t, http.StatusNotFound, rw.Code)
	})

	t.Run("unknown routes are 404", func(t *testing.T) {
		rw := anon.get("/nonexistent")
		assert.Equal(t, http.StatusNotFound, rw.Code)
	})
}

func TestAuthGating(t *testing.T) {
	router := newTestRouter(t)
	anon := &client{t: t, router: router}

	gated := []struct {
		method string
		target string
	}{
		{"GET", "/posts/new"},
		{"POST", "/posts"},
		{"GET", "/posts/1/edit"},
		{"POST", "/posts/1/edit"},
		{"GET", "/posts/1/delete"},
		{"POST", "/posts/1/delete"},
		{"POST", "/posts/1/like"},
		{"GET", "/posts/1/comments/new"},
		{"POST", "/posts/1/comments"},
		{"GET", "/users/someone/posts"},
	}

	for _, route := range gated {
		t.Run(route.method+" "+route.target, func(t *testing.T) {
			rw := anon.do(route.method, route.target, url.Values{})
			assert.Equal(t, http.StatusSeeOther, rw.Code)
			assert.Equal(t, "/login", rw.Header().Get("Location"))
		})
	}
}

func TestPostLifecycle(t *testing.T) {
	router := newTestRouter(t)
	author := &client{t: t, router: router}
	author.signUp("alice")

	postPath := author.createPost("Lifecycle Post", "First draft")

	t.Run("author sees edit and delete links", func(t *testing.T) {
		rw := author.get(postPath)
		assert.Equal(t, http.StatusOK, rw.Code)
		assert.Contains(t, rw.Body.String(), postPath+"/edit")
		assert.Contains(t, rw.Body.String(), postPath+"/delete")
	})

	t.Run("edit form is pre-filled", func(t *testing.T) {
		rw := author.get(postPath + "/edit")
		assert.Equal(t, http.StatusOK, rw.Code)
		assert.Contains(t, rw.Body.String(), "Lifecycle Post")
	})

	t.Run("edit updates the post", func(t *testing.T) {
		rw := author.post(postPath+"/edit", url.Values{
			"title":   {"Lifecycle Post, Revised"},
			"content": {"Second draft"},
		})
		assert.Equal(t, http.StatusSeeOther, rw.Code)

		rw = author.get(postPath)
		assert.Contains(t, rw.Body.String(), "Second draft")
	})

	t.Run("another user cannot edit", func(t *testing.T) {
		mallory := &client{t: t, router: router}
		mallory.signUp("mallory")

		rw := mallory.post(postPath+"/edit", url.Values{
			"title":   {"Hijacked"},
			"content": {"Nope"},
		})
		assert.Equal(t, http.StatusOK, rw.Code)

		rw = author.get(postPath)
		assert.Contains(t, rw.Body.String(), "Second draft")
		assert.NotContains(t, rw.Body.String(), "Hijacked")
	})

	t.Run("delete removes the post", func(t *testing.T) {
		rw := author.post(postPath+"/delete", url.Values{})
		assert.Equal(t, http.StatusSeeOther, rw.Code)

		rw = author.get(postPath)
		assert.Equal(t, http.StatusNotFound, rw.Code)
	})
}

func TestCommentsAndLikes(t *testing.T) {
	router := newTestRouter(t)
	author := &client{t: t, router: router}
	author.signUp("alice")
	postPath := author.createPost("Discussed Post", "Body")

	reader := &client{t: t, router: router}
	reader.signUp("bob")

	t.Run("comment shows up on the post", func(t *testing.T) {
		rw := reader.post(postPath+"/comments", url.Values{
			"author":  {"Bob"},
			"content": {"Great read"},
		})
		assert.Equal(t, http.StatusSeeOther, rw.Code)
		assert.Equal(t, postPath, rw.Header().Get("Location"))

		rw = reader.get(postPath)
		assert.Contains(t, rw.Body.String(), "Great read")
	})

	t.Run("like toggles", func(t *testing.T) {
		id := postPathRe.FindStringSubmatch(postPath)[1]

		rw := reader.post(postPath+"/like", url.Values{"post_id": {id}})
		assert.Equal(t, http.StatusSeeOther, rw.Code)

		rw = reader.get(postPath)
		assert.Contains(t, rw.Body.String(), "1 like")
		assert.Contains(t, rw.Body.String(), "Unlike")

		rw = reader.post(postPath+"/like", url.Values{"post_id": {id}})
		assert.Equal(t, http.StatusSeeOther, rw.Code)

		rw = reader.get(postPath)
		assert.Contains(t, rw.Body.String(), "0 likes")
	})
}

func TestUserPostsPage(t *testing.T) {
	router := newTestRouter(t)
	alice := &client{t: t, router: router}
	alice.signUp("alice")
	alice.createPost("Alice Writes", "Hers")

	bob := &client{t: t, router: router}
	bob.signUp("bob")
	bob.createPost("Bob Writes", "His")

	t.Run("lists only the named user's posts", func(t *testing.T) {
		rw := bob.get("/users/alice/posts")
		assert.Equal(t, http.StatusOK, rw.Code)
		body := rw.Body.String()
		assert.Contains(t, body, "Posts by alice")
		assert.Contains(t, body, "Alice Writes")
		assert.NotContains(t, body, "Bob Writes")
	})

	t.Run("unknown user is a 404", func(t *testing.T) {
		rw := bob.get("/users/carol/posts")
		assert.Equal(t, http.StatusNotFound, rw.Code)
	})
}

func TestStaticFiles(t *testing.T) {
	router := newTestRouter(t)
	anon := &client{t: t, router: router}

	rw := anon.get("/static/style.css")
	assert.Equal(t, http.StatusOK, rw.Code)
	assert.Contains(t, rw.Header().Get("Content-Type"), "text/css")
}
