package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/imisi99/Todoapi/internal/config"     // cache configuration for the Redis middleware
	"github.com/imisi99/Todoapi/internal/handler"    // import the handlers that implement business logic
	"github.com/imisi99/Todoapi/internal/middleware" // import middleware for JWT authentication and role enforcement
	"github.com/imisi99/Todoapi/internal/model"      // role constants
	"github.com/imisi99/Todoapi/internal/service"    // auth service backing the JWT middleware
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterUser registers all account-related routes and their middleware.
// Unauthenticated credential operations (signup, login and the OTP-driven
// password reset) live directly under /user, while endpoints that act on
// the logged-in account sit behind the JWT middleware.
func RegisterUser(e *echo.Echo, a *handler.AuthHandler, auth *service.Auth) {
	// Create a route group under the /user prefix for operations that do
	// not require an existing session.
	g := e.Group("/user")
	// Register a POST endpoint to handle account creation at /user/signup.
	g.POST("/signup", a.Signup)
	// Register a POST endpoint to handle login at /user/login.
	g.POST("/login", a.Login)
	// Register a PUT endpoint that issues a password-reset OTP by email.
	g.PUT("/forgot-password", a.ForgotPassword)
	// Register a POST endpoint that exchanges a valid OTP for a short-lived
	// OTP-session token.  The token authorizes exactly one follow-up call.
	g.POST("/verify-otp", a.VerifyOtp)
	// Register a PUT endpoint that sets a new password.  It is not behind
	// the session middleware because its caller holds an OTP-session token
	// rather than a login session; the handler verifies that token itself.
	g.PUT("/reset-password", a.ResetPassword)

	// Create another group for account routes that require a valid session
	// token.  All handlers registered on this group will execute the JWTAuth
	// middleware before being invoked.
	me := e.Group("/user")
	// Apply the JWTAuth middleware to the protected group.  It validates the
	// bearer token and places the user ID and role into the request context.
	me.Use(middleware.JWTAuth(auth))
	// Register a GET endpoint that returns the caller's profile details.
	me.GET("/get-user-details", a.GetUserDetails)
	// Register a PUT endpoint that updates names, username and email.
	me.PUT("/update-user-details", a.UpdateUserDetails)
	// Register a PUT endpoint that changes the password of a logged-in user
	// who still knows the current one.
	me.PUT("/change-user-password", a.ChangeUserPassword)
	// Register a POST endpoint that issues an account-deletion OTP.
	me.POST("/request-delete", a.RequestDelete)
	// Register a DELETE endpoint that removes the account once the caller
	// presents the deletion OTP together with their own username.
	me.DELETE("/delete-user", a.DeleteUser)
}

// RegisterTodo registers the todo CRUD routes.  Every endpoint requires a
// valid session and an allowed role; read endpoints additionally go through
// the Redis response cache when a client is available.
func RegisterTodo(e *echo.Echo, t *handler.TodoHandler, auth *service.Auth, cacheCfg config.CacheConfig, rdb *redis.Client) {
	g := e.Group("/todo")
	// Apply the JWTAuth middleware so every todo route runs with a known user.
	g.Use(middleware.JWTAuth(auth))
	// Apply the RequireRole middleware.  Both regular users and admins may
	// manage their own todos; the middleware rejects unknown roles.
	g.Use(middleware.RequireRole(model.DefaultRole, "admin"))
	// Apply the Redis response cache when a client was configured.  The
	// middleware only caches the configured read methods and keys entries by
	// route, query and the authenticated subject, so users never see each
	// other's cached responses.
	if rdb != nil {
		g.Use(middleware.NewRedisCache(cacheCfg, rdb))
	}

	// List every todo owned by the caller.
	g.GET("/all-todo", t.ListTodos)
	// Fetch a single todo by its numeric ID.
	g.GET("/get-todo/:todo_id", t.GetTodo)
	// Search todos by task title via the ?task= query parameter.
	g.GET("/get-todo-name", t.SearchTodos)
	// List todos filtered by completion state.
	g.GET("/get-todo-completed", t.ListByCompleted)
	// Create a new todo for the caller.
	g.POST("/create-todo", t.CreateTodo)
	// Mark a todo as completed (or reopen it with ?completed=false).
	g.PUT("/complete-todo/:todo_id", t.CompleteTodo)
	// Replace a todo's editable fields.
	g.PUT("/update-todo/:todo_id", t.UpdateTodo)
	// Delete a single todo.
	g.DELETE("/delete-todo/:todo_id", t.DeleteTodo)
	// Delete every completed todo in one call.
	g.DELETE("/delete-completed-todo", t.DeleteCompleted)
}
