package api

import (
	"github.com/davmont/quorum-be/internal/api/handlers"
	"github.com/davmont/quorum-be/internal/auth"
	"github.com/davmont/quorum-be/internal/services"
	"github.com/davmont/quorum-be/internal/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	hub *websocket.Hub,
	userService services.UserServiceProvider,
	messageService services.MessageServiceProvider,
	questionService services.QuestionServiceProvider,
	tagService services.TagServiceProvider,
	allowedOrigin string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"X-Auth-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	messageHandler := handlers.NewMessageHandler(messageService, hub)
	questionHandler := handlers.NewQuestionHandler(questionService)
	answerHandler := handlers.NewAnswerHandler(questionService)
	commentHandler := handlers.NewCommentHandler(questionService)
	tagHandler := handlers.NewTagHandler(tagService)
	wsHandler := handlers.NewWebSocketHandler(hub)

	// WebSocket connection endpoint for push notifications
	r.Get("/ws", wsHandler.Serve)

	r.Route("/user", func(r chi.Router) {
		r.Post("/signup", userHandler.Signup)
		r.Post("/login", userHandler.Login)
		r.Patch("/resetPassword", userHandler.ResetPassword)
		r.Get("/{username}", userHandler.Get)
		r.Delete("/{username}", userHandler.Delete)
	})

	r.Route("/messaging", func(r chi.Router) {
		r.Post("/addMessage", messageHandler.AddMessage)
		r.Get("/getMessages", messageHandler.GetMessages)
	})

	r.Route("/question", func(r chi.Router) {
		r.Get("/getQuestion", questionHandler.GetQuestions)
		r.Get("/getQuestionById/{qid}", questionHandler.GetQuestionByID)
		// Mutations require a logged-in user.
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware())
			r.Post("/addQuestion", questionHandler.AddQuestion)
			r.Post("/upvote", questionHandler.Upvote)
			r.Post("/downvote", questionHandler.Downvote)
		})
	})

	r.Route("/answer", func(r chi.Router) {
		r.Use(auth.Middleware())
		r.Post("/addAnswer", answerHandler.AddAnswer)
	})

	r.Route("/comment", func(r chi.Router) {
		r.Use(auth.Middleware())
		r.Post("/addComment", commentHandler.AddComment)
	})

	r.Route("/tag", func(r chi.Router) {
		r.Get("/getTagsWithQuestionNumber", tagHandler.GetTagsWithQuestionNumber)
		r.Get("/getTagByName/{name}", tagHandler.GetTagByName)
	})

	return r
}
