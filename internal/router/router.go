package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/doneo/backend/api/handler"
)

type Handlers struct {
	Auth       *apiHandler.AuthHandler
	Profile    *apiHandler.ProfileHandler
	Project    *apiHandler.ProjectHandler
	Task       *apiHandler.TaskHandler
	Message    *apiHandler.MessageHandler
	Attachment *apiHandler.AttachmentHandler
	Health     *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)

	// Protected routes
	r.GET("/api/v1/profile", authMiddleware(handlers.Profile.GetProfile))
	r.PUT("/api/v1/profile", authMiddleware(handlers.Profile.UpdateProfile))

	r.POST("/api/v1/projects", authMiddleware(handlers.Project.CreateProject))
	r.GET("/api/v1/projects/{id}", authMiddleware(handlers.Project.GetProject))
	r.PUT("/api/v1/projects/{id}/mute", authMiddleware(handlers.Project.SetMuted))
	r.POST("/api/v1/projects/{id}/members", authMiddleware(handlers.Project.AddMember))

	r.GET("/api/v1/projects/{id}/tasks", authMiddleware(handlers.Task.ListTasks))
	r.POST("/api/v1/projects/{id}/tasks", authMiddleware(handlers.Task.CreateTask))
	r.GET("/api/v1/projects/{id}/inbox", authMiddleware(handlers.Task.Inbox))
	r.GET("/api/v1/tasks/{id}", authMiddleware(handlers.Task.GetTask))
	r.POST("/api/v1/tasks/{id}/toggle", authMiddleware(handlers.Task.ToggleTask))
	r.POST("/api/v1/tasks/{id}/accept", authMiddleware(handlers.Task.AcceptTask))
	r.POST("/api/v1/tasks/{id}/subtasks", authMiddleware(handlers.Task.AddSubtask))
	r.POST("/api/v1/subtasks/{id}/toggle", authMiddleware(handlers.Task.ToggleSubtask))

	r.GET("/api/v1/projects/{id}/messages", authMiddleware(handlers.Message.ListMessages))
	r.POST("/api/v1/projects/{id}/messages", authMiddleware(handlers.Message.SendMessage))
	r.POST("/api/v1/projects/{id}/messages/image", authMiddleware(handlers.Message.SendImageMessage))
	r.POST("/api/v1/messages/{id}/reactions", authMiddleware(handlers.Message.ToggleReaction))

	r.GET("/api/v1/projects/{id}/attachments", authMiddleware(handlers.Attachment.MediaList))
	r.POST("/api/v1/projects/{id}/attachments", authMiddleware(handlers.Attachment.AddAttachments))

	return r
}
