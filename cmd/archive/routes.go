package main

import (
	"github.com/labstack/echo/v4"

	"github.com/voidarchive/archive/x/auth"
	"github.com/voidarchive/archive/x/controller"
	"github.com/voidarchive/archive/x/image"
)

func registerRoutes(
	e *echo.Echo,
	controllerHandler controller.Handler,
	socketHandler *controller.SocketHandler,
	authHandler auth.Handler,
	imageHandler image.Handler,
	authService auth.Service,
) {
	apiV1 := e.Group("/api/v1")

	// state
	apiV1.GET("/state", controllerHandler.State)
	apiV1.GET("/stats", controllerHandler.Stats)
	apiV1.POST("/navigate", controllerHandler.Navigate)
	apiV1.POST("/back", controllerHandler.Back)
	apiV1.POST("/cancel", controllerHandler.CancelEdit)
	apiV1.POST("/scroll", controllerHandler.Scroll)
	apiV1.DELETE("/notice", controllerHandler.DismissNotice)

	// listings
	apiV1.GET("/logs", controllerHandler.AllLogs)
	apiV1.GET("/logs/dashboard", controllerHandler.DashboardLogs)
	apiV1.GET("/logs/:id/toc", controllerHandler.TableOfContents)
	apiV1.GET("/characters", controllerHandler.CharacterList)
	apiV1.GET("/characters/mine", controllerHandler.MyCharacters)
	apiV1.GET("/drafts", controllerHandler.Drafts)
	apiV1.GET("/saved", controllerHandler.SavedArchive)

	// character
	apiV1.POST("/characters/new", controllerHandler.NewCharacter)
	apiV1.PUT("/characters", controllerHandler.SaveCharacter)
	apiV1.DELETE("/characters/:id", controllerHandler.DeleteCharacter)
	apiV1.POST("/characters/:id/log", controllerHandler.StartLog)

	// log
	apiV1.POST("/logs/new", controllerHandler.NewLog)
	apiV1.PUT("/logs", controllerHandler.SaveLog)
	apiV1.DELETE("/logs/:id", controllerHandler.DeleteLog)
	apiV1.POST("/logs/:id/favorite", controllerHandler.ToggleFavorite)
	apiV1.POST("/logs/:id/comments", controllerHandler.AddComment)
	apiV1.DELETE("/logs/:id/comments/:comment", controllerHandler.DeleteComment)

	// profile
	apiV1.PUT("/profile", controllerHandler.UpdateProfile)

	// auth
	apiV1.POST("/auth/signin", controllerHandler.SignIn)
	apiV1.POST("/auth/signup", controllerHandler.SignUp)
	apiV1.POST("/auth/signout", controllerHandler.SignOut)
	apiV1.POST("/auth/resume", controllerHandler.Resume)
	apiV1.POST("/auth/confirm", authHandler.Confirm)
	apiV1.GET("/auth/whoami", authHandler.Whoami, auth.Restrict(authService))

	// assist
	apiV1.POST("/assist/character", controllerHandler.GenerateCharacter, auth.Restrict(authService))
	apiV1.POST("/assist/continue", controllerHandler.ContinueLog, auth.Restrict(authService))

	// image
	apiV1.POST("/images", imageHandler.Upload, auth.Restrict(authService))
	e.GET(image.PublicPrefix+"*", imageHandler.Serve)

	// socket
	apiV1.GET("/socket", socketHandler.Connect)
}
