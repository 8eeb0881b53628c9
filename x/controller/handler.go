package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voidarchive/archive/core"
)

// Handler exposes the controller intents over HTTP
type Handler interface {
	State(c echo.Context) error
	Stats(c echo.Context) error
	Navigate(c echo.Context) error
	Back(c echo.Context) error
	CancelEdit(c echo.Context) error
	Scroll(c echo.Context) error
	DismissNotice(c echo.Context) error

	DashboardLogs(c echo.Context) error
	AllLogs(c echo.Context) error
	CharacterList(c echo.Context) error
	Drafts(c echo.Context) error
	SavedArchive(c echo.Context) error
	MyCharacters(c echo.Context) error
	TableOfContents(c echo.Context) error

	NewCharacter(c echo.Context) error
	NewLog(c echo.Context) error
	StartLog(c echo.Context) error
	SaveCharacter(c echo.Context) error
	DeleteCharacter(c echo.Context) error
	SaveLog(c echo.Context) error
	DeleteLog(c echo.Context) error
	ToggleFavorite(c echo.Context) error
	AddComment(c echo.Context) error
	DeleteComment(c echo.Context) error
	UpdateProfile(c echo.Context) error

	SignIn(c echo.Context) error
	SignUp(c echo.Context) error
	SignOut(c echo.Context) error
	Resume(c echo.Context) error

	GenerateCharacter(c echo.Context) error
	ContinueLog(c echo.Context) error
}

type handler struct {
	controller *Controller
	assist     core.AssistService
}

// NewHandler creates a new handler; assist may be nil when no model is configured
func NewHandler(controller *Controller, assist core.AssistService) Handler {
	return &handler{controller: controller, assist: assist}
}

func ok(c echo.Context, content any) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": content})
}

// fail maps the error taxonomy onto HTTP statuses
func fail(c echo.Context, err error) error {
	status := http.StatusInternalServerError

	var invalidInput core.ErrorInvalidInput
	switch {
	case errors.As(err, &invalidInput),
		errors.Is(err, core.NewErrorInvalidImage()),
		errors.Is(err, core.NewErrorImageTooLarge()):
		status = http.StatusBadRequest
	case errors.Is(err, core.NewErrorInvalidCredentials()),
		errors.Is(err, core.NewErrorConfirmationRequired()):
		status = http.StatusUnauthorized
	case errors.Is(err, core.NewErrorPermissionDenied()):
		status = http.StatusForbidden
	case errors.Is(err, core.NewErrorNotFound()):
		status = http.StatusNotFound
	case errors.Is(err, core.NewErrorSuperseded()):
		status = http.StatusConflict
	}

	return c.JSON(status, echo.Map{"status": "error", "message": err.Error()})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": message})
}

func (h handler) State(c echo.Context) error {
	return ok(c, h.controller.Snapshot())
}

func (h handler) Stats(c echo.Context) error {
	return ok(c, h.controller.Snapshot().Stats)
}

// Navigate resolves payload ids against the loaded collections before moving
func (h handler) Navigate(c echo.Context) error {
	_, span := tracer.Start(c.Request().Context(), "Controller.Handler.Navigate")
	defer span.End()

	var request navigateRequest
	err := c.Bind(&request)
	if err != nil {
		return badRequest(c, "invalid request")
	}

	options := []NavigateOption{}

	if request.Character != nil {
		id, err := optionalString(request.Character)
		if err != nil {
			return badRequest(c, "character must be an id or null")
		}
		if id == "" {
			options = append(options, WithCharacter(nil))
		} else {
			character, err := h.controller.FindCharacter(id)
			if err != nil {
				return fail(c, err)
			}
			options = append(options, WithCharacter(&character))
		}
	}

	if request.Log != nil {
		id, err := optionalString(request.Log)
		if err != nil {
			return badRequest(c, "log must be an id or null")
		}
		if id == "" {
			options = append(options, WithLog(nil))
		} else {
			log, err := h.controller.FindLog(id)
			if err != nil {
				return fail(c, err)
			}
			options = append(options, WithLog(&log))
		}
	}

	if request.From != nil {
		from, err := optionalString(request.From)
		if err != nil {
			return badRequest(c, "from must be a view or null")
		}
		options = append(options, From(core.View(from)))
	}

	err = h.controller.Navigate(request.View, options...)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, h.controller.Snapshot())
}

// optionalString decodes a JSON string or null; null yields the empty string
func optionalString(raw json.RawMessage) (string, error) {
	var value *string
	err := json.Unmarshal(raw, &value)
	if err != nil {
		return "", err
	}
	if value == nil {
		return "", nil
	}
	return *value, nil
}

func (h handler) Back(c echo.Context) error {
	h.controller.Back()
	return ok(c, h.controller.Snapshot())
}

func (h handler) CancelEdit(c echo.Context) error {
	err := h.controller.CancelEdit()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, h.controller.Snapshot())
}

func (h handler) Scroll(c echo.Context) error {
	var request scrollRequest
	err := c.Bind(&request)
	if err != nil {
		return badRequest(c, "invalid request")
	}

	h.controller.Scroll(request.Position)
	return ok(c, nil)
}

func (h handler) DismissNotice(c echo.Context) error {
	h.controller.DismissNotice()
	return ok(c, nil)
}

func (h handler) DashboardLogs(c echo.Context) error {
	return ok(c, DashboardLogs(h.controller.Snapshot().Logs, c.QueryParam("q")))
}

func (h handler) AllLogs(c echo.Context) error {
	return ok(c, AllLogs(h.controller.Snapshot().Logs, c.QueryParam("q"), LogSort(c.QueryParam("sort"))))
}

func (h handler) CharacterList(c echo.Context) error {
	return ok(c, CharacterList(h.controller.Snapshot().Characters, c.QueryParam("q")))
}

func (h handler) Drafts(c echo.Context) error {
	snapshot := h.controller.Snapshot()
	return ok(c, Drafts(snapshot.Logs, snapshot.MyCharacters))
}

func (h handler) SavedArchive(c echo.Context) error {
	return ok(c, SavedArchive(h.controller.Snapshot().Logs))
}

func (h handler) MyCharacters(c echo.Context) error {
	return ok(c, MyCharacters(h.controller.Snapshot().MyCharacters))
}

func (h handler) TableOfContents(c echo.Context) error {
	log, err := h.controller.FindLog(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, core.TableOfContents(log.Entries))
}

func (h handler) NewCharacter(c echo.Context) error {
	var request editorRequest
	err := c.Bind(&request)
	if err != nil {
		return badRequest(c, "invalid request")
	}
	return ok(c, h.controller.CreateNewCharacter(request.From))
}

func (h handler) NewLog(c echo.Context) error {
	var request editorRequest
	err := c.Bind(&request)
	if err != nil {
		return badRequest(c, "invalid request")
	}
	return ok(c, h.controller.CreateNewLog(request.From))
}

func (h handler) StartLog(c echo.Context) error {
	log, err := h.controller.StartLog(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, log)
}

func (h handler) SaveCharacter(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Controller.Handler.SaveCharacter")
	defer span.End()

	var request saveCharacterRequest
	err := c.Bind(&request)
	if err != nil {
		return badRequest(c, "invalid request")
	}

	saved, err := h.controller.SaveCharacter(ctx, request.Character, request.AsDraft)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, saved)
}

func (h handler) DeleteCharacter(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Controller.Handler.DeleteCharacter")
	defer span.End()

	err := h.controller.DeleteCharacter(ctx, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, nil)
}

func (h handler) SaveLog(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Controller.Handler.SaveLog")
	defer span.End()

	var log core.ArchiveLog
	err := c.Bind(&log)
	if err != nil {
		return badRequest(c, "invalid request")
	}

	saved, err := h.controller.SaveLog(ctx, log)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, saved)
}

func (h handler) DeleteLog(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Controller.Handler.DeleteLog")
	defer span.End()

	err := h.controller.DeleteLog(ctx, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, nil)
}

func (h handler) ToggleFavorite(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Controller.Handler.ToggleFavorite")
	defer span.End()

	err := h.controller.ToggleFavorite(ctx, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}

	log, err := h.controller.FindLog(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, log)
}

func (h handler) AddComment(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Controller.Handler.AddComment")
	defer span.End()

	var comment core.Comment
	err := c.Bind(&comment)
	if err != nil {
		return badRequest(c, "invalid request")
	}

	saved, err := h.controller.AddComment(ctx, c.Param("id"), comment)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, saved)
}

func (h handler) DeleteComment(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Controller.Handler.DeleteComment")
	defer span.End()

	err := h.controller.DeleteComment(ctx, c.Param("id"), c.Param("comment"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, nil)
}

func (h handler) UpdateProfile(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Controller.Handler.UpdateProfile")
	defer span.End()

	var profile core.UserProfile
	err := c.Bind(&profile)
	if err != nil {
		return badRequest(c, "invalid request")
	}

	updated, err := h.controller.UpdateProfile(ctx, profile)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, updated)
}

func (h handler) SignIn(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Controller.Handler.SignIn")
	defer span.End()

	var request signInRequest
	err := c.Bind(&request)
	if err != nil {
		return badRequest(c, "invalid request")
	}

	err = h.controller.SignIn(ctx, request.Email, request.Password)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, h.controller.Snapshot())
}

func (h handler) SignUp(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Controller.Handler.SignUp")
	defer span.End()

	var request signUpRequest
	err := c.Bind(&request)
	if err != nil {
		return badRequest(c, "invalid request")
	}

	err = h.controller.SignUp(ctx, request.Email, request.Password, request.Name)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, h.controller.Snapshot())
}

func (h handler) SignOut(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Controller.Handler.SignOut")
	defer span.End()

	err := h.controller.SignOut(ctx)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, h.controller.Snapshot())
}

func (h handler) Resume(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Controller.Handler.Resume")
	defer span.End()

	var request resumeRequest
	err := c.Bind(&request)
	if err != nil || request.Token == "" {
		return badRequest(c, "token is required")
	}

	err = h.controller.Resume(ctx, request.Token)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, h.controller.Snapshot())
}

func (h handler) GenerateCharacter(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Controller.Handler.GenerateCharacter")
	defer span.End()

	if h.assist == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "error", "message": "assist is not configured"})
	}

	var request generateCharacterRequest
	err := c.Bind(&request)
	if err != nil || request.Prompt == "" {
		return badRequest(c, "prompt is required")
	}

	draft, err := h.assist.GenerateCharacter(ctx, request.Prompt)
	if err != nil {
		span.RecordError(err)
		return fail(c, err)
	}
	return ok(c, draft)
}

func (h handler) ContinueLog(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Controller.Handler.ContinueLog")
	defer span.End()

	if h.assist == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "error", "message": "assist is not configured"})
	}

	var request continueLogRequest
	err := c.Bind(&request)
	if err != nil {
		return badRequest(c, "invalid request")
	}

	paragraph, err := h.assist.ContinueLog(ctx, request.Context, request.LastMessage)
	if err != nil {
		span.RecordError(err)
		return fail(c, err)
	}
	return ok(c, paragraph)
}
