package controller

import (
	"encoding/json"

	"github.com/voidarchive/archive/core"
)

// navigateRequest keeps payload keys raw so an absent key differs from null
type navigateRequest struct {
	View      core.View       `json:"view"`
	Character json.RawMessage `json:"character"`
	Log       json.RawMessage `json:"log"`
	From      json.RawMessage `json:"from"`
}

type saveCharacterRequest struct {
	Character core.Character `json:"character"`
	AsDraft   bool           `json:"asDraft"`
}

type editorRequest struct {
	From core.View `json:"from"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type resumeRequest struct {
	Token string `json:"token"`
}

type scrollRequest struct {
	Position int `json:"position"`
}

type generateCharacterRequest struct {
	Prompt string `json:"prompt"`
}

type continueLogRequest struct {
	Context     string `json:"context"`
	LastMessage string `json:"lastMessage"`
}
