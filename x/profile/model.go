package profile

import (
	"strings"
	"time"

	"github.com/voidarchive/archive/core"
	"github.com/voidarchive/archive/x/util"
)

func rowToProfile(row core.ProfileRow) core.UserProfile {
	theme := core.Theme(row.Theme)
	if theme != core.ThemeLight {
		theme = core.ThemeDark
	}
	return core.UserProfile{
		Name:      row.Name,
		Signature: util.Deref(row.Signature, ""),
		AvatarURL: util.Deref(row.AvatarURL, ""),
		Theme:     theme,
	}
}

func profileToRow(id string, profile core.UserProfile) core.ProfileRow {
	theme := profile.Theme
	if theme == "" {
		theme = core.ThemeDark
	}
	return core.ProfileRow{
		ID:        id,
		Name:      profile.Name,
		Signature: util.PtrOrNil(profile.Signature),
		AvatarURL: util.PtrOrNil(profile.AvatarURL),
		Theme:     string(theme),
	}
}

// defaultProfile is what an account without a stored profile sees
func defaultProfile(user *core.AuthUser) core.UserProfile {
	name := core.DefaultProfileName
	if local, _, _ := strings.Cut(user.Email, "@"); local != "" {
		name = local
	}
	return core.UserProfile{
		Name:      name,
		Signature: core.DefaultSignature,
		AvatarURL: core.DefaultAvatarURL,
		Theme:     core.ThemeDark,
	}
}

func applyPatch(profile core.UserProfile, patch core.ProfilePatch) core.UserProfile {
	if patch.Name != nil {
		profile.Name = *patch.Name
	}
	if patch.Signature != nil {
		profile.Signature = *patch.Signature
	}
	if patch.AvatarURL != nil {
		profile.AvatarURL = *patch.AvatarURL
	}
	if patch.Theme != nil {
		profile.Theme = *patch.Theme
	}
	return profile
}

// patchToFields lists only the columns present in the patch, plus updated_at
func patchToFields(patch core.ProfilePatch) map[string]any {
	fields := map[string]any{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Signature != nil {
		fields["signature"] = util.PtrOrNil(*patch.Signature)
	}
	if patch.AvatarURL != nil {
		fields["avatar_url"] = util.PtrOrNil(*patch.AvatarURL)
	}
	if patch.Theme != nil {
		fields["theme"] = string(*patch.Theme)
	}
	fields["updated_at"] = time.Now()
	return fields
}
