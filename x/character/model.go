package character

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"github.com/voidarchive/archive/core"
	"github.com/voidarchive/archive/x/util"
)

func rowToCharacter(row core.CharacterRow) core.Character {
	var attributes core.CharacterAttributes
	if row.Attributes != nil && *row.Attributes != "" {
		err := json.Unmarshal([]byte(*row.Attributes), &attributes)
		if err != nil {
			slog.Warn(
				"malformed character attributes",
				slog.String("id", row.ID),
				slog.String("error", err.Error()),
			)
		}
	}
	if attributes.Alignment == "" {
		attributes.Alignment = core.AlignmentNone
	}

	return core.Character{
		ID:           row.ID,
		Name:         row.Name,
		Title:        util.Deref(row.Title, ""),
		Tags:         util.NonNil([]string(row.Tags)),
		Attributes:   attributes,
		Ability:      util.Deref(row.Ability, ""),
		Stats:        util.Deref(row.Stats, ""),
		Trivia:       util.NonNil([]string(row.Trivia)),
		Introduction: util.Deref(row.Introduction, ""),
		Quote:        util.Deref(row.Quote, ""),
		ImageURL:     util.Deref(row.ImageURL, ""),
		IsDraft:      row.IsDraft,
	}
}

func encodeAttributes(attributes core.CharacterAttributes) *string {
	b, err := json.Marshal(attributes)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}

func characterToRow(character core.Character, owner string) core.CharacterRow {
	return core.CharacterRow{
		UserID:       owner,
		Name:         character.Name,
		Title:        util.PtrOrNil(character.Title),
		Tags:         pq.StringArray(util.NonNil(character.Tags)),
		Attributes:   encodeAttributes(character.Attributes),
		Ability:      util.PtrOrNil(character.Ability),
		Stats:        util.PtrOrNil(character.Stats),
		Trivia:       pq.StringArray(util.NonNil(character.Trivia)),
		Introduction: util.PtrOrNil(character.Introduction),
		Quote:        util.PtrOrNil(character.Quote),
		ImageURL:     util.PtrOrNil(character.ImageURL),
		IsDraft:      character.IsDraft,
	}
}

// patchToFields lists only the columns present in the patch, plus updated_at
func patchToFields(patch core.CharacterPatch) map[string]any {
	fields := map[string]any{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Title != nil {
		fields["title"] = util.PtrOrNil(*patch.Title)
	}
	if patch.Tags != nil {
		fields["tags"] = pq.StringArray(util.NonNil(*patch.Tags))
	}
	if patch.Attributes != nil {
		fields["attributes"] = encodeAttributes(*patch.Attributes)
	}
	if patch.Ability != nil {
		fields["ability"] = util.PtrOrNil(*patch.Ability)
	}
	if patch.Stats != nil {
		fields["stats"] = util.PtrOrNil(*patch.Stats)
	}
	if patch.Trivia != nil {
		fields["trivia"] = pq.StringArray(util.NonNil(*patch.Trivia))
	}
	if patch.Introduction != nil {
		fields["introduction"] = util.PtrOrNil(*patch.Introduction)
	}
	if patch.Quote != nil {
		fields["quote"] = util.PtrOrNil(*patch.Quote)
	}
	if patch.ImageURL != nil {
		fields["image_url"] = util.PtrOrNil(*patch.ImageURL)
	}
	if patch.IsDraft != nil {
		fields["is_draft"] = *patch.IsDraft
	}
	fields["updated_at"] = time.Now()
	return fields
}
