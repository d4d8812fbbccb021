// Package bot contains the Telegram command and callback views.
package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/model"
)

// ActionKind discriminates the inline keyboard actions.
type ActionKind string

const (
	ActionLike           ActionKind = "like"
	ActionDislike        ActionKind = "dislike"
	ActionToggleCategory ActionKind = "toggle_category"
	ActionCategoriesDone ActionKind = "categories_done"
	ActionNavPrev        ActionKind = "nav_prev"
	ActionNavNext        ActionKind = "nav_next"
)

// Action is the typed form of one callback button press. It is encoded
// into callback data here and nowhere else; the rest of the code never
// parses token strings.
type Action struct {
	Kind     ActionKind
	Category model.Category // toggle_category only
	Index    int            // like/dislike only: 0-based session index
}

func (a Action) Encode() string {
	switch a.Kind {
	case ActionLike, ActionDislike:
		return fmt.Sprintf("%s_%d", a.Kind, a.Index)
	case ActionToggleCategory:
		return fmt.Sprintf("%s_%s", a.Kind, a.Category)
	default:
		return string(a.Kind)
	}
}

// actionKinds is ordered so that no earlier kind is a prefix of a later
// match candidate ("dislike" must be tried before "like").
var actionKinds = []ActionKind{
	ActionToggleCategory,
	ActionCategoriesDone,
	ActionNavPrev,
	ActionNavNext,
	ActionDislike,
	ActionLike,
}

// DecodeAction parses callback data back into a typed action.
func DecodeAction(data string) (Action, error) {
	for _, kind := range actionKinds {
		if data == string(kind) {
			return Action{Kind: kind}, nil
		}
		if !strings.HasPrefix(data, string(kind)+"_") {
			continue
		}
		payload := strings.TrimPrefix(data, string(kind)+"_")

		switch kind {
		case ActionToggleCategory:
			category, ok := model.ParseCategory(payload)
			if !ok {
				return Action{}, fmt.Errorf("unknown category %q in callback data", payload)
			}
			return Action{Kind: kind, Category: category}, nil
		case ActionLike, ActionDislike:
			index, err := strconv.Atoi(payload)
			if err != nil {
				return Action{}, fmt.Errorf("bad index in callback data %q: %w", data, err)
			}
			return Action{Kind: kind, Index: index}, nil
		}
	}
	return Action{}, fmt.Errorf("unknown callback data %q", data)
}
