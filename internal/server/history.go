package server

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"

	"floodaid/internal/models"
)

type historyEntry struct {
	User      *string `json:"user"`
	Assistant *string `json:"assistant"`
	Role      string  `json:"role"`
	Content   string  `json:"content"`
}

// normalizeHistory accepts the transcript shapes chat clients send and
// returns them as exchanges in order. Supported element shapes:
//
//	{"user": "...", "assistant": "..."}
//	["user text", "assistant text"]
//	{"role": "user"|"assistant"|"model", "content": "..."}
//
// Each role/content user message opens an exchange and the next assistant
// message fills in its reply. Unanswered user messages keep an empty reply;
// an assistant message with no user message before it is skipped.
func normalizeHistory(raw json.RawMessage) ([]models.Exchange, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, eris.Wrap(err, "history must be a list")
	}

	var exchanges []models.Exchange

	for i, elem := range elems {
		elem = bytes.TrimSpace(elem)
		if len(elem) > 0 && elem[0] == '[' {
			var pair []string
			if err := json.Unmarshal(elem, &pair); err != nil || len(pair) != 2 {
				return nil, eris.Errorf("entry %d: pairs must hold exactly two strings", i)
			}
			exchanges = append(exchanges, models.Exchange{User: pair[0], Assistant: pair[1]})
			continue
		}

		var entry historyEntry
		if err := json.Unmarshal(elem, &entry); err != nil {
			return nil, eris.Wrapf(err, "entry %d", i)
		}

		switch role := strings.ToLower(entry.Role); {
		case entry.User != nil || entry.Assistant != nil:
			exchanges = append(exchanges, models.Exchange{User: deref(entry.User), Assistant: deref(entry.Assistant)})
		case role == "user":
			exchanges = append(exchanges, models.Exchange{User: entry.Content})
		case role == "assistant" || role == "model":
			if len(exchanges) == 0 {
				continue
			}
			exchanges[len(exchanges)-1].Assistant = entry.Content
		default:
			return nil, eris.Errorf("entry %d: unrecognized shape", i)
		}
	}

	return exchanges, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
