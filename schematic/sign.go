package schematic

import (
	"encoding/json"
	"strings"
)

// SignText is the text carried by a sign block entity, one string per line.
type SignText struct {
	Front []string
	Back  []string
}

// IsEmpty reports whether every line on both sides is blank.
func (t SignText) IsEmpty() bool {
	for _, l := range t.Front {
		if l != "" {
			return false
		}
	}
	for _, l := range t.Back {
		if l != "" {
			return false
		}
	}
	return true
}

// IsSign reports whether the block entity is any sign variant.
func (be BlockEntity) IsSign() bool {
	return strings.Contains(be.ID, "sign")
}

type signSide struct {
	Messages []string `nbt:"messages"`
}

type signPayload struct {
	FrontText *signSide `nbt:"front_text"`
	BackText  *signSide `nbt:"back_text"`

	// pre-1.20 layout
	Text1 string `nbt:"Text1"`
	Text2 string `nbt:"Text2"`
	Text3 string `nbt:"Text3"`
	Text4 string `nbt:"Text4"`
}

// SignText extracts sign lines from the block entity payload. Both the 1.20+
// front_text/back_text layout and the older Text1..Text4 layout are handled.
// Returns ok=false for non-signs, undecodable payloads, and signs with no
// text at all.
func (be BlockEntity) SignText() (SignText, bool) {
	if !be.IsSign() || be.Data.Type == 0 {
		return SignText{}, false
	}

	var payload signPayload
	if err := be.Data.Unmarshal(&payload); err != nil {
		return SignText{}, false
	}

	var text SignText
	if payload.FrontText != nil {
		for _, m := range payload.FrontText.Messages {
			text.Front = append(text.Front, plainText(m))
		}
	}
	if payload.BackText != nil {
		for _, m := range payload.BackText.Messages {
			text.Back = append(text.Back, plainText(m))
		}
	}

	if len(text.Front) == 0 {
		for _, raw := range []string{payload.Text1, payload.Text2, payload.Text3, payload.Text4} {
			if line := plainText(raw); line != "" {
				text.Front = append(text.Front, line)
			}
		}
	}

	if len(text.Front) == 0 && len(text.Back) == 0 {
		return SignText{}, false
	}
	return text, true
}

// plainText flattens a JSON text component ("\"hi\"" or {"text":"hi",...})
// to its plain string. Anything unparseable is returned as-is.
func plainText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal([]byte(trimmed), &s); err == nil {
			return s
		}
		return trimmed
	}

	if strings.HasPrefix(trimmed, "{") {
		var component struct {
			Text  string `json:"text"`
			Extra []struct {
				Text string `json:"text"`
			} `json:"extra"`
		}
		if err := json.Unmarshal([]byte(trimmed), &component); err == nil {
			var sb strings.Builder
			sb.WriteString(component.Text)
			for _, e := range component.Extra {
				sb.WriteString(e.Text)
			}
			return sb.String()
		}
	}

	return trimmed
}
