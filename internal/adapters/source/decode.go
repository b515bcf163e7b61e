package source

import (
	"fmt"

	"github.com/okian/cosmicboard/internal/domain/model"
	"github.com/tidwall/gjson"
)

// Payload field names.
const (
	fieldScores      = "scores"
	fieldLastUpdated = "last_updated"
)

// Decode validates a raw payload and extracts the score list and its timestamp.
//
// The root must be a JSON object. A missing or null "scores" field is an empty
// list; anything else that is not an array of objects is ErrMalformedPayload.
// Missing record fields fall back to zero values.
func Decode(body []byte) (model.ScoreList, *string, error) {
	if !gjson.ValidBytes(body) {
		return nil, nil, fmt.Errorf("%w: invalid json", ErrMalformedPayload)
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, nil, fmt.Errorf("%w: root is %s, want object", ErrMalformedPayload, root.Type)
	}

	scores := model.ScoreList{}
	raw := root.Get(fieldScores)
	switch {
	case !raw.Exists(), raw.Type == gjson.Null:
	case raw.IsArray():
		var bad error
		raw.ForEach(func(idx, rec gjson.Result) bool {
			if !rec.IsObject() {
				bad = fmt.Errorf("%w: scores[%d] is not an object", ErrMalformedPayload, idx.Int())
				return false
			}
			scores = append(scores, decodeEntry(rec))
			return true
		})
		if bad != nil {
			return nil, nil, bad
		}
	default:
		return nil, nil, fmt.Errorf("%w: %q is not a list", ErrMalformedPayload, fieldScores)
	}

	var lastUpdated *string
	if ts := root.Get(fieldLastUpdated); ts.Exists() && ts.Type != gjson.Null {
		v := ts.String()
		lastUpdated = &v
	}
	return scores, lastUpdated, nil
}

func decodeEntry(rec gjson.Result) model.ScoreEntry {
	return model.ScoreEntry{
		Name:  rec.Get("name").String(),
		Score: int(rec.Get("score").Int()),
		Wave:  int(rec.Get("wave").Int()),
		Mode:  rec.Get("mode").String(),
		Date:  rec.Get("date").String(),
	}
}
