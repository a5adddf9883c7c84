package trace

import (
	"encoding/json"
	"maps"
	"slices"
	"time"
)

// Kind says whether an event opens a span, closes it, or marks an instant.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

var kindNames = []string{"", "begin", "end", "point"}

// kindArrows are the text-format markers.
var kindArrows = []string{"", "→ ", "← ", "• "}

func (k Kind) String() string { return nameOf(kindNames, uint8(k)) }

// Event is one record; Name is "batch", "file:sums.calc", "line:3" and so on.
type Event struct {
	Time     time.Time         `json:"-"`
	Seq      uint64            `json:"seq"`
	Kind     Kind              `json:"-"`
	Scope    Scope             `json:"-"`
	SpanID   uint64            `json:"span_id"`
	ParentID uint64            `json:"parent_id,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

// ndjsonEvent дополняет Event строковыми полями для JSON.
type ndjsonEvent struct {
	Time  string `json:"time"`
	Kind  string `json:"kind"`
	Scope string `json:"scope"`
	*Event
}

// Encode renders ev as one line in format; FormatAuto means text.
func (ev *Event) Encode(format Format) []byte {
	if format == FormatNDJSON {
		data, err := json.Marshal(ndjsonEvent{
			Time:  ev.Time.Format(time.RFC3339Nano),
			Kind:  ev.Kind.String(),
			Scope: ev.Scope.String(),
			Event: ev,
		})
		if err != nil {
			return nil
		}
		return append(data, '\n')
	}
	return ev.appendText(nil)
}

// appendText: "15:04:05.000000 [file  ]   ← file:x (ok) {a=1, b=2}".
func (ev *Event) appendText(b []byte) []byte {
	b = ev.Time.AppendFormat(b, "15:04:05.000000")
	b = append(b, " ["...)
	scope := ev.Scope.String()
	b = append(b, scope...)
	for i := len(scope); i < 6; i++ {
		b = append(b, ' ')
	}
	b = append(b, "] "...)
	if ev.ParentID != 0 {
		b = append(b, "  "...)
	}
	if int(ev.Kind) < len(kindArrows) {
		b = append(b, kindArrows[ev.Kind]...)
	}
	b = append(b, ev.Name...)
	if ev.Detail != "" {
		b = append(append(append(b, " ("...), ev.Detail...), ')')
	}
	for i, k := range slices.Sorted(maps.Keys(ev.Extra)) {
		if i == 0 {
			b = append(b, " {"...)
		} else {
			b = append(b, ", "...)
		}
		b = append(append(append(b, k...), '='), ev.Extra[k]...)
	}
	if len(ev.Extra) > 0 {
		b = append(b, '}')
	}
	return append(b, '\n')
}

