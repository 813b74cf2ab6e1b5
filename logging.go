package tstring

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// Encoder serializes a structured log record. The default is JSONEncoder;
// supply a custom Encoder to control serialization of values the default
// can't represent the way you want (decimals as strings, say).
type Encoder interface {
	Encode(value any) (string, error)
}

// JSONEncoder is an Encoder that serializes with encoding/json.
type JSONEncoder struct{}

// Encode implements Encoder.
func (JSONEncoder) Encode(value any) (string, error) {
	out, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("error encoding log record: %w", err)
	}
	return string(out), nil
}

// Message adapts a Template for structured logging. It exposes the fully
// rendered message alongside a mapping from each interpolation's expression
// text to its raw value, so log consumers get both the human-readable
// string and the structured data it was built from.
type Message struct {
	// Template is the template backing this message.
	Template *Template

	enc Encoder
}

// NewMessage returns a Message for the passed Template. A nil Encoder means
// JSONEncoder.
func NewMessage(t *Template, enc Encoder) Message {
	if enc == nil {
		enc = JSONEncoder{}
	}
	return Message{Template: t, enc: enc}
}

// NewMessageMaker returns a Message constructor closed over a consistent
// Encoder, for call sites that build many messages.
func NewMessageMaker(enc Encoder) func(*Template) Message {
	return func(t *Template) Message {
		return NewMessage(t, enc)
	}
}

// Text returns the rendered message, as F would produce it.
func (m Message) Text() (string, error) {
	return F(m.Template)
}

// Values returns a mapping from each interpolation's expression text to its
// raw value. Two interpolations with the same expression text collide;
// the later one wins.
func (m Message) Values() map[string]any {
	values := make(map[string]any, len(m.Template.interps))
	for _, it := range m.Template.interps {
		values[it.Expr] = it.Value
	}
	return values
}

// Data combines Text and Values into a single record.
func (m Message) Data() (map[string]any, error) {
	text, err := m.Text()
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"message": text,
		"values":  m.Values(),
	}, nil
}

// String renders the encoded record. Encoding is best-effort here; failures
// render in-band, fmt style, since String can't return an error.
func (m Message) String() string {
	data, err := m.Data()
	if err != nil {
		return fmt.Sprintf("%%!(BADMSG error=%v)", err)
	}
	out, err := m.enc.Encode(data)
	if err != nil {
		return fmt.Sprintf("%%!(BADMSG error=%v)", err)
	}
	return out
}

// LogValue implements slog.LogValuer, so a Message can be passed directly
// to a slog call as an attribute value and handlers see the rendered
// message and the structured values as a group.
func (m Message) LogValue() slog.Value {
	text, err := m.Text()
	if err != nil {
		text = fmt.Sprintf("%%!(BADMSG error=%v)", err)
	}
	return slog.GroupValue(
		slog.String("message", text),
		slog.Any("values", m.Values()),
	)
}

// LogAttrs returns one slog.Attr per interpolation, keyed by expression
// text, for handlers that want the structured side-channel without the
// rendered message.
func LogAttrs(t *Template) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(t.interps))
	for _, it := range t.interps {
		attrs = append(attrs, slog.Any(it.Expr, it.Value))
	}
	return attrs
}
