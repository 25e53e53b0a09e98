package content

import (
	"encoding/json"

	"github.com/pkg/errors"
)

var ErrUnknownType = errors.New("unknown content type")

// Decode parses data as the payload of type t.
// An empty payload decodes to the zero value of the variant.
func Decode(t Type, data []byte) (Content, error) {
	var (
		c   Content
		err error
	)
	switch t {
	case TypeIntroduction:
		c, err = decodeAs[Introduction](data)
	case TypeDragDrop:
		c, err = decodeAs[DragDrop](data)
	case TypeMultipleChoice:
		c, err = decodeAs[MultipleChoice](data)
	case TypeCodeQuestion:
		c, err = decodeAs[CodeQuestion](data)
	default:
		return nil, errors.Wrapf(ErrUnknownType, "%q", t)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s content", t)
	}
	return Clone(c), nil
}

func decodeAs[T Content](data []byte) (Content, error) {
	var v T
	if len(data) == 0 || string(data) == "null" {
		return v, nil
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Patch is a partial set of content fields, keyed by their JSON names.
type Patch map[string]json.RawMessage

// Set encodes v as the new value of field.
func (p Patch) Set(field string, v interface{}) Patch {
	data, err := json.Marshal(v)
	if err != nil {
		panic(errors.Wrapf(err, "content: encoding patch field %q", field))
	}
	p[field] = data
	return p
}

// Merge overlays the fields of p on c, leaving the other fields untouched.
// Fields unknown to the variant of c are ignored.
func Merge(c Content, p Patch) (Content, error) {
	if len(p) == 0 {
		return Clone(c), nil
	}

	data, err := json.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "encoding content")
	}
	fields := make(map[string]json.RawMessage)
	if err = json.Unmarshal(data, &fields); err != nil {
		return nil, errors.Wrap(err, "decoding content fields")
	}
	for k, v := range p {
		fields[k] = v
	}
	if data, err = json.Marshal(fields); err != nil {
		return nil, errors.Wrap(err, "encoding merged content")
	}
	return Decode(c.Type(), data)
}
