package datacontext

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

type itemHeader struct {
	Type Kind `json:"type"`
}

// MarshalJSON encodes the scope as an object of key → item, each item
// carrying a "type" discriminator.
func (c *Context) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, c.Len())

	for _, key := range c.Keys() {
		raw, err := marshalItem(c.items[key])
		if err != nil {
			return nil, fmt.Errorf("unable to marshal context item %q: %w", key, err)
		}

		out[key] = raw
	}

	return json.Marshal(out)
}

func (c *Context) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	err := json.Unmarshal(data, &raw)
	if err != nil {
		return fmt.Errorf("unable to unmarshal context: %w", err)
	}

	c.items = make(map[string]Item, len(raw))
	for key, itemData := range raw {
		item, err := unmarshalItem(itemData)
		if err != nil {
			return fmt.Errorf("unable to unmarshal context item %q: %w", key, err)
		}

		c.items[key] = item
	}

	return nil
}

func marshalItem(item Item) ([]byte, error) {
	body, err := json.Marshal(item)
	if err != nil {
		return nil, err
	}

	header, err := json.Marshal(itemHeader{Type: item.Kind()})
	if err != nil {
		return nil, err
	}

	// splice {"type":"X"} in front of the item fields
	body = bytes.TrimPrefix(body, []byte("{"))
	if len(bytes.TrimSpace(body)) == 1 {
		return header, nil
	}

	header = bytes.TrimSuffix(header, []byte("}"))
	header = append(header, ',')

	return append(header, body...), nil
}

func unmarshalItem(data []byte) (Item, error) {
	var header itemHeader
	err := json.Unmarshal(data, &header)
	if err != nil {
		return nil, err
	}

	item, ok := NewItem(header.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, header.Type)
	}

	err = json.Unmarshal(data, item)
	if err != nil {
		return nil, err
	}

	if ds, ok := item.(*DataSourceModel); ok && ds.Items == nil {
		ds.Items = []*Context{}
	}

	return item, nil
}

// UnmarshalJSON accepts an RFC 3339 timestamp or a bare "2006-01-02" date,
// the latter read as midnight UTC.
func (d *DateModel) UnmarshalJSON(data []byte) error {
	var raw struct {
		Value         *string `json:"value"`
		RenderPattern string  `json:"renderPattern"`
	}

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}

	d.RenderPattern = raw.RenderPattern
	d.Value = time.Time{}
	if raw.Value == nil {
		return nil
	}

	value, err := time.Parse(time.RFC3339, *raw.Value)
	if err != nil {
		value, err = time.Parse(time.DateOnly, *raw.Value)
	}
	if err != nil {
		return fmt.Errorf("invalid date %q: expected RFC 3339 or YYYY-MM-DD", *raw.Value)
	}

	d.Value = value

	return nil
}
