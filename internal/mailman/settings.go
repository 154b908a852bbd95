package mailman

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// SettingKind tags the type carried by a SettingValue
type SettingKind int

const (
	KindText SettingKind = iota
	KindBoolean
	KindInteger
	KindFloat
	// KindOther covers lists, objects and null; shown as JSON, written back as text
	KindOther
)

func (k SettingKind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindOther:
		return "other"
	default:
		return "text"
	}
}

// SettingValue is a tagged variant holding one list setting
type SettingValue struct {
	Kind  SettingKind
	Bool  bool
	Int   int64
	Float float64
	Text  string
}

// BoolValue returns a boolean setting
func BoolValue(b bool) SettingValue { return SettingValue{Kind: KindBoolean, Bool: b} }

// IntValue returns an integer setting
func IntValue(i int64) SettingValue { return SettingValue{Kind: KindInteger, Int: i} }

// FloatValue returns a float setting
func FloatValue(f float64) SettingValue { return SettingValue{Kind: KindFloat, Float: f} }

// TextValue returns a string setting
func TextValue(s string) SettingValue { return SettingValue{Kind: KindText, Text: s} }

// String renders the value the way it is shown in menus and sent to the server
func (v SettingValue) String() string {
	switch v.Kind {
	case KindBoolean:
		return strconv.FormatBool(v.Bool)
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	default:
		return v.Text
	}
}

// settingFromJSON derives the tag from the JSON token of the value
func settingFromJSON(raw json.RawMessage) SettingValue {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return SettingValue{Kind: KindOther, Text: string(raw)}
	}
	switch t := v.(type) {
	case bool:
		return BoolValue(t)
	case string:
		return TextValue(t)
	case json.Number:
		s := t.String()
		if !strings.ContainsAny(s, ".eE") {
			if i, err := t.Int64(); err == nil {
				return IntValue(i)
			}
		}
		if f, err := t.Float64(); err == nil {
			return FloatValue(f)
		}
		return TextValue(s)
	default:
		return SettingValue{Kind: KindOther, Text: string(bytes.TrimSpace(raw))}
	}
}

// SettingsSaver commits changed settings of a list
type SettingsSaver interface {
	SaveSettings(ctx context.Context, listID string, changes map[string]SettingValue) error
}

// readOnlySettings are resource metadata and never sent back
var readOnlySettings = map[string]bool{
	"http_etag": true,
	"self_link": true,
}

// Settings is the editable configuration of one list. Changes made with Set
// are only sent to the server by Save.
type Settings struct {
	listID  string
	values  map[string]SettingValue
	pending map[string]SettingValue
	saver   SettingsSaver
}

// NewSettings creates a Settings view over the given values
func NewSettings(listID string, values map[string]SettingValue, saver SettingsSaver) *Settings {
	if values == nil {
		values = map[string]SettingValue{}
	}
	return &Settings{
		listID:  listID,
		values:  values,
		pending: map[string]SettingValue{},
		saver:   saver,
	}
}

// Keys returns the setting names sorted lexicographically
func (s *Settings) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the current value of a setting
func (s *Settings) Get(key string) (SettingValue, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set records a new value to be committed by Save
func (s *Settings) Set(key string, value SettingValue) error {
	if _, ok := s.values[key]; !ok {
		return fmt.Errorf("setting %q: %w", key, ErrNotFound)
	}
	if readOnlySettings[key] {
		return fmt.Errorf("setting %q is read-only: %w", key, ErrInvalidInput)
	}
	s.values[key] = value
	s.pending[key] = value
	return nil
}

// Save commits all pending changes in a single request
func (s *Settings) Save(ctx context.Context) error {
	if len(s.pending) == 0 {
		return nil
	}
	if s.saver == nil {
		return fmt.Errorf("settings of %s: no saver configured", s.listID)
	}
	if err := s.saver.SaveSettings(ctx, s.listID, s.pending); err != nil {
		return err
	}
	s.pending = map[string]SettingValue{}
	return nil
}
