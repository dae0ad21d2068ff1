package info

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Year is an integer year that also accepts a quoted number ("2023"),
// which older data files use for awards. Any other string, such as "" or
// "2024 (to appear)", decodes to the zero Year, which means unset.
type Year int

func (y *Year) UnmarshalJSON(data []byte) error {
	if isString(data) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			n = 0
		}
		*y = Year(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*y = Year(n)
	return nil
}

func (n *PersonName) UnmarshalJSON(data []byte) error {
	if isString(data) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = PersonName{Full: s, Preferred: s, legacy: true}
		return nil
	}
	type plain PersonName
	return json.Unmarshal(data, (*plain)(n))
}

func (e *Email) UnmarshalJSON(data []byte) error {
	if isString(data) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*e = Email{Address: s, legacy: true}
		return nil
	}
	type plain Email
	return json.Unmarshal(data, (*plain)(e))
}

func (v *Venue) UnmarshalJSON(data []byte) error {
	if isString(data) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Venue{Name: s, legacy: true}
		return nil
	}
	type plain Venue
	return json.Unmarshal(data, (*plain)(v))
}

func (p *Paragraphs) UnmarshalJSON(data []byte) error {
	if isString(data) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Paragraphs{Items: []string{s}, legacy: true}
		return nil
	}
	return json.Unmarshal(data, &p.Items)
}

func (p Paragraphs) MarshalJSON() ([]byte, error) { return json.Marshal(p.Items) }

// legacyLinkLabels names the keys the old object form of profile.links used.
var legacyLinkLabels = map[string]string{
	"cv":       "CV",
	"scholar":  "Scholar",
	"github":   "GitHub",
	"linkedin": "LinkedIn",
	"orcid":    "ORCID",
	"twitter":  "Twitter",
}

func (l *ProfileLinks) UnmarshalJSON(data []byte) error {
	if !isObject(data) {
		return json.Unmarshal(data, &l.Items)
	}

	// Walk tokens so the links keep the order they were written in.
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return err
	}
	title := cases.Title(language.English)
	l.legacy = true
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var url string
		if err := dec.Decode(&url); err != nil {
			return fmt.Errorf("links.%s: %w", key, err)
		}
		label, ok := legacyLinkLabels[strings.ToLower(key)]
		if !ok {
			label = title.String(key)
		}
		l.Items = append(l.Items, Link{Type: strings.ToLower(key), Label: label, URL: url})
	}
	_, err := dec.Token()
	return err
}

func (l ProfileLinks) MarshalJSON() ([]byte, error) { return json.Marshal(l.Items) }

func (p *Profile) UnmarshalJSON(data []byte) error {
	type plain Profile
	if err := json.Unmarshal(data, (*plain)(p)); err != nil {
		return err
	}
	p.absent = absentKeys(data, "tagline", "affiliation")
	return nil
}

func (e *Experience) UnmarshalJSON(data []byte) error {
	type plain Experience
	if err := json.Unmarshal(data, (*plain)(e)); err != nil {
		return err
	}
	e.absent = absentKeys(data, "org", "role")
	return nil
}

// absentKeys reports which of keys the JSON object data lacks. Only keys
// that must be present but may hold "" are tracked.
func absentKeys(data []byte, keys ...string) map[string]bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	var absent map[string]bool
	for _, k := range keys {
		if _, ok := fields[k]; !ok {
			if absent == nil {
				absent = make(map[string]bool)
			}
			absent[k] = true
		}
	}
	return absent
}

func (p *Publications) UnmarshalJSON(data []byte) error {
	if isArray(data) {
		p.legacy = true
		return json.Unmarshal(data, &p.Items)
	}
	type plain Publications
	return json.Unmarshal(data, (*plain)(p))
}

func (p *Publication) UnmarshalJSON(data []byte) error {
	if isString(data) {
		return json.Unmarshal(data, &p.Ref)
	}
	type plain Publication
	return json.Unmarshal(data, (*plain)(p))
}

func (p *Projects) UnmarshalJSON(data []byte) error {
	if isArray(data) {
		return json.Unmarshal(data, &p.Items)
	}
	type plain Projects
	return json.Unmarshal(data, (*plain)(p))
}

func (e *ExperienceList) UnmarshalJSON(data []byte) error {
	if isArray(data) {
		return json.Unmarshal(data, &e.Items)
	}
	type plain ExperienceList
	return json.Unmarshal(data, (*plain)(e))
}

func (a *AwardList) UnmarshalJSON(data []byte) error {
	if isArray(data) {
		a.legacy = true
		return json.Unmarshal(data, &a.Items)
	}
	type plain AwardList
	return json.Unmarshal(data, (*plain)(a))
}

func firstByte(data []byte) byte {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return 0
	}
	return data[0]
}

func isString(data []byte) bool { return firstByte(data) == '"' }
func isArray(data []byte) bool  { return firstByte(data) == '[' }
func isObject(data []byte) bool { return firstByte(data) == '{' }
