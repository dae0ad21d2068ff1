package info

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Starter returns the smallest structured document that passes Validate,
// filled in with the owner's answers from the init wizard.
func Starter(title, name, affiliation string) *Info {
	if affiliation == "" {
		affiliation = "Your institution"
	}
	return &Info{
		Site: &Site{
			Title:       title,
			Description: fmt.Sprintf("Academic portfolio of %s", name),
			LastUpdated: "auto",
		},
		Nav: &Nav{Items: []NavItem{
			{ID: "about", Label: "About", Href: "#about", Type: "anchor"},
			{ID: "publications", Label: "Publications", Href: "publications.html", Type: "route"},
			{ID: "blog", Label: "Blog", Href: "blog.html", Type: "route"},
		}},
		Sections: map[string]Section{
			"about": {Label: "About"},
			"news":  {Label: "News"},
		},
		Profile: Profile{
			Name:        PersonName{Full: name, Preferred: name},
			Tagline:     "Researcher",
			Affiliation: affiliation,
			Email:       Email{Address: "you@example.org", Display: "obfuscated"},
			Headshot:    &Headshot{Src: "img/headshot.jpg", Alt: name, Shape: "circle"},
			Links:       ProfileLinks{Items: []Link{}},
			Bio:         Paragraphs{Items: []string{"Write a short bio here."}},
			Interests:   []string{"Your research interests"},
			Highlights:  []Highlight{{Label: "Focus", Value: "Your field"}},
		},
	}
}

// WriteFile writes doc as indented JSON, creating parent directories.
// It refuses to replace an existing file.
func WriteFile(path string, doc *Info) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding data file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
